// spots.go - Parking spot publishing.
package parking

import "context"

// CreateParkingSpot publishes a new spot owned by an admin. The admin ID is
// recorded as given; the upstream contract never validated it against the
// user table, and the permissive Authorizer keeps that behavior. With
// RequireAdmin installed, the admin ID must belong to an existing admin.
func (s *Service) CreateParkingSpot(ctx context.Context, payload ParkingSpotPayload) (*ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ValidateSpotPayload(payload); err != nil {
		return nil, err
	}
	price, err := ParseAmount(payload.PricePerHour)
	if err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, invalidPayload("Price must not be negative")
	}
	if err := s.authorize(ctx, payload.AdminID, ActionCreateSpot); err != nil {
		return nil, err
	}

	spot := ParkingSpot{
		ID:            s.ids.NewID(),
		AdminID:       payload.AdminID,
		Location:      payload.Location,
		Status:        SpotAvailable,
		PricePerHour:  price,
		NumberOfSpots: payload.NumberOfSpots,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.store.PutSpot(ctx, spot); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]any{
		"spot_id":  spot.ID,
		"location": spot.Location,
		"admin_id": spot.AdminID,
	}).Info("parking spot created")

	return &spot, nil
}
