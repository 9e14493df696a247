/*
queries.go - Read-only filtered views over the store

Every query, including the list queries, returns NotFound when the result
set is empty. That is the upstream contract and callers depend on it.
*/
package parking

import "context"

// GetAdmins returns all users holding the admin role.
func (s *Service) GetAdmins(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	var admins []User
	for _, u := range users {
		if u.Role == RoleAdmin {
			admins = append(admins, u)
		}
	}
	if len(admins) == 0 {
		return nil, notFound("No admins found")
	}
	return admins, nil
}

// GetUsers returns every user record, admins included.
func (s *Service) GetUsers(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, notFound("No users found")
	}
	return users, nil
}

// GetUserByID looks up a single user.
func (s *Service) GetUserByID(ctx context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}
	return user, nil
}

// GetParkingSpots returns every published spot.
func (s *Service) GetParkingSpots(ctx context.Context) ([]ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spots, err := s.store.ListSpots(ctx)
	if err != nil {
		return nil, err
	}
	if len(spots) == 0 {
		return nil, notFound("No parking spots found")
	}
	return spots, nil
}

// GetParkingSpotByLocation returns the first spot matching the location.
func (s *Service) GetParkingSpotByLocation(ctx context.Context, location string) (*ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spots, err := s.store.ListSpots(ctx)
	if err != nil {
		return nil, err
	}
	for i := range spots {
		if spots[i].Location == location {
			return &spots[i], nil
		}
	}
	return nil, notFound("Parking spot not found")
}

// GetAvailableParkingSpots returns spots whose status is available. Status
// never transitions in the current contract, so this is effectively all
// spots; the filter is kept for contract fidelity.
func (s *Service) GetAvailableParkingSpots(ctx context.Context) ([]ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spots, err := s.store.ListSpots(ctx)
	if err != nil {
		return nil, err
	}
	var available []ParkingSpot
	for _, sp := range spots {
		if sp.Status == SpotAvailable {
			available = append(available, sp)
		}
	}
	if len(available) == 0 {
		return nil, notFound("No available parking spots found")
	}
	return available, nil
}

// GetReservations returns every reservation.
func (s *Service) GetReservations(ctx context.Context) ([]Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations, err := s.store.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, notFound("No reservations found")
	}
	return reservations, nil
}

// GetPayments returns every payment.
func (s *Service) GetPayments(ctx context.Context) ([]Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, notFound("No payments found")
	}
	return payments, nil
}

// GetTransactions returns the full audit log.
func (s *Service) GetTransactions(ctx context.Context) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, notFound("No transactions found")
	}
	return txs, nil
}

// GetTransactionByTimestamp returns the transaction logged at the given
// clock value. When several entries share a tick the earliest-appended one
// is returned.
func (s *Service) GetTransactionByTimestamp(ctx context.Context, timestamp int64) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.store.FindTransactionByTimestamp(ctx, timestamp)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, notFound("Transaction not found")
	}
	return tx, nil
}

// GetUserTransactions returns the audit entries for one user.
func (s *Service) GetUserTransactions(ctx context.Context, userID string) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, notFound("No transactions found for this user")
	}
	return txs, nil
}
