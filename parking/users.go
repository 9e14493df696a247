// users.go - User and admin account management.
package parking

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser registers a regular user with a zero balance.
func (s *Service) CreateUser(ctx context.Context, payload UserPayload) (*User, error) {
	return s.createAccount(ctx, payload, RoleUser)
}

// CreateAdmin registers an administrator with a zero balance.
func (s *Service) CreateAdmin(ctx context.Context, payload UserPayload) (*User, error) {
	return s.createAccount(ctx, payload, RoleAdmin)
}

func (s *Service) createAccount(ctx context.Context, payload UserPayload, role Role) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ValidateUserPayload(payload); err != nil {
		return nil, err
	}

	// Passwords are hashed at the door. The upstream contract stored them
	// in clear; that is a flagged gap, not behavior to preserve.
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           s.ids.NewID(),
		Username:     payload.Username,
		PasswordHash: string(hash),
		Role:         role,
		Email:        payload.Email,
		PhoneNumber:  payload.PhoneNumber,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Balance:      decimal.Zero,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("account created")

	return &user, nil
}

// ChangeUserRole overwrites a user's role. The Authorizer decides whether
// the actor may do this; the permissive default allows anyone, matching the
// original contract.
func (s *Service) ChangeUserRole(ctx context.Context, payload ChangeUserRolePayload) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !payload.Role.Valid() {
		return nil, invalidPayload("Unknown role")
	}
	if err := s.authorize(ctx, payload.ActorID, ActionChangeRole); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	user.Role = payload.Role
	if err := s.store.PutUser(ctx, *user); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
		"actor":   payload.ActorID,
	}).Info("role changed")

	return user, nil
}
