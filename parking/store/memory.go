// Package store provides an in-memory parking.Store for tests and dev runs.
package store

import (
	"context"
	"sync"

	"github.com/parkwise/parking-engine/parking"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps each table in a map plus an insertion-order key list, so
// enumeration is deterministic like the durable store's.
type Memory struct {
	mu sync.RWMutex

	users     map[string]parking.User
	userOrder []string
	spots     map[string]parking.ParkingSpot
	spotOrder []string
	resvs     map[string]parking.Reservation
	resvOrder []string
	payments  map[string]parking.Payment
	payOrder  []string
	txs       map[string]parking.Transaction
	txOrder   []string
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]parking.User),
		spots:    make(map[string]parking.ParkingSpot),
		resvs:    make(map[string]parking.Reservation),
		payments: make(map[string]parking.Payment),
		txs:      make(map[string]parking.Transaction),
	}
}

// -----------------------------------------------------------------------------
// Users
// -----------------------------------------------------------------------------

func (m *Memory) PutUser(_ context.Context, u parking.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[u.ID]; !exists {
		m.userOrder = append(m.userOrder, u.ID)
	}
	m.users[u.ID] = u
	return nil
}

func (m *Memory) GetUser(_ context.Context, id string) (*parking.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]parking.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]parking.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		out = append(out, m.users[id])
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Parking spots
// -----------------------------------------------------------------------------

func (m *Memory) PutSpot(_ context.Context, s parking.ParkingSpot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.spots[s.ID]; !exists {
		m.spotOrder = append(m.spotOrder, s.ID)
	}
	m.spots[s.ID] = s
	return nil
}

func (m *Memory) GetSpot(_ context.Context, id string) (*parking.ParkingSpot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.spots[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *Memory) ListSpots(_ context.Context) ([]parking.ParkingSpot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]parking.ParkingSpot, 0, len(m.spotOrder))
	for _, id := range m.spotOrder {
		out = append(out, m.spots[id])
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Reservations
// -----------------------------------------------------------------------------

func (m *Memory) PutReservation(_ context.Context, r parking.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.resvs[r.ID]; !exists {
		m.resvOrder = append(m.resvOrder, r.ID)
	}
	m.resvs[r.ID] = r
	return nil
}

func (m *Memory) GetReservation(_ context.Context, id string) (*parking.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.resvs[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) ListReservations(_ context.Context) ([]parking.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]parking.Reservation, 0, len(m.resvOrder))
	for _, id := range m.resvOrder {
		out = append(out, m.resvs[id])
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Payments
// -----------------------------------------------------------------------------

func (m *Memory) PutPayment(_ context.Context, p parking.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.payments[p.ID]; !exists {
		m.payOrder = append(m.payOrder, p.ID)
	}
	m.payments[p.ID] = p
	return nil
}

func (m *Memory) ListPayments(_ context.Context) ([]parking.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]parking.Payment, 0, len(m.payOrder))
	for _, id := range m.payOrder {
		out = append(out, m.payments[id])
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Transaction log (append-only)
// -----------------------------------------------------------------------------

func (m *Memory) AppendTransaction(_ context.Context, t parking.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.txs[t.ID]; !exists {
		m.txOrder = append(m.txOrder, t.ID)
	}
	m.txs[t.ID] = t
	return nil
}

func (m *Memory) ListTransactions(_ context.Context) ([]parking.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]parking.Transaction, 0, len(m.txOrder))
	for _, id := range m.txOrder {
		out = append(out, m.txs[id])
	}
	return out, nil
}

func (m *Memory) ListTransactionsByUser(_ context.Context, userID string) ([]parking.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []parking.Transaction
	for _, id := range m.txOrder {
		if m.txs[id].UserID == userID {
			out = append(out, m.txs[id])
		}
	}
	return out, nil
}

func (m *Memory) FindTransactionByTimestamp(_ context.Context, timestamp int64) (*parking.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.txOrder {
		if m.txs[id].Timestamp == timestamp {
			t := m.txs[id]
			return &t, nil
		}
	}
	return nil, nil
}
