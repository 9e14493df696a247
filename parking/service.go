/*
service.go - The parking engine service

PURPOSE:
  Service owns every operation of the engine: account management, spot
  publishing, the reservation/payment workflow, balances and queries. Each
  operation is a single synchronous request: read the involved records, run
  the validators, apply at most one logical mutation, write back.

SERIALIZATION:
  The contract assumes single-threaded execution per call; read-modify-write
  sequences on balances are only safe because calls cannot interleave. The
  service provides that guarantee itself with a single mutex around every
  operation, so it holds regardless of which HTTP server or store hosts it.

DEPENDENCIES (all injected, no hidden globals):
  Store        - the five persistent tables
  Clock        - monotonic nanosecond timestamps
  IDGenerator  - collision-free string IDs
  Authorizer   - policy hook for privileged operations

SEE ALSO:
  - users.go, accounts.go, reservations.go, queries.go: the operations
*/
package parking

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Service implements the full operation surface of the parking engine.
type Service struct {
	mu    sync.Mutex
	store Store
	clock Clock
	ids   IDGenerator
	authz Authorizer
	log   *logrus.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the system clock. Used by tests for deterministic
// timestamps.
func WithClock(c Clock) Option { return func(s *Service) { s.clock = c } }

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(g IDGenerator) Option { return func(s *Service) { s.ids = g } }

// WithAuthorizer installs an authorization policy. Default is PermitAll.
func WithAuthorizer(a Authorizer) Option { return func(s *Service) { s.authz = a } }

// WithLogger sets the structured logger.
func WithLogger(l *logrus.Logger) Option { return func(s *Service) { s.log = l } }

// NewService builds a Service with production defaults: system clock,
// UUID v4 identifiers, permissive authorization.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		clock: NewSystemClock(),
		ids:   UUIDGenerator{},
		authz: PermitAll{},
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// authorize resolves the actor record (nil when actorID is empty or
// unknown) and asks the policy.
func (s *Service) authorize(ctx context.Context, actorID string, action Action) error {
	var actor *User
	if actorID != "" {
		u, err := s.store.GetUser(ctx, actorID)
		if err != nil {
			return err
		}
		actor = u
	}
	return s.authz.Authorize(actor, action)
}
