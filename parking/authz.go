/*
authz.go - Authorization hook for privileged operations

PURPOSE:
  The upstream contract has no caller-identity checks: anyone can create
  admins, publish spots or change roles. Rather than silently reproducing
  that, privileged operations consult an Authorizer so the gap is an
  explicit, swappable policy.

POLICIES:
  PermitAll     - compatible with the original contract (default)
  RequireAdmin  - the acting user must exist and hold the admin role

The actor is resolved from the payload's actor/admin ID; PermitAll never
looks at it.
*/
package parking

// Action names a privileged operation for authorization decisions.
type Action string

const (
	ActionCreateSpot Action = "create_spot"
	ActionChangeRole Action = "change_role"
)

// Authorizer decides whether an actor may perform a privileged action.
// actor is nil when the payload named no actor or the actor is unknown.
type Authorizer interface {
	Authorize(actor *User, action Action) error
}

// PermitAll allows everything. This matches the original permissive
// contract and is the default policy.
type PermitAll struct{}

func (PermitAll) Authorize(*User, Action) error { return nil }

// RequireAdmin only allows actors that exist and hold the admin role.
type RequireAdmin struct{}

func (RequireAdmin) Authorize(actor *User, action Action) error {
	if actor == nil || !actor.IsAdmin() {
		id := ""
		if actor != nil {
			id = actor.ID
		}
		return &ForbiddenError{ActorID: id, Action: action}
	}
	return nil
}
