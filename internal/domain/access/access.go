// Package access holds the role permission table and visibility scoping for
// appointments. Authorization is role-based only: ownership of a particular
// appointment never widens or narrows what a role may do to it.
package access

import (
	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/user"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate   Action = "create"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionDelete   Action = "delete"
	ActionViewAll  Action = "view-all"
)

func Actions() []Action {
	return []Action{ActionCreate, ActionComplete, ActionCancel, ActionDelete, ActionViewAll}
}

// The permission matrix is data, not branching logic: adding a role or an
// action is an entry here, not a code change across call sites.
var permissions = map[user.Role]map[Action]bool{
	user.RoleOwner: {
		ActionCreate:   true,
		ActionComplete: true,
		ActionCancel:   true,
		ActionDelete:   true,
		ActionViewAll:  true,
	},
	user.RoleReceptionist: {
		ActionCreate:   true,
		ActionComplete: false,
		ActionCancel:   true,
		ActionDelete:   false,
		ActionViewAll:  true,
	},
	user.RoleEmployee: {
		ActionCreate:   false,
		ActionComplete: true,
		ActionCancel:   false,
		ActionDelete:   false,
		ActionViewAll:  false,
	},
}

// Can is a pure lookup. Denial is an expected outcome for the caller to
// present, not an error condition.
func Can(role user.Role, action Action) bool {
	return permissions[role][action]
}

// VisibleScope narrows the appointment set for restricted roles: an
// employee sees pending appointments plus their own, owner and receptionist
// see everything. Any count or list shown to an employee must be computed
// from the scoped set.
func VisibleScope(role user.Role, userID uuid.UUID, appointments []*appointment.Appointment) []*appointment.Appointment {
	if Can(role, ActionViewAll) {
		return appointments
	}

	scoped := make([]*appointment.Appointment, 0, len(appointments))
	for _, ap := range appointments {
		if ap.IsPending() || ap.CreatedBy() == userID {
			scoped = append(scoped, ap)
		}
	}
	return scoped
}

// CanSee reports whether a single appointment falls inside the role's
// visible scope.
func CanSee(role user.Role, userID uuid.UUID, ap *appointment.Appointment) bool {
	if Can(role, ActionViewAll) {
		return true
	}
	return ap.IsPending() || ap.CreatedBy() == userID
}
