// Package rbac holds the static role to permission mapping. The table is
// reference data fixed at compile time: there is no dynamic granting and
// no per-user override. Absence of an action in a role's set is an
// authoritative denial, not an error.
package rbac

import "sort"

// RoleName is the closed set of roles. Every branch on a role must switch
// over all three constants so the compiler surfaces unhandled cases.
type RoleName string

const (
	RoleGestion    RoleName = "gestion"
	RoleCommercial RoleName = "commercial"
	RoleSupport    RoleName = "support"
)

// ParseRoleName maps a raw string to a known role.
func ParseRoleName(s string) (RoleName, bool) {
	switch RoleName(s) {
	case RoleGestion:
		return RoleGestion, true
	case RoleCommercial:
		return RoleCommercial, true
	case RoleSupport:
		return RoleSupport, true
	}
	return "", false
}

// Action names a single gated operation.
type Action string

const (
	ActionCreateUser Action = "create_user"
	ActionReadUser   Action = "read_user"
	ActionUpdateUser Action = "update_user"
	ActionDeleteUser Action = "delete_user"

	ActionCreateClient Action = "create_client"
	ActionReadClient   Action = "read_client"
	ActionUpdateClient Action = "update_client"
	ActionAssignClient Action = "assign_client"

	ActionCreateContract Action = "create_contrat"
	ActionReadContract   Action = "read_contrat"
	ActionUpdateContract Action = "update_contrat"
	ActionFilterContract Action = "filter_contrat"

	ActionCreateEvent Action = "create_event"
	ActionReadEvent   Action = "read_event"
	ActionUpdateEvent Action = "update_event"
	ActionFilterEvent Action = "filter_event"
)

var rolePermissions = map[RoleName]map[Action]struct{}{
	RoleGestion: actionSet(
		ActionCreateUser, ActionReadUser, ActionUpdateUser, ActionDeleteUser,
		ActionCreateContract, ActionUpdateContract, ActionReadContract, ActionFilterContract,
		ActionReadEvent, ActionFilterEvent, ActionUpdateEvent,
	),
	RoleCommercial: actionSet(
		ActionReadUser,
		ActionCreateClient, ActionReadClient, ActionUpdateClient,
		ActionCreateContract, ActionReadContract, ActionUpdateContract, ActionFilterContract,
		ActionCreateEvent, ActionReadEvent, ActionAssignClient,
	),
	RoleSupport: actionSet(
		ActionReadUser, ActionReadEvent, ActionFilterEvent, ActionUpdateEvent,
	),
}

func actionSet(actions ...Action) map[Action]struct{} {
	set := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// HasPermission reports whether role may perform action. A nil role (user
// without a role) or an unknown role name yields the empty set and
// therefore always false.
func HasPermission(role *RoleName, action Action) bool {
	if role == nil {
		return false
	}
	_, ok := rolePermissions[*role][action]
	return ok
}

// Permissions returns the sorted permission set of a role, empty for nil
// or unknown roles.
func Permissions(role *RoleName) []Action {
	if role == nil {
		return nil
	}
	set := rolePermissions[*role]
	actions := make([]Action, 0, len(set))
	for a := range set {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}
