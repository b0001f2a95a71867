package rbac

import "log/slog"

// Authorizer is the permission checkpoint shared by every service. It is
// a small value composed into each service rather than inherited from.
type Authorizer struct {
	logger *slog.Logger
}

func NewAuthorizer(logger *slog.Logger) Authorizer {
	return Authorizer{logger: logger}
}

// Can checks the static table for the acting role. Denials are logged at
// warn level; the caller owns the single human-facing denial message.
func (a Authorizer) Can(role *RoleName, action Action) bool {
	if HasPermission(role, action) {
		a.logger.Debug("permission accordée", "action", action, "role", roleLabel(role))
		return true
	}
	a.logger.Warn("permission refusée", "action", action, "role", roleLabel(role))
	return false
}

func roleLabel(role *RoleName) string {
	if role == nil {
		return "aucun"
	}
	return string(*role)
}
