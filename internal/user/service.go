package user

import (
	"fmt"
	"log/slog"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/rbac"
)

// Repository defines the data access methods for users and roles.
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByEmailExcluding(email string, id int64) (*User, error)
	GetAll() ([]*User, error)
	Update(u *User) error
	Delete(u *User) error
	GetRoleByName(name rbac.RoleName) (*Role, error)
}

// ClientRef is the slice of a client record the user operations need.
type ClientRef struct {
	ID           int64
	Name         string
	CommercialID *int64
}

// ClientDirectory is the collaborator used to attach clients to a
// commercial without depending on the client package.
type ClientDirectory interface {
	GetRef(id int64) (*ClientRef, error)
	SetCommercial(clientID, userID int64) error
}

// View receives the single human-facing message each operation emits.
type View interface {
	Info(msg string)
	Error(msg string)
}

// Service handles the permission-gated user operations.
type Service struct {
	repo       Repository
	clients    ClientDirectory
	authz      rbac.Authorizer
	view       View
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo Repository, clients ClientDirectory, authz rbac.Authorizer, view View, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		clients:    clients,
		authz:      authz,
		view:       view,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Create adds a user. The supplied role name must resolve to a seeded
// role row; otherwise nothing is written.
func (s *Service) Create(actor *User, dto CreateUserDTO) (*User, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionCreateUser) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'create_user'.")
		return nil, internal.ErrPermissionDenied
	}

	roleName, ok := rbac.ParseRoleName(dto.RoleName)
	if !ok {
		s.view.Error("❌ Rôle invalide !")
		return nil, internal.ErrInvalidRole
	}
	role, err := s.repo.GetRoleByName(roleName)
	if err != nil {
		s.view.Error("❌ Rôle invalide !")
		return nil, internal.ErrInvalidRole
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("hachage du mot de passe impossible", err)
	}

	newUser := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		RoleID:       &role.ID,
		Role:         role,
	}
	if err := s.repo.Create(newUser); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("création de l'utilisateur impossible", err)
	}

	s.logger.Info("user created", "user_id", newUser.ID, "role", roleName)
	s.view.Info(fmt.Sprintf("✅ Utilisateur '%s' créé avec succès !", dto.Name))
	return newUser, nil
}

// Update applies a partial update: blank fields keep their prior value.
// Re-submitting the current email is a no-op, not a collision.
func (s *Service) Update(actor *User, id int64, dto UpdateUserDTO) (*User, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionUpdateUser) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'update_user'.")
		return nil, internal.ErrPermissionDenied
	}

	target, err := s.repo.GetByID(id)
	if err != nil {
		s.view.Error(fmt.Sprintf("⚠️ L'utilisateur %d n'existe pas.", id))
		return nil, internal.ErrUserNotFound
	}

	if dto.Email != "" && dto.Email != target.Email {
		if _, err := s.repo.GetByEmailExcluding(dto.Email, id); err == nil {
			s.view.Error("⚠️ Email déjà utilisé.")
			return nil, internal.ErrEmailTaken
		}
	}

	if dto.Name != "" {
		target.Name = dto.Name
	}
	if dto.Email != "" {
		target.Email = dto.Email
	}
	if dto.Password != "" {
		hash, err := HashPassword(dto.Password, s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("hachage du mot de passe impossible", err)
		}
		target.PasswordHash = hash
	}

	if err := s.repo.Update(target); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("mise à jour de l'utilisateur impossible", err)
	}

	s.logger.Info("user updated", "user_id", id)
	s.view.Info(fmt.Sprintf("✅ Utilisateur %d mis à jour !", id))
	return target, nil
}

// Delete removes a user. Deleting a nonexistent id is a reported no-op.
// The store sets commercial_id / support_id of owned records to null.
func (s *Service) Delete(actor *User, id int64) error {
	if !s.authz.Can(actor.RoleName(), rbac.ActionDeleteUser) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'delete_user'.")
		return internal.ErrPermissionDenied
	}

	target, err := s.repo.GetByID(id)
	if err != nil {
		s.view.Error(fmt.Sprintf("⚠️ L'utilisateur %d n'existe pas.", id))
		return internal.ErrUserNotFound
	}

	if err := s.repo.Delete(target); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.NewInternalError("suppression de l'utilisateur impossible", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	s.view.Info(fmt.Sprintf("✅ Utilisateur %d supprimé !", id))
	return nil
}

// List returns all users.
func (s *Service) List(actor *User) ([]*User, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionReadUser) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'read_user'.")
		return nil, internal.ErrPermissionDenied
	}

	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("lecture des utilisateurs impossible", err)
	}
	return users, nil
}

// Get returns one user by id.
func (s *Service) Get(actor *User, id int64) (*User, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionReadUser) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'read_user'.")
		return nil, internal.ErrPermissionDenied
	}

	target, err := s.repo.GetByID(id)
	if err != nil {
		s.view.Error(fmt.Sprintf("⚠️ L'utilisateur %d n'existe pas.", id))
		return nil, internal.ErrUserNotFound
	}
	return target, nil
}

// AssignClient attaches a client to a user acting as its commercial. The
// target must hold the commercial role; every other failure on the user
// side collapses into the same generic message.
func (s *Service) AssignClient(actor *User, userID, clientID int64) error {
	if !s.authz.Can(actor.RoleName(), rbac.ActionAssignClient) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'assign_client'.")
		return internal.ErrPermissionDenied
	}

	ref, err := s.clients.GetRef(clientID)
	if err != nil {
		s.view.Error("⚠️ Client inexistant.")
		return internal.ErrClientNotFound
	}

	target, err := s.repo.GetByID(userID)
	if err != nil {
		s.view.Error("❌ Impossible d'assigner un client à cet utilisateur.")
		return internal.ErrCannotAssign
	}

	role := target.RoleName()
	if role == nil {
		s.view.Error("❌ Impossible d'assigner un client à cet utilisateur.")
		return internal.ErrCannotAssign
	}

	switch *role {
	case rbac.RoleCommercial:
		// fall through to the assignment below
	case rbac.RoleGestion, rbac.RoleSupport:
		s.view.Error("❌ Impossible d'assigner un client à cet utilisateur.")
		return internal.ErrCannotAssign
	default:
		s.view.Error("❌ Impossible d'assigner un client à cet utilisateur.")
		return internal.ErrCannotAssign
	}

	if err := s.clients.SetCommercial(clientID, userID); err != nil {
		s.logger.Error("failed to assign client", "error", err, "client_id", clientID, "user_id", userID)
		return internal.NewInternalError("assignation du client impossible", err)
	}

	s.logger.Info("client assigned", "client_id", clientID, "user_id", userID)
	s.view.Info(fmt.Sprintf("✅ Client '%s' assigné à %s", ref.Name, target.Name))
	return nil
}
