package client

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/rbac"
	"github.com/epicevents/crm-management/internal/user"
)

// Repository defines the data access methods for clients.
type Repository interface {
	Create(c *Client) error
	GetByID(id int64) (*Client, error)
	GetByEmail(email string) (*Client, error)
	GetByEmailExcluding(email string, id int64) (*Client, error)
	GetAll() ([]*Client, error)
	GetByCommercial(userID int64) ([]*Client, error)
	Update(c *Client) error
}

type View interface {
	Info(msg string)
	Error(msg string)
}

// Service handles the permission-gated client operations.
type Service struct {
	repo   Repository
	authz  rbac.Authorizer
	view   View
	logger *slog.Logger
}

func NewService(repo Repository, authz rbac.Authorizer, view View, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		authz:  authz,
		view:   view,
		logger: logger,
	}
}

// Create adds a client and auto-assigns the acting user as its
// commercial owner. Duplicate emails are pre-checked so the failure is a
// specific message, not a propagated storage constraint.
func (s *Service) Create(actor *user.User, dto CreateClientDTO) (*Client, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionCreateClient) {
		s.view.Error("❌ Accès refusé : Seuls les commerciaux peuvent créer des clients.")
		return nil, internal.ErrPermissionDenied
	}

	if _, err := s.repo.GetByEmail(dto.Email); err == nil {
		s.view.Error("⚠️ Un client avec cet email existe déjà.")
		return nil, internal.ErrEmailTaken
	}

	now := time.Now()
	newClient := &Client{
		Name:         dto.Name,
		Email:        dto.Email,
		Phone:        dto.Phone,
		Company:      dto.Company,
		DateCreated:  now,
		DateUpdated:  now,
		CommercialID: &actor.ID,
	}
	if err := s.repo.Create(newClient); err != nil {
		s.logger.Error("failed to create client", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("création du client impossible", err)
	}

	s.logger.Info("client created", "client_id", newClient.ID, "commercial_id", actor.ID)
	s.view.Info(fmt.Sprintf("✅ Client '%s' créé et attribué à %s.", dto.Name, actor.Name))
	return newClient, nil
}

// ListAll returns every client.
func (s *Service) ListAll(actor *user.User) ([]*Client, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionReadClient) {
		s.view.Error("❌ Accès refusé : Seuls les commerciaux peuvent lire les clients.")
		return nil, internal.ErrPermissionDenied
	}

	clients, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list clients", "error", err)
		return nil, internal.NewInternalError("lecture des clients impossible", err)
	}
	return clients, nil
}

// ListPersonal returns only the clients owned by the acting commercial.
func (s *Service) ListPersonal(actor *user.User) ([]*Client, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionReadClient) {
		s.view.Error("❌ Accès refusé : Seuls les commerciaux peuvent lire les clients.")
		return nil, internal.ErrPermissionDenied
	}

	clients, err := s.repo.GetByCommercial(actor.ID)
	if err != nil {
		s.logger.Error("failed to list personal clients", "error", err, "commercial_id", actor.ID)
		return nil, internal.NewInternalError("lecture des clients impossible", err)
	}
	return clients, nil
}

// Update applies a partial update. The email collision check excludes the
// record being updated, so re-submitting the same email is a no-op.
func (s *Service) Update(actor *user.User, id int64, dto UpdateClientDTO) (*Client, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionUpdateClient) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'update_client'.")
		return nil, internal.ErrPermissionDenied
	}

	target, err := s.repo.GetByID(id)
	if err != nil {
		s.view.Error("⚠️ Client inexistant.")
		return nil, internal.ErrClientNotFound
	}

	if dto.Email != "" {
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
	if dto.Phone != "" {
		target.Phone = dto.Phone
	}
	if dto.Company != "" {
		target.Company = dto.Company
	}
	target.DateUpdated = time.Now()

	if err := s.repo.Update(target); err != nil {
		s.logger.Error("failed to update client", "error", err, "client_id", id)
		return nil, internal.NewInternalError("mise à jour du client impossible", err)
	}

	s.logger.Info("client updated", "client_id", id)
	s.view.Info(fmt.Sprintf("✅ Client %d mis à jour !", id))
	return target, nil
}
