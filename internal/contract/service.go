package contract

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/client"
	"github.com/epicevents/crm-management/internal/rbac"
	"github.com/epicevents/crm-management/internal/user"
)

// Repository defines the data access methods for contracts.
type Repository interface {
	Create(c *Contract) error
	GetByID(id int64) (*Contract, error)
	GetAll() ([]*Contract, error)
	GetUnsigned() ([]*Contract, error)
	GetPendingPayment() ([]*Contract, error)
	Update(c *Contract) error
}

// ClientDirectory is the slice of the client store the contract
// operations need to build candidate lists and re-check ownership.
type ClientDirectory interface {
	GetAll() ([]*client.Client, error)
	GetByCommercial(userID int64) ([]*client.Client, error)
	GetByID(id int64) (*client.Client, error)
}

type View interface {
	Info(msg string)
	Error(msg string)
}

// Service handles the permission-gated contract operations.
type Service struct {
	repo    Repository
	clients ClientDirectory
	authz   rbac.Authorizer
	view    View
	logger  *slog.Logger
}

func NewService(repo Repository, clients ClientDirectory, authz rbac.Authorizer, view View, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		authz:   authz,
		view:    view,
		logger:  logger,
	}
}

// SelectableClients returns the candidate clients for contract creation:
// a commercial sees only their own clients, gestion sees all. An empty
// candidate set is reported before any selection happens.
func (s *Service) SelectableClients(actor *user.User) ([]*client.Client, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionCreateContract) {
		s.view.Error("❌ Accès refusé : Seuls les commerciaux (gérant le client) et les gestionnaires peuvent créer un contrat.")
		return nil, internal.ErrPermissionDenied
	}

	clients, err := s.candidateClients(actor)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		s.view.Error("⚠️ Aucun client disponible.")
		return nil, internal.ErrNoClientAvailable
	}
	return clients, nil
}

func (s *Service) candidateClients(actor *user.User) ([]*client.Client, error) {
	role := actor.RoleName()
	if role == nil {
		return nil, internal.ErrPermissionDenied
	}
	switch *role {
	case rbac.RoleCommercial:
		return s.clients.GetByCommercial(actor.ID)
	case rbac.RoleGestion:
		return s.clients.GetAll()
	case rbac.RoleSupport:
		return nil, internal.ErrPermissionDenied
	default:
		return nil, internal.ErrPermissionDenied
	}
}

// Create creates an unsigned contract for the chosen client. The client
// id is re-validated for existence and, for commercials, ownership, even
// though the candidate list was already filtered.
func (s *Service) Create(actor *user.User, dto CreateContractDTO) (*Contract, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionCreateContract) {
		s.view.Error("❌ Accès refusé : Seuls les commerciaux (gérant le client) et les gestionnaires peuvent créer un contrat.")
		return nil, internal.ErrPermissionDenied
	}

	candidates, err := s.candidateClients(actor)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.view.Error("⚠️ Aucun client disponible.")
		return nil, internal.ErrNoClientAvailable
	}

	chosen, err := s.clients.GetByID(dto.ClientID)
	if err != nil {
		s.view.Error("⚠️ Client inexistant.")
		return nil, internal.ErrClientNotFound
	}

	if err := s.checkOwnership(actor, chosen, "⚠️ Vous ne pouvez créer un contrat que pour vos propres clients."); err != nil {
		return nil, err
	}

	if err := ValidateAmounts(dto.TotalAmount, dto.RemainingAmount); err != nil {
		return nil, err
	}

	newContract := &Contract{
		ClientID:        chosen.ID,
		TotalAmount:     dto.TotalAmount,
		RemainingAmount: dto.RemainingAmount,
		DateCreated:     time.Now(),
		Status:          false,
	}
	if err := s.repo.Create(newContract); err != nil {
		s.logger.Error("failed to create contract", "error", err, "client_id", chosen.ID)
		return nil, internal.NewInternalError("création du contrat impossible", err)
	}

	s.logger.Info("contract created", "contract_id", newContract.ID, "client_id", chosen.ID)
	s.view.Info(fmt.Sprintf("✅ Contrat créé avec succès pour le client %s !", chosen.Name))
	return newContract, nil
}

// List returns every contract, with an informational message when none
// exist.
func (s *Service) List(actor *user.User) ([]*Contract, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionReadContract) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'read_contrat'.")
		return nil, internal.ErrPermissionDenied
	}

	contracts, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list contracts", "error", err)
		return nil, internal.NewInternalError("lecture des contrats impossible", err)
	}
	if len(contracts) == 0 {
		s.view.Info("ℹ️ Aucun contrat enregistré.")
	}
	return contracts, nil
}

// Filter returns the contracts matching one of the two defined
// predicates. Any other token is a caller error, distinguishable from an
// empty result.
func (s *Service) Filter(actor *user.User, token string) ([]*Contract, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionFilterContract) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'filter_contrat'.")
		return nil, internal.ErrPermissionDenied
	}

	var (
		contracts []*Contract
		err       error
	)
	switch token {
	case FilterUnsigned:
		contracts, err = s.repo.GetUnsigned()
	case FilterPendingPayment:
		contracts, err = s.repo.GetPendingPayment()
	default:
		s.view.Error("❌ Option de filtre invalide.")
		return nil, internal.ErrInvalidFilter
	}
	if err != nil {
		s.logger.Error("failed to filter contracts", "error", err, "filter", token)
		return nil, internal.NewInternalError("filtrage des contrats impossible", err)
	}
	return contracts, nil
}

// Update mutates a contract under the business rules: a commercial may
// only touch contracts of their own clients; total_amount is editable
// only while the contract is unsigned (a total submitted for a signed
// contract is silently retained); remaining_amount is always editable.
// Status may be set in either direction; un-signing a signed contract is
// kept as-is pending product clarification.
func (s *Service) Update(actor *user.User, id int64, dto UpdateContractDTO) (*Contract, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionUpdateContract) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'update_contrat'.")
		return nil, internal.ErrPermissionDenied
	}

	target, err := s.repo.GetByID(id)
	if err != nil {
		s.view.Error("⚠️ Contrat inexistant.")
		return nil, internal.ErrContractNotFound
	}

	owner, err := s.clients.GetByID(target.ClientID)
	if err != nil {
		s.view.Error("⚠️ Client inexistant.")
		return nil, internal.ErrClientNotFound
	}
	if err := s.checkOwnership(actor, owner, "⚠️ Vous ne pouvez modifier que les contrats de vos propres clients."); err != nil {
		return nil, err
	}

	total := target.TotalAmount
	if dto.TotalAmount != nil && !target.Status {
		total = *dto.TotalAmount
	}
	remaining := target.RemainingAmount
	if dto.RemainingAmount != nil {
		remaining = *dto.RemainingAmount
	}
	if err := ValidateAmounts(total, remaining); err != nil {
		return nil, err
	}

	target.TotalAmount = total
	target.RemainingAmount = remaining
	if dto.Status != nil {
		target.Status = *dto.Status
	}

	if err := s.repo.Update(target); err != nil {
		s.logger.Error("failed to update contract", "error", err, "contract_id", id)
		return nil, internal.NewInternalError("mise à jour du contrat impossible", err)
	}

	s.logger.Info("contract updated", "contract_id", id, "status", target.Status)
	s.view.Info(fmt.Sprintf("✅ Contrat %d mis à jour !", id))
	return target, nil
}

// checkOwnership enforces that a commercial only targets their own
// clients. Gestion passes; support never holds the contract permissions.
func (s *Service) checkOwnership(actor *user.User, c *client.Client, denial string) error {
	role := actor.RoleName()
	if role == nil {
		return internal.ErrPermissionDenied
	}
	switch *role {
	case rbac.RoleCommercial:
		if c.CommercialID == nil || *c.CommercialID != actor.ID {
			s.logger.Warn("ownership check failed", "client_id", c.ID, "commercial_id", actor.ID)
			s.view.Error(denial)
			return internal.ErrOwnershipDenied
		}
		return nil
	case rbac.RoleGestion:
		return nil
	case rbac.RoleSupport:
		return internal.ErrPermissionDenied
	default:
		return internal.ErrPermissionDenied
	}
}
