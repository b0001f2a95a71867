package event

import (
	"fmt"
	"log/slog"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/contract"
	"github.com/epicevents/crm-management/internal/rbac"
	"github.com/epicevents/crm-management/internal/user"
)

// Repository defines the data access methods for events.
type Repository interface {
	Create(e *Event) error
	GetByID(id int64) (*Event, error)
	GetAll() ([]*Event, error)
	GetBySupport(userID int64) ([]*Event, error)
	GetUnassigned() ([]*Event, error)
	Update(e *Event) error
}

// ContractDirectory is the slice of the contract store the event
// operations need.
type ContractDirectory interface {
	GetSigned() ([]*contract.Contract, error)
	GetByID(id int64) (*contract.Contract, error)
}

type View interface {
	Info(msg string)
	Error(msg string)
}

// Service handles the permission-gated event operations.
type Service struct {
	repo      Repository
	contracts ContractDirectory
	authz     rbac.Authorizer
	view      View
	logger    *slog.Logger
}

func NewService(repo Repository, contracts ContractDirectory, authz rbac.Authorizer, view View, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		contracts: contracts,
		authz:     authz,
		view:      view,
		logger:    logger,
	}
}

// SelectableContracts returns the candidate contracts for event
// creation, restricted to signed contracts. An empty pool aborts before
// any selection happens.
func (s *Service) SelectableContracts(actor *user.User) ([]*contract.Contract, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionCreateEvent) {
		s.view.Error("❌ Accès refusé : Vous ne pouvez pas créer un événement.")
		return nil, internal.ErrPermissionDenied
	}

	contracts, err := s.contracts.GetSigned()
	if err != nil {
		s.logger.Error("failed to load signed contracts", "error", err)
		return nil, internal.NewInternalError("lecture des contrats impossible", err)
	}
	if len(contracts) == 0 {
		s.view.Error("⚠️ Aucun contrat signé disponible pour créer un événement.")
		return nil, internal.ErrNoSignedContract
	}
	return contracts, nil
}

// Create schedules an event on a signed contract. The chosen contract id
// is re-validated; a stale candidate list losing the race is reported as
// "contrat inexistant".
func (s *Service) Create(actor *user.User, dto CreateEventDTO) (*Event, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionCreateEvent) {
		s.view.Error("❌ Accès refusé : Vous ne pouvez pas créer un événement.")
		return nil, internal.ErrPermissionDenied
	}

	signed, err := s.contracts.GetSigned()
	if err != nil {
		s.logger.Error("failed to load signed contracts", "error", err)
		return nil, internal.NewInternalError("lecture des contrats impossible", err)
	}
	if len(signed) == 0 {
		s.view.Error("⚠️ Aucun contrat signé disponible pour créer un événement.")
		return nil, internal.ErrNoSignedContract
	}

	if _, err := s.contracts.GetByID(dto.ContractID); err != nil {
		s.view.Error("⚠️ Contrat inexistant.")
		return nil, internal.ErrContractNotFound
	}

	if err := ValidateSchedule(dto.StartDate, dto.EndDate); err != nil {
		return nil, err
	}
	if err := ValidateAttendees(dto.Attendees); err != nil {
		return nil, err
	}

	newEvent := &Event{
		Name:       dto.Name,
		ContractID: dto.ContractID,
		StartDate:  dto.StartDate,
		EndDate:    dto.EndDate,
		Location:   dto.Location,
		Attendees:  dto.Attendees,
		SupportID:  dto.SupportID,
		Notes:      dto.Notes,
	}
	if err := s.repo.Create(newEvent); err != nil {
		s.logger.Error("failed to create event", "error", err, "contract_id", dto.ContractID)
		return nil, internal.NewInternalError("création de l'événement impossible", err)
	}

	s.logger.Info("event created", "event_id", newEvent.ID, "contract_id", dto.ContractID)
	s.view.Info(fmt.Sprintf("✅ Événement '%s' créé avec succès pour le contrat %d !", dto.Name, dto.ContractID))
	return newEvent, nil
}

// List returns every event.
func (s *Service) List(actor *user.User) ([]*Event, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionReadEvent) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'read_event'.")
		return nil, internal.ErrPermissionDenied
	}

	events, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list events", "error", err)
		return nil, internal.NewInternalError("lecture des événements impossible", err)
	}
	return events, nil
}

// Filter branches on the caller's role: support sees the events they are
// assigned to, gestion sees the unstaffed queue. No other role reaches
// this path.
func (s *Service) Filter(actor *user.User) ([]*Event, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionFilterEvent) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'filter_event'.")
		return nil, internal.ErrPermissionDenied
	}

	role := actor.RoleName()
	if role == nil {
		return nil, internal.ErrPermissionDenied
	}

	var (
		events []*Event
		err    error
	)
	switch *role {
	case rbac.RoleSupport:
		events, err = s.repo.GetBySupport(actor.ID)
	case rbac.RoleGestion:
		events, err = s.repo.GetUnassigned()
	case rbac.RoleCommercial:
		return nil, internal.ErrPermissionDenied
	default:
		return nil, internal.ErrPermissionDenied
	}
	if err != nil {
		s.logger.Error("failed to filter events", "error", err, "role", *role)
		return nil, internal.NewInternalError("filtrage des événements impossible", err)
	}
	return events, nil
}

// Update mutates the one field the caller's role is allowed to touch:
// gestion reassigns the support user, support edits the notes. The role
// decides the editable field; the DTO carries no selector.
func (s *Service) Update(actor *user.User, id int64, dto UpdateEventDTO) (*Event, error) {
	if !s.authz.Can(actor.RoleName(), rbac.ActionUpdateEvent) {
		s.view.Error("⛔ Accès refusé : Vous n'avez pas la permission 'update_event'.")
		return nil, internal.ErrPermissionDenied
	}

	target, err := s.repo.GetByID(id)
	if err != nil {
		s.view.Error("⚠️ Événement inexistant.")
		return nil, internal.ErrEventNotFound
	}

	role := actor.RoleName()
	if role == nil {
		return nil, internal.ErrPermissionDenied
	}
	switch *role {
	case rbac.RoleGestion:
		if dto.SupportID != nil {
			target.SupportID = dto.SupportID
		}
	case rbac.RoleSupport:
		if dto.Notes != nil {
			target.Notes = *dto.Notes
		}
	case rbac.RoleCommercial:
		return nil, internal.ErrPermissionDenied
	default:
		return nil, internal.ErrPermissionDenied
	}

	if err := s.repo.Update(target); err != nil {
		s.logger.Error("failed to update event", "error", err, "event_id", id)
		return nil, internal.NewInternalError("mise à jour de l'événement impossible", err)
	}

	s.logger.Info("event updated", "event_id", id, "role", *role)
	s.view.Info(fmt.Sprintf("✅ Événement %d mis à jour !", id))
	return target, nil
}
