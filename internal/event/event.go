package event

import (
	"time"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/contract"
)

// Event is a scheduled engagement tied to exactly one signed contract,
// with an optional assigned support user.
type Event struct {
	ID         int64              `gorm:"primaryKey"`
	Name       string             `gorm:"column:name;size:100;not null"`
	ContractID int64              `gorm:"column:contrat_id;not null"`
	Contract   *contract.Contract `gorm:"foreignKey:ContractID"`
	StartDate  time.Time          `gorm:"column:start_date;not null"`
	EndDate    time.Time          `gorm:"column:end_date;not null"`
	SupportID  *int64             `gorm:"column:support_id"`
	Location   string             `gorm:"column:location;size:100;not null"`
	Attendees  int                `gorm:"column:attendees;not null"`
	Notes      string             `gorm:"column:notes;size:255"`
}

func (Event) TableName() string { return "events" }

// ValidateSchedule checks that the end date is strictly after the start
// date.
func ValidateSchedule(start, end time.Time) error {
	if !end.After(start) {
		return internal.NewValidationError("La date de fin doit être postérieure à la date de début.", internal.ErrCodeInvalidDates)
	}
	return nil
}

// ValidateAttendees rejects a negative attendee count.
func ValidateAttendees(attendees int) error {
	if attendees < 0 {
		return internal.NewValidationError("Le nombre de participants ne peut pas être négatif.", internal.ErrCodeInvalidAttendee)
	}
	return nil
}

// CreateEventDTO carries already-parsed values from the CLI boundary.
type CreateEventDTO struct {
	ContractID int64
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	Location   string
	Attendees  int
	SupportID  *int64
	Notes      string
}

// UpdateEventDTO has partial-update semantics; which field applies is
// decided by the caller's role, not by the DTO.
type UpdateEventDTO struct {
	SupportID *int64
	Notes     *string
}
