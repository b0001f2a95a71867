package contract

import (
	"time"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/client"
)

// Contract links a client to a total/remaining balance and a signed
// state. Deleting the owning client cascades here.
type Contract struct {
	ID              int64          `gorm:"primaryKey"`
	ClientID        int64          `gorm:"column:client_id;not null"`
	Client          *client.Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	TotalAmount     float64        `gorm:"column:total_amount"`
	RemainingAmount float64        `gorm:"column:remaining_amount"`
	DateCreated     time.Time      `gorm:"column:date_created"`
	// Status is true once the contract is signed.
	Status bool `gorm:"column:status"`
}

func (Contract) TableName() string { return "contrats" }

// ValidateAmounts checks the standing invariant on the amount pair:
// 0 <= remaining <= total. Both fields are validated together as a unit
// so a legitimate transition touching both in one update (raising total
// while lowering remaining) is never rejected halfway.
func ValidateAmounts(total, remaining float64) error {
	if total < 0 {
		return internal.NewValidationError("Le montant total ne peut pas être négatif.", internal.ErrCodeInvalidAmount)
	}
	if remaining < 0 {
		return internal.NewValidationError("Le montant restant ne peut pas être négatif.", internal.ErrCodeInvalidAmount)
	}
	if remaining > total {
		return internal.NewValidationError("Le montant restant ne peut pas dépasser le montant total.", internal.ErrCodeInvalidAmount)
	}
	return nil
}

// CreateContractDTO carries already-parsed values from the CLI boundary.
type CreateContractDTO struct {
	ClientID        int64
	TotalAmount     float64
	RemainingAmount float64
}

// UpdateContractDTO has partial-update semantics: nil fields keep their
// prior value.
type UpdateContractDTO struct {
	TotalAmount     *float64
	RemainingAmount *float64
	Status          *bool
}

// Filter tokens accepted by the contract filter operation.
const (
	FilterUnsigned       = "non_signes"
	FilterPendingPayment = "paiement_en_attente"
)
