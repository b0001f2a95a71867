// Package store implements the contract repository on GORM.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/contract"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(c *contract.Contract) error {
	return r.db.Create(c).Error
}

func (r *ContractRepository) GetByID(id int64) (*contract.Contract, error) {
	var c contract.Contract
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrContractNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) GetAll() ([]*contract.Contract, error) {
	var contracts []*contract.Contract
	err := r.db.Order("id").Find(&contracts).Error
	return contracts, err
}

func (r *ContractRepository) GetUnsigned() ([]*contract.Contract, error) {
	var contracts []*contract.Contract
	err := r.db.Where("status = ?", false).Order("id").Find(&contracts).Error
	return contracts, err
}

// GetPendingPayment returns contracts with money still owed, signed or
// not.
func (r *ContractRepository) GetPendingPayment() ([]*contract.Contract, error) {
	var contracts []*contract.Contract
	err := r.db.Where("remaining_amount > 0").Order("id").Find(&contracts).Error
	return contracts, err
}

// GetSigned implements event.ContractDirectory: the candidate pool for
// event creation is restricted to signed contracts.
func (r *ContractRepository) GetSigned() ([]*contract.Contract, error) {
	var contracts []*contract.Contract
	err := r.db.Where("status = ?", true).Order("id").Find(&contracts).Error
	return contracts, err
}

func (r *ContractRepository) Update(c *contract.Contract) error {
	return r.db.Save(c).Error
}
