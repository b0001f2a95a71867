// Package store implements the user repository on GORM.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/rbac"
	"github.com/epicevents/crm-management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Preload("Role").Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmailExcluding(email string, id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ? AND id <> ?", email, id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Preload("Role").Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(u *user.User) error {
	return r.db.Save(u).Error
}

// Delete removes the user and clears the references held by clients and
// events, mirroring the ON DELETE SET NULL of the schema for stores that
// do not enforce it.
func (r *UserRepository) Delete(u *user.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("clients").Where("commercial_id = ?", u.ID).Update("commercial_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Table("events").Where("support_id = ?", u.ID).Update("support_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(u).Error
	})
}

func (r *UserRepository) GetRoleByName(name rbac.RoleName) (*user.Role, error) {
	var role user.Role
	err := r.db.Where("name = ?", string(name)).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidRole
		}
		return nil, err
	}
	return &role, nil
}
