// Package store implements the client repository on GORM. It also
// satisfies the narrow directory interfaces declared by the user and
// contract packages.
package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/client"
	"github.com/epicevents/crm-management/internal/user"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(c *client.Client) error {
	return r.db.Create(c).Error
}

func (r *ClientRepository) GetByID(id int64) (*client.Client, error) {
	var c client.Client
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) GetByEmail(email string) (*client.Client, error) {
	var c client.Client
	err := r.db.Where("email = ?", email).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) GetByEmailExcluding(email string, id int64) (*client.Client, error) {
	var c client.Client
	err := r.db.Where("email = ? AND id <> ?", email, id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) GetAll() ([]*client.Client, error) {
	var clients []*client.Client
	err := r.db.Order("id").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) GetByCommercial(userID int64) ([]*client.Client, error) {
	var clients []*client.Client
	err := r.db.Where("commercial_id = ?", userID).Order("id").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) Update(c *client.Client) error {
	return r.db.Save(c).Error
}

// GetRef implements user.ClientDirectory.
func (r *ClientRepository) GetRef(id int64) (*user.ClientRef, error) {
	c, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &user.ClientRef{
		ID:           c.ID,
		Name:         c.Name,
		CommercialID: c.CommercialID,
	}, nil
}

// SetCommercial implements user.ClientDirectory.
func (r *ClientRepository) SetCommercial(clientID, userID int64) error {
	return r.db.Model(&client.Client{}).
		Where("id = ?", clientID).
		Updates(map[string]interface{}{
			"commercial_id": userID,
			"date_updated":  time.Now(),
		}).Error
}
