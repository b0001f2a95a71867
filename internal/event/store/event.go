// Package store implements the event repository on GORM.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/event"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(e *event.Event) error {
	return r.db.Create(e).Error
}

func (r *EventRepository) GetByID(id int64) (*event.Event, error) {
	var e event.Event
	err := r.db.Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) GetAll() ([]*event.Event, error) {
	var events []*event.Event
	err := r.db.Order("start_date").Find(&events).Error
	return events, err
}

func (r *EventRepository) GetBySupport(userID int64) ([]*event.Event, error) {
	var events []*event.Event
	err := r.db.Where("support_id = ?", userID).Order("start_date").Find(&events).Error
	return events, err
}

// GetUnassigned returns the unstaffed-event queue.
func (r *EventRepository) GetUnassigned() ([]*event.Event, error) {
	var events []*event.Event
	err := r.db.Where("support_id IS NULL").Order("start_date").Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(e *event.Event) error {
	return r.db.Save(e).Error
}
