package services

import (
	"errors"
	"time"

	"cueu-api/club/models"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// GetUpcoming returns events that have not started yet, soonest first
func (s *EventService) GetUpcoming(limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 20
	}

	var events []models.Event
	err := s.db.
		Where("starts_at > ?", time.Now()).
		Order("starts_at ASC").
		Limit(limit).
		Find(&events).Error

	return events, err
}

func (s *EventService) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *EventService) Create(req models.CreateEventRequest) (*models.Event, error) {
	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

func (s *EventService) Update(id uint, req models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = req.EndsAt
	}

	if err := s.db.Save(event).Error; err != nil {
		return nil, err
	}

	return event, nil
}

func (s *EventService) Delete(id uint) error {
	result := s.db.Delete(&models.Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
