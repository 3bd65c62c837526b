// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/damaiputra/living-backend/internal/models"
	"github.com/damaiputra/living-backend/internal/utils"
)

// CatalogService serves the public township content: listed properties,
// community events, and map destinations.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListProperties(params utils.PaginationParams) ([]models.Property, int64, error) {
	query := s.db.Model(&models.Property{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR cluster ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "price", "name"})
	query = utils.ApplyPagination(query, params)

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch properties: %w", err)
	}

	return properties, total, nil
}

func (s *CatalogService) GetProperty(id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &property, nil
}

// ListUpcomingEvents returns events that have not ended yet, soonest first.
func (s *CatalogService) ListUpcomingEvents(params utils.PaginationParams) ([]models.Event, int64, error) {
	query := s.db.Model(&models.Event{}).Where("ends_at >= ?", time.Now())

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query = query.Order("starts_at ASC")
	query = utils.ApplyPagination(query, params)

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch events: %w", err)
	}

	return events, total, nil
}

func (s *CatalogService) GetEvent(id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &event, nil
}

func (s *CatalogService) ListDestinations(category string) ([]models.Destination, error) {
	query := s.db.Model(&models.Destination{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var destinations []models.Destination
	if err := query.Order("name ASC").Find(&destinations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch destinations: %w", err)
	}
	return destinations, nil
}
