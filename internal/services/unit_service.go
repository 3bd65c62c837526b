// internal/services/unit_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/damaiputra/living-backend/internal/models"
	"github.com/damaiputra/living-backend/internal/utils"
)

// UnitService handles unit registration and the management approval queue.
type UnitService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type RegisterUnitRequest struct {
	UnitNumber      string                 `json:"unit_number" validate:"required,max=20"`
	Tower           string                 `json:"tower" validate:"max=50"`
	PropertyName    string                 `json:"property_name" validate:"required,max=100"`
	OwnershipStatus models.OwnershipStatus `json:"ownership_status" validate:"required,oneof=owner tenant family"`
}

type RejectUnitRequest struct {
	Note string `json:"note" validate:"required,min=3"`
}

func NewUnitService(db *gorm.DB, notificationService *NotificationService) *UnitService {
	return &UnitService{
		db:                  db,
		notificationService: notificationService,
	}
}

// Register creates a pending unit registration for the resident.
func (s *UnitService) Register(ownerID uuid.UUID, req *RegisterUnitRequest) (*models.Unit, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// The same unit cannot be registered twice while pending or approved.
	var existing models.Unit
	err := s.db.Where(
		"unit_number = ? AND tower = ? AND property_name = ? AND status IN (?, ?)",
		req.UnitNumber, req.Tower, req.PropertyName,
		models.UnitStatusPending, models.UnitStatusApproved,
	).First(&existing).Error
	if err == nil {
		if existing.OwnerID == ownerID {
			return nil, errors.New("unit already registered")
		}
		return nil, errors.New("unit is already registered to another resident")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	unit := &models.Unit{
		OwnerID:         ownerID,
		UnitNumber:      req.UnitNumber,
		Tower:           req.Tower,
		PropertyName:    req.PropertyName,
		OwnershipStatus: req.OwnershipStatus,
		Status:          models.UnitStatusPending,
	}

	if err := s.db.Create(unit).Error; err != nil {
		return nil, fmt.Errorf("failed to register unit: %w", err)
	}

	return unit, nil
}

// ListForOwner returns all of the resident's units, any status.
func (s *UnitService) ListForOwner(ownerID uuid.UUID) ([]models.Unit, error) {
	var units []models.Unit
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&units).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch units: %w", err)
	}
	return units, nil
}

// ApprovedForOwner returns only units that can back a permit application.
func (s *UnitService) ApprovedForOwner(ownerID uuid.UUID) ([]models.Unit, error) {
	var units []models.Unit
	err := s.db.Where("owner_id = ? AND status = ?", ownerID, models.UnitStatusApproved).
		Order("created_at DESC").Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch units: %w", err)
	}
	return units, nil
}

func (s *UnitService) Get(unitID uuid.UUID) (*models.Unit, error) {
	var unit models.Unit
	if err := s.db.Preload("Owner").First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("unit not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &unit, nil
}

// ListPending is the admin approval queue.
func (s *UnitService) ListPending(params utils.PaginationParams) ([]models.Unit, int64, error) {
	query := s.db.Model(&models.Unit{}).Where("status = ?", models.UnitStatusPending).Preload("Owner")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count units: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var units []models.Unit
	if err := query.Find(&units).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch units: %w", err)
	}

	return units, total, nil
}

// Approve marks a pending unit approved.
func (s *UnitService) Approve(unitID uuid.UUID) (*models.Unit, error) {
	unit, err := s.Get(unitID)
	if err != nil {
		return nil, err
	}

	if unit.Status != models.UnitStatusPending {
		return nil, errors.New("unit registration already processed")
	}

	unit.Status = models.UnitStatusApproved
	unit.RejectionNote = ""

	if err := s.db.Save(unit).Error; err != nil {
		return nil, fmt.Errorf("failed to approve unit: %w", err)
	}

	go s.notificationService.SendUnitApprovedNotification(unit)

	return unit, nil
}

// Reject marks a pending unit rejected with a note for the resident.
func (s *UnitService) Reject(unitID uuid.UUID, req *RejectUnitRequest) (*models.Unit, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	unit, err := s.Get(unitID)
	if err != nil {
		return nil, err
	}

	if unit.Status != models.UnitStatusPending {
		return nil, errors.New("unit registration already processed")
	}

	unit.Status = models.UnitStatusRejected
	unit.RejectionNote = req.Note

	if err := s.db.Save(unit).Error; err != nil {
		return nil, fmt.Errorf("failed to reject unit: %w", err)
	}

	go s.notificationService.SendUnitRejectedNotification(unit)

	return unit, nil
}
