// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/damaiputra/living-backend/internal/models"
	"github.com/damaiputra/living-backend/internal/utils"
)

// AdminService backs the estate management dashboard.
type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalResidents  int64        `json:"total_residents"`
	PendingUnits    int64        `json:"pending_units"`
	OpenTickets     int64        `json:"open_tickets"`
	InProgress      int64        `json:"in_progress_tickets"`
	ApprovedTickets int64        `json:"approved_tickets"`
	RejectedTickets int64        `json:"rejected_tickets"`
	ActiveRewards   int64        `json:"active_rewards"`
	UnusedClaims    int64        `json:"unused_claims"`
	TicketsByType   []TypeCount  `json:"tickets_by_type"`
	TicketsByStage  []StageCount `json:"tickets_by_stage"`
}

type TypeCount struct {
	PermitType string `json:"permit_type"`
	Count      int64  `json:"count"`
}

type StageCount struct {
	WorkflowStage string `json:"workflow_stage"`
	Count         int64  `json:"count"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	s.db.Model(&models.User{}).Where("role = ?", models.UserRoleResident).Count(&stats.TotalResidents)
	s.db.Model(&models.Unit{}).Where("status = ?", models.UnitStatusPending).Count(&stats.PendingUnits)

	s.db.Model(&models.PermitTicket{}).Where("status = ?", models.TicketStatusOpen).Count(&stats.OpenTickets)
	s.db.Model(&models.PermitTicket{}).Where("status = ?", models.TicketStatusInProgress).Count(&stats.InProgress)
	s.db.Model(&models.PermitTicket{}).Where("status = ?", models.TicketStatusApproved).Count(&stats.ApprovedTickets)
	s.db.Model(&models.PermitTicket{}).Where("status = ?", models.TicketStatusRejected).Count(&stats.RejectedTickets)

	s.db.Model(&models.Reward{}).Where("is_active = ?", true).Count(&stats.ActiveRewards)
	s.db.Model(&models.RewardClaim{}).Where("status = ?", models.ClaimStatusUnused).Count(&stats.UnusedClaims)

	if err := s.db.Model(&models.PermitTicket{}).
		Select("permit_type, COUNT(*) as count").
		Group("permit_type").
		Scan(&stats.TicketsByType).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate tickets by type: %w", err)
	}

	if err := s.db.Model(&models.PermitTicket{}).
		Select("workflow_stage, COUNT(*) as count").
		Where("status IN (?, ?)", models.TicketStatusOpen, models.TicketStatusInProgress).
		Group("workflow_stage").
		Scan(&stats.TicketsByStage).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate tickets by stage: %w", err)
	}

	return stats, nil
}

func (s *AdminService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "full_name", "email"})
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) SetUserStatus(userID uuid.UUID, status models.UserStatus) (*models.User, error) {
	if status != models.UserStatusActive && status != models.UserStatusSuspended && status != models.UserStatusBanned {
		return nil, errors.New("invalid user status")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.Role == models.UserRoleAdmin {
		return nil, errors.New("cannot change status of an admin account")
	}

	user.Status = status
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	return &user, nil
}

// AdjustPoints credits or debits a resident's points balance, e.g. for
// community participation.
func (s *AdminService) AdjustPoints(userID uuid.UUID, delta int, reason string) (*models.User, error) {
	var user models.User

	res := s.db.Model(&models.User{}).
		Where("id = ? AND points_balance + ? >= 0", userID, delta).
		Update("points_balance", gorm.Expr("points_balance + ?", delta))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to adjust points: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errors.New("adjustment would make the balance negative")
	}

	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Manual adjustments always leave a trail with the operator's reason.
	audit := models.AuditLog{
		UserID:       &userID,
		Action:       "points_adjustment",
		ResourceType: "user",
		ResourceID:   &userID,
		NewValues: models.JSONB{
			"delta":   delta,
			"balance": user.PointsBalance,
			"reason":  reason,
		},
	}
	if err := s.db.Create(&audit).Error; err != nil {
		logrus.WithError(err).Warn("Failed to record points adjustment audit log")
	}

	return &user, nil
}

func (s *AdminService) ListAuditLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{}).Preload("User")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("action ILIKE ? OR resource_type ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}
