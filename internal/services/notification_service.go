// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/damaiputra/living-backend/internal/config"
	"github.com/damaiputra/living-backend/internal/models"
	"github.com/damaiputra/living-backend/internal/utils"
)

// NotificationService writes in-app notification rows and, where configured,
// mirrors the important ones to email.
type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

func (s *NotificationService) create(userID uuid.UUID, notifType, title, message string, data models.JSONB) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).WithField("type", notifType).Error("Failed to create notification")
	}
}

// Permit lifecycle notifications

func (s *NotificationService) SendPermitSubmittedNotification(ticket *models.PermitTicket) {
	s.create(ticket.UserID, "permit_submitted",
		"Pengajuan perizinan diterima",
		fmt.Sprintf("Pengajuan %s (%s) sudah kami terima dan menunggu pemeriksaan dokumen.", ticket.PermitType, ticket.ReferenceNumber),
		models.JSONB{"ticket_id": ticket.ID.String(), "reference_number": ticket.ReferenceNumber})
}

func (s *NotificationService) SendPermitStageNotification(ticket *models.PermitTicket) {
	s.create(ticket.UserID, "permit_progress",
		"Perizinan diproses",
		fmt.Sprintf("Pengajuan %s masuk tahap %s.", ticket.ReferenceNumber, ticket.WorkflowStage),
		models.JSONB{"ticket_id": ticket.ID.String(), "workflow_stage": string(ticket.WorkflowStage)})
}

func (s *NotificationService) SendPermitApprovedNotification(ticket *models.PermitTicket) {
	s.create(ticket.UserID, "permit_approved",
		"Perizinan disetujui",
		fmt.Sprintf("Pengajuan %s disetujui. Nomor izin: %s.", ticket.ReferenceNumber, ticket.PermitNumber),
		models.JSONB{
			"ticket_id":     ticket.ID.String(),
			"permit_number": ticket.PermitNumber,
			"qr_code":       ticket.QRCode,
		})

	if ticket.UserEmail != "" {
		body := fmt.Sprintf(
			"Halo %s,\r\n\r\nPengajuan perizinan %s Anda telah disetujui.\r\nNomor izin: %s\r\n\r\nDamai Putra Living",
			ticket.UserName, ticket.ReferenceNumber, ticket.PermitNumber,
		)
		if err := s.sendEmail(ticket.UserEmail, "Perizinan Disetujui", body); err != nil {
			logrus.WithError(err).Warn("Failed to send approval email")
		}
	}
}

func (s *NotificationService) SendPermitRejectedNotification(ticket *models.PermitTicket) {
	s.create(ticket.UserID, "permit_rejected",
		"Pengajuan perizinan ditolak",
		fmt.Sprintf("Pengajuan %s ditolak: %s", ticket.ReferenceNumber, ticket.RejectionNote),
		models.JSONB{"ticket_id": ticket.ID.String(), "rejection_note": ticket.RejectionNote})
}

// Unit notifications

func (s *NotificationService) SendUnitApprovedNotification(unit *models.Unit) {
	s.create(unit.OwnerID, "unit_approved",
		"Unit disetujui",
		fmt.Sprintf("Unit %s %s telah disetujui. Anda sekarang dapat mengajukan perizinan.", unit.Tower, unit.UnitNumber),
		models.JSONB{"unit_id": unit.ID.String()})
}

func (s *NotificationService) SendUnitRejectedNotification(unit *models.Unit) {
	s.create(unit.OwnerID, "unit_rejected",
		"Pendaftaran unit ditolak",
		fmt.Sprintf("Pendaftaran unit %s %s ditolak: %s", unit.Tower, unit.UnitNumber, unit.RejectionNote),
		models.JSONB{"unit_id": unit.ID.String(), "rejection_note": unit.RejectionNote})
}

// Reward notifications

func (s *NotificationService) SendRewardClaimedNotification(claim *models.RewardClaim, rewardTitle string) {
	s.create(claim.UserID, "reward_claimed",
		"Reward berhasil diklaim",
		fmt.Sprintf("Klaim %s berhasil. Kode: %s.", rewardTitle, claim.ClaimCode),
		models.JSONB{"claim_id": claim.ID.String(), "claim_code": claim.ClaimCode})
}

// Read paths

func (s *NotificationService) ListForUser(userID uuid.UUID, params utils.PaginationParams) ([]models.Notification, int64, error) {
	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, total, nil
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkRead(notificationID, userID uuid.UUID) error {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("notification not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if notification.ReadAt != nil {
		return nil
	}

	now := time.Now()
	notification.ReadAt = &now
	return s.db.Save(&notification).Error
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	now := time.Now()
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPUsername == "" {
		return nil // email delivery not configured
	}

	addr := s.config.Email.SMTPHost + ":" + s.config.Email.SMTPPort
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body,
	))

	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}
