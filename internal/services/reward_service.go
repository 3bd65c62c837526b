// internal/services/reward_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/damaiputra/living-backend/internal/database"
	"github.com/damaiputra/living-backend/internal/models"
	"github.com/damaiputra/living-backend/internal/utils"
)

// RewardService handles the points catalog and claim lifecycle. Claiming a
// reward deducts points, decrements stock, and issues the claim code in a
// single transaction.
type RewardService struct {
	db                  *gorm.DB
	notificationService *NotificationService
	cron                *cron.Cron
}

func NewRewardService(db *gorm.DB, notificationService *NotificationService) *RewardService {
	return &RewardService{
		db:                  db,
		notificationService: notificationService,
	}
}

// StartExpirySweep schedules the periodic job that expires stale claims.
func (s *RewardService) StartExpirySweep(spec string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(spec, func() {
		expired, err := s.ExpireStale(time.Now())
		if err != nil {
			logrus.WithError(err).Error("Reward claim expiry sweep failed")
			return
		}
		if expired > 0 {
			logrus.WithField("expired", expired).Info("Expired stale reward claims")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule expiry sweep: %w", err)
	}
	s.cron.Start()
	return nil
}

func (s *RewardService) StopExpirySweep() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// ListActive returns claimable rewards.
func (s *RewardService) ListActive(params utils.PaginationParams) ([]models.Reward, int64, error) {
	query := s.db.Model(&models.Reward{}).Where("is_active = ?", true)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rewards: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "points_cost", "title"})
	query = utils.ApplyPagination(query, params)

	var rewards []models.Reward
	if err := query.Find(&rewards).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch rewards: %w", err)
	}

	return rewards, total, nil
}

func (s *RewardService) Get(rewardID uuid.UUID) (*models.Reward, error) {
	var reward models.Reward
	if err := s.db.First(&reward, rewardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reward not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &reward, nil
}

// Claim redeems a reward. Points deduction, stock decrement, and claim
// creation happen atomically; a concurrent claim that would overdraw the
// balance or the stock rolls back.
func (s *RewardService) Claim(userID, rewardID uuid.UUID) (*models.RewardClaim, error) {
	var claim *models.RewardClaim
	var rewardTitle string

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("reward not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !reward.IsActive {
			return errors.New("reward not found")
		}
		if reward.Stock <= 0 {
			return errors.New("reward is out of stock")
		}

		// Guarded deduction: only succeeds when the balance covers the cost.
		res := tx.Model(&models.User{}).
			Where("id = ? AND points_balance >= ?", userID, reward.PointsCost).
			Update("points_balance", gorm.Expr("points_balance - ?", reward.PointsCost))
		if res.Error != nil {
			return fmt.Errorf("failed to deduct points: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.New("insufficient points")
		}

		if err := tx.Model(&reward).Update("stock", gorm.Expr("stock - 1")).Error; err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		code, err := utils.GenerateClaimCode()
		if err != nil {
			return fmt.Errorf("failed to generate claim code: %w", err)
		}

		expiresAt := time.Now().AddDate(0, 0, reward.ValidDays)
		claim = &models.RewardClaim{
			RewardID:    reward.ID,
			UserID:      userID,
			ClaimCode:   code,
			PointsSpent: reward.PointsCost,
			Status:      models.ClaimStatusUnused,
			ExpiresAt:   &expiresAt,
		}
		rewardTitle = reward.Title

		return tx.Create(claim).Error
	})
	if err != nil {
		return nil, err
	}

	go s.notificationService.SendRewardClaimedNotification(claim, rewardTitle)

	return claim, nil
}

// ListClaims returns the resident's claims newest-first.
func (s *RewardService) ListClaims(userID uuid.UUID, params utils.PaginationParams) ([]models.RewardClaim, int64, error) {
	query := s.db.Model(&models.RewardClaim{}).Where("user_id = ?", userID).Preload("Reward")

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count claims: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "expires_at"})
	query = utils.ApplyPagination(query, params)

	var claims []models.RewardClaim
	if err := query.Find(&claims).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch claims: %w", err)
	}

	return claims, total, nil
}

// UseClaim redeems a claim code at the merchant counter. Admin only.
func (s *RewardService) UseClaim(claimCode string) (*models.RewardClaim, error) {
	var claim models.RewardClaim

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("claim_code = ?", claimCode).First(&claim).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("claim not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if claim.Status != models.ClaimStatusUnused {
			return fmt.Errorf("claim is %s", claim.Status)
		}
		// The nightly sweep owns flipping stale rows to expired; here we
		// only refuse the redemption.
		if claim.Expired(time.Now()) {
			return errors.New("claim has expired")
		}

		now := time.Now()
		claim.Status = models.ClaimStatusUsed
		claim.UsedAt = &now
		return tx.Save(&claim).Error
	})
	if err != nil {
		return nil, err
	}

	return &claim, nil
}

// CancelClaim voids an unused claim and refunds the points and stock.
func (s *RewardService) CancelClaim(claimID, userID uuid.UUID) (*models.RewardClaim, error) {
	var claim models.RewardClaim

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&claim, claimID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("claim not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if claim.UserID != userID {
			return errors.New("unauthorized to cancel this claim")
		}
		if claim.Status != models.ClaimStatusUnused {
			return fmt.Errorf("claim is %s", claim.Status)
		}

		now := time.Now()
		claim.Status = models.ClaimStatusCancelled
		claim.CancelledAt = &now
		if err := tx.Save(&claim).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("points_balance", gorm.Expr("points_balance + ?", claim.PointsSpent)).Error; err != nil {
			return fmt.Errorf("failed to refund points: %w", err)
		}

		return tx.Model(&models.Reward{}).Where("id = ?", claim.RewardID).
			Update("stock", gorm.Expr("stock + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return &claim, nil
}

// ExpireStale flips unused claims past their expiry to expired. Points are
// not refunded on expiry.
func (s *RewardService) ExpireStale(now time.Time) (int64, error) {
	res := s.db.Model(&models.RewardClaim{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.ClaimStatusUnused, now).
		Update("status", models.ClaimStatusExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to expire claims: %w", res.Error)
	}
	return res.RowsAffected, nil
}
