// internal/handlers/reward.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/damaiputra/living-backend/internal/i18n"
	"github.com/damaiputra/living-backend/internal/services"
	"github.com/damaiputra/living-backend/internal/utils"
)

type RewardHandler struct {
	rewardService *services.RewardService
}

func NewRewardHandler(rewardService *services.RewardService) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

// GET /rewards
func (h *RewardHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	rewards, total, err := h.rewardService.ListActive(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(rewards, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /rewards/:id
func (h *RewardHandler) Get(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	rewardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reward ID", nil)
		return
	}

	reward, err := h.rewardService.Get(rewardID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyRewardNotFound))
		return
	}

	utils.SuccessResponse(c, gin.H{"reward": reward})
}

// POST /rewards/:id/claim
func (h *RewardHandler) Claim(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rewardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reward ID", nil)
		return
	}

	claim, err := h.rewardService.Claim(userID, rewardID)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyRewardNotFound))
		case strings.Contains(err.Error(), "out of stock"):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyRewardOutOfStock))
		case strings.Contains(err.Error(), "insufficient points"):
			utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyRewardInsufficientPoints), nil)
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRewardClaimed),
		"claim":   claim,
	})
}

// GET /rewards/claims
func (h *RewardHandler) ListClaims(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	claims, total, err := h.rewardService.ListClaims(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(claims, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /rewards/claims/:id/cancel
func (h *RewardHandler) CancelClaim(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid claim ID", nil)
		return
	}

	claim, err := h.rewardService.CancelClaim(claimID, userID)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyRewardClaimNotFound))
		case strings.Contains(err.Error(), "unauthorized"):
			utils.ForbiddenResponse(c, err.Error())
		default:
			utils.ConflictResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRewardClaimCancelled),
		"claim":   claim,
	})
}

// POST /admin/rewards/redeem
// Staff at a redemption point scan or type the claim code to mark it used.
func (h *RewardHandler) RedeemClaim(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		ClaimCode string `json:"claim_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "claim_code"), nil)
		return
	}

	claim, err := h.rewardService.UseClaim(strings.ToUpper(strings.TrimSpace(req.ClaimCode)))
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyRewardClaimNotFound))
		case strings.Contains(err.Error(), "expired"):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyRewardClaimExpired))
		case strings.Contains(err.Error(), "claim is"):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyRewardClaimUsed))
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
		"claim":   claim,
	})
}
