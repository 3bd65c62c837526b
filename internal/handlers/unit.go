// internal/handlers/unit.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/damaiputra/living-backend/internal/i18n"
	"github.com/damaiputra/living-backend/internal/models"
	"github.com/damaiputra/living-backend/internal/services"
	"github.com/damaiputra/living-backend/internal/utils"
)

type UnitHandler struct {
	unitService *services.UnitService
}

func NewUnitHandler(unitService *services.UnitService) *UnitHandler {
	return &UnitHandler{
		unitService: unitService,
	}
}

// POST /units
func (h *UnitHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RegisterUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	unit, err := h.unitService.Register(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "already registered") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyUnitAlreadyClaimed))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUnitRegistered),
		"unit":    unit,
	})
}

// GET /units
func (h *UnitHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// ?approved=true narrows to units eligible for permit applications.
	if c.Query("approved") == "true" {
		units, err := h.unitService.ApprovedForOwner(userID)
		if err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		utils.SuccessResponse(c, gin.H{"units": units})
		return
	}

	units, err := h.unitService.ListForOwner(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"units": units})
}

// GET /units/:id
func (h *UnitHandler) Get(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid unit ID", nil)
		return
	}

	unit, err := h.unitService.Get(unitID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyUnitNotFound))
		return
	}

	role, _ := utils.GetUserRoleFromContext(c)
	if unit.OwnerID != userID && role != string(models.UserRoleAdmin) {
		utils.ForbiddenResponse(c, "unauthorized to view this unit")
		return
	}

	utils.SuccessResponse(c, gin.H{"unit": unit})
}

// GET /admin/units/pending
func (h *UnitHandler) ListPending(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	units, total, err := h.unitService.ListPending(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(units, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/units/:id/approve
func (h *UnitHandler) Approve(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid unit ID", nil)
		return
	}

	unit, err := h.unitService.Approve(unitID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "unit")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUnitApproved),
		"unit":    unit,
	})
}

// POST /admin/units/:id/reject
func (h *UnitHandler) Reject(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid unit ID", nil)
		return
	}

	var req services.RejectUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	unit, err := h.unitService.Reject(unitID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "unit")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUnitRejected),
		"unit":    unit,
	})
}
