// internal/handlers/permit.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/damaiputra/living-backend/internal/i18n"
	"github.com/damaiputra/living-backend/internal/permits"
	"github.com/damaiputra/living-backend/internal/services"
	"github.com/damaiputra/living-backend/internal/utils"
)

type PermitHandler struct {
	permitService  *services.PermitService
	storageService *services.StorageService
}

func NewPermitHandler(permitService *services.PermitService, storageService *services.StorageService) *PermitHandler {
	return &PermitHandler{
		permitService:  permitService,
		storageService: storageService,
	}
}

// GET /permits/types
func (h *PermitHandler) ListTypes(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"types": permits.Catalog()})
}

// GET /permits/types/:code
func (h *PermitHandler) GetType(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	code := permits.TypeCode(c.Param("code"))

	permitType, ok := permits.Lookup(code)
	if !ok {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPermitUnknownType), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"type":           permitType,
		"sections":       permits.SectionsFor(code),
		"document_slots": permits.DocumentSlots(code),
	})
}

// POST /permits/validate
// Dry-runs a step validator so clients can gate wizard progression.
func (h *PermitHandler) ValidateStep(c *gin.Context) {
	var req struct {
		Step  int           `json:"step" binding:"required,min=1,max=4"`
		Draft permits.Draft `json:"draft"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	missing := permits.ValidateStep(permits.Step(req.Step), &req.Draft)
	utils.SuccessResponse(c, gin.H{
		"valid":   len(missing) == 0,
		"missing": missing,
	})
}

// POST /permits
func (h *PermitHandler) Submit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var draft permits.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	ticket, err := h.permitService.Submit(c.Request.Context(), userID, &draft)
	if err != nil {
		var mfe *permits.MissingFieldsError
		if errors.As(err, &mfe) {
			utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyPermitMissingFields, mfe.Fields), gin.H{
				"missing": mfe.Fields,
			})
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "unit")
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "not been approved") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUnitNotApproved), nil)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPermitSubmitted),
		"ticket":  ticket,
	})
}

// GET /permits
func (h *PermitHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	tickets, total, err := h.permitService.ListForUser(c.Request.Context(), userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(tickets, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /permits/:id
func (h *PermitHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ticket ID", nil)
		return
	}

	role, _ := utils.GetUserRoleFromContext(c)
	ticket, err := h.permitService.Get(ticketID, userID, role)
	if err != nil {
		h.writeTicketError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"ticket": ticket})
}

// GET /permits/:id/timeline
func (h *PermitHandler) Timeline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ticket ID", nil)
		return
	}

	role, _ := utils.GetUserRoleFromContext(c)
	timeline, err := h.permitService.Timeline(ticketID, userID, role)
	if err != nil {
		h.writeTicketError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"timeline": timeline})
}

// POST /permits/:id/documents
// Accepts a multipart upload, stores the file, and attaches it to the ticket
// under the given slot key.
func (h *PermitHandler) UploadDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ticket ID", nil)
		return
	}

	key := c.PostForm("key")
	if key == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "key"), nil)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "file"), nil)
		return
	}
	defer file.Close()

	options := h.storageService.GetDefaultUploadOptions("permit_documents")
	options.ExpectedChecksum = c.PostForm("checksum")
	uploaded, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		if strings.Contains(err.Error(), "exceeds maximum") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadTooLarge), nil)
			return
		}
		if strings.Contains(err.Error(), "not allowed") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadBadType), nil)
			return
		}
		if strings.Contains(err.Error(), "checksum mismatch") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadChecksumMismatch), nil)
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyUploadFailed))
		return
	}

	ticket, err := h.permitService.AddDocument(c.Request.Context(), ticketID, userID, &services.AddTicketDocumentRequest{
		Key: key,
		URL: uploaded.URL,
	})
	if err != nil {
		h.writeTicketError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPermitDocumentAdded),
		"upload":  uploaded,
		"ticket":  ticket,
	})
}

// DELETE /permits/:id/documents/:key
func (h *PermitHandler) RemoveDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ticket ID", nil)
		return
	}

	ticket, err := h.permitService.RemoveDocument(c.Request.Context(), ticketID, userID, c.Param("key"))
	if err != nil {
		h.writeTicketError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPermitDocumentRemoved),
		"ticket":  ticket,
	})
}

// Admin workflow commands

// GET /admin/permits
func (h *PermitHandler) AdminList(c *gin.Context) {
	params := services.PermitSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Stage:            c.Query("stage"),
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			params.UserID = &userID
		}
	}

	tickets, total, err := h.permitService.ListAll(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(tickets, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// POST /admin/permits/:id/advance
func (h *PermitHandler) Advance(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ticket ID", nil)
		return
	}

	approverName, _ := utils.GetUserNameFromContext(c)
	ticket, err := h.permitService.Advance(c.Request.Context(), ticketID, approverName)
	if err != nil {
		if strings.Contains(err.Error(), "terminal") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyPermitTerminal))
			return
		}
		h.writeTicketError(c, err)
		return
	}

	message := i18n.T(lang, i18n.KeyPermitAdvanced)
	if ticket.PermitNumber != "" {
		message = i18n.T(lang, i18n.KeyPermitApproved)
	}

	utils.SuccessResponse(c, gin.H{
		"message": message,
		"ticket":  ticket,
	})
}

// POST /admin/permits/:id/reject
func (h *PermitHandler) Reject(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ticket ID", nil)
		return
	}

	var req services.RejectPermitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	ticket, err := h.permitService.Reject(c.Request.Context(), ticketID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "terminal") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyPermitTerminal))
			return
		}
		h.writeTicketError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPermitRejected),
		"ticket":  ticket,
	})
}

// POST /admin/permits/:id/reset
func (h *PermitHandler) Reset(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ticket ID", nil)
		return
	}

	ticket, err := h.permitService.Reset(c.Request.Context(), ticketID)
	if err != nil {
		h.writeTicketError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPermitReset),
		"ticket":  ticket,
	})
}

func (h *PermitHandler) writeTicketError(c *gin.Context, err error) {
	switch {
	case strings.Contains(err.Error(), "not found"):
		utils.NotFoundResponse(c, "permit")
	case strings.Contains(err.Error(), "unauthorized"):
		utils.ForbiddenResponse(c, err.Error())
	case strings.Contains(err.Error(), "terminal"):
		utils.ConflictResponse(c, err.Error())
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}
