// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/damaiputra/living-backend/internal/i18n"
	"github.com/damaiputra/living-backend/internal/services"
	"github.com/damaiputra/living-backend/internal/utils"
)

// CatalogHandler serves the public browse surfaces: property listings,
// community events, and township destinations.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /properties
func (h *CatalogHandler) ListProperties(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	properties, total, err := h.catalogService.ListProperties(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(properties, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /properties/:id
func (h *CatalogHandler) GetProperty(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID", nil)
		return
	}

	property, err := h.catalogService.GetProperty(propertyID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyPropertyNotFound))
		return
	}

	utils.SuccessResponse(c, gin.H{"property": property})
}

// GET /events
func (h *CatalogHandler) ListEvents(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	events, total, err := h.catalogService.ListUpcomingEvents(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(events, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /events/:id
func (h *CatalogHandler) GetEvent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid event ID", nil)
		return
	}

	event, err := h.catalogService.GetEvent(eventID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyEventNotFound))
		return
	}

	utils.SuccessResponse(c, gin.H{"event": event})
}

// GET /destinations
func (h *CatalogHandler) ListDestinations(c *gin.Context) {
	destinations, err := h.catalogService.ListDestinations(c.Query("category"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"destinations": destinations})
}
