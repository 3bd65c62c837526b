// internal/services/permit_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/damaiputra/living-backend/internal/database"
	"github.com/damaiputra/living-backend/internal/models"
	"github.com/damaiputra/living-backend/internal/permits"
	"github.com/damaiputra/living-backend/internal/utils"
)

// PermitService owns the permit ticket lifecycle: submission against an
// approved unit, the admin-driven workflow commands, and the read paths.
type PermitService struct {
	db                  *gorm.DB
	cache               *CacheService
	notificationService *NotificationService
}

type RejectPermitRequest struct {
	Note string `json:"note" validate:"required,min=3"`
}

type AddTicketDocumentRequest struct {
	Key string `json:"key" validate:"required"`
	URL string `json:"url" validate:"required,url"`
}

type PermitSearchParams struct {
	utils.PaginationParams
	UserID *uuid.UUID
	Stage  string
}

func NewPermitService(db *gorm.DB, cache *CacheService, notificationService *NotificationService) *PermitService {
	return &PermitService{
		db:                  db,
		cache:               cache,
		notificationService: notificationService,
	}
}

// Submit validates the draft, checks the unit is approved and owned by the
// submitter, and creates the ticket at submitted/open.
func (s *PermitService) Submit(ctx context.Context, userID uuid.UUID, draft *permits.Draft) (*models.PermitTicket, error) {
	if _, ok := permits.Lookup(draft.PermitType); !ok {
		return nil, errors.New("unknown permit type")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if user.Status != models.UserStatusActive {
		return nil, errors.New("account is not active")
	}

	unitID, err := uuid.Parse(draft.UnitID)
	if err != nil {
		return nil, errors.New("invalid unit id")
	}

	var unit models.Unit
	if err := s.db.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("unit not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if unit.OwnerID != userID {
		return nil, errors.New("unauthorized: unit belongs to another resident")
	}
	if unit.Status != models.UnitStatusApproved {
		return nil, errors.New("unit has not been approved")
	}

	ticket, err := permits.BuildTicket(draft, permits.SubmitContext{
		UserID:       user.ID,
		UserEmail:    user.Email,
		UserName:     user.FullName,
		UnitID:       unit.ID,
		UnitNumber:   unit.UnitNumber,
		Tower:        unit.Tower,
		PropertyName: unit.PropertyName,
	})
	if err != nil {
		return nil, err
	}

	ticket.ReferenceNumber, err = utils.GenerateReferenceNumber("TKT", time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference number: %w", err)
	}

	if err := s.db.Create(ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to create permit ticket: %w", err)
	}

	s.cache.InvalidateTicketList(ctx, userID.String())

	go s.notificationService.SendPermitSubmittedNotification(ticket)

	return ticket, nil
}

// ticketListPage is the cached shape of the unfiltered first page: the slice
// together with the resident's full ticket count, so pagination metadata stays
// correct on cache hits.
type ticketListPage struct {
	Tickets []models.PermitTicket `json:"tickets"`
	Total   int64                 `json:"total"`
}

// ListForUser returns the resident's own tickets newest-first. The unfiltered
// first page is served from cache when possible.
func (s *PermitService) ListForUser(ctx context.Context, userID uuid.UUID, params utils.PaginationParams) ([]models.PermitTicket, int64, error) {
	cacheable := params.Page == 1 && params.Status == "" && params.Type == "" && params.Search == ""

	if cacheable {
		var cached ticketListPage
		if s.cache.GetTicketList(ctx, userID.String(), &cached) {
			return cached.Tickets, cached.Total, nil
		}
	}

	query := s.db.Model(&models.PermitTicket{}).Where("user_id = ?", userID)
	query = s.applyFilters(query, params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "updated_at", "status"})
	query = utils.ApplyPagination(query, params)

	var tickets []models.PermitTicket
	if err := query.Find(&tickets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tickets: %w", err)
	}

	if cacheable {
		s.cache.SetTicketList(ctx, userID.String(), ticketListPage{Tickets: tickets, Total: total})
	}

	return tickets, total, nil
}

// ListAll is the admin view across every resident.
func (s *PermitService) ListAll(params PermitSearchParams) ([]models.PermitTicket, int64, error) {
	query := s.db.Model(&models.PermitTicket{}).Preload("User").Preload("Unit")

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Stage != "" {
		query = query.Where("workflow_stage = ?", params.Stage)
	}
	query = s.applyFilters(query, params.PaginationParams)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "updated_at", "status", "workflow_stage"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	var tickets []models.PermitTicket
	if err := query.Find(&tickets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tickets: %w", err)
	}

	return tickets, total, nil
}

func (s *PermitService) applyFilters(query *gorm.DB, params utils.PaginationParams) *gorm.DB {
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Type != "" {
		query = query.Where("permit_type = ?", params.Type)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"reference_number ILIKE ? OR activity_name ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	return query
}

// Get returns a ticket visible to the caller: the submitter or an admin.
func (s *PermitService) Get(ticketID, callerID uuid.UUID, callerRole string) (*models.PermitTicket, error) {
	var ticket models.PermitTicket
	if err := s.db.Preload("Unit").First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("permit ticket not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if ticket.UserID != callerID && callerRole != string(models.UserRoleAdmin) {
		return nil, errors.New("unauthorized to view this ticket")
	}

	return &ticket, nil
}

// Timeline renders the five-stage progress of a ticket.
func (s *PermitService) Timeline(ticketID, callerID uuid.UUID, callerRole string) ([]permits.TimelineEntry, error) {
	ticket, err := s.Get(ticketID, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	return permits.Timeline(ticket.Status, ticket.WorkflowStage), nil
}

// Advance moves the ticket one workflow stage forward.
func (s *PermitService) Advance(ctx context.Context, ticketID uuid.UUID, approverName string) (*models.PermitTicket, error) {
	ticket, err := s.applyCommand(ticketID, func(t *models.PermitTicket) error {
		return permits.Advance(t, approverName, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateTicketList(ctx, ticket.UserID.String())

	if ticket.Status == models.TicketStatusApproved {
		go s.notificationService.SendPermitApprovedNotification(ticket)
	} else {
		go s.notificationService.SendPermitStageNotification(ticket)
	}

	return ticket, nil
}

// Reject marks the ticket rejected at its current stage.
func (s *PermitService) Reject(ctx context.Context, ticketID uuid.UUID, req *RejectPermitRequest) (*models.PermitTicket, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ticket, err := s.applyCommand(ticketID, func(t *models.PermitTicket) error {
		return permits.Reject(t, req.Note)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateTicketList(ctx, ticket.UserID.String())
	go s.notificationService.SendPermitRejectedNotification(ticket)

	return ticket, nil
}

// Reset returns the ticket to the submitted stage with derived fields cleared.
func (s *PermitService) Reset(ctx context.Context, ticketID uuid.UUID) (*models.PermitTicket, error) {
	ticket, err := s.applyCommand(ticketID, func(t *models.PermitTicket) error {
		permits.Reset(t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateTicketList(ctx, ticket.UserID.String())

	return ticket, nil
}

// applyCommand loads the ticket under a row lock, applies the state change,
// and saves it in one transaction.
func (s *PermitService) applyCommand(ticketID uuid.UUID, fn func(*models.PermitTicket) error) (*models.PermitTicket, error) {
	var ticket models.PermitTicket

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("permit ticket not found")
			}
			return fmt.Errorf("database error: %w", err)
		}
		if err := fn(&ticket); err != nil {
			return err
		}
		return tx.Save(&ticket).Error
	})
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

// AddDocument stores a named document slot upload on an open ticket. Reusing
// a slot replaces the previous file in both the map and the flat URL list.
func (s *PermitService) AddDocument(ctx context.Context, ticketID, callerID uuid.UUID, req *AddTicketDocumentRequest) (*models.PermitTicket, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ticket, err := s.applyCommand(ticketID, func(t *models.PermitTicket) error {
		if t.UserID != callerID {
			return errors.New("unauthorized to modify this ticket")
		}
		if t.Terminal() {
			return errors.New("ticket is in a terminal state")
		}

		if t.NamedDocuments == nil {
			t.NamedDocuments = make(models.JSONB)
		}
		if prev, ok := t.NamedDocuments[req.Key].(string); ok {
			t.DocumentURLs = removeURL(t.DocumentURLs, prev)
		}
		t.NamedDocuments[req.Key] = req.URL
		t.DocumentURLs = append(t.DocumentURLs, req.URL)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateTicketList(ctx, ticket.UserID.String())
	return ticket, nil
}

// RemoveDocument clears a named slot and retracts the matching URL.
func (s *PermitService) RemoveDocument(ctx context.Context, ticketID, callerID uuid.UUID, key string) (*models.PermitTicket, error) {
	ticket, err := s.applyCommand(ticketID, func(t *models.PermitTicket) error {
		if t.UserID != callerID {
			return errors.New("unauthorized to modify this ticket")
		}
		if t.Terminal() {
			return errors.New("ticket is in a terminal state")
		}

		url, ok := t.NamedDocuments[key].(string)
		if !ok {
			return errors.New("document not found")
		}
		delete(t.NamedDocuments, key)
		t.DocumentURLs = removeURL(t.DocumentURLs, url)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateTicketList(ctx, ticket.UserID.String())
	return ticket, nil
}

func removeURL(urls pq.StringArray, url string) pq.StringArray {
	for i, u := range urls {
		if u == url {
			return append(urls[:i], urls[i+1:]...)
		}
	}
	return urls
}
