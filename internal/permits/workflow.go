// internal/permits/workflow.go
package permits

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/damaiputra/living-backend/internal/models"
)

// Stages lists the workflow checkpoints in order.
var Stages = []models.WorkflowStage{
	models.StageSubmitted,
	models.StageDocumentCheck,
	models.StageManagementReview,
	models.StageFinalApproval,
	models.StageCompleted,
}

var (
	ErrTerminal     = errors.New("ticket is in a terminal state")
	ErrUnknownStage = errors.New("unknown workflow stage")
)

// StageIndex returns the position of a stage in the workflow, or -1.
func StageIndex(stage models.WorkflowStage) int {
	for i, s := range Stages {
		if s == stage {
			return i
		}
	}
	return -1
}

// Advance moves the ticket to the next workflow stage. Moving past the
// submitted stage marks the ticket in progress; reaching the completed stage
// approves it and fills in the derived permit fields.
func Advance(t *models.PermitTicket, approverName string, now time.Time) error {
	if t.Terminal() {
		return ErrTerminal
	}
	idx := StageIndex(t.WorkflowStage)
	if idx < 0 {
		return ErrUnknownStage
	}
	if idx+1 >= len(Stages) {
		return ErrTerminal
	}

	t.WorkflowStage = Stages[idx+1]
	t.Status = models.TicketStatusInProgress

	if t.WorkflowStage == models.StageCompleted {
		approve(t, approverName, now)
	}
	return nil
}

func approve(t *models.PermitTicket, approverName string, now time.Time) {
	t.Status = models.TicketStatusApproved
	t.ApprovedBy = approverName
	t.ApprovalDate = &now
	t.PermitNumber = newPermitNumber(TypeCode(t.PermitType), now)

	validFrom := now
	validUntil := now.Add(validityFor(TypeCode(t.PermitType)))
	t.ValidFrom = &validFrom
	t.ValidUntil = &validUntil

	t.QRCode = fmt.Sprintf("DPLIVING|%s|%s|%s",
		t.PermitNumber, t.UnitNumber, validUntil.Format("2006-01-02"))
}

// Reject marks the ticket rejected at its current stage. The stage is kept so
// the timeline can show where the rejection happened.
func Reject(t *models.PermitTicket, note string) error {
	if t.Terminal() {
		return ErrTerminal
	}
	t.Status = models.TicketStatusRejected
	t.RejectionNote = note
	return nil
}

// Reset returns the ticket to a freshly submitted state, clearing every
// derived approval field.
func Reset(t *models.PermitTicket) {
	t.Status = models.TicketStatusOpen
	t.WorkflowStage = models.StageSubmitted
	t.RejectionNote = ""
	t.PermitNumber = ""
	t.ApprovedBy = ""
	t.ApprovalDate = nil
	t.ValidFrom = nil
	t.ValidUntil = nil
	t.QRCode = ""
}

// Construction permits stay valid for the length of the works; the rest cover
// a single short activity window.
func validityFor(code TypeCode) time.Duration {
	if SectionsFor(code).Construction {
		return 90 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

func newPermitNumber(code TypeCode, now time.Time) string {
	prefix := "PRM"
	if len(code) >= 3 {
		prefix = strings.ToUpper(string(code)[:3])
	}
	b := make([]byte, 3)
	rand.Read(b)
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), strings.ToUpper(hex.EncodeToString(b)))
}

// StageState is the rendered condition of one timeline entry.
type StageState string

const (
	StagePending       StageState = "pending"
	StageCurrent       StageState = "current"
	StageDone          StageState = "completed"
	StageRejectedState StageState = "rejected"
)

// TimelineEntry pairs a workflow stage with its rendered state.
type TimelineEntry struct {
	Stage models.WorkflowStage `json:"stage"`
	State StageState           `json:"state"`
}

// Timeline evaluates the five-stage progress indicator for a ticket.
// An approved ticket renders every stage completed regardless of its recorded
// stage. A rejected ticket renders the rejection marker at the stage where it
// stopped, stages before it completed, stages after it pending.
func Timeline(status models.TicketStatus, stage models.WorkflowStage) []TimelineEntry {
	current := StageIndex(stage)
	entries := make([]TimelineEntry, len(Stages))

	for i, s := range Stages {
		entry := TimelineEntry{Stage: s, State: StagePending}
		switch {
		case status == models.TicketStatusApproved:
			entry.State = StageDone
		case status == models.TicketStatusRejected:
			if i == current {
				entry.State = StageRejectedState
			} else if i < current {
				entry.State = StageDone
			}
		default:
			if i < current {
				entry.State = StageDone
			} else if i == current {
				entry.State = StageCurrent
			}
		}
		entries[i] = entry
	}
	return entries
}
