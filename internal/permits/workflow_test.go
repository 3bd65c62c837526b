// internal/permits/workflow_test.go
package permits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/damaiputra/living-backend/internal/models"
)

func openTicket(code TypeCode) *models.PermitTicket {
	return &models.PermitTicket{
		PermitType:    string(code),
		Status:        models.TicketStatusOpen,
		WorkflowStage: models.StageSubmitted,
		UnitNumber:    "A-12-08",
	}
}

func TestAdvanceThroughWorkflow(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	ticket := openTicket(TypeIzinKegiatan)

	assert.NoError(t, Advance(ticket, "Admin Estate", now))
	assert.Equal(t, models.StageDocumentCheck, ticket.WorkflowStage)
	assert.Equal(t, models.TicketStatusInProgress, ticket.Status)

	assert.NoError(t, Advance(ticket, "Admin Estate", now))
	assert.Equal(t, models.StageManagementReview, ticket.WorkflowStage)

	assert.NoError(t, Advance(ticket, "Admin Estate", now))
	assert.Equal(t, models.StageFinalApproval, ticket.WorkflowStage)
	assert.Empty(t, ticket.PermitNumber)

	assert.NoError(t, Advance(ticket, "Admin Estate", now))
	assert.Equal(t, models.StageCompleted, ticket.WorkflowStage)
	assert.Equal(t, models.TicketStatusApproved, ticket.Status)
}

func TestAdvanceFinalStageDerivesPermitFields(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	ticket := openTicket(TypeIzinKegiatan)
	ticket.WorkflowStage = models.StageFinalApproval
	ticket.Status = models.TicketStatusInProgress

	assert.NoError(t, Advance(ticket, "Admin Estate", now))

	assert.Equal(t, "Admin Estate", ticket.ApprovedBy)
	if assert.NotNil(t, ticket.ApprovalDate) {
		assert.Equal(t, now, *ticket.ApprovalDate)
	}
	assert.Regexp(t, `^IZI-20260828-[0-9A-F]{6}$`, ticket.PermitNumber)
	if assert.NotNil(t, ticket.ValidFrom) && assert.NotNil(t, ticket.ValidUntil) {
		assert.Equal(t, now, *ticket.ValidFrom)
		assert.Equal(t, now.Add(30*24*time.Hour), *ticket.ValidUntil)
	}
	assert.Contains(t, ticket.QRCode, ticket.PermitNumber)
	assert.Contains(t, ticket.QRCode, "A-12-08")
}

func TestConstructionPermitsGetLongerValidity(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	ticket := openTicket(TypeRenovasiMayor)
	ticket.WorkflowStage = models.StageFinalApproval
	ticket.Status = models.TicketStatusInProgress

	assert.NoError(t, Advance(ticket, "Admin Estate", now))
	if assert.NotNil(t, ticket.ValidUntil) {
		assert.Equal(t, now.Add(90*24*time.Hour), *ticket.ValidUntil)
	}
}

func TestAdvanceTerminalTicket(t *testing.T) {
	now := time.Now()

	approved := openTicket(TypeGalian)
	approved.Status = models.TicketStatusApproved
	assert.ErrorIs(t, Advance(approved, "Admin Estate", now), ErrTerminal)

	rejected := openTicket(TypeGalian)
	rejected.Status = models.TicketStatusRejected
	assert.ErrorIs(t, Advance(rejected, "Admin Estate", now), ErrTerminal)

	closed := openTicket(TypeGalian)
	closed.Status = models.TicketStatusClosed
	assert.ErrorIs(t, Advance(closed, "Admin Estate", now), ErrTerminal)
}

func TestAdvanceUnknownStage(t *testing.T) {
	ticket := openTicket(TypeGalian)
	ticket.WorkflowStage = "triage"
	assert.ErrorIs(t, Advance(ticket, "Admin Estate", time.Now()), ErrUnknownStage)
}

func TestRejectFreezesStage(t *testing.T) {
	ticket := openTicket(TypePindahMasuk)
	ticket.WorkflowStage = models.StageManagementReview
	ticket.Status = models.TicketStatusInProgress

	assert.NoError(t, Reject(ticket, "Dokumen BAST tidak terbaca"))
	assert.Equal(t, models.TicketStatusRejected, ticket.Status)
	assert.Equal(t, models.StageManagementReview, ticket.WorkflowStage)
	assert.Equal(t, "Dokumen BAST tidak terbaca", ticket.RejectionNote)

	assert.ErrorIs(t, Reject(ticket, "again"), ErrTerminal)
}

func TestResetClearsDerivedFields(t *testing.T) {
	now := time.Now()
	ticket := openTicket(TypeRenovasiMinor)
	ticket.WorkflowStage = models.StageFinalApproval
	ticket.Status = models.TicketStatusInProgress
	assert.NoError(t, Advance(ticket, "Admin Estate", now))
	assert.Equal(t, models.TicketStatusApproved, ticket.Status)

	Reset(ticket)

	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, models.StageSubmitted, ticket.WorkflowStage)
	assert.Empty(t, ticket.PermitNumber)
	assert.Empty(t, ticket.ApprovedBy)
	assert.Empty(t, ticket.QRCode)
	assert.Empty(t, ticket.RejectionNote)
	assert.Nil(t, ticket.ApprovalDate)
	assert.Nil(t, ticket.ValidFrom)
	assert.Nil(t, ticket.ValidUntil)
}

func timelineStates(entries []TimelineEntry) []StageState {
	out := make([]StageState, len(entries))
	for i, e := range entries {
		out[i] = e.State
	}
	return out
}

func TestTimelineInProgress(t *testing.T) {
	entries := Timeline(models.TicketStatusInProgress, models.StageManagementReview)

	assert.Len(t, entries, 5)
	assert.Equal(t, []StageState{
		StageDone, StageDone, StageCurrent, StagePending, StagePending,
	}, timelineStates(entries))
}

func TestTimelineApproved(t *testing.T) {
	// Approved renders fully completed regardless of the recorded stage.
	entries := Timeline(models.TicketStatusApproved, models.StageDocumentCheck)
	assert.Equal(t, []StageState{
		StageDone, StageDone, StageDone, StageDone, StageDone,
	}, timelineStates(entries))
}

func TestTimelineRejected(t *testing.T) {
	entries := Timeline(models.TicketStatusRejected, models.StageManagementReview)
	assert.Equal(t, []StageState{
		StageDone, StageDone, StageRejectedState, StagePending, StagePending,
	}, timelineStates(entries))
}

func TestTimelineFreshSubmission(t *testing.T) {
	entries := Timeline(models.TicketStatusOpen, models.StageSubmitted)
	assert.Equal(t, []StageState{
		StageCurrent, StagePending, StagePending, StagePending, StagePending,
	}, timelineStates(entries))
}
