// internal/permits/submit_test.go
package permits

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/damaiputra/living-backend/internal/models"
)

func submitCtx() SubmitContext {
	return SubmitContext{
		UserID:       uuid.MustParse("c1a5d6f0-0000-0000-0000-0000000000aa"),
		UserEmail:    "budi@example.com",
		UserName:     "Budi Santoso",
		UnitID:       uuid.MustParse("c1a5d6f0-0000-0000-0000-0000000000bb"),
		UnitNumber:   "A-12-08",
		Tower:        "Magnolia",
		PropertyName: "Damai Putra Living",
	}
}

func TestBuildTicketFixedFieldsAndSnapshots(t *testing.T) {
	d := filledDraft(TypeRenovasiMayor)
	ctx := submitCtx()

	ticket, err := BuildTicket(d, ctx)
	assert.NoError(t, err)

	assert.Equal(t, "permit", ticket.Category)
	assert.Equal(t, "renovasi_mayor", ticket.PermitType)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, models.StageSubmitted, ticket.WorkflowStage)

	assert.Equal(t, ctx.UserID, ticket.UserID)
	assert.Equal(t, ctx.UnitID, ticket.UnitID)
	assert.Equal(t, "A-12-08", ticket.UnitNumber)
	assert.Equal(t, "Magnolia", ticket.Tower)
	assert.Equal(t, "Damai Putra Living", ticket.PropertyName)
	assert.Equal(t, "budi@example.com", ticket.UserEmail)
	assert.Equal(t, "Budi Santoso", ticket.UserName)

	assert.Equal(t, "Budi Santoso", ticket.ApplicantName)
	assert.Equal(t, "owner", ticket.ApplicantRole)
	assert.Equal(t, "3201012345678901", ticket.ApplicantNIK)
}

func TestBuildTicketNumericCoercion(t *testing.T) {
	d := filledDraft(TypeRenovasiMayor)
	d.NumWorkers = "4"
	d.DepositRequired = "5000000"
	d.DepositPaid = "2500000.50"

	ticket, err := BuildTicket(d, submitCtx())
	assert.NoError(t, err)

	if assert.NotNil(t, ticket.NumWorkers) {
		assert.Equal(t, 4, *ticket.NumWorkers)
	}
	if assert.NotNil(t, ticket.DepositRequired) {
		assert.Equal(t, 5000000.0, *ticket.DepositRequired)
	}
	if assert.NotNil(t, ticket.DepositPaid) {
		assert.Equal(t, 2500000.50, *ticket.DepositPaid)
	}
}

func TestBuildTicketEmptyNumericsStayNil(t *testing.T) {
	d := filledDraft(TypeIzinKegiatan)
	d.NumWorkers = ""
	d.DepositRequired = ""
	d.DepositPaid = ""

	ticket, err := BuildTicket(d, submitCtx())
	assert.NoError(t, err)

	assert.Nil(t, ticket.NumWorkers)
	assert.Nil(t, ticket.DepositRequired)
	assert.Nil(t, ticket.DepositPaid)
}

func TestBuildTicketUnparsableNumericsStayNil(t *testing.T) {
	d := filledDraft(TypeRenovasiMinor)
	d.NumWorkers = "empat"
	d.DepositRequired = "lima juta"

	ticket, err := BuildTicket(d, submitCtx())
	assert.NoError(t, err)

	assert.Nil(t, ticket.NumWorkers)
	assert.Nil(t, ticket.DepositRequired)
}

func TestBuildTicketDocuments(t *testing.T) {
	d := filledDraft(TypeRenovasiMinor)
	d.NamedDocuments = map[string]string{
		"ktp":       "https://cdn.example.com/ktp.jpg",
		"work_plan": "https://cdn.example.com/plan.pdf",
	}
	d.DocumentURLs = []string{
		"https://cdn.example.com/ktp.jpg",
		"https://cdn.example.com/plan.pdf",
	}

	ticket, err := BuildTicket(d, submitCtx())
	assert.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/ktp.jpg", ticket.NamedDocuments["ktp"])
	assert.Equal(t, "https://cdn.example.com/plan.pdf", ticket.NamedDocuments["work_plan"])
	assert.Len(t, ticket.DocumentURLs, 2)
}

func TestBuildTicketMissingFields(t *testing.T) {
	d := &Draft{PermitType: TypeGalian}

	ticket, err := BuildTicket(d, submitCtx())
	assert.Nil(t, ticket)

	var mfe *MissingFieldsError
	assert.ErrorAs(t, err, &mfe)
	assert.Contains(t, mfe.Fields, "unit_id")
	assert.Contains(t, mfe.Fields, "applicant_name")
	assert.Contains(t, mfe.Fields, "activity_name")
}
