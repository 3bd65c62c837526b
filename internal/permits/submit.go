// internal/permits/submit.go
package permits

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/damaiputra/living-backend/internal/models"
)

// SubmitContext carries the data derived at submission time: the approved unit
// the permit is raised against and the authenticated resident's identity.
type SubmitContext struct {
	UserID       uuid.UUID
	UserEmail    string
	UserName     string
	UnitID       uuid.UUID
	UnitNumber   string
	Tower        string
	PropertyName string
}

// MissingFieldsError is returned when the draft fails full validation.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.Fields)
}

// BuildTicket flattens a validated draft into a new PermitTicket. Numeric
// fields are coerced from their string form only when non-empty; an empty
// string leaves the column NULL rather than zero. The unit and identity
// snapshots are copied in at this point and never re-derived.
func BuildTicket(d *Draft, ctx SubmitContext) (*models.PermitTicket, error) {
	if missing := Validate(d); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	t := &models.PermitTicket{
		UserID: ctx.UserID,
		UnitID: ctx.UnitID,

		Category:      "permit",
		PermitType:    string(d.PermitType),
		Status:        models.TicketStatusOpen,
		WorkflowStage: models.StageSubmitted,

		ApplicantName:  d.ApplicantName,
		ApplicantRole:  d.ApplicantRole,
		ApplicantNIK:   d.ApplicantNIK,
		ApplicantPhone: d.ApplicantPhone,

		ActivityName:     d.ActivityName,
		ActivityCategory: d.ActivityCategory,
		Description:      d.Description,
		ActivityDate:     d.ActivityDate,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		StartTime:        d.StartTime,
		EndTime:          d.EndTime,

		WorkScope:         d.WorkScope,
		ContractorCompany: d.ContractorCompany,
		ContractorName:    d.ContractorName,
		ContractorPhone:   d.ContractorPhone,

		VehicleType:   d.VehicleType,
		MoverCount:    d.MoverCount,
		MovingCompany: d.MovingCompany,

		DepositAccount:  d.DepositAccount,
		DepositProofURL: d.DepositProofURL,

		UnitNumber:   ctx.UnitNumber,
		Tower:        ctx.Tower,
		PropertyName: ctx.PropertyName,
		UserEmail:    ctx.UserEmail,
		UserName:     ctx.UserName,
	}

	if n, ok := parseIntField(d.NumWorkers); ok {
		t.NumWorkers = &n
	}
	if f, ok := parseFloatField(d.DepositRequired); ok {
		t.DepositRequired = &f
	}
	if f, ok := parseFloatField(d.DepositPaid); ok {
		t.DepositPaid = &f
	}

	if len(d.NamedDocuments) > 0 {
		t.NamedDocuments = make(models.JSONB, len(d.NamedDocuments))
		for k, v := range d.NamedDocuments {
			t.NamedDocuments[k] = v
		}
	}
	if len(d.DocumentURLs) > 0 {
		t.DocumentURLs = append(t.DocumentURLs, d.DocumentURLs...)
	}

	return t, nil
}

func parseIntField(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFloatField(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
