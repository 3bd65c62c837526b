// internal/models/permit.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PermitTicket is a resident-submitted permit request tracked through the
// approval workflow. The flat field layout mirrors the application form: only
// the fields relevant to the selected permit type are populated, the rest stay
// at their zero value.
type PermitTicket struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	UnitID uuid.UUID `json:"unit_id" gorm:"type:uuid;not null;index"`

	Category        string        `json:"category" gorm:"size:20;default:'permit';index"`
	PermitType      string        `json:"permit_type" gorm:"size:30;not null;index"`
	Status          TicketStatus  `json:"status" gorm:"type:varchar(20);default:'open';index"`
	WorkflowStage   WorkflowStage `json:"workflow_stage" gorm:"type:varchar(30);default:'submitted';index"`
	ReferenceNumber string        `json:"reference_number" gorm:"size:30;uniqueIndex"`

	// Applicant section
	ApplicantName  string `json:"applicant_name" gorm:"size:100;not null"`
	ApplicantRole  string `json:"applicant_role" gorm:"size:20;not null"`
	ApplicantNIK   string `json:"applicant_nik" gorm:"column:applicant_nik;size:16;not null"`
	ApplicantPhone string `json:"applicant_phone,omitempty" gorm:"size:20"`

	// Activity section
	ActivityName     string `json:"activity_name,omitempty" gorm:"size:150"`
	ActivityCategory string `json:"activity_category,omitempty" gorm:"size:50"`
	Description      string `json:"description" gorm:"type:text"`
	ActivityDate     string `json:"activity_date,omitempty" gorm:"size:10"`
	StartDate        string `json:"start_date,omitempty" gorm:"size:10"`
	EndDate          string `json:"end_date,omitempty" gorm:"size:10"`
	StartTime        string `json:"start_time,omitempty" gorm:"size:5"`
	EndTime          string `json:"end_time,omitempty" gorm:"size:5"`

	// Work / contractor section
	NumWorkers        *int   `json:"num_workers,omitempty"`
	WorkScope         string `json:"work_scope,omitempty" gorm:"type:text"`
	ContractorCompany string `json:"contractor_company,omitempty" gorm:"size:100"`
	ContractorName    string `json:"contractor_name,omitempty" gorm:"size:100"`
	ContractorPhone   string `json:"contractor_phone,omitempty" gorm:"size:20"`

	// Moving section
	VehicleType   string `json:"vehicle_type,omitempty" gorm:"size:50"`
	MoverCount    string `json:"mover_count,omitempty" gorm:"size:10"`
	MovingCompany string `json:"moving_company,omitempty" gorm:"size:100"`

	// Deposit section
	DepositRequired   *float64 `json:"deposit_required,omitempty" gorm:"type:decimal(15,2)"`
	DepositPaid       *float64 `json:"deposit_paid,omitempty" gorm:"type:decimal(15,2)"`
	DepositAccount    string   `json:"deposit_account,omitempty" gorm:"size:50"`
	DepositProofURL   string   `json:"deposit_proof_url,omitempty" gorm:"size:500"`
	DepositPaymentRef string   `json:"deposit_payment_ref,omitempty" gorm:"size:255"`

	// Documents
	NamedDocuments JSONB          `json:"named_documents" gorm:"type:jsonb"`
	DocumentURLs   pq.StringArray `json:"document_urls" gorm:"type:text[]"`

	// Unit snapshot taken at submission time, never re-derived
	UnitNumber   string `json:"unit_number" gorm:"size:20"`
	Tower        string `json:"tower" gorm:"size:50"`
	PropertyName string `json:"property_name" gorm:"size:100"`

	// Identity snapshot
	UserEmail string `json:"user_email" gorm:"size:255"`
	UserName  string `json:"user_name" gorm:"size:100"`

	// Approval outcome
	RejectionNote string     `json:"rejection_note,omitempty" gorm:"type:text"`
	PermitNumber  string     `json:"permit_number,omitempty" gorm:"size:40"`
	ApprovedBy    string     `json:"approved_by,omitempty" gorm:"size:100"`
	ApprovalDate  *time.Time `json:"approval_date,omitempty"`
	ValidFrom     *time.Time `json:"valid_from,omitempty"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`
	QRCode        string     `json:"qr_code,omitempty" gorm:"size:255"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Unit Unit `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
}

// Terminal reports whether the ticket can no longer move through the workflow.
func (t *PermitTicket) Terminal() bool {
	return t.Status == TicketStatusApproved ||
		t.Status == TicketStatusRejected ||
		t.Status == TicketStatusClosed
}
