// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleResident UserRole = "resident"
	UserRoleAdmin    UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type UnitStatus string

const (
	UnitStatusPending  UnitStatus = "pending"
	UnitStatusApproved UnitStatus = "approved"
	UnitStatusRejected UnitStatus = "rejected"
)

type OwnershipStatus string

const (
	OwnershipOwner  OwnershipStatus = "owner"
	OwnershipTenant OwnershipStatus = "tenant"
	OwnershipFamily OwnershipStatus = "family"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusApproved   TicketStatus = "approved"
	TicketStatusRejected   TicketStatus = "rejected"
	TicketStatusClosed     TicketStatus = "closed"
)

type WorkflowStage string

const (
	StageSubmitted        WorkflowStage = "submitted"
	StageDocumentCheck    WorkflowStage = "document_check"
	StageManagementReview WorkflowStage = "management_review"
	StageFinalApproval    WorkflowStage = "final_approval"
	StageCompleted        WorkflowStage = "completed"
)

type ClaimStatus string

const (
	ClaimStatusUnused    ClaimStatus = "unused"
	ClaimStatusUsed      ClaimStatus = "used"
	ClaimStatusExpired   ClaimStatus = "expired"
	ClaimStatusCancelled ClaimStatus = "cancelled"
)

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusReserved  PropertyStatus = "reserved"
	PropertyStatusSold      PropertyStatus = "sold"
)
