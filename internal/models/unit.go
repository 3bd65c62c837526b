// internal/models/unit.go
package models

import (
	"github.com/google/uuid"
)

// Unit is a registered residential or commercial unit inside the township.
// Residents register units; management approves or rejects the registration.
// Permit tickets may only be raised against an approved unit.
type Unit struct {
	BaseModel
	OwnerID         uuid.UUID       `json:"owner_id" gorm:"type:uuid;not null;index"`
	UnitNumber      string          `json:"unit_number" gorm:"size:20;not null"`
	Tower           string          `json:"tower" gorm:"size:50"`
	PropertyName    string          `json:"property_name" gorm:"size:100;not null"`
	OwnershipStatus OwnershipStatus `json:"ownership_status" gorm:"type:varchar(20);default:'owner'"`
	Status          UnitStatus      `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	RejectionNote   string          `json:"rejection_note,omitempty" gorm:"type:text"`

	// Relationships
	Owner   User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Tickets []PermitTicket `json:"tickets,omitempty" gorm:"foreignKey:UnitID"`
}
