// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	FullName        string     `json:"full_name" gorm:"size:100;not null"`
	Email           string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string     `json:"-" gorm:"size:255;not null"`
	Phone           string     `json:"phone" gorm:"size:20"`
	NIK             string     `json:"nik,omitempty" gorm:"column:nik;size:16"`
	Role            UserRole   `json:"role" gorm:"type:varchar(20);default:'resident'"`
	Status          UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	PointsBalance   int        `json:"points_balance" gorm:"default:0"`
	ProfileData     JSONB      `json:"profile_data" gorm:"type:jsonb"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`

	// Relationships
	Units   []Unit         `json:"units,omitempty" gorm:"foreignKey:OwnerID"`
	Tickets []PermitTicket `json:"tickets,omitempty" gorm:"foreignKey:UserID"`
	Claims  []RewardClaim  `json:"claims,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
