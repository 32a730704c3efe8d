package models

import "time"

// Roles a user account can hold.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// User represents a marketplace account.
type User struct {
	ID                  string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name                string     `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email               string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password            string     `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	Role                string     `json:"role" gorm:"type:varchar(16);default:customer" validate:"omitempty,oneof=customer seller admin"`
	IsVerifiedSeller    bool       `json:"isVerifiedSeller"`
	ResetPasswordToken  string     `json:"-" gorm:"type:varchar(64)"` // sha256 hex of the raw reset token
	ResetPasswordExpire *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
