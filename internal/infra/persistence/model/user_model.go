package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	Phone          string    `gorm:"type:varchar(50)"`
	CompanyName    string    `gorm:"type:varchar(255)"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(20);not null;index"`
	ApprovalStatus string    `gorm:"type:varchar(20);not null;default:'pending'"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	LSPProfile *LSPProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// LSPProfileModel mirrors the 'lsp_profiles' table. UserID references users.id (UUID).
type LSPProfileModel struct {
	ID                      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID                  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyName             string    `gorm:"type:varchar(255);not null"`
	RegistrationNumber      string    `gorm:"type:varchar(100)"`
	GSTNumber               string    `gorm:"type:varchar(50)"`
	Address                 string    `gorm:"type:text"`
	ContactPhone            string    `gorm:"type:varchar(50)"`
	GSTCertificateURL       string    `gorm:"type:text"`
	CompanyRegistrationURL  string    `gorm:"type:text"`
	BusinessLicenseURL      string    `gorm:"type:text"`
	InsuranceCertificateURL string    `gorm:"type:text"`
	IsVerified              bool      `gorm:"not null;default:false"`
	VerificationStatus      string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	VerificationNotes       string    `gorm:"type:text"`
	VerifiedAt              *time.Time
	VerifiedBy              *uuid.UUID `gorm:"type:uuid"`
	CreatedAt               time.Time
	UpdatedAt               time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (LSPProfileModel) TableName() string {
	return "lsp_profiles"
}
