package entity

import (
	"time"

	"github.com/google/uuid"
)

// VerificationStatus tracks the admin review of an LSP's compliance documents.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// IsValid checks if the VerificationStatus is a valid value.
func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusApproved, VerificationStatusRejected:
		return true
	default:
		return false
	}
}

// ComplianceDocuments are the four documents an LSP uploads at registration.
type ComplianceDocuments struct {
	GSTCertificateURL       string `json:"gst_certificate_url"`
	CompanyRegistrationURL  string `json:"company_registration_url"`
	BusinessLicenseURL      string `json:"business_license_url"`
	InsuranceCertificateURL string `json:"insurance_certificate_url"`
}

// LSPProfile is the company identity of a logistics service provider.
type LSPProfile struct {
	ID                 uuid.UUID           `json:"id"`
	UserID             uuid.UUID           `json:"user_id"`
	CompanyName        string              `json:"company_name"`
	RegistrationNumber string              `json:"registration_number"`
	GSTNumber          string              `json:"gst_number"`
	Address            string              `json:"address"`
	ContactPhone       string              `json:"contact_phone"`
	Documents          ComplianceDocuments `json:"documents"`
	IsVerified         bool                `json:"is_verified"`
	VerificationStatus VerificationStatus  `json:"verification_status"`
	VerificationNotes  string              `json:"verification_notes,omitempty"`
	VerifiedAt         *time.Time          `json:"verified_at,omitempty"`
	VerifiedBy         *uuid.UUID          `json:"verified_by,omitempty"`
	User               *User               `json:"user,omitempty"` // Set on admin listings.
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// IsDecided reports whether an admin already approved or rejected the profile.
func (p *LSPProfile) IsDecided() bool {
	return p.VerificationStatus == VerificationStatusApproved || p.VerificationStatus == VerificationStatusRejected
}
