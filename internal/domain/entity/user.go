// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus is the admin-controlled gate that decides whether an account
// may act in the marketplace.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsValid checks if the ApprovalStatus is a valid value.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	default:
		return false
	}
}

// User is a trader or LSP account.
type User struct {
	ID             uuid.UUID      `json:"id"`              // The Global Unique Identifier (GUID) for the user.
	Name           string         `json:"name"`            // Contact person name.
	Email          string         `json:"email"`           // Login identifier, unique.
	Phone          string         `json:"phone"`           // Contact phone number.
	CompanyName    string         `json:"company_name"`    // Trading company name, optional for traders.
	PasswordHash   string         `json:"-"`               // bcrypt hash, never serialised.
	Role           Role           `json:"role"`            // trader or lsp.
	ApprovalStatus ApprovalStatus `json:"approval_status"` // Admin approval gate.
	IsActive       bool           `json:"is_active"`       // Admin can deactivate an account at any time.
	LSPProfile     *LSPProfile    `json:"lsp_profile,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CanAccessMarketplace reports whether the account is active and not rejected.
func (u *User) CanAccessMarketplace() bool {
	return u.IsActive && u.ApprovalStatus != ApprovalStatusRejected
}
