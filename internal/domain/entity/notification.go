// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies what caused a notification.
type NotificationType string

const (
	NotificationBookingCreated    NotificationType = "booking_created"
	NotificationBookingApproved   NotificationType = "booking_approved"
	NotificationBookingRejected   NotificationType = "booking_rejected"
	NotificationBookingClosed     NotificationType = "booking_closed"
	NotificationBookingCancelled  NotificationType = "booking_cancelled"
	NotificationShipmentCreated   NotificationType = "shipment_created"
	NotificationShipmentUpdated   NotificationType = "shipment_updated"
	NotificationContainerApproved NotificationType = "container_approved"
	NotificationContainerRejected NotificationType = "container_rejected"
	NotificationLSPVerified       NotificationType = "lsp_verified"
	NotificationLSPRejected       NotificationType = "lsp_rejected"
	NotificationComplaintUpdated  NotificationType = "complaint_updated"
)

// Notification is a message row addressed to one user.
type Notification struct {
	ID        uuid.UUID        `json:"id"`         // The Global Unique Identifier (GUID) for the notification.
	UserID    uuid.UUID        `json:"user_id"`    // Recipient.
	Type      NotificationType `json:"type"`       // What caused it.
	Title     string           `json:"title"`      // Short headline.
	Message   string           `json:"message"`    // Body text.
	RelatedID *uuid.UUID       `json:"related_id"` // Booking, container, shipment or complaint the message is about.
	IsRead    bool             `json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
