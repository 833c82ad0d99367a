package domain

import (
	"context"
	"errors"
)

// ErrMailNotConfigured is returned when the mail transport has no credentials.
var ErrMailNotConfigured = errors.New("email service is not configured")

// Preferred contact channels accepted by the contact form.
const (
	PreferredContactEmail    = "email"
	PreferredContactPhone    = "phone"
	PreferredContactWhatsApp = "whatsapp"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=100,valid_name"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Phone            string `json:"phone" validate:"required,valid_phone"`
	Subject          string `json:"subject" validate:"required,min=3,max=150"`
	Message          string `json:"message" validate:"required,min=10,max=2000,no_emoji"`
	PreferredContact string `json:"preferredContact" validate:"required,oneof=email phone whatsapp"`
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the submission, notifies the clinic and
	// sends a confirmation to the submitter, in that order.
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
