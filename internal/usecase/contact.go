package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hearing-care-backend/config"
	"hearing-care-backend/internal/domain"
	"hearing-care-backend/pkg/apperror"
	"hearing-care-backend/pkg/email"
	"hearing-care-backend/pkg/validation"
)

type contactUsecase struct {
	mailer        email.Mailer
	validate      *validator.Validate
	businessInbox string
	clinic        email.ClinicInfo
	now           func() time.Time
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(mailer email.Mailer, validate *validator.Validate, cfg *config.Config) domain.ContactUsecase {
	return &contactUsecase{
		mailer:        mailer,
		validate:      validate,
		businessInbox: cfg.ContactEmailTo,
		clinic: email.ClinicInfo{
			Name:    cfg.ClinicName,
			Phone:   cfg.ClinicPhone,
			Address: cfg.ClinicAddress,
			Website: cfg.ClinicWebsite,
		},
		now: time.Now,
	}
}

// SendContactMessage validates the request and sends the business
// notification followed by the client confirmation. The first failure aborts.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	normalizeContactRequest(req)

	if err := uc.validate.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("contact validation: %w", err)
		}
		return apperror.New(http.StatusBadRequest, validation.FirstMessage(err), err)
	}

	if !uc.mailer.IsConfigured() || uc.businessInbox == "" {
		return domain.ErrMailNotConfigured
	}

	data := email.ContactEmailData{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Subject:          req.Subject,
		Message:          req.Message,
		PreferredContact: req.PreferredContact,
		ReceivedAt:       uc.now(),
		Clinic:           uc.clinic,
	}

	notification, err := email.BusinessNotification(uc.businessInbox, data)
	if err != nil {
		return err
	}
	if err := uc.mailer.Send(ctx, notification); err != nil {
		return fmt.Errorf("failed to send business notification: %w", err)
	}

	confirmation, err := email.ClientConfirmation(ctx, data)
	if err != nil {
		return err
	}
	if err := uc.mailer.Send(ctx, confirmation); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

func normalizeContactRequest(req *domain.ContactRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	req.PreferredContact = strings.ToLower(strings.TrimSpace(req.PreferredContact))
}
