// Package contact sends the storefront's enquiry forms: the custom design request and the
// phone-only order enquiry placed from the cart.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/logger"
	"hridhayam-client/internal/session"

	"go.uber.org/zap"
)

var (
	ErrNameRequired        = errors.New("first and last name are required")
	ErrEmailRequired       = errors.New("email is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidPhone        = errors.New("please enter a valid 10-digit phone number")
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// DesignRequest is the custom design form. Phone is optional; Attachment is an optional local
// reference image.
type DesignRequest struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Description string
	Attachment  string
}

func (r DesignRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, ErrDescriptionRequired)
	}
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		errs = append(errs, ErrInvalidPhone)
	}
	return errors.Join(errs...)
}

type Service interface {
	SubmitDesign(ctx context.Context, req DesignRequest) error
	RequestCallback(ctx context.Context, sess *session.Session, phone string) error
}

type service struct {
	backend api.Backend
	now     func() time.Time
}

func NewService(backend api.Backend) Service {
	return &service{backend: backend, now: time.Now}
}

func (s *service) SubmitDesign(ctx context.Context, req DesignRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	fields := map[string]string{
		"firstName":   strings.TrimSpace(req.FirstName),
		"lastName":    strings.TrimSpace(req.LastName),
		"phoneNumber": req.Phone,
		"email":       strings.TrimSpace(req.Email),
		"description": strings.TrimSpace(req.Description),
	}

	if err := s.backend.Multipart(ctx, http.MethodPost, "/contact/designForm", fields, "files", req.Attachment, nil); err != nil {
		logger.FromCtx(ctx).Error("failed to send design request",
			zap.String("email", fields["email"]),
			zap.Error(err),
		)
		return fmt.Errorf("send design request: %w", err)
	}
	return nil
}

// RequestCallback asks the shop to call the customer back about the items in their cart.
func (s *service) RequestCallback(ctx context.Context, sess *session.Session, phone string) error {
	if err := sess.Require(s.now()); err != nil {
		return err
	}
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}

	body := map[string]string{"userId": sess.UserID, "phoneNumber": phone}
	if err := s.backend.Post(ctx, "/contact/checkout", body, nil); err != nil {
		logger.FromCtx(ctx).Error("failed to place order enquiry",
			zap.String("user_id", sess.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("place order enquiry: %w", err)
	}
	return nil
}
