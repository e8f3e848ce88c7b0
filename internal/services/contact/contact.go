// Package contact accepts messages from the contact form.
package contact

import (
	"fmt"

	"smarttag/internal/dto"
	"smarttag/internal/logger"

	"github.com/go-playground/validator/v10"
)

const Acknowledgement = "Thank you for your message! We will contact you soon."

type Notifier interface {
	Success(message string)
}

type Service struct {
	validate *validator.Validate
	notifier Notifier
	logger   *logger.Logger
}

func NewService(notifier Notifier, logger *logger.Logger) *Service {
	return &Service{
		validate: validator.New(),
		notifier: notifier,
		logger:   logger,
	}
}

// Submit validates and records a contact message. Validation failures are
// returned as validator.ValidationErrors.
func (s *Service) Submit(req dto.ContactRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	s.logger.Info("Contact form submitted: name=%q email=%q subject=%q message=%q", req.Name, req.Email, req.Subject, req.Message)
	s.notifier.Success(Acknowledgement)
	return nil
}

// Validate checks any request struct carrying validate tags.
func (s *Service) Validate(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
