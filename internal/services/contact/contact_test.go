package contact

import (
	"errors"
	"testing"

	"smarttag/internal/dto"
	"smarttag/internal/logger"

	"github.com/go-playground/validator/v10"
)

type fakeNotifier struct{ messages []string }

func (n *fakeNotifier) Success(m string) { n.messages = append(n.messages, m) }

func TestSubmit_Valid(t *testing.T) {
	n := &fakeNotifier{}
	s := NewService(n, logger.Discard())

	err := s.Submit(dto.ContactRequest{Name: "Asha", Email: "asha@example.com", Message: "Toll gate 4 is offline"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(n.messages) != 1 || n.messages[0] != Acknowledgement {
		t.Errorf("Unexpected notifications: %v", n.messages)
	}
}

func TestSubmit_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.ContactRequest
		field string
	}{
		{"missing name", dto.ContactRequest{Email: "a@example.com", Message: "hi"}, "Name"},
		{"bad email", dto.ContactRequest{Name: "A", Email: "not-an-email", Message: "hi"}, "Email"},
		{"missing message", dto.ContactRequest{Name: "A", Email: "a@example.com"}, "Message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &fakeNotifier{}
			s := NewService(n, logger.Discard())

			err := s.Submit(tt.req)
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected validation errors, got %v", err)
			}
			if verrs[0].Field() != tt.field {
				t.Errorf("Expected failing field %s, got %s", tt.field, verrs[0].Field())
			}
			if len(n.messages) != 0 {
				t.Error("No acknowledgement for invalid messages")
			}
		})
	}
}

func TestValidate_VerifyRequest(t *testing.T) {
	s := NewService(&fakeNotifier{}, logger.Discard())

	if err := s.Validate(dto.VerifyRequest{PlateNumber: "DL5CAB1234", VehicleClass: "car"}); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}
	var verrs validator.ValidationErrors
	if err := s.Validate(dto.VerifyRequest{}); !errors.As(err, &verrs) {
		t.Errorf("Expected wrapped validation errors, got %v", err)
	}
}
