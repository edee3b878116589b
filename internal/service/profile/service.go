package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AnsarMahir/doc4all-dashboard/internal/auth"
	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
	"github.com/AnsarMahir/doc4all-dashboard/pkg/clients/doc4all"
)

// ValidationError carries field-level messages for a rejected submission.
// Nothing is submitted upstream while any field is invalid.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile validation failed: %d invalid fields", len(e.Fields))
}

// Service drives the doctor and dispensary profile-completion flows.
type Service struct {
	api      doc4all.Client
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService wires a profile service instance.
func NewService(api doc4all.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		api:      api,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// DoctorStatus checks whether the doctor completed their profile.
func (s *Service) DoctorStatus(ctx context.Context, ident auth.Identity) (models.ProfileStatus, error) {
	return s.api.DoctorProfileStatus(ctx, ident.Token)
}

// DispensaryStatus checks whether the dispensary completed its profile.
func (s *Service) DispensaryStatus(ctx context.Context, ident auth.Identity) (models.ProfileStatus, error) {
	return s.api.DispensaryProfileStatus(ctx, ident.Token, ident.Email)
}

// CompleteDoctor validates and submits the doctor's profile. Specialities
// travel upstream as a single comma-joined string.
func (s *Service) CompleteDoctor(ctx context.Context, ident auth.Identity, sub models.DoctorProfileSubmission) error {
	if err := s.validate.Struct(sub); err != nil {
		return asValidationError(err, doctorFieldMessages)
	}

	payload := models.DoctorProfilePayload{
		Education:    sub.Education,
		Experience:   sub.Experience,
		DoctorType:   sub.DoctorType,
		Specialities: strings.Join(sub.Specialities, ","),
	}

	if err := s.api.CompleteDoctorProfile(ctx, ident.Token, payload); err != nil {
		return fmt.Errorf("submit doctor profile: %w", err)
	}

	s.logger.Info("doctor profile completed", zap.String("user_id", ident.UserID))
	return nil
}

// CompleteDispensary validates and submits the dispensary's profile.
func (s *Service) CompleteDispensary(ctx context.Context, ident auth.Identity, sub models.DispensaryProfileSubmission) error {
	if err := s.validate.Struct(sub); err != nil {
		return asValidationError(err, dispensaryFieldMessages)
	}

	if err := s.api.CompleteDispensaryProfile(ctx, ident.Token, sub); err != nil {
		return fmt.Errorf("submit dispensary profile: %w", err)
	}

	s.logger.Info("dispensary profile completed", zap.String("user_id", ident.UserID))
	return nil
}

var doctorFieldMessages = map[string]string{
	"Education":    "Education is required",
	"Experience":   "Experience is required",
	"DoctorType":   "Doctor type must be GENERAL, SPECIALIST or CONSULTANT",
	"Specialities": "At least one speciality is required",
}

var dispensaryFieldMessages = map[string]string{
	"Name":          "Name is required",
	"Address":       "Address is required",
	"Latitude":      "Location coordinates are required",
	"Longitude":     "Location coordinates are required",
	"ContactNumber": "Contact number is required",
	"Type":          "Dispensary type is required",
}

func asValidationError(err error, messages map[string]string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.StructField()
		msg, ok := messages[name]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", name)
		}
		fields[jsonFieldName(name)] = msg
	}

	return &ValidationError{Fields: fields}
}

// jsonFieldName lower-cases the first rune so error keys line up with the
// JSON field names the browser sent.
func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}
