package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/config"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	"github.com/jwalitptl/healthapp-api/pkg/auth"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
	"github.com/jwalitptl/healthapp-api/pkg/security"
)

var (
	ErrInvalidCredentials = apperrors.InvalidCredentials()
	ErrEmailTaken         = apperrors.Conflict("email is already registered")
	ErrUsernameTaken      = apperrors.Conflict("username or license number is already registered")
	ErrWeakPassword       = apperrors.BadRequest(fmt.Sprintf("password must be between %d and %d characters", security.MinPasswordLen, security.MaxPasswordLen), nil)
)

type Service struct {
	patients   repository.PatientRepository
	doctors    repository.DoctorRepository
	pharmacies repository.PharmacyRepository
	hasher     security.PasswordHasher
	jwtSvc     auth.JWTService
	admin      config.AdminConfig
	logger     zerolog.Logger
	now        func() time.Time
}

func NewService(
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	pharmacies repository.PharmacyRepository,
	hasher security.PasswordHasher,
	jwtSvc auth.JWTService,
	admin config.AdminConfig,
	logger zerolog.Logger,
) *Service {
	return &Service{
		patients:   patients,
		doctors:    doctors,
		pharmacies: pharmacies,
		hasher:     hasher,
		jwtSvc:     jwtSvc,
		admin:      admin,
		logger:     logger.With().Str("component", "auth").Logger(),
		now:        time.Now,
	}
}

func (s *Service) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	patient := &model.Patient{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		Phone:        req.Phone,
		Address:      req.Address,
		DOB:          req.DOB,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to create patient: %w", err))
	}

	s.logger.Info().Int64("patient_id", int64(patient.ID)).Msg("patient registered")
	return patient, nil
}

// RegisterDoctor creates the account in PENDING; it cannot log in until an admin approves it.
func (s *Service) RegisterDoctor(ctx context.Context, req *model.RegisterDoctorRequest) (*model.Doctor, error) {
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		Name:           strings.TrimSpace(req.Name),
		Email:          normalizeEmail(req.Email),
		Phone:          req.Phone,
		Specialization: strings.TrimSpace(req.Specialization),
		Status:         model.DoctorStatusPending,
		PasswordHash:   hash,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to create doctor: %w", err))
	}

	s.logger.Info().Int64("doctor_id", int64(doctor.ID)).Msg("doctor registered, awaiting approval")
	return doctor, nil
}

func (s *Service) RegisterPharmacy(ctx context.Context, req *model.RegisterPharmacyRequest) (*model.Pharmacy, error) {
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	pharmacy := &model.Pharmacy{
		PharmacyName:  strings.TrimSpace(req.PharmacyName),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		OwnerName:     strings.TrimSpace(req.OwnerName),
		Phone:         req.Phone,
		Email:         normalizeEmail(req.Email),
		Address:       req.Address,
		OpeningHours:  req.OpeningHours,
		ClosingHours:  req.ClosingHours,
		Username:      strings.TrimSpace(req.Username),
		PasswordHash:  hash,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.pharmacies.Create(ctx, pharmacy); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to create pharmacy: %w", err))
	}
	return pharmacy, nil
}

func (s *Service) LoginPatient(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	patient, err := s.patients.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, s.lookupError(err)
	}
	if err := s.hasher.Compare(patient.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(model.RolePatient, int64(patient.ID), patient)
}

// LoginDoctor checks the password before the approval state so the state is only revealed to the account holder.
func (s *Service) LoginDoctor(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	doctor, err := s.doctors.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, s.lookupError(err)
	}
	if err := s.hasher.Compare(doctor.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if doctor.Status != model.DoctorStatusApproved {
		return nil, apperrors.NotApproved(string(doctor.Status))
	}
	return s.issue(model.RoleDoctor, int64(doctor.ID), doctor)
}

func (s *Service) LoginPharmacy(ctx context.Context, req *model.UsernameLoginRequest) (*model.LoginResponse, error) {
	pharmacy, err := s.pharmacies.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, s.lookupError(err)
	}
	if err := s.hasher.Compare(pharmacy.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(model.RolePharmacy, int64(pharmacy.ID), pharmacy)
}

// LoginAdmin checks the single console account held in configuration.
func (s *Service) LoginAdmin(ctx context.Context, req *model.UsernameLoginRequest) (*model.LoginResponse, error) {
	if s.admin.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.admin.Username)) != 1 {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.admin.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(model.RoleAdmin, 0, map[string]string{"username": s.admin.Username})
}

func (s *Service) issue(role model.Role, id int64, profile interface{}) (*model.LoginResponse, error) {
	token, expiresAt, err := s.jwtSvc.GenerateAccessToken(role, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.logger.Info().Str("role", string(role)).Int64("id", id).Msg("login succeeded")
	return &model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      role,
		Profile:   profile,
	}, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) || errors.Is(err, security.ErrPasswordTooLong) {
			return "", ErrWeakPassword
		}
		return "", apperrors.Internal(err)
	}
	return hash, nil
}

func (s *Service) lookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidCredentials
	}
	return apperrors.Internal(err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
