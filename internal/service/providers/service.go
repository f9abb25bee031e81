package providers

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ScheduleService/internal/service/providers/models"
)

// Service сервис для работы с поставщиками
type Service struct {
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса поставщиков
func NewService(providerRepo ProviderRepository, logger Logger) *Service {
	return &Service{
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// Create регистрирует нового поставщика
func (s *Service) Create(ctx context.Context, req *models.CreateProviderRequest) (*models.ProviderResponse, error) {
	s.logger.Info("CreateProvider: name=%q email=%q", req.Name, req.Email)

	p := &domain.Provider{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
	}

	if err := validateProvider(p.Name, p.Email, p.PhoneNumber); err != nil {
		s.logger.Warn("CreateProvider: validation failed: %v", err)
		return nil, err
	}

	created, err := s.providerRepo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, providerRepo.ErrEmailTaken) {
			s.logger.Warn("CreateProvider: email %q already taken", p.Email)
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("CreateProvider: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateProvider: created provider id=%d", created.ID)
	return models.FromDomainProvider(created), nil
}

// GetByID получает поставщика по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProviderResponse, error) {
	p, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("GetProvider: provider id=%d not found", id)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("GetProvider: repository error for provider id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProvider(p), nil
}

// List возвращает всех поставщиков
func (s *Service) List(ctx context.Context) (*models.ProviderListResponse, error) {
	list, err := s.providerRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListProviders: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListProviders: fetched %d providers", len(list))
	return models.FromDomainProviderList(list), nil
}

// UpdateContactInfo обновляет имя, email и телефон поставщика
func (s *Service) UpdateContactInfo(ctx context.Context, id int64, req *models.UpdateContactInfoRequest) (*models.ProviderResponse, error) {
	s.logger.Info("UpdateContactInfo: provider id=%d", id)

	info := req.ToDomain()
	if info.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if err := validateContactInfo(info); err != nil {
		s.logger.Warn("UpdateContactInfo: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.providerRepo.UpdateContactInfo(ctx, id, info)
	if err != nil {
		switch {
		case errors.Is(err, providerRepo.ErrProviderNotFound):
			s.logger.Warn("UpdateContactInfo: provider id=%d not found", id)
			return nil, ErrProviderNotFound
		case errors.Is(err, providerRepo.ErrEmailTaken):
			s.logger.Warn("UpdateContactInfo: email already taken for provider id=%d", id)
			return nil, ErrDuplicateEmail
		default:
			s.logger.Error("UpdateContactInfo: repository error for provider id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateContactInfo - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateContactInfo: provider id=%d updated", id)
	return models.FromDomainProvider(updated), nil
}

func validateProvider(name, email, phone string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone number is too long", ErrInvalidInput)
	}
	return nil
}

func validateContactInfo(info domain.ContactInfo) error {
	if info.Name != nil && (strings.TrimSpace(*info.Name) == "" || len(*info.Name) > domain.MaxNameLength) {
		return fmt.Errorf("%w: invalid name", ErrInvalidInput)
	}
	if info.Email != nil {
		if err := validateEmail(*info.Email); err != nil {
			return err
		}
	}
	if info.PhoneNumber != nil && len(*info.PhoneNumber) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone number is too long", ErrInvalidInput)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
	}
	return nil
}
