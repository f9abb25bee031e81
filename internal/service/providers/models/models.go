package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// CreateProviderRequest запрос на создание поставщика
type CreateProviderRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdateContactInfoRequest частичное обновление контактов, обновляются только переданные поля
type UpdateContactInfoRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// ToDomain конвертирует запрос в domain модель
func (r *UpdateContactInfoRequest) ToDomain() domain.ContactInfo {
	return domain.ContactInfo{
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}

// Response модели

// ProviderResponse ответ с данными поставщика
type ProviderResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProviderListResponse ответ со списком поставщиков
type ProviderListResponse struct {
	Providers []ProviderResponse `json:"providers"`
}

// FromDomainProvider конвертирует domain модель в DTO
func FromDomainProvider(p *domain.Provider) *ProviderResponse {
	if p == nil {
		return nil
	}
	return &ProviderResponse{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromDomainProviderList конвертирует список domain моделей в DTO
func FromDomainProviderList(list []*domain.Provider) *ProviderListResponse {
	resp := &ProviderListResponse{Providers: make([]ProviderResponse, 0, len(list))}
	for _, p := range list {
		resp.Providers = append(resp.Providers, *FromDomainProvider(p))
	}
	return resp
}
