// File: internal/company/service.go
package company

import (
	"context"
	"errors"
	"strings"

	"conectar_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for company management.
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (*Company, error)
	FindAll(ctx context.Context, query ListCompaniesQuery) ([]Company, error)
	FindOne(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByCNPJ(ctx context.Context, cnpj string) (*Company, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*Company, error)
	Remove(ctx context.Context, id uuid.UUID) (*Company, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new company service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("CompanyService")}
}

// Create persists the company as given. CNPJ uniqueness is checked by the caller;
// the store constraint still rejects a racing duplicate.
func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (*Company, error) {
	company := &Company{
		RazaoSocial:  req.RazaoSocial,
		NomeFantasia: req.NomeFantasia,
		CNPJ:         req.CNPJ,
		Email:        req.Email,
		Telefone:     req.Telefone,
		Endereco:     req.Endereco,
		Cidade:       req.Cidade,
		Estado:       req.Estado,
		Cep:          req.Cep,
		Status:       req.Status,
	}
	if req.ConectaPlus != nil {
		company.ConectaPlus = *req.ConectaPlus
	}

	if err := s.repo.Create(ctx, company); err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Failed to create company", zap.Error(err), zap.String("cnpj", req.CNPJ))
		}
		return nil, err
	}
	s.logger.Info("Company created", zap.String("companyID", company.ID.String()))
	return company, nil
}

// FindAll lists companies. sortBy accepts razaoSocial or createdAt (default);
// order defaults to desc. conectaPlus filters on the literal "true" when present.
func (s *service) FindAll(ctx context.Context, query ListCompaniesQuery) ([]Company, error) {
	filter := Filter{
		Status:     query.Status,
		Search:     query.Search,
		SortColumn: "created_at",
		Descending: !strings.EqualFold(query.Order, "asc"),
	}
	if query.SortBy == "razaoSocial" {
		filter.SortColumn = "razao_social"
	}
	if query.ConectaPlus != nil {
		v := *query.ConectaPlus == "true"
		filter.ConectaPlus = &v
	}

	companies, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list companies", zap.Error(err))
		return nil, err
	}
	return companies, nil
}

func (s *service) FindOne(ctx context.Context, id uuid.UUID) (*Company, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByCNPJ returns (nil, nil) when no company holds the CNPJ.
func (s *service) FindByCNPJ(ctx context.Context, cnpj string) (*Company, error) {
	company, err := s.repo.FindByCNPJ(ctx, cnpj)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return company, nil
}

// Update applies a partial patch. Absence is reported as ErrNotFound; any other
// store failure propagates unchanged.
func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(company)

	if err := s.repo.Update(ctx, company); err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Failed to update company", zap.Error(err), zap.String("companyID", id.String()))
		}
		return nil, err
	}
	s.logger.Info("Company updated", zap.String("companyID", id.String()))
	return company, nil
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) (*Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error("Failed to delete company", zap.Error(err), zap.String("companyID", id.String()))
		}
		return nil, err
	}
	s.logger.Info("Company deleted", zap.String("companyID", id.String()))
	return company, nil
}
