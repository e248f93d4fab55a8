// File: internal/company/repository.go
package company

import (
	"context"
	"errors"
	"strings"

	"conectar_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter is the normalized form of ListCompaniesQuery.
type Filter struct {
	Status      string
	ConectaPlus *bool
	Search      string
	SortColumn  string
	Descending  bool
}

// Repository defines the interface for company data operations.
type Repository interface {
	Create(ctx context.Context, company *Company) error
	FindAll(ctx context.Context, filter Filter) ([]Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByCNPJ(ctx context.Context, cnpj string) (*Company, error)
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM company repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, company *Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *gormRepository) FindAll(ctx context.Context, filter Filter) ([]Company, error) {
	tx := r.db.WithContext(ctx).Model(&Company{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.ConectaPlus != nil {
		tx = tx.Where("conecta_plus = ?", *filter.ConectaPlus)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		tx = tx.Where(
			`razao_social LIKE ? ESCAPE '\' OR nome_fantasia LIKE ? ESCAPE '\' OR cnpj LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}

	column := filter.SortColumn
	if column == "" {
		column = "created_at"
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	var companies []Company
	if err := tx.Order(column + " " + direction).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Empresa não encontrada.")
		}
		return nil, err
	}
	return &company, nil
}

// FindByCNPJ performs an exact lookup. Returns ErrNotFound when absent.
func (r *gormRepository) FindByCNPJ(ctx context.Context, cnpj string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).Where("cnpj = ?", cnpj).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Empresa não encontrada.")
		}
		return nil, err
	}
	return &company, nil
}

// Update writes every column of an existing company. Returns ErrNotFound when
// the row is gone; it never inserts.
func (r *gormRepository) Update(ctx context.Context, company *Company) error {
	res := r.db.WithContext(ctx).Model(company).Select("*").Omit("id", "created_at").Updates(company)
	if res.Error != nil {
		return translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Empresa não encontrada.")
	}
	return nil
}

// Delete hard-deletes a company. Returns ErrNotFound when no row matched.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Company{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Empresa não encontrada.")
	}
	return nil
}

// translateWriteError maps the cnpj unique-constraint violation to a 409.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return common.ErrCNPJAlreadyExists
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
