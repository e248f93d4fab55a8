// File: internal/company/model.go
package company

import (
	"bytes"
	"encoding/json"
	"time"

	"conectar_backend/internal/common"

	"github.com/google/uuid"
)

const (
	StatusActive   = "ativo"
	StatusInactive = "inativo"
)

// Company represents a client company record.
type Company struct {
	common.BaseModel
	RazaoSocial  string  `gorm:"column:razao_social;type:varchar(255);not null;index"`
	NomeFantasia *string `gorm:"column:nome_fantasia;type:varchar(255)"`
	CNPJ         string  `gorm:"column:cnpj;type:varchar(32);uniqueIndex;not null"`
	Email        *string `gorm:"type:varchar(255)"`
	Telefone     *string `gorm:"type:varchar(32)"`
	Endereco     *string `gorm:"type:varchar(255)"`
	Cidade       *string `gorm:"type:varchar(100)"`
	Estado       *string `gorm:"type:varchar(50)"`
	Cep          *string `gorm:"type:varchar(16)"`
	Status       *string `gorm:"type:varchar(16);index"`
	ConectaPlus  bool    `gorm:"column:conecta_plus;not null;default:false"`
}

// TableName specifies the table name for the Company model.
func (Company) TableName() string {
	return "companies"
}

// CreateCompanyRequest is the payload for POST /companies.
type CreateCompanyRequest struct {
	RazaoSocial  string  `json:"razaoSocial" binding:"required,max=255"`
	NomeFantasia *string `json:"nomeFantasia" binding:"omitempty,max=255"`
	CNPJ         string  `json:"cnpj" binding:"required,max=32"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Telefone     *string `json:"telefone" binding:"omitempty,max=32"`
	Endereco     *string `json:"endereco" binding:"omitempty,max=255"`
	Cidade       *string `json:"cidade" binding:"omitempty,max=100"`
	Estado       *string `json:"estado" binding:"omitempty,max=50"`
	Cep          *string `json:"cep" binding:"omitempty,max=16"`
	Status       *string `json:"status" binding:"omitempty,oneof=ativo inativo"`
	ConectaPlus  *bool   `json:"conectaPlus"`
}

// UpdateCompanyRequest is a partial patch. Absent keys are left unchanged; an
// explicit null clears an optional column.
type UpdateCompanyRequest struct {
	RazaoSocial  *string `json:"razaoSocial" binding:"omitempty,min=1,max=255"`
	NomeFantasia *string `json:"nomeFantasia" binding:"omitempty,max=255"`
	CNPJ         *string `json:"cnpj" binding:"omitempty,min=1,max=32"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Telefone     *string `json:"telefone" binding:"omitempty,max=32"`
	Endereco     *string `json:"endereco" binding:"omitempty,max=255"`
	Cidade       *string `json:"cidade" binding:"omitempty,max=100"`
	Estado       *string `json:"estado" binding:"omitempty,max=50"`
	Cep          *string `json:"cep" binding:"omitempty,max=16"`
	Status       *string `json:"status" binding:"omitempty,oneof=ativo inativo"`
	ConectaPlus  *bool   `json:"conectaPlus"`

	nulls map[string]bool
}

// UnmarshalJSON decodes the patch and records which keys were sent as null.
func (r *UpdateCompanyRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateCompanyRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = UpdateCompanyRequest(p)
	for key, value := range raw {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			if r.nulls == nil {
				r.nulls = make(map[string]bool)
			}
			r.nulls[key] = true
		}
	}
	return nil
}

// ListCompaniesQuery holds the raw GET /companies filters. ConectaPlus is nil
// when the key is absent from the query string.
type ListCompaniesQuery struct {
	Status      string  `form:"status"`
	ConectaPlus *string `form:"conectaPlus"`
	Search      string  `form:"search"`
	SortBy      string  `form:"sortBy"`
	Order       string  `form:"order"`
}

// CompanyResponse defines the structure for company data sent in API responses.
type CompanyResponse struct {
	ID           uuid.UUID `json:"id"`
	RazaoSocial  string    `json:"razaoSocial"`
	NomeFantasia *string   `json:"nomeFantasia"`
	CNPJ         string    `json:"cnpj"`
	Email        *string   `json:"email"`
	Telefone     *string   `json:"telefone"`
	Endereco     *string   `json:"endereco"`
	Cidade       *string   `json:"cidade"`
	Estado       *string   `json:"estado"`
	Cep          *string   `json:"cep"`
	Status       *string   `json:"status"`
	ConectaPlus  bool      `json:"conectaPlus"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToCompanyResponse converts a Company model to a CompanyResponse DTO.
func ToCompanyResponse(c *Company) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		RazaoSocial:  c.RazaoSocial,
		NomeFantasia: c.NomeFantasia,
		CNPJ:         c.CNPJ,
		Email:        c.Email,
		Telefone:     c.Telefone,
		Endereco:     c.Endereco,
		Cidade:       c.Cidade,
		Estado:       c.Estado,
		Cep:          c.Cep,
		Status:       c.Status,
		ConectaPlus:  c.ConectaPlus,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ToCompanyResponses(companies []Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, ToCompanyResponse(&companies[i]))
	}
	return out
}

// Apply copies the patch onto c. razaoSocial, cnpj and conectaPlus are
// required columns, so a null for them is ignored.
func (r UpdateCompanyRequest) Apply(c *Company) {
	if r.RazaoSocial != nil {
		c.RazaoSocial = *r.RazaoSocial
	}
	if r.CNPJ != nil {
		c.CNPJ = *r.CNPJ
	}
	if r.ConectaPlus != nil {
		c.ConectaPlus = *r.ConectaPlus
	}
	r.applyOptional(&c.NomeFantasia, r.NomeFantasia, "nomeFantasia")
	r.applyOptional(&c.Email, r.Email, "email")
	r.applyOptional(&c.Telefone, r.Telefone, "telefone")
	r.applyOptional(&c.Endereco, r.Endereco, "endereco")
	r.applyOptional(&c.Cidade, r.Cidade, "cidade")
	r.applyOptional(&c.Estado, r.Estado, "estado")
	r.applyOptional(&c.Cep, r.Cep, "cep")
	r.applyOptional(&c.Status, r.Status, "status")
}

func (r UpdateCompanyRequest) applyOptional(dst **string, value *string, key string) {
	switch {
	case value != nil:
		*dst = value
	case r.nulls[key]:
		*dst = nil
	}
}
