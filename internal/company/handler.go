// File: internal/company/handler.go
package company

import (
	"conectar_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for company handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new company handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("CompanyHandler")}
}

// RegisterRoutes mounts /companies. Every route is admin-only.
func (h *Handler) RegisterRoutes(router gin.IRouter, authMW, adminRoleMW gin.HandlerFunc) {
	companyGroup := router.Group("/companies", authMW, adminRoleMW)
	{
		companyGroup.POST("", h.create)
		companyGroup.GET("", h.list)
		companyGroup.GET("/:id", h.get)
		companyGroup.PATCH("/:id", h.update)
		companyGroup.DELETE("/:id", h.remove)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Create company: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	existing, err := h.service.FindByCNPJ(c.Request.Context(), req.CNPJ)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if existing != nil {
		h.logger.Warn("Rejected company with duplicate CNPJ", zap.String("cnpj", req.CNPJ))
		common.RespondWithError(c, common.ErrCNPJAlreadyExists)
		return
	}

	company, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, ToCompanyResponse(company))
}

func (h *Handler) list(c *gin.Context) {
	var query ListCompaniesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}
	companies, err := h.service.FindAll(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToCompanyResponses(companies))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	company, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToCompanyResponse(company))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	if req.CNPJ != nil {
		existing, err := h.service.FindByCNPJ(c.Request.Context(), *req.CNPJ)
		if err != nil {
			common.RespondWithError(c, err)
			return
		}
		if existing != nil && existing.ID != id {
			h.logger.Warn("Rejected company update to a CNPJ held by another company",
				zap.String("companyID", id.String()), zap.String("cnpj", *req.CNPJ))
			common.RespondWithError(c, common.ErrCNPJAlreadyExists)
			return
		}
	}

	company, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToCompanyResponse(company))
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	company, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToCompanyResponse(company))
}

func parseCompanyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid company ID format."))
		return uuid.Nil, false
	}
	return id, true
}
