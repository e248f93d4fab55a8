// File: internal/user/handler.go
package user

import (
	"conectar_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("UserHandler"),
	}
}

// RegisterRoutes mounts /users. Every route requires authentication; listing,
// creation, deletion and the inactive report are admin-only. Single-user reads
// and updates are checked against the caller in the handler.
func (h *Handler) RegisterRoutes(router gin.IRouter, authMW, adminRoleMW gin.HandlerFunc) {
	userGroup := router.Group("/users", authMW)
	{
		userGroup.POST("", adminRoleMW, h.create)
		userGroup.GET("", adminRoleMW, h.list)
		userGroup.GET("/inactive", adminRoleMW, h.listInactive)

		userGroup.GET("/profile", h.getProfile)
		userGroup.PATCH("/profile", h.updateProfile)

		userGroup.GET("/:id", h.getUser)
		userGroup.PATCH("/:id", h.updateUser)
		userGroup.DELETE("/:id", adminRoleMW, h.deleteUser)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Create user: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}
	usr, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, ToUserResponse(usr))
}

func (h *Handler) list(c *gin.Context) {
	var query ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}
	users, err := h.service.FindAll(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToUserResponses(users))
}

func (h *Handler) listInactive(c *gin.Context) {
	users, err := h.service.FindInactiveUsers(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToUserResponses(users))
}

func (h *Handler) getProfile(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	usr, err := h.service.FindOne(c.Request.Context(), principal.ID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToUserResponse(usr))
}

func (h *Handler) updateProfile(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}
	usr, err := h.service.Update(c.Request.Context(), principal.ID, req.ToUpdateUserRequest())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToUserResponse(usr))
}

func (h *Handler) getUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}
	if !principal.CanAccess(targetID) {
		h.logger.Warn("User attempting to fetch another user's profile without admin rights",
			zap.String("requestingUserID", principal.ID.String()),
			zap.String("targetUserID", targetID.String()))
		common.RespondWithError(c, common.ErrForbidden.WithDetails("Você só pode acessar seu próprio perfil."))
		return
	}
	usr, err := h.service.FindOne(c.Request.Context(), targetID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToUserResponse(usr))
}

func (h *Handler) updateUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}
	if !principal.CanAccess(targetID) {
		h.logger.Warn("User attempting to update another user's profile without admin rights",
			zap.String("requestingUserID", principal.ID.String()),
			zap.String("targetUserID", targetID.String()))
		common.RespondWithError(c, common.ErrForbidden.WithDetails("Você só pode atualizar seu próprio perfil."))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}
	if req.Role != nil && !principal.IsAdmin() {
		h.logger.Warn("Non-admin attempted to change a role", zap.String("requestingUserID", principal.ID.String()))
		common.RespondWithError(c, common.ErrForbidden.WithDetails("Apenas administradores podem alterar roles."))
		return
	}

	usr, err := h.service.Update(c.Request.Context(), targetID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToUserResponse(usr))
}

func (h *Handler) deleteUser(c *gin.Context) {
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}
	usr, err := h.service.Remove(c.Request.Context(), targetID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, ToUserResponse(usr))
}

func (h *Handler) principal(c *gin.Context) (common.Principal, bool) {
	principal, ok := common.GetPrincipalFromContext(c)
	if !ok {
		h.logger.Error("Principal missing from context", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrUnauthorized)
		return common.Principal{}, false
	}
	return principal, true
}

func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return uuid.Nil, false
	}
	return id, true
}
