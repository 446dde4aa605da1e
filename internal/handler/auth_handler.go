package handler

import (
	"fmt"
	"net/http"

	"foodback/internal/apperr"
	"foodback/internal/middleware"
	"foodback/internal/service"
	"foodback/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
	router.GET("/api/protected", middleware.RequireKinds(), h.Protected)
}

// principalFromContext reads the identity the auth middleware injected
func principalFromContext(c *gin.Context) (uuid.UUID, string, bool) {
	rawID, _ := c.Get(middleware.CtxPrincipalID)
	rawKind, _ := c.Get(middleware.CtxPrincipalKind)

	idStr, _ := rawID.(string)
	kind, _ := rawKind.(string)

	id, err := uuid.Parse(idStr)
	if err != nil || kind == "" {
		return uuid.Nil, "", false
	}
	return id, kind, true
}

// Register creates a Company or NGO account pending admin approval
// @Summary      Register an empresa or ONG
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.RegisterRequest  true  "Registration payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Dados obrigatórios (nome, email, senha, tipo) faltando ou inválidos: "+err.Error()))
		return
	}

	msg, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{"msg": msg}))
}

// Login authenticates any principal kind and returns an access token
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.LoginRequest  true  "Credentials"
// @Success      200  {object}  service.LoginResponse
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Email e senha são obrigatórios."))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, token)
}

// Protected echoes the authenticated principal, mainly for smoke tests
// @Summary      Echo the authenticated principal
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/protected [get]
func (h *AuthHandler) Protected(c *gin.Context) {
	id, kind, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"msg": fmt.Sprintf("Acesso garantido para o usuário ID: %s, Tipo: %s", id, kind),
	}))
}
