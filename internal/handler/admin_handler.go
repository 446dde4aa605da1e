package handler

import (
	"net/http"

	"foodback/internal/apperr"
	"foodback/internal/middleware"
	"foodback/internal/model"
	"foodback/internal/service"
	"foodback/pkg/pagination"
	"foodback/pkg/response"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	approvalService   service.ApprovalService
	statisticsService service.StatisticsService
}

func NewAdminHandler(approvalService service.ApprovalService, statisticsService service.StatisticsService) *AdminHandler {
	return &AdminHandler{approvalService: approvalService, statisticsService: statisticsService}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/api/admin", middleware.RequireKinds(model.KindAdmin))
	{
		admin.POST("/approve", h.ApproveUser)
		admin.GET("/pendentes", h.ListPending)
		admin.GET("/estatisticas", h.GetStatistics)
	}
}

// ApproveUser flips the approval flag of an empresa or ONG
// @Summary      Approve a registration
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.ApproveUserRequest  true  "Target principal"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/admin/approve [post]
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	_, kind, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	var req service.ApproveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "user_id e user_type são obrigatórios."))
		return
	}

	msg, err := h.approvalService.ApproveUser(c.Request.Context(), kind, req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"msg": msg}))
}

// ListPending returns unapproved registrations of both kinds
// @Summary      List pending registrations
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        page   query  int  false  "Page number (default: 1)"
// @Param        limit  query  int  false  "Items per page (default: 20)"
// @Success      200  {object}  response.PaginatedResponse
// @Router       /api/admin/pendentes [get]
func (h *AdminHandler) ListPending(c *gin.Context) {
	_, kind, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	params := pagination.Parse(c)
	pending, err := h.approvalService.ListPending(c.Request.Context(), kind, params.Page, params.Limit)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	total := pending.TotalEmpresas + pending.TotalOngs
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, pending, params.Page, params.Limit, total))
}

// GetStatistics returns dashboard numbers for the admin
// @Summary      Platform statistics
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/admin/estatisticas [get]
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	_, kind, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	stats, err := h.statisticsService.GetDashboard(c.Request.Context(), kind)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
