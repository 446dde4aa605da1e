package handler

import (
	"net/http"

	"foodback/internal/apperr"
	"foodback/internal/middleware"
	"foodback/internal/model"
	"foodback/internal/service"
	"foodback/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/solicitacoes", middleware.RequireKinds(model.KindNGO))
	{
		requests.POST("/:doacaoId", h.Create)
		requests.GET("/minhas", h.ListMine)
	}
}

// Create claims an available donation for the calling NGO
// @Summary      Request a donation
// @Tags         solicitacoes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        doacaoId  path  string                    true   "Donation ID"
// @Param        payload   body  service.CreateRequestDTO  false  "Optional need details"
// @Success      201  {object}  service.CreateRequestResponse
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/solicitacoes/{doacaoId} [post]
func (h *RequestHandler) Create(c *gin.Context) {
	id, _, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	donationID, err := uuid.Parse(c.Param("doacaoId"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Doação não encontrada."))
		return
	}

	var req service.CreateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		// The need-announcement body is optional
		req = service.CreateRequestDTO{}
	}

	result, err := h.requestService.Create(c.Request.Context(), id, donationID, req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListMine lists the calling NGO's solicitações
// @Summary      List own solicitações
// @Tags         solicitacoes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/solicitacoes/minhas [get]
func (h *RequestHandler) ListMine(c *gin.Context) {
	id, _, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	requests, err := h.requestService.ListMine(c.Request.Context(), id)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}
