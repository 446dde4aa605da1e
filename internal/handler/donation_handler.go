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

type DonationHandler struct {
	donationService service.DonationService
}

func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

func (h *DonationHandler) RegisterRoutes(router *gin.RouterGroup) {
	donations := router.Group("/api/doacoes")
	{
		donations.POST("/", middleware.RequireKinds(model.KindCompany), h.Create)
		donations.GET("/minhas", middleware.RequireKinds(model.KindCompany), h.ListMine)
		donations.PUT("/:id", middleware.RequireKinds(model.KindCompany), h.Update)
		donations.DELETE("/:id", middleware.RequireKinds(model.KindCompany), h.Delete)
		donations.GET("/disponiveis", middleware.RequireKinds(model.KindNGO, model.KindAdmin), h.ListAvailable)
	}
}

// Create posts a new donation
// @Summary      Create a donation
// @Tags         doacoes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateDonationRequest  true  "Donation payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/doacoes/ [post]
func (h *DonationHandler) Create(c *gin.Context) {
	id, _, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	var req service.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	donation, err := h.donationService.Create(c.Request.Context(), id, req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{
		"msg":    "Doação criada com sucesso!",
		"doacao": donation,
	}))
}

// ListMine lists the calling company's donations
// @Summary      List own donations
// @Tags         doacoes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/doacoes/minhas [get]
func (h *DonationHandler) ListMine(c *gin.Context) {
	id, _, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	donations, err := h.donationService.ListMine(c.Request.Context(), id)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, donations))
}

// Update edits an available donation owned by the caller
// @Summary      Update a donation
// @Tags         doacoes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Donation ID"
// @Param        payload  body  service.UpdateDonationRequest  true  "Fields to replace"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/doacoes/{id} [put]
func (h *DonationHandler) Update(c *gin.Context) {
	id, _, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	donationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Doação não encontrada ou acesso negado."))
		return
	}

	var req service.UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	donation, err := h.donationService.Update(c.Request.Context(), id, donationID, req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"msg":    "Doação atualizada com sucesso!",
		"doacao": donation,
	}))
}

// Delete removes an available donation owned by the caller
// @Summary      Delete a donation
// @Tags         doacoes
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Donation ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/doacoes/{id} [delete]
func (h *DonationHandler) Delete(c *gin.Context) {
	id, _, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	donationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Doação não encontrada ou acesso negado."))
		return
	}

	if err := h.donationService.Delete(c.Request.Context(), id, donationID); err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"msg": "Doação deletada com sucesso!"}))
}

// ListAvailable lists available donations for approved NGOs and admins
// @Summary      List available donations
// @Tags         doacoes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/doacoes/disponiveis [get]
func (h *DonationHandler) ListAvailable(c *gin.Context) {
	id, kind, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return
	}

	donations, err := h.donationService.ListAvailable(c.Request.Context(), id, kind)
	if err != nil {
		status := apperr.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, donations))
}
