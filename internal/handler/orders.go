package handler

import (
	"net/http"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/middleware"
	"tillpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct{ svc service.CheckoutService }

func NewOrderHandler(svc service.CheckoutService) *OrderHandler { return &OrderHandler{svc: svc} }

// Checkout godoc
// @Summary Finalize the cart into a completed order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CheckoutRequest true "Payment"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Checkout(c.Request.Context(), orgID, operatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Refund godoc
// @Summary Refund a completed order, reversing stock and finance effects
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/orders/{id}/refund [post]
func (h *OrderHandler) Refund(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)

	resp, err := h.svc.Refund(c.Request.Context(), orgID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Hold parks the cart as a held ticket with no financial effect.
func (h *OrderHandler) Hold(c *gin.Context) {
	var req dto.HoldRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Hold(c.Request.Context(), orgID, operatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Restore loads a held ticket back into the operator's cart and voids the
// held record so it cannot be restored twice.
func (h *OrderHandler) Restore(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Restore(c.Request.Context(), orgID, operatorID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one order with its line items.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns a paginated, filterable order listing.
func (h *OrderHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query parameters"))
		return
	}
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)

	resp, err := h.svc.List(c.Request.Context(), orgID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListHeld returns every parked ticket awaiting restore.
func (h *OrderHandler) ListHeld(c *gin.Context) {
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)

	resp, err := h.svc.ListHeld(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
