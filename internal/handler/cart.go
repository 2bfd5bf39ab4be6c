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

// CartHandler exposes the operator's in-progress ticket. The cart is keyed
// by the authenticated operator: no cart ID travels over the wire.
type CartHandler struct{ svc service.CartService }

func NewCartHandler(svc service.CartService) *CartHandler { return &CartHandler{svc: svc} }

// Get returns the operator's current cart with computed totals.
func (h *CartHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)
	c.JSON(http.StatusOK, h.svc.Get(operatorID))
}

// AddItem godoc
// @Summary Add a catalog item to the cart (or increment its quantity)
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddItemRequest true "Catalog item"
// @Success 200 {object} dto.CartResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item_id"))
		return
	}

	resp, err := h.svc.AddItem(c.Request.Context(), operatorID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateQuantity applies a signed delta to a line's quantity, clamped at 1.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req dto.UpdateQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item id"))
		return
	}

	resp, err := h.svc.UpdateQuantity(operatorID, itemID, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveItem drops a line from the cart entirely.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item id"))
		return
	}

	resp, err := h.svc.RemoveItem(operatorID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetDiscount sets the ticket-level discount (percent or fixed).
func (h *CartHandler) SetDiscount(c *gin.Context) {
	var req dto.SetDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.SetDiscount(operatorID, req.Value, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetCustomer attaches (or detaches, with null) a customer to the ticket.
func (h *CartHandler) SetCustomer(c *gin.Context) {
	var req dto.SetCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid customer_id"))
			return
		}
		customerID = &id
	}

	resp, err := h.svc.SetCustomer(c.Request.Context(), operatorID, customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetNote attaches a free-text note to the ticket.
func (h *CartHandler) SetNote(c *gin.Context) {
	var req dto.SetNoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.SetNote(operatorID, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Clear empties the operator's cart.
func (h *CartHandler) Clear(c *gin.Context) {
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)
	h.svc.Clear(operatorID)
	c.Status(http.StatusNoContent)
}
