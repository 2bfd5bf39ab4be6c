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

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListSellable godoc
// @Summary List the active catalog the register sells from
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SellableItemResponse
// @Router /v1/catalog [get]
func (h *CatalogHandler) ListSellable(c *gin.Context) {
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)

	resp, err := h.svc.ListSellable(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// AdjustStock godoc
// @Summary Apply a signed manual stock adjustment to a product
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param body body dto.AdjustStockRequest true "Signed delta and reason"
// @Success 200 {object} dto.SellableItemResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/catalog/{id}/stock [post]
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product id"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)

	resp, err := h.svc.AdjustStock(c.Request.Context(), orgID, productID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
