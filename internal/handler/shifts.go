package handler

import (
	"net/http"
	"strconv"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/middleware"
	"tillpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShiftHandler struct{ svc service.ShiftService }

func NewShiftHandler(svc service.ShiftService) *ShiftHandler { return &ShiftHandler{svc: svc} }

// Open godoc
// @Summary Open a cash-drawer shift with a counted float
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenShiftRequest true "Opening float"
// @Success 201 {object} dto.ShiftResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts/open [post]
func (h *ShiftHandler) Open(c *gin.Context) {
	var req dto.OpenShiftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Open(c.Request.Context(), orgID, operatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Close the open shift with a counted end amount and freeze the Z-report
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CloseShiftRequest true "Counted drawer amount"
// @Success 200 {object} dto.ShiftResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/shifts/close [post]
func (h *ShiftHandler) Close(c *gin.Context) {
	var req dto.CloseShiftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)

	resp, err := h.svc.Close(c.Request.Context(), orgID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Active returns the currently open shift for the operator's organization.
func (h *ShiftHandler) Active(c *gin.Context) {
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)

	resp, err := h.svc.Active(c.Request.Context(), orgID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("no open shift"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History returns a paginated list of closed shifts with their summaries.
func (h *ShiftHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)

	resp, err := h.svc.History(c.Request.Context(), orgID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
