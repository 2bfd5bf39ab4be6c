package handler

import (
	"net/http"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/middleware"
	"tillpos/internal/model"
	"tillpos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler serves the read-only customer directory used to attach
// customers to tickets. No service layer: the directory has no business
// rules beyond the org scope.
type CustomerHandler struct{ repo repository.CustomerRepository }

func NewCustomerHandler(repo repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

// List returns the active customers of the operator's organization.
func (h *CustomerHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	orgID, _ := uuid.Parse(claims.OrganizationID)

	customers, err := h.repo.List(c.Request.Context(), orgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("internal error"))
		return
	}

	resp := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		resp = append(resp, customerToResponse(cust))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Get returns one customer by ID.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid customer id"))
		return
	}
	cust, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("customer not found"))
		return
	}
	c.JSON(http.StatusOK, customerToResponse(*cust))
}

func customerToResponse(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:    c.ID.String(),
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}
