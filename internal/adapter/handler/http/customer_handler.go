package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/domain/model"
	"github.com/flexdb/flexdb-server/internal/usecase"
)

// CustomerHandler handles the customer record endpoints.
type CustomerHandler struct {
	records *usecase.RecordService
	logger  *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler instance.
func NewCustomerHandler(records *usecase.RecordService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		records: records,
		logger:  logger,
	}
}

// DeleteCustomerRequest identifies the record to delete.
type DeleteCustomerRequest struct {
	ID string `json:"id" validate:"required"`
}

// ListCustomers handles GET /customers. An optional "search" query filters
// by substring match across all field values.
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	records, err := h.records.ListCustomers(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return writeServiceError(c, h.logger, err, "Failed to fetch customers")
	}
	return c.JSON(http.StatusOK, records)
}

// CreateCustomer handles POST /customers. The body is a flat attribute map
// keyed by field names.
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	attrs := model.Attributes{}
	if err := c.Bind(&attrs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	delete(attrs, "id")
	delete(attrs, "_id")

	if _, err := h.records.CreateCustomer(c.Request().Context(), attrs); err != nil {
		return writeServiceError(c, h.logger, err, "Failed to add customer")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Customer added successfully"})
}

// UpdateCustomer handles PUT /customers. The body is the record id plus the
// attributes to change.
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	attrs := model.Attributes{}
	if err := c.Bind(&attrs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	id, _ := attrs["id"].(string)
	if id == "" {
		id, _ = attrs["_id"].(string)
	}
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing customer ID"})
	}
	delete(attrs, "id")
	delete(attrs, "_id")

	if err := h.records.UpdateCustomer(c.Request().Context(), id, attrs); err != nil {
		return writeServiceError(c, h.logger, err, "Failed to update customer")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Customer updated successfully"})
}

// DeleteCustomer handles DELETE /customers
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	req := new(DeleteCustomerRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing customer ID"})
	}

	if err := h.records.DeleteCustomer(c.Request().Context(), req.ID); err != nil {
		return writeServiceError(c, h.logger, err, "Failed to delete customer")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Customer deleted successfully"})
}
