package http

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/domain/model"
	"github.com/flexdb/flexdb-server/internal/usecase"
)

// FieldHandler handles the field registry endpoints.
type FieldHandler struct {
	schema *usecase.SchemaService
	logger *zap.Logger
}

// NewFieldHandler creates a new FieldHandler instance.
func NewFieldHandler(schema *usecase.SchemaService, logger *zap.Logger) *FieldHandler {
	return &FieldHandler{
		schema: schema,
		logger: logger,
	}
}

// CreateFieldRequest represents the HTTP request for creating a field.
// Name may be omitted; the server then generates a unique one.
type CreateFieldRequest struct {
	Name    string   `json:"name"`
	Label   string   `json:"label" validate:"required"`
	Type    string   `json:"type" validate:"required"`
	Options []string `json:"options"`
}

// UpdateFieldRequest represents a partial field update. Absent members keep
// their stored value.
type UpdateFieldRequest struct {
	ID      string    `json:"id" validate:"required"`
	Name    *string   `json:"name"`
	Label   *string   `json:"label"`
	Type    *string   `json:"type"`
	Options *[]string `json:"options"`
	Order   *int      `json:"order"`
}

// DeleteFieldRequest identifies the field to delete. The name is echoed by
// clients for the attribute cascade but the id is authoritative.
type DeleteFieldRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// reorderedField is one entry of the reorder payload: the full field
// document as the client holds it, of which only id and order matter.
type reorderedField struct {
	ID    string `json:"_id" validate:"required"`
	Order int    `json:"order"`
}

// ListFields handles GET /fields
func (h *FieldHandler) ListFields(c echo.Context) error {
	fields, err := h.schema.ListFields(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.logger, err, "Failed to fetch fields")
	}
	return c.JSON(http.StatusOK, fields)
}

// CreateField handles POST /fields
func (h *FieldHandler) CreateField(c echo.Context) error {
	req := new(CreateFieldRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	input := usecase.CreateFieldInput{
		Name:    req.Name,
		Label:   req.Label,
		Type:    model.FieldType(req.Type),
		Options: req.Options,
	}

	if _, err := h.schema.CreateField(c.Request().Context(), input); err != nil {
		return writeServiceError(c, h.logger, err, "Failed to add field")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Field added successfully"})
}

// UpdateField handles PUT /fields
func (h *FieldHandler) UpdateField(c echo.Context) error {
	req := new(UpdateFieldRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	patch := model.FieldPatch{
		Name:    req.Name,
		Label:   req.Label,
		Options: req.Options,
		Order:   req.Order,
	}
	if req.Type != nil {
		fieldType := model.FieldType(*req.Type)
		patch.Type = &fieldType
	}

	if _, err := h.schema.UpdateField(c.Request().Context(), req.ID, patch); err != nil {
		return writeServiceError(c, h.logger, err, "Failed to update field")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Field updated successfully"})
}

// DeleteField handles DELETE /fields
func (h *FieldHandler) DeleteField(c echo.Context) error {
	req := new(DeleteFieldRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing field ID"})
	}

	if err := h.schema.DeleteField(c.Request().Context(), req.ID); err != nil {
		return writeServiceError(c, h.logger, err, "Failed to delete field")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Field deleted successfully"})
}

// ReorderFields handles POST /fields/reorder
func (h *FieldHandler) ReorderFields(c echo.Context) error {
	var payload []reorderedField
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	// Clients send the list in its new visual order but each entry also
	// carries its target rank; sort on it so either convention works.
	sort.SliceStable(payload, func(i, j int) bool {
		return payload[i].Order < payload[j].Order
	})

	orderedIDs := make([]string, 0, len(payload))
	for _, entry := range payload {
		orderedIDs = append(orderedIDs, entry.ID)
	}

	fields, err := h.schema.ReorderFields(c.Request().Context(), orderedIDs)
	if err != nil {
		return writeServiceError(c, h.logger, err, "Failed to reorder fields")
	}

	return c.JSON(http.StatusOK, fields)
}
