package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/usecase"
)

// EmailHandler handles the allow-list endpoints.
type EmailHandler struct {
	access *usecase.AccessService
	logger *zap.Logger
}

// NewEmailHandler creates a new EmailHandler instance.
func NewEmailHandler(access *usecase.AccessService, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{
		access: access,
		logger: logger,
	}
}

// EmailRequest carries one allow-list entry.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ListEmails handles GET /emails
func (h *EmailHandler) ListEmails(c echo.Context) error {
	emails, err := h.access.ListEmails(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.logger, err, "Failed to fetch allowed emails")
	}
	return c.JSON(http.StatusOK, echo.Map{"allowedEmails": emails})
}

// AddEmail handles POST /emails (administrator only)
func (h *EmailHandler) AddEmail(c echo.Context) error {
	req := new(EmailRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	emails, err := h.access.AddEmail(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, h.logger, err, "Failed to add email")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Email added successfully",
		"allowedEmails": emails,
	})
}

// RemoveEmail handles DELETE /emails (administrator only). Removing the
// administrator's own email is silently skipped.
func (h *EmailHandler) RemoveEmail(c echo.Context) error {
	req := new(EmailRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	emails, err := h.access.RemoveEmail(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, h.logger, err, "Failed to remove email")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Email removed successfully",
		"allowedEmails": emails,
	})
}
