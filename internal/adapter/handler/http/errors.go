package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/flexdb/flexdb-server/internal/domain/errors"
	pkgErrors "github.com/flexdb/flexdb-server/pkg/errors"
)

// writeServiceError maps service-layer errors to the wire format. Validation
// and not-found failures carry their own message; everything else is a
// storage-level failure surfaced generically with the given fallback text.
func writeServiceError(c echo.Context, logger *zap.Logger, err error, fallback string) error {
	switch {
	case domainErrors.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case pkgErrors.Is(err, domainErrors.ErrFieldNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Field not found"})
	case pkgErrors.Is(err, domainErrors.ErrCustomerNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Customer not found"})
	case pkgErrors.Is(err, domainErrors.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	default:
		pkgErrors.LogError(logger, err, fallback,
			zap.String("path", c.Request().URL.Path))
		// The status comes from the error's code; the message stays the
		// generic fallback so driver detail never reaches the client.
		return c.JSON(pkgErrors.ToHTTPError(err).Code, echo.Map{"error": fallback})
	}
}
