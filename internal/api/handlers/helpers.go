package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils/response"
)

// shopper returns the authenticated claims and a logger tagged with the
// user. It writes a 401 and reports false when the request carries none.
func shopper(w http.ResponseWriter, r *http.Request, action string) (*models.Claims, *slog.Logger, bool) {
	logger := middleware.LoggerFromContext(r.Context())

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized attempt: missing user claims", slog.String("action", action))
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, logger, false
	}

	return claims, logger.With(slog.String("userID", claims.UserID.String())), true
}
