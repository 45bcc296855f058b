package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	mw "github.com/adfinis/poweradmin-api/internal/api/middleware"
	"github.com/adfinis/poweradmin-api/internal/api/request"
	"github.com/adfinis/poweradmin-api/internal/api/response"
	"github.com/adfinis/poweradmin-api/internal/core"
)

// requireUser returns the acting user from the request context. It writes a
// 401 and returns false when the route was reached without authentication.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	uid := mw.GetUserID(r.Context())
	if uid <= 0 {
		response.WriteError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return uid, true
}

// writeBadRequest answers a request decoding or validation failure.
func writeBadRequest(w http.ResponseWriter, err error) {
	response.WriteFieldError(w, request.InvalidField(err), err.Error())
}

// writeServiceError maps err to a response and logs what the client cannot
// fix: permission denials at warn, unexpected errors at error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, domain string) {
	logger := zerolog.Ctx(r.Context())
	if errors.Is(err, core.ErrPermissionDenied) {
		logger.Warn().Str("domain", domain).Msg("permission denied")
	}
	if response.WriteServiceError(w, err) {
		logger.Error().Err(err).Str("domain", domain).Msg("request failed")
	}
}
