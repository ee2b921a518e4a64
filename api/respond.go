package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/inkwell-app/inkwell-backend/errs"
)

// Responder turns one handler outcome into exactly one HTTP response. All
// error writes funnel through WriteError so a second write is structurally
// impossible at the handler level.
type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// errorBody matches the error shape every JSON endpoint emits. errCode is
// the HTTP status for internal failures and the provider's symbolic code
// for identity-provider failures.
type errorBody struct {
	ErrCode any    `json:"errCode"`
	Message string `json:"message"`
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	// Identity-provider failures keep the provider-native code and message;
	// the login/signup endpoints contractually pass them through.
	var provErr *errs.ProviderError
	if errors.As(err, &provErr) {
		r.logger.Warn().Str("providerCode", provErr.Code).Msg("identity provider error")
		r.WriteJSON(w, http.StatusInternalServerError, errorBody{
			ErrCode: provErr.Code,
			Message: provErr.Message,
		})
		return
	}

	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		event := r.logger.Warn()
		if apiErr.StatusCode >= http.StatusInternalServerError {
			event = r.logger.Error()
		}
		event.Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())

		r.WriteJSON(w, apiErr.StatusCode, errorBody{
			ErrCode: apiErr.StatusCode,
			Message: apiErr.Public(),
		})
		return
	}

	// Unexpected errors get a generic public message; the detail stays in
	// the server log.
	r.logger.Error().Msg(err.Error())
	r.WriteJSON(w, http.StatusInternalServerError, errorBody{
		ErrCode: http.StatusInternalServerError,
		Message: "An unexpected error occurred",
	})
}
