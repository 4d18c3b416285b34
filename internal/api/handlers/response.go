package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/theblitlabs/system-stats/internal/models"
	"github.com/theblitlabs/system-stats/internal/services"
	"github.com/theblitlabs/system-stats/pkg/logger"
)

const (
	MsgMissingAPIKey     = "Unauthorized: Missing API key"
	MsgInvalidAPIKey     = "Unauthorized: Invalid API key"
	MsgInvalidParameters = "Invalid parameters provided"
	MsgNoStatsCollected  = "No stats collected, check your parameters"
	MsgInternalError     = "Internal error occurred"
)

// Outcome labels for the terminal states of a stats request.
const (
	OutcomeSuccess       = "success"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeInvalidParams = "invalid_params"
	OutcomeNoStats       = "no_stats"
	OutcomeInternalError = "internal_error"
)

// statusFor maps an error to its status code, client message and outcome.
// Anything unrecognised is an internal error.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrMissingAPIKey):
		return http.StatusUnauthorized, MsgMissingAPIKey, OutcomeUnauthorized
	case errors.Is(err, services.ErrInvalidAPIKey):
		return http.StatusUnauthorized, MsgInvalidAPIKey, OutcomeUnauthorized
	case errors.Is(err, models.ErrInvalidParameters):
		return http.StatusBadRequest, MsgInvalidParameters, OutcomeInvalidParams
	case errors.Is(err, services.ErrNoStatsCollected):
		return http.StatusInternalServerError, MsgNoStatsCollected, OutcomeNoStats
	default:
		return http.StatusInternalServerError, MsgInternalError, OutcomeInternalError
	}
}

// WriteJSON writes v as an indented JSON body with the given status. When v
// cannot be encoded nothing of it is sent: the client gets the internal error
// envelope instead and the encode error is returned.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	body, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("Response encode failed")

		status = http.StatusInternalServerError
		body, _ = json.MarshalIndent(models.NewErrorResponse(MsgInternalError), "", "    ")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
	return err
}

// WriteError writes the error envelope for err and returns the outcome label.
func WriteError(w http.ResponseWriter, err error) string {
	status, message, outcome := statusFor(err)
	WriteJSON(w, status, models.NewErrorResponse(message))
	return outcome
}
