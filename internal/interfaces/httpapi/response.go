package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "roster-engine"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// mapError flattens the error taxonomy into HTTP status plus a machine
// readable reason, so API clients can branch without parsing messages.
func mapError(err error) mappedError {
	switch {
	case errors.Is(err, roster.ErrDuplicatePlayer):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "duplicatePlayer", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, roster.ErrPositionMismatch):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "positionMismatch", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, roster.ErrFormationOutOfRange):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "formationOutOfRange", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, roster.ErrBudgetExceeded):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "budgetExceeded", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, roster.ErrClubLimitExceeded):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "clubLimitExceeded", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, roster.ErrCaptainRoleConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "captainRoleConflict", Status: "CONFLICT"}
	case errors.Is(err, usecase.ErrDeadlinePassed):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "deadlinePassed", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}
	case errors.Is(err, usecase.ErrPersistence):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "persistenceError", Status: "UNAVAILABLE"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}
