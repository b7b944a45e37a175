package httpapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/usecase"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"duplicate player", fmt.Errorf("%w: pl-1", roster.ErrDuplicatePlayer), http.StatusBadRequest, "duplicatePlayer"},
		{"position mismatch", roster.ErrPositionMismatch, http.StatusBadRequest, "positionMismatch"},
		{"formation", roster.ErrFormationOutOfRange, http.StatusBadRequest, "formationOutOfRange"},
		{"budget", roster.ErrBudgetExceeded, http.StatusBadRequest, "budgetExceeded"},
		{"club limit", roster.ErrClubLimitExceeded, http.StatusBadRequest, "clubLimitExceeded"},
		{"role conflict", roster.ErrCaptainRoleConflict, http.StatusConflict, "captainRoleConflict"},
		{"deadline", usecase.ErrDeadlinePassed, http.StatusConflict, "deadlinePassed"},
		{"invalid input", usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput"},
		{"not found", usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"persistence", usecase.ErrPersistence, http.StatusServiceUnavailable, "persistenceError"},
		{"dependency", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(tc.err)
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("unexpected status: got %d want %d", mapped.HTTPStatus, tc.wantStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("unexpected reason: got %s want %s", mapped.Reason, tc.wantReason)
			}
		})
	}
}
