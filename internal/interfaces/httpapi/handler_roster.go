package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/usecase"
)

type replacePlayerRequest struct {
	EntryID     string `json:"entry_id" validate:"required"`
	NewPlayerID string `json:"new_player_id" validate:"required"`
}

type assignRoleRequest struct {
	EntryID string `json:"entry_id" validate:"required"`
}

type priceSyncRequest struct {
	DryRun bool `json:"dry_run"`
}

func (h *Handler) ReplacePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplacePlayer")
	defer span.End()

	teamID := r.PathValue("teamID")

	var req replacePlayerRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.ReplacePlayer(ctx, usecase.ReplacePlayerInput{
		TeamID:      teamID,
		EntryID:     req.EntryID,
		NewPlayerID: req.NewPlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "replace player failed",
			"team_id", teamID,
			"entry_id", req.EntryID,
			"new_player_id", req.NewPlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item))
}

func (h *Handler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCaptain")
	defer span.End()

	h.assignRole(ctx, w, r, "captain", h.rosterService.SetCaptain)
}

func (h *Handler) SetViceCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetViceCaptain")
	defer span.End()

	h.assignRole(ctx, w, r, "vice-captain", h.rosterService.SetViceCaptain)
}

func (h *Handler) assignRole(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	role string,
	assign func(ctx context.Context, teamID, entryID string) (roster.Roster, error),
) {
	teamID := r.PathValue("teamID")

	var req assignRoleRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := assign(ctx, teamID, req.EntryID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign role failed",
			"team_id", teamID,
			"entry_id", req.EntryID,
			"role", role,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item))
}

func (h *Handler) RunPriceSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPriceSyncJob")
	defer span.End()

	if h.priceSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: price feed is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req priceSyncRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	report, err := h.priceSyncService.Run(ctx, req.DryRun)
	if err != nil {
		h.logger.ErrorContext(ctx, "price sync job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"fetched":     report.Fetched,
		"applied":     report.Applied,
		"skipped":     report.Skipped,
		"batches":     report.Batches,
		"dry_run":     report.DryRun,
		"duration_ms": report.Duration.Milliseconds(),
	})
}
