package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/platform/logging"
	"github.com/riskibarqy/roster-engine/internal/usecase"
)

type Handler struct {
	rosterService    *usecase.RosterService
	playerService    *usecase.PlayerService
	teamService      *usecase.TeamService
	priceSyncService *usecase.PriceSyncService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	priceSyncService *usecase.PriceSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:    rosterService,
		playerService:    playerService,
		teamService:      teamService,
		priceSyncService: priceSyncService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.ListPlayers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	p, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) GetTeamSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSummary")
	defer span.End()

	teamID := r.PathValue("teamID")
	summary, err := h.teamService.GetSummary(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team summary failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSummaryDTO{
		ID:                  summary.Team.ID,
		Name:                summary.Team.Name,
		TotalPoints:         summary.Team.TotalPoints,
		GameweekPoints:      summary.Team.GameweekPoints,
		Rank:                summary.Team.Rank,
		BudgetCap:           summary.Team.BudgetCap,
		SquadValue:          summary.SquadValue,
		BudgetRemaining:     summary.BudgetRemaining,
		CaptainPlayerID:     summary.CaptainPlayerID,
		ViceCaptainPlayerID: summary.ViceCaptainPlayerID,
	})
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	teamID := r.PathValue("teamID")
	item, err := h.rosterService.GetRoster(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item))
}

// Prices are integers in tenths of a million, matching the catalog storage
// format: 55 means 5.5M.
type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Price    int64  `json:"price"`
	ClubID   string `json:"club_id"`
	ClubName string `json:"club_name"`
}

type rosterEntryDTO struct {
	ID            string `json:"id"`
	PlayerID      string `json:"player_id"`
	ClubID        string `json:"club_id"`
	Position      string `json:"position"`
	Price         int64  `json:"price"`
	Slot          int    `json:"slot"`
	IsStarter     bool   `json:"is_starter"`
	IsCaptain     bool   `json:"is_captain"`
	IsViceCaptain bool   `json:"is_vice_captain"`
}

type rosterDTO struct {
	TeamID          string           `json:"team_id"`
	Entries         []rosterEntryDTO `json:"entries"`
	BudgetCap       int64            `json:"budget_cap"`
	SquadValue      int64            `json:"squad_value"`
	BudgetRemaining int64            `json:"budget_remaining"`
	UpdatedAt       string           `json:"updated_at,omitempty"`
}

type teamSummaryDTO struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	TotalPoints         int    `json:"total_points"`
	GameweekPoints      int    `json:"gameweek_points"`
	Rank                int    `json:"rank"`
	BudgetCap           int64  `json:"budget_cap"`
	SquadValue          int64  `json:"squad_value"`
	BudgetRemaining     int64  `json:"budget_remaining"`
	CaptainPlayerID     string `json:"captain_player_id"`
	ViceCaptainPlayerID string `json:"vice_captain_player_id"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:       p.ID,
		Name:     p.Name,
		Position: string(p.Position),
		Price:    p.Price,
		ClubID:   p.ClubID,
		ClubName: p.ClubName,
	}
}

func rosterToDTO(item roster.Roster) rosterDTO {
	entries := make([]rosterEntryDTO, 0, len(item.Entries))
	for _, e := range item.Entries {
		entries = append(entries, rosterEntryDTO{
			ID:            e.ID,
			PlayerID:      e.PlayerID,
			ClubID:        e.ClubID,
			Position:      string(e.Position),
			Price:         e.Price,
			Slot:          e.Slot,
			IsStarter:     e.IsStarter,
			IsCaptain:     e.IsCaptain,
			IsViceCaptain: e.IsViceCaptain,
		})
	}

	updatedAt := ""
	if !item.UpdatedAt.IsZero() {
		updatedAt = item.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return rosterDTO{
		TeamID:          item.TeamID,
		Entries:         entries,
		BudgetCap:       item.BudgetCap,
		SquadValue:      item.TotalCost(),
		BudgetRemaining: item.BudgetRemaining(),
		UpdatedAt:       updatedAt,
	}
}
