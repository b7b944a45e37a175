package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/domain/team"
	rostermock "github.com/riskibarqy/roster-engine/internal/mocks/domain/roster"
	teammock "github.com/riskibarqy/roster-engine/internal/mocks/domain/team"
)

func TestTeamService_GetSummary_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	rosterRepo := rostermock.NewRepository(t)

	service := NewTeamService(teamRepo, rosterRepo)
	teamID := "team-demo"
	owner := team.FantasyTeam{ID: teamID, UserID: "user-demo", Name: "Demo XI", BudgetCap: 1000}
	entries := []roster.Entry{
		{ID: "slot-01", PlayerID: "pl-gk-01", Price: 45, IsCaptain: true},
		{ID: "slot-02", PlayerID: "pl-def-01", Price: 60, IsViceCaptain: true},
	}

	teamRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), teamID).
		Return(owner, true, nil).
		Once()
	rosterRepo.
		On("Load", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), teamID).
		Return(entries, true, nil).
		Once()

	got, err := service.GetSummary(ctx, teamID)
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	if got.SquadValue != 105 {
		t.Fatalf("unexpected squad value: %d", got.SquadValue)
	}
	if got.BudgetRemaining != 895 {
		t.Fatalf("unexpected budget remaining: %d", got.BudgetRemaining)
	}
	if got.CaptainPlayerID != "pl-gk-01" || got.ViceCaptainPlayerID != "pl-def-01" {
		t.Fatalf("unexpected role holders: %s/%s", got.CaptainPlayerID, got.ViceCaptainPlayerID)
	}
}

func TestTeamService_GetSummary_TeamNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	rosterRepo := rostermock.NewRepository(t)

	service := NewTeamService(teamRepo, rosterRepo)
	teamID := "missing-team"

	teamRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), teamID).
		Return(team.FantasyTeam{}, false, nil).
		Once()

	_, err := service.GetSummary(ctx, teamID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_GetSummary_RepoFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	rosterRepo := rostermock.NewRepository(t)

	service := NewTeamService(teamRepo, rosterRepo)
	teamID := "team-demo"

	teamRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), teamID).
		Return(team.FantasyTeam{}, false, errors.New("connection reset")).
		Once()

	_, err := service.GetSummary(ctx, teamID)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}
