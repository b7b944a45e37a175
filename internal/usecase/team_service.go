package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/domain/team"
)

// TeamSummary is the read model for a team header: identity, points written
// by the external scoring process, and budget figures derived from the
// current roster.
type TeamSummary struct {
	Team                team.FantasyTeam
	SquadValue          int64
	BudgetRemaining     int64
	CaptainPlayerID     string
	ViceCaptainPlayerID string
}

type TeamService struct {
	teamRepo   team.Repository
	rosterRepo roster.Repository
}

func NewTeamService(teamRepo team.Repository, rosterRepo roster.Repository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		rosterRepo: rosterRepo,
	}
}

func (s *TeamService) GetSummary(ctx context.Context, teamID string) (TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetSummary")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamSummary{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	owner, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamSummary{}, fmt.Errorf("%w: get team %s: %v", ErrPersistence, teamID, err)
	}
	if !exists {
		return TeamSummary{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	entries, exists, err := s.rosterRepo.Load(ctx, teamID)
	if err != nil {
		return TeamSummary{}, fmt.Errorf("%w: load roster for team %s: %v", ErrPersistence, teamID, err)
	}
	if !exists {
		return TeamSummary{}, fmt.Errorf("%w: roster for team=%s", ErrNotFound, teamID)
	}

	summary := TeamSummary{Team: owner}
	for _, e := range entries {
		summary.SquadValue += e.Price
		if e.IsCaptain {
			summary.CaptainPlayerID = e.PlayerID
		}
		if e.IsViceCaptain {
			summary.ViceCaptainPlayerID = e.PlayerID
		}
	}
	summary.BudgetRemaining = owner.BudgetCap - summary.SquadValue

	return summary, nil
}
