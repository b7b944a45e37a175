package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/domain/team"
)

type ReplacePlayerInput struct {
	TeamID      string
	EntryID     string
	NewPlayerID string
}

// RosterService runs every roster mutation through the same transactional
// pattern: build the candidate state, validate it against the full rule set,
// then commit atomically. Rejected operations never reach the store, so the
// persisted roster is either the old state or the new one, never a blend.
type RosterService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	rules      roster.Rules
	deadline   roster.DeadlinePolicy
	locks      sync.Map
	now        func() time.Time
}

func NewRosterService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	rules roster.Rules,
	deadline roster.DeadlinePolicy,
) *RosterService {
	return &RosterService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		rules:      rules,
		deadline:   deadline,
		now:        time.Now,
	}
}

// lockTeam serializes mutations per team. Operations on different teams run
// concurrently; two mutations on the same team queue behind each other.
func (s *RosterService) lockTeam(teamID string) func() {
	value, _ := s.locks.LoadOrStore(teamID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *RosterService) GetRoster(ctx context.Context, teamID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetRoster")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return roster.Roster{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	owner, entries, err := s.loadTeamRoster(ctx, teamID)
	if err != nil {
		return roster.Roster{}, err
	}

	return roster.Roster{
		TeamID:    teamID,
		Entries:   entries,
		BudgetCap: owner.BudgetCap,
		UpdatedAt: owner.UpdatedAt,
	}, nil
}

func (s *RosterService) ReplacePlayer(ctx context.Context, input ReplacePlayerInput) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ReplacePlayer")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.EntryID = strings.TrimSpace(input.EntryID)
	input.NewPlayerID = strings.TrimSpace(input.NewPlayerID)
	if input.TeamID == "" {
		return roster.Roster{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.EntryID == "" {
		return roster.Roster{}, fmt.Errorf("%w: roster entry id is required", ErrInvalidInput)
	}
	if input.NewPlayerID == "" {
		return roster.Roster{}, fmt.Errorf("%w: new player id is required", ErrInvalidInput)
	}

	// The deadline gate fires before any store access so a late call can
	// never observe or touch roster state.
	if s.deadline.BlocksTransfers(s.now()) {
		return roster.Roster{}, fmt.Errorf("%w: transfers closed at %s", ErrDeadlinePassed, s.deadline.Deadline.Format(time.RFC3339))
	}

	unlock := s.lockTeam(input.TeamID)
	defer unlock()

	owner, entries, err := s.loadTeamRoster(ctx, input.TeamID)
	if err != nil {
		return roster.Roster{}, err
	}

	current := roster.Roster{TeamID: input.TeamID, Entries: entries}
	target, idx, ok := current.FindEntry(input.EntryID)
	if !ok {
		return roster.Roster{}, fmt.Errorf("%w: roster entry=%s team=%s", ErrNotFound, input.EntryID, input.TeamID)
	}

	incoming, exists, err := s.playerRepo.GetByID(ctx, input.NewPlayerID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("%w: get player %s: %v", ErrPersistence, input.NewPlayerID, err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.NewPlayerID)
	}

	// Position equality is a precondition of the swap itself, checked before
	// anything else about the candidate so the caller always sees a position
	// error for a wrong-position player, whatever else is wrong with it.
	if incoming.Position != target.Position {
		return roster.Roster{}, fmt.Errorf("%w: slot=%s player=%s is %s", roster.ErrPositionMismatch, target.Position, incoming.ID, incoming.Position)
	}

	candidate := roster.CloneEntries(entries)
	candidate[idx].PlayerID = incoming.ID
	candidate[idx].ClubID = incoming.ClubID
	candidate[idx].Price = incoming.Price

	return s.validateAndCommit(ctx, owner, candidate)
}

func (s *RosterService) SetCaptain(ctx context.Context, teamID, entryID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetCaptain")
	defer span.End()

	return s.assignRole(ctx, teamID, entryID, true)
}

func (s *RosterService) SetViceCaptain(ctx context.Context, teamID, entryID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetViceCaptain")
	defer span.End()

	return s.assignRole(ctx, teamID, entryID, false)
}

func (s *RosterService) assignRole(ctx context.Context, teamID, entryID string, captain bool) (roster.Roster, error) {
	teamID = strings.TrimSpace(teamID)
	entryID = strings.TrimSpace(entryID)
	if teamID == "" {
		return roster.Roster{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if entryID == "" {
		return roster.Roster{}, fmt.Errorf("%w: roster entry id is required", ErrInvalidInput)
	}

	if s.deadline.BlocksCaptaincy(s.now()) {
		return roster.Roster{}, fmt.Errorf("%w: captaincy locked at %s", ErrDeadlinePassed, s.deadline.Deadline.Format(time.RFC3339))
	}

	unlock := s.lockTeam(teamID)
	defer unlock()

	owner, entries, err := s.loadTeamRoster(ctx, teamID)
	if err != nil {
		return roster.Roster{}, err
	}

	current := roster.Roster{TeamID: teamID, Entries: entries, BudgetCap: owner.BudgetCap, UpdatedAt: owner.UpdatedAt}
	target, idx, ok := current.FindEntry(entryID)
	if !ok {
		return roster.Roster{}, fmt.Errorf("%w: roster entry=%s team=%s", ErrNotFound, entryID, teamID)
	}

	// Assigning the role the entry already holds is a no-op success.
	if captain && target.IsCaptain {
		return current, nil
	}
	if !captain && target.IsViceCaptain {
		return current, nil
	}

	// One entry may never hold both roles, so promoting the current
	// vice-captain to captain (or the reverse) is rejected rather than
	// silently stripping the other role.
	if captain && target.IsViceCaptain {
		return roster.Roster{}, fmt.Errorf("%w: entry %s is the vice-captain", roster.ErrCaptainRoleConflict, entryID)
	}
	if !captain && target.IsCaptain {
		return roster.Roster{}, fmt.Errorf("%w: entry %s is the captain", roster.ErrCaptainRoleConflict, entryID)
	}

	// Clear-then-set runs on the candidate copy, so no intermediate state
	// with zero or two holders is ever observable outside this method.
	candidate := roster.CloneEntries(entries)
	for i := range candidate {
		if captain {
			candidate[i].IsCaptain = false
		} else {
			candidate[i].IsViceCaptain = false
		}
	}
	if captain {
		candidate[idx].IsCaptain = true
	} else {
		candidate[idx].IsViceCaptain = true
	}

	return s.validateAndCommit(ctx, owner, candidate)
}

func (s *RosterService) loadTeamRoster(ctx context.Context, teamID string) (team.FantasyTeam, []roster.Entry, error) {
	owner, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.FantasyTeam{}, nil, fmt.Errorf("%w: get team %s: %v", ErrPersistence, teamID, err)
	}
	if !exists {
		return team.FantasyTeam{}, nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	entries, exists, err := s.rosterRepo.Load(ctx, teamID)
	if err != nil {
		return team.FantasyTeam{}, nil, fmt.Errorf("%w: load roster for team %s: %v", ErrPersistence, teamID, err)
	}
	if !exists {
		return team.FantasyTeam{}, nil, fmt.Errorf("%w: roster for team=%s", ErrNotFound, teamID)
	}

	return owner, entries, nil
}

func (s *RosterService) validateAndCommit(ctx context.Context, owner team.FantasyTeam, candidate []roster.Entry) (roster.Roster, error) {
	playerIDs := make([]string, 0, len(candidate))
	for _, e := range candidate {
		playerIDs = append(playerIDs, e.PlayerID)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("%w: get players for validation: %v", ErrPersistence, err)
	}
	playersByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	rules := s.rules
	rules.BudgetCap = owner.BudgetCap
	if err := roster.Validate(candidate, playersByID, rules); err != nil {
		return roster.Roster{}, err
	}

	if err := s.rosterRepo.Commit(ctx, owner.ID, candidate); err != nil {
		return roster.Roster{}, fmt.Errorf("%w: commit roster for team %s: %v", ErrPersistence, owner.ID, err)
	}

	return roster.Roster{
		TeamID:    owner.ID,
		Entries:   candidate,
		BudgetCap: owner.BudgetCap,
		UpdatedAt: s.now().UTC(),
	}, nil
}
