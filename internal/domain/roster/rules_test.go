package roster

import (
	"errors"
	"testing"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
)

func validEntries() []Entry {
	specs := []struct {
		position player.Position
		starter  bool
	}{
		{player.PositionGoalkeeper, true},
		{player.PositionDefender, true},
		{player.PositionDefender, true},
		{player.PositionDefender, true},
		{player.PositionDefender, true},
		{player.PositionMidfielder, true},
		{player.PositionMidfielder, true},
		{player.PositionMidfielder, true},
		{player.PositionMidfielder, true},
		{player.PositionForward, true},
		{player.PositionForward, true},
		{player.PositionGoalkeeper, false},
		{player.PositionDefender, false},
		{player.PositionMidfielder, false},
		{player.PositionForward, false},
	}

	clubs := []string{"c1", "c2", "c3", "c4", "c5", "c6"}
	entries := make([]Entry, 0, len(specs))
	for i, s := range specs {
		entries = append(entries, Entry{
			ID:        "e" + string(rune('a'+i)),
			PlayerID:  "p" + string(rune('a'+i)),
			ClubID:    clubs[i%len(clubs)],
			Position:  s.position,
			Price:     60,
			Slot:      i + 1,
			IsStarter: s.starter,
		})
	}
	entries[5].IsCaptain = true
	entries[9].IsViceCaptain = true
	return entries
}

func catalogFor(entries []Entry) map[string]player.Player {
	players := make(map[string]player.Player, len(entries))
	for _, e := range entries {
		players[e.PlayerID] = player.Player{
			ID:       e.PlayerID,
			Name:     "Player " + e.PlayerID,
			Position: e.Position,
			Price:    e.Price,
			ClubID:   e.ClubID,
		}
	}
	return players
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func([]Entry, map[string]player.Player, *Rules)
		targetErr error
	}{
		{
			name:      "valid roster",
			mutate:    func(_ []Entry, _ map[string]player.Player, _ *Rules) {},
			targetErr: nil,
		},
		{
			name: "duplicate player",
			mutate: func(entries []Entry, _ map[string]player.Player, _ *Rules) {
				entries[1].PlayerID = entries[0].PlayerID
			},
			targetErr: ErrDuplicatePlayer,
		},
		{
			name: "position mismatch",
			mutate: func(entries []Entry, players map[string]player.Player, _ *Rules) {
				p := players[entries[1].PlayerID]
				p.Position = player.PositionMidfielder
				players[entries[1].PlayerID] = p
			},
			targetErr: ErrPositionMismatch,
		},
		{
			name: "too few starting defenders",
			mutate: func(entries []Entry, players map[string]player.Player, _ *Rules) {
				// Demote two DEF starters, promote the bench MID and FWD:
				// still 11 starters but only 2 defenders.
				entries[3].IsStarter = false
				entries[4].IsStarter = false
				entries[13].IsStarter = true
				entries[14].IsStarter = true
			},
			targetErr: ErrFormationOutOfRange,
		},
		{
			name: "wrong starter count",
			mutate: func(entries []Entry, _ map[string]player.Player, _ *Rules) {
				entries[10].IsStarter = false
			},
			targetErr: ErrFormationOutOfRange,
		},
		{
			name: "two starting goalkeepers",
			mutate: func(entries []Entry, _ map[string]player.Player, _ *Rules) {
				entries[11].IsStarter = true
				entries[4].IsStarter = false
			},
			targetErr: ErrFormationOutOfRange,
		},
		{
			name: "budget exceeded",
			mutate: func(entries []Entry, _ map[string]player.Player, _ *Rules) {
				entries[0].Price = 500
				entries[1].Price = 500
				entries[2].Price = 500
			},
			targetErr: ErrBudgetExceeded,
		},
		{
			name: "club limit exceeded",
			mutate: func(entries []Entry, players map[string]player.Player, _ *Rules) {
				for i := 0; i < 4; i++ {
					entries[i].ClubID = "c1"
					p := players[entries[i].PlayerID]
					p.ClubID = "c1"
					players[entries[i].PlayerID] = p
				}
			},
			targetErr: ErrClubLimitExceeded,
		},
		{
			name: "no captain",
			mutate: func(entries []Entry, _ map[string]player.Player, _ *Rules) {
				entries[5].IsCaptain = false
			},
			targetErr: ErrCaptainRoleConflict,
		},
		{
			name: "captain and vice on same entry",
			mutate: func(entries []Entry, _ map[string]player.Player, _ *Rules) {
				entries[9].IsCaptain = true
				entries[5].IsCaptain = false
			},
			targetErr: ErrCaptainRoleConflict,
		},
		{
			name: "captain on the bench",
			mutate: func(entries []Entry, _ map[string]player.Player, _ *Rules) {
				entries[5].IsCaptain = false
				entries[13].IsCaptain = true
			},
			targetErr: ErrCaptainRoleConflict,
		},
		{
			name: "duplicate reported before budget",
			mutate: func(entries []Entry, _ map[string]player.Player, _ *Rules) {
				entries[1].PlayerID = entries[0].PlayerID
				entries[2].Price = 5000
			},
			targetErr: ErrDuplicatePlayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := validEntries()
			players := catalogFor(entries)
			rules := DefaultRules()
			tt.mutate(entries, players, &rules)

			err := Validate(entries, players, rules)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected valid roster, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestValidateFormationBoundaries(t *testing.T) {
	// Three starting defenders is the configured minimum and must pass.
	entries := validEntries()
	entries[4].IsStarter = false
	entries[13].IsStarter = true
	players := catalogFor(entries)

	if err := Validate(entries, players, DefaultRules()); err != nil {
		t.Fatalf("expected 3-defender formation to be valid, got %v", err)
	}
}

func TestRosterBudgetRemaining(t *testing.T) {
	r := Roster{
		TeamID:    "t1",
		Entries:   validEntries(),
		BudgetCap: 1000,
	}
	if got := r.TotalCost(); got != 900 {
		t.Fatalf("unexpected total cost: %d", got)
	}
	if got := r.BudgetRemaining(); got != 100 {
		t.Fatalf("unexpected budget remaining: %d", got)
	}
}
