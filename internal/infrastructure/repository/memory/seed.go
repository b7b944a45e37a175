package memory

import (
	"time"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/domain/team"
)

const (
	TeamIDDemo = "team-demo"
	UserIDDemo = "user-demo"
)

func SeedTeams() []team.FantasyTeam {
	return []team.FantasyTeam{
		{
			ID:        TeamIDDemo,
			UserID:    UserIDDemo,
			Name:      "Demo XI",
			BudgetCap: 1000,
			CreatedAt: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-gk-01", Name: "David Raya", Position: player.PositionGoalkeeper, Price: 45, ClubID: "club-ars", ClubName: "Arsenal"},
		{ID: "pl-gk-02", Name: "Alisson Becker", Position: player.PositionGoalkeeper, Price: 40, ClubID: "club-liv", ClubName: "Liverpool"},
		{ID: "pl-gk-03", Name: "Robert Sanchez", Position: player.PositionGoalkeeper, Price: 42, ClubID: "club-che", ClubName: "Chelsea"},
		{ID: "pl-def-01", Name: "William Saliba", Position: player.PositionDefender, Price: 60, ClubID: "club-ars", ClubName: "Arsenal"},
		{ID: "pl-def-02", Name: "Virgil van Dijk", Position: player.PositionDefender, Price: 55, ClubID: "club-liv", ClubName: "Liverpool"},
		{ID: "pl-def-03", Name: "Ruben Dias", Position: player.PositionDefender, Price: 50, ClubID: "club-mci", ClubName: "Manchester City"},
		{ID: "pl-def-04", Name: "Reece James", Position: player.PositionDefender, Price: 65, ClubID: "club-che", ClubName: "Chelsea"},
		{ID: "pl-def-05", Name: "Cristian Romero", Position: player.PositionDefender, Price: 45, ClubID: "club-tot", ClubName: "Tottenham Hotspur"},
		{ID: "pl-def-06", Name: "Sven Botman", Position: player.PositionDefender, Price: 60, ClubID: "club-new", ClubName: "Newcastle United"},
		{ID: "pl-def-07", Name: "Levi Colwill", Position: player.PositionDefender, Price: 55, ClubID: "club-che", ClubName: "Chelsea"},
		{ID: "pl-def-08", Name: "Gabriel Magalhaes", Position: player.PositionDefender, Price: 45, ClubID: "club-ars", ClubName: "Arsenal"},
		{ID: "pl-mid-01", Name: "Martin Odegaard", Position: player.PositionMidfielder, Price: 85, ClubID: "club-ars", ClubName: "Arsenal"},
		{ID: "pl-mid-02", Name: "Dominik Szoboszlai", Position: player.PositionMidfielder, Price: 80, ClubID: "club-liv", ClubName: "Liverpool"},
		{ID: "pl-mid-03", Name: "Phil Foden", Position: player.PositionMidfielder, Price: 75, ClubID: "club-mci", ClubName: "Manchester City"},
		{ID: "pl-mid-04", Name: "Cole Palmer", Position: player.PositionMidfielder, Price: 70, ClubID: "club-che", ClubName: "Chelsea"},
		{ID: "pl-mid-05", Name: "James Maddison", Position: player.PositionMidfielder, Price: 55, ClubID: "club-tot", ClubName: "Tottenham Hotspur"},
		{ID: "pl-mid-06", Name: "Bruno Guimaraes", Position: player.PositionMidfielder, Price: 45, ClubID: "club-new", ClubName: "Newcastle United"},
		{ID: "pl-fwd-01", Name: "Alexander Isak", Position: player.PositionForward, Price: 115, ClubID: "club-new", ClubName: "Newcastle United"},
		{ID: "pl-fwd-02", Name: "Anthony Gordon", Position: player.PositionForward, Price: 95, ClubID: "club-new", ClubName: "Newcastle United"},
		{ID: "pl-fwd-03", Name: "Erling Haaland", Position: player.PositionForward, Price: 60, ClubID: "club-mci", ClubName: "Manchester City"},
		{ID: "pl-fwd-04", Name: "Dominic Solanke", Position: player.PositionForward, Price: 70, ClubID: "club-tot", ClubName: "Tottenham Hotspur"},
	}
}

// SeedRosters returns the demo team's squad. It totals 995 against the demo
// budget cap of 1000, so there is 5 of headroom for replacement scenarios.
func SeedRosters() map[string][]roster.Entry {
	return map[string][]roster.Entry{
		TeamIDDemo: {
			{ID: "slot-01", PlayerID: "pl-gk-01", ClubID: "club-ars", Position: player.PositionGoalkeeper, Price: 45, Slot: 1, IsStarter: true},
			{ID: "slot-02", PlayerID: "pl-def-01", ClubID: "club-ars", Position: player.PositionDefender, Price: 60, Slot: 2, IsStarter: true},
			{ID: "slot-03", PlayerID: "pl-def-02", ClubID: "club-liv", Position: player.PositionDefender, Price: 55, Slot: 3, IsStarter: true},
			{ID: "slot-04", PlayerID: "pl-def-03", ClubID: "club-mci", Position: player.PositionDefender, Price: 50, Slot: 4, IsStarter: true},
			{ID: "slot-05", PlayerID: "pl-def-04", ClubID: "club-che", Position: player.PositionDefender, Price: 65, Slot: 5, IsStarter: true},
			{ID: "slot-06", PlayerID: "pl-mid-01", ClubID: "club-ars", Position: player.PositionMidfielder, Price: 85, Slot: 6, IsStarter: true, IsCaptain: true},
			{ID: "slot-07", PlayerID: "pl-mid-02", ClubID: "club-liv", Position: player.PositionMidfielder, Price: 80, Slot: 7, IsStarter: true},
			{ID: "slot-08", PlayerID: "pl-mid-03", ClubID: "club-mci", Position: player.PositionMidfielder, Price: 75, Slot: 8, IsStarter: true},
			{ID: "slot-09", PlayerID: "pl-mid-04", ClubID: "club-che", Position: player.PositionMidfielder, Price: 70, Slot: 9, IsStarter: true},
			{ID: "slot-10", PlayerID: "pl-fwd-01", ClubID: "club-new", Position: player.PositionForward, Price: 115, Slot: 10, IsStarter: true, IsViceCaptain: true},
			{ID: "slot-11", PlayerID: "pl-fwd-02", ClubID: "club-new", Position: player.PositionForward, Price: 95, Slot: 11, IsStarter: true},
			{ID: "slot-12", PlayerID: "pl-gk-02", ClubID: "club-liv", Position: player.PositionGoalkeeper, Price: 40, Slot: 12},
			{ID: "slot-13", PlayerID: "pl-def-05", ClubID: "club-tot", Position: player.PositionDefender, Price: 45, Slot: 13},
			{ID: "slot-14", PlayerID: "pl-mid-05", ClubID: "club-tot", Position: player.PositionMidfielder, Price: 55, Slot: 14},
			{ID: "slot-15", PlayerID: "pl-fwd-03", ClubID: "club-mci", Position: player.PositionForward, Price: 60, Slot: 15},
		},
	}
}
