package roster

import (
	"fmt"
	"time"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
)

// Entry is one occupied slot in a fantasy team's roster. The slot's position
// never changes once the roster is created; replacements must fill the slot
// with a player of the same position. Price is the purchase price frozen at
// the moment the player was signed, in tenths of a million.
type Entry struct {
	ID            string
	PlayerID      string
	ClubID        string
	Position      player.Position
	Price         int64
	Slot          int
	IsStarter     bool
	IsCaptain     bool
	IsViceCaptain bool
}

func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("roster entry id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("roster entry player id is required")
	}
	if e.ClubID == "" {
		return fmt.Errorf("roster entry club id is required")
	}
	if _, ok := player.AllPositions[e.Position]; !ok {
		return fmt.Errorf("invalid roster entry position: %s", e.Position)
	}
	if e.Price < 0 {
		return fmt.Errorf("roster entry price cannot be negative")
	}

	return nil
}

// Roster is the full squad view returned by engine operations.
type Roster struct {
	TeamID    string
	Entries   []Entry
	BudgetCap int64
	UpdatedAt time.Time
}

func (r Roster) TotalCost() int64 {
	var total int64
	for _, e := range r.Entries {
		total += e.Price
	}
	return total
}

func (r Roster) BudgetRemaining() int64 {
	return r.BudgetCap - r.TotalCost()
}

// FindEntry returns the entry with the given id and its index.
func (r Roster) FindEntry(entryID string) (Entry, int, bool) {
	for i, e := range r.Entries {
		if e.ID == entryID {
			return e, i, true
		}
	}
	return Entry{}, -1, false
}

// CloneEntries returns an independent copy so candidate states never alias
// the stored roster.
func CloneEntries(entries []Entry) []Entry {
	return append([]Entry(nil), entries...)
}

// DeadlinePolicy controls which mutating operations the transfer deadline
// blocks. A zero Deadline means no deadline is configured and nothing is
// blocked. LocksCaptaincy extends the gate to captain and vice-captain
// reassignment, which the reference domain leaves open between gameweeks.
type DeadlinePolicy struct {
	Deadline       time.Time
	LocksCaptaincy bool
}

// BlocksTransfers reports whether player replacement is closed at t.
func (p DeadlinePolicy) BlocksTransfers(t time.Time) bool {
	return !p.Deadline.IsZero() && t.After(p.Deadline)
}

// BlocksCaptaincy reports whether role reassignment is closed at t.
func (p DeadlinePolicy) BlocksCaptaincy(t time.Time) bool {
	return p.LocksCaptaincy && p.BlocksTransfers(t)
}
