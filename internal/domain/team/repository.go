package team

import "context"

// Repository describes fantasy team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (FantasyTeam, bool, error)
}
