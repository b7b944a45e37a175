package roster

import "context"

// Repository describes roster persistence needs from use cases. Commit must
// be atomic across the whole entry set: after a failed commit the stored
// roster is either the old state or the new one, never a mix.
type Repository interface {
	Load(ctx context.Context, teamID string) ([]Entry, bool, error)
	Commit(ctx context.Context, teamID string, entries []Entry) error
}
