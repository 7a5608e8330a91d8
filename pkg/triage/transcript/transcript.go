package transcript

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// Transcript is one saved consultation summary.
type Transcript struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Summary   json.RawMessage `json:"summary"`
}

// Store persists consultation transcripts. Implementations carry their
// own synchronization; saving a transcript never touches model state.
type Store interface {
	Close() error
	Ping(ctx context.Context) error
	Save(ctx context.Context, summary json.RawMessage) (Transcript, error)
	Get(ctx context.Context, id string) (Transcript, bool, error)
	Recent(ctx context.Context, limit int) ([]Transcript, error)
}

// NewID returns a lexically sortable transcript id.
func NewID() string {
	return ulid.Make().String()
}
