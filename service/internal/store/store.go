// Package store persists matches: an append-only action journal for audit
// and replay, and a snapshot cache of the latest state for reconnects.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
)

// ErrNotFound is returned when a match or snapshot does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrSnapshotMismatch is returned when a snapshot fails its digest or was
// taken under different rules than the match was created with.
var ErrSnapshotMismatch = errors.New("store: snapshot does not match")

// PlayerRecord identifies who sat on one side.
type PlayerRecord struct {
	ID  uuid.UUID `json:"id"`
	Bot bool      `json:"bot"`
}

// MatchRecord is everything needed to rebuild a match's opening state.
type MatchRecord struct {
	ID        uuid.UUID       `json:"id"`
	Seed      uint32          `json:"seed"`
	Rules     engine.Rules    `json:"rules"`
	Seats     [2]engine.Seat  `json:"seats"`
	Players   [2]PlayerRecord `json:"players"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Entry is one journaled action and the digest it produced.
type Entry struct {
	MatchID uuid.UUID     `json:"matchId"`
	Seq     int           `json:"seq"`
	Action  engine.Action `json:"action"`
	Hash    string        `json:"hash"`
	Success bool          `json:"success"`
	At      time.Time     `json:"at"`
}

// Journal records matches and their actions in order.
type Journal interface {
	CreateMatch(ctx context.Context, rec MatchRecord) error
	Match(ctx context.Context, id uuid.UUID) (MatchRecord, error)
	Append(ctx context.Context, e Entry) error
	// Entries returns a match's actions ordered by Seq.
	Entries(ctx context.Context, id uuid.UUID) ([]Entry, error)
}

// Snapshot is the serialized state of a match after its Seq-th action.
type Snapshot struct {
	State json.RawMessage `json:"state"`
	Hash  string          `json:"hash"`
	Seq   int             `json:"seq"`
}

// NewSnapshot serializes g.
func NewSnapshot(g *engine.GameState, seq int) (Snapshot, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{State: b, Hash: engine.Hash(g), Seq: seq}, nil
}

// Restore decodes the snapshot and checks it against its digest and the
// rules the match was created with. The digest does not cover the rules.
func (s Snapshot) Restore(rules engine.Rules) (*engine.GameState, error) {
	var g engine.GameState
	if err := json.Unmarshal(s.State, &g); err != nil {
		return nil, err
	}
	if h := engine.Hash(&g); h != s.Hash {
		return nil, fmt.Errorf("%w: digest %s, want %s", ErrSnapshotMismatch, h, s.Hash)
	}
	if g.Rules != rules {
		return nil, fmt.Errorf("%w: rules %+v, want %+v", ErrSnapshotMismatch, g.Rules, rules)
	}
	return &g, nil
}

// Cache keeps the latest snapshot per match.
type Cache interface {
	Put(ctx context.Context, id uuid.UUID, s Snapshot) error
	Get(ctx context.Context, id uuid.UUID) (Snapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
