package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/store"
)

// persistTimeout bounds each journal or cache write.
const persistTimeout = 2 * time.Second

// apply runs a through the engine for p, journals it and tells everyone
// what changed.
// Assumes lock is held by caller.
func (m *Match) apply(ctx context.Context, p *Player, a engine.Action) engine.Result {
	prevTurn, prevPhase := m.State.CurrentTurn, m.State.Phase

	res := engine.Apply(m.State, m.Catalog, a)
	m.Seq++
	m.lastHash = res.StateHash
	events := m.State.DrainEvents()

	log := m.log.WithFields(logrus.Fields{
		"side":   p.Side,
		"action": a.Kind.String(),
		"seq":    m.Seq,
		"hash":   res.StateHash,
	})
	m.journal(ctx, log, store.Entry{
		MatchID: m.ID,
		Seq:     m.Seq,
		Action:  a,
		Hash:    res.StateHash,
		Success: res.Success,
		At:      time.Now().UTC(),
	})

	if !res.Success {
		log.WithField("error", res.Error).Warn("action rejected")
		m.fireEventToPlayer(p.ID, GameEvent{
			Type:    EventPrivateActionRejected,
			Seq:     m.Seq,
			Hash:    res.StateHash,
			Action:  &a,
			Payload: map[string]interface{}{"message": res.Error},
		})
		return res
	}
	log.Debug("action applied")
	m.cacheSnapshot(ctx)

	m.fireEvent(GameEvent{
		Type:   EventActionApplied,
		User:   &EventUser{ID: p.ID, Side: p.Side},
		Seq:    m.Seq,
		Hash:   res.StateHash,
		Action: &a,
		Events: publicEvents(events),
	})
	m.syncAll()

	if m.State.IsGameOver() {
		m.endMatch()
		return res
	}
	if m.State.CurrentTurn != prevTurn || m.State.Phase != prevPhase {
		m.onTurnAdvanced()
	}
	return res
}

// publicEvents strips what only the owner may know: the identity of drawn
// cards.
func publicEvents(events []engine.Event) []engine.Event {
	out := make([]engine.Event, len(events))
	for i, e := range events {
		if e.Kind == engine.EventCardDrawn {
			e.CardID = 0
		}
		out[i] = e
	}
	return out
}

func (m *Match) journal(ctx context.Context, log *logrus.Entry, e store.Entry) {
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()
	if err := m.Journal.Append(ctx, e); err != nil {
		log.WithError(err).Error("journal append failed")
	}
}

func (m *Match) cacheSnapshot(ctx context.Context) {
	snap, err := store.NewSnapshot(m.State, m.Seq)
	if err != nil {
		m.log.WithError(err).Error("snapshot encoding failed")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()
	if err := m.Cache.Put(ctx, m.ID, snap); err != nil {
		m.log.WithError(err).Error("snapshot cache write failed")
	}
}

// Mismatch is a journaled action whose replay disagreed with the record.
type Mismatch struct {
	Seq         int    `json:"seq"`
	Action      string `json:"action"`
	WantHash    string `json:"wantHash"`
	GotHash     string `json:"gotHash"`
	WantSuccess bool   `json:"wantSuccess"`
	GotSuccess  bool   `json:"gotSuccess"`
}

// ReplayReport is the outcome of re-running a journaled match.
type ReplayReport struct {
	MatchID    uuid.UUID         `json:"matchId"`
	Seed       uint32            `json:"seed"`
	Actions    int               `json:"actions"`
	Mismatches []Mismatch        `json:"mismatches,omitempty"`
	FinalHash  string            `json:"finalHash"`
	State      *engine.GameState `json:"-"`
}

// OK reports whether every journaled digest was reproduced.
func (r *ReplayReport) OK() bool { return len(r.Mismatches) == 0 }

// Replay rebuilds match id from its journal and checks every recorded
// digest and success flag against a fresh run of the engine.
func Replay(ctx context.Context, j store.Journal, cat *engine.Catalog, id uuid.UUID) (*ReplayReport, error) {
	rec, err := j.Match(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading match %s: %w", id, err)
	}
	entries, err := j.Entries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading journal of %s: %w", id, err)
	}
	g := engine.NewGame(rec.Seed, rec.Rules, cat, rec.Seats[0], rec.Seats[1])
	report := &ReplayReport{MatchID: id, Seed: rec.Seed, Actions: len(entries)}
	for _, e := range entries {
		res := engine.Apply(g, cat, e.Action)
		g.DrainEvents()
		if res.StateHash != e.Hash || res.Success != e.Success {
			report.Mismatches = append(report.Mismatches, Mismatch{
				Seq:         e.Seq,
				Action:      e.Action.Kind.String(),
				WantHash:    e.Hash,
				GotHash:     res.StateHash,
				WantSuccess: e.Success,
				GotSuccess:  res.Success,
			})
		}
	}
	report.FinalHash = engine.Hash(g)
	report.State = g
	return report, nil
}

// current reports whether snap reflects every accepted journal entry.
// Rejected actions leave the state untouched, so they may trail it.
func current(snap store.Snapshot, entries []store.Entry) bool {
	for _, e := range entries {
		if e.Seq > snap.Seq && e.Success {
			return false
		}
	}
	return true
}

// Resume reloads a journaled match, preferring the cached snapshot and
// falling back to a full replay when the cache is cold, behind or does not
// match the recorded digest and rules. Human
// players come back disconnected.
func Resume(ctx context.Context, j store.Journal, c store.Cache, cat *engine.Catalog, logger *logrus.Logger, id uuid.UUID) (*Match, error) {
	rec, err := j.Match(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading match %s: %w", id, err)
	}
	entries, err := j.Entries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading journal of %s: %w", id, err)
	}

	m := NewMatch(cat, logger)
	m.ID = id
	m.log = m.log.WithField("match_id", id)
	m.Seed = rec.Seed
	m.Rules = rec.Rules
	m.Journal, m.Cache = j, c
	for i, pr := range rec.Players {
		m.Players = append(m.Players, &Player{
			ID:   pr.ID,
			Name: rec.Seats[i].Name,
			Side: uint8(i),
			Seat: rec.Seats[i],
			Bot:  pr.Bot,
		})
	}

	snap, err := c.Get(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("reading snapshot of %s: %w", id, err)
	}
	if err == nil && current(snap, entries) {
		if m.State, err = snap.Restore(rec.Rules); err != nil {
			m.log.WithError(err).Warn("snapshot rejected, replaying journal")
		} else {
			m.log.WithField("seq", snap.Seq).Info("resumed from snapshot")
		}
	}
	if m.State == nil {
		report, err := Replay(ctx, j, cat, id)
		if err != nil {
			return nil, err
		}
		if !report.OK() {
			return nil, fmt.Errorf("match %s does not replay: %d mismatches", id, len(report.Mismatches))
		}
		m.State = report.State
		m.log.WithField("seq", len(entries)).Info("resumed from journal")
	}

	if n := len(entries); n > 0 {
		m.Seq = entries[n-1].Seq
	}
	m.lastHash = engine.Hash(m.State)
	m.Started = true
	m.GameOver = m.State.IsGameOver()
	if !m.GameOver {
		m.Mu.Lock()
		m.onTurnAdvanced()
		m.runBots(ctx)
		m.Mu.Unlock()
	}
	return m, nil
}
