// Package game hosts live matches: it maps player UUIDs onto engine sides,
// serializes access to the engine, journals every action, broadcasts what
// each viewer may see and plays for absent or automated seats.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/engine/agent"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/store"
)

// OnGameEndFunc runs once when a match finishes. winner is uuid.Nil on a draw.
type OnGameEndFunc func(matchID uuid.UUID, winner uuid.UUID)

// GameEventType names a broadcast event.
type GameEventType string

const (
	EventMatchStarted          GameEventType = "match_started"
	EventPlayerTurn            GameEventType = "player_turn"
	EventActionApplied         GameEventType = "action_applied"
	EventPlayerTimeout         GameEventType = "player_timeout"
	EventPlayerDisconnected    GameEventType = "player_disconnected"
	EventPlayerReconnected     GameEventType = "player_reconnected"
	EventMatchEnd              GameEventType = "match_end"
	EventPrivateSyncState      GameEventType = "private_sync_state"
	EventPrivateActionRejected GameEventType = "private_action_rejected"
	EventPrivateDigestMismatch GameEventType = "private_digest_mismatch"
)

// EventUser identifies a player within a GameEvent.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Side uint8     `json:"side"`
}

// GameEvent is the envelope for everything sent to clients.
type GameEvent struct {
	Type   GameEventType  `json:"type"`
	User   *EventUser     `json:"user,omitempty"`
	Seq    int            `json:"seq,omitempty"`
	Hash   string         `json:"hash,omitempty"`
	Action *engine.Action `json:"action,omitempty"`
	// Events is the engine's presentation log for the action, with hidden
	// information removed.
	Events []engine.Event `json:"events,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`

	State *ObfGameState `json:"state,omitempty"`
}

// Session errors. Engine rule violations come back in engine.Result instead.
var (
	ErrMatchFull       = errors.New("match already has two players")
	ErrNotStarted      = errors.New("match has not started")
	ErrAlreadyStarted  = errors.New("match already started")
	ErrMatchOver       = errors.New("match is over")
	ErrUnknownPlayer   = errors.New("player is not in this match")
	ErrDisconnected    = errors.New("player is disconnected")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrMulliganPending = errors.New("mulligan still in progress")
)

// Player is one seat of a match.
type Player struct {
	ID        uuid.UUID
	Name      string
	Side      uint8
	Seat      engine.Seat
	Connected bool
	// Bot seats are played by the agent on every turn.
	Bot bool
}

// Match is a single two-player game session.
type Match struct {
	ID      uuid.UUID
	Seed    uint32
	Rules   engine.Rules
	Catalog *engine.Catalog
	Players []*Player

	State *engine.GameState
	// Seq counts journaled actions, accepted or not.
	Seq      int
	lastHash string

	TurnID       int
	TurnDuration time.Duration
	turnTimer    *time.Timer

	Started  bool
	GameOver bool
	// forfeit is the side that conceded, or -1.
	forfeit int

	Journal store.Journal
	Cache   store.Cache
	Agent   *agent.Bot
	log     *logrus.Entry

	Mu sync.Mutex

	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc
}

// NewMatch creates an empty match using in-memory persistence. Replace
// Journal and Cache before Start to persist elsewhere.
func NewMatch(cat *engine.Catalog, logger *logrus.Logger) *Match {
	id := uuid.New()
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Match{
		ID:           id,
		Rules:        engine.DefaultRules(),
		Catalog:      cat,
		TurnDuration: 75 * time.Second,
		forfeit:      -1,
		Journal:      store.NewMemoryJournal(),
		Cache:        store.NewMemoryCache(0),
		Agent:        agent.NewBot(cat),
		log:          logger.WithField("match_id", id),
	}
}

// AddPlayer seats p on the next free side. The first player added acts first.
func (m *Match) AddPlayer(p *Player) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if m.Started {
		return ErrAlreadyStarted
	}
	if len(m.Players) == 2 {
		return ErrMatchFull
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Seat.Name == "" {
		p.Seat.Name = p.Name
	}
	p.Side = uint8(len(m.Players))
	p.Connected = !p.Bot
	m.Players = append(m.Players, p)
	m.log.WithFields(logrus.Fields{"player": p.ID, "side": p.Side, "bot": p.Bot}).Info("player seated")
	return nil
}

// Start deals the opening hands, records the match and lets automated
// seats take their mulligans.
func (m *Match) Start(ctx context.Context, seed uint32) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if m.Started {
		return ErrAlreadyStarted
	}
	if len(m.Players) != 2 {
		return fmt.Errorf("need 2 players to start, have %d", len(m.Players))
	}
	m.Seed = seed
	m.State = engine.NewGame(seed, m.Rules, m.Catalog, m.Players[0].Seat, m.Players[1].Seat)
	m.State.DrainEvents()
	m.lastHash = engine.Hash(m.State)

	if err := m.Journal.CreateMatch(ctx, m.record()); err != nil {
		return fmt.Errorf("recording match %s: %w", m.ID, err)
	}
	m.cacheSnapshot(ctx)
	m.Started = true

	m.log.WithFields(logrus.Fields{"seed": seed, "hash": m.lastHash}).Info("match started")
	m.fireEvent(GameEvent{Type: EventMatchStarted, Hash: m.lastHash})
	m.syncAll()
	m.onTurnAdvanced()
	m.runBots(ctx)
	return nil
}

func (m *Match) record() store.MatchRecord {
	rec := store.MatchRecord{
		ID:        m.ID,
		Seed:      m.Seed,
		Rules:     m.Rules,
		CreatedAt: time.Now().UTC(),
	}
	for i, p := range m.Players {
		rec.Seats[i] = p.Seat
		rec.Players[i] = store.PlayerRecord{ID: p.ID, Bot: p.Bot}
	}
	return rec
}

// HandleAction applies a player's action. Session-level problems (unknown
// player, wrong turn) are returned as errors and never reach the journal;
// engine rejections are journaled and reported in the result.
func (m *Match) HandleAction(ctx context.Context, playerID uuid.UUID, a engine.Action) (engine.Result, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	switch {
	case !m.Started:
		return engine.Result{}, ErrNotStarted
	case m.GameOver:
		return engine.Result{}, ErrMatchOver
	}
	p := m.getPlayerByID(playerID)
	if p == nil {
		return engine.Result{}, ErrUnknownPlayer
	}
	if !p.Connected {
		return engine.Result{}, ErrDisconnected
	}

	if a.Kind == engine.ActionMulligan {
		a.Side = p.Side
	} else {
		if m.State.Phase == engine.PhaseMulligan {
			return engine.Result{}, ErrMulliganPending
		}
		if m.State.ActingPlayer() != p.Side {
			return engine.Result{}, ErrNotYourTurn
		}
	}

	res := m.apply(ctx, p, a)
	m.runBots(ctx)
	return res, nil
}

// VerifyDigest compares a client's digest of the state after action seq
// with the authoritative one. On a mismatch the client gets a fresh sync.
func (m *Match) VerifyDigest(playerID uuid.UUID, seq int, hash string) bool {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	p := m.getPlayerByID(playerID)
	if p == nil || !m.Started {
		return false
	}
	if seq == m.Seq && hash == m.lastHash {
		return true
	}
	m.log.WithFields(logrus.Fields{
		"player": playerID, "seq": seq, "hash": hash,
		"want_seq": m.Seq, "want_hash": m.lastHash,
	}).Warn("client digest mismatch")
	state := m.GetCurrentObfuscatedGameState(playerID)
	m.fireEventToPlayer(playerID, GameEvent{
		Type:  EventPrivateDigestMismatch,
		Seq:   m.Seq,
		Hash:  m.lastHash,
		State: &state,
	})
	return false
}

// Forfeit concedes the match for playerID.
func (m *Match) Forfeit(playerID uuid.UUID) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if !m.Started {
		return ErrNotStarted
	}
	if m.GameOver {
		return ErrMatchOver
	}
	p := m.getPlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	m.forfeit = int(p.Side)
	m.log.WithField("side", p.Side).Info("player forfeited")
	m.endMatch()
	return nil
}

// Winner returns the winning player's ID, or uuid.Nil while undecided or
// on a draw.
func (m *Match) Winner() uuid.UUID {
	if m.forfeit >= 0 {
		return m.Players[1-m.forfeit].ID
	}
	if m.State == nil || m.State.Winner < 0 {
		return uuid.Nil
	}
	return m.Players[m.State.Winner].ID
}

// owes reports whether side must act before the match can progress.
func (m *Match) owes(side uint8) bool {
	if m.GameOver || m.State == nil || m.State.IsGameOver() {
		return false
	}
	if m.State.Phase == engine.PhaseMulligan {
		return !m.State.Players[side].MulliganDone
	}
	return m.State.ActingPlayer() == side
}

// runBots lets the agent act for every automated seat that owes an action.
// Assumes lock is held by caller.
func (m *Match) runBots(ctx context.Context) {
	for progressed := true; progressed && !m.GameOver; {
		progressed = false
		for _, p := range m.Players {
			if p.Bot && m.owes(p.Side) {
				m.autoPlay(ctx, p)
				progressed = true
			}
		}
	}
}

// autoPlay lets the agent act for p until p no longer owes an action.
// Assumes lock is held by caller.
func (m *Match) autoPlay(ctx context.Context, p *Player) {
	limit := m.Agent.MaxSteps
	if limit <= 0 {
		limit = agent.DefaultMaxSteps
	}
	for steps := 0; m.owes(p.Side); steps++ {
		var a engine.Action
		switch {
		case m.State.Phase == engine.PhaseMulligan:
			a = m.Agent.Mulligan(m.State, p.Side)
		case steps >= limit:
			a = engine.Action{Kind: engine.ActionEndTurn}
		default:
			var err error
			if a, err = m.Agent.Choose(m.State); err != nil {
				m.log.WithError(err).WithField("side", p.Side).Error("agent could not choose")
				return
			}
		}
		if res := m.apply(ctx, p, a); res.Success {
			continue
		}
		// The agent only picks legal actions, so a rejection means the state
		// moved under it; pass the turn rather than loop.
		fallback := engine.Action{Kind: engine.ActionEndTurn}
		if m.State.Phase == engine.PhaseMulligan {
			fallback = engine.Action{Kind: engine.ActionMulligan, Side: p.Side}
		}
		if res := m.apply(ctx, p, fallback); !res.Success {
			m.log.WithField("side", p.Side).Error("agent fallback rejected: " + res.Error)
			return
		}
	}
}

// onTurnAdvanced opens a new turn window and arms its timer.
// Assumes lock is held by caller.
func (m *Match) onTurnAdvanced() {
	m.TurnID++
	if m.GameOver {
		return
	}
	m.broadcastPlayerTurn()
	m.scheduleNextTurnTimer()
}

// SetTurnDuration changes the turn window and restarts the clock for the
// current turn. Zero disables the timer.
func (m *Match) SetTurnDuration(d time.Duration) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.TurnDuration = d
	m.scheduleNextTurnTimer()
}

// scheduleNextTurnTimer arms the timer for the current turn window.
// Assumes lock is held by caller.
func (m *Match) scheduleNextTurnTimer() {
	if m.turnTimer != nil {
		m.turnTimer.Stop()
		m.turnTimer = nil
	}
	if m.TurnDuration <= 0 || m.GameOver || !m.Started {
		return
	}
	turnID := m.TurnID
	m.turnTimer = time.AfterFunc(m.TurnDuration, func() {
		m.Mu.Lock()
		defer m.Mu.Unlock()
		if m.GameOver || m.TurnID != turnID {
			return
		}
		m.handleTimeout(context.Background())
	})
}

// handleTimeout hands every seat that still owes an action to the agent.
// Assumes lock is held by caller.
func (m *Match) handleTimeout(ctx context.Context) {
	turnID := m.TurnID
	for _, p := range m.Players {
		if !m.owes(p.Side) {
			continue
		}
		m.log.WithFields(logrus.Fields{"side": p.Side, "turn": turnID}).Info("player timed out")
		m.fireEvent(GameEvent{Type: EventPlayerTimeout, User: &EventUser{ID: p.ID, Side: p.Side}})
		m.autoPlay(ctx, p)
	}
	m.runBots(ctx)
	if !m.GameOver && m.TurnID == turnID {
		// The agent could not move the match on; keep the clock running.
		m.scheduleNextTurnTimer()
	}
}

func (m *Match) broadcastPlayerTurn() {
	if m.State.Phase == engine.PhaseMulligan {
		m.fireEvent(GameEvent{Type: EventPlayerTurn, Payload: map[string]interface{}{"turn": m.TurnID, "phase": "mulligan"}})
		return
	}
	p := m.Players[m.State.ActingPlayer()]
	m.log.WithFields(logrus.Fields{"turn": m.TurnID, "side": p.Side}).Debug("turn started")
	m.fireEvent(GameEvent{
		Type:    EventPlayerTurn,
		User:    &EventUser{ID: p.ID, Side: p.Side},
		Payload: map[string]interface{}{"turn": m.TurnID, "turnNumber": m.State.TurnNumber},
	})
}

// HandleDisconnect marks a player as gone. If they owe an action the agent
// takes over at once.
func (m *Match) HandleDisconnect(playerID uuid.UUID) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	p := m.getPlayerByID(playerID)
	if p == nil || !p.Connected {
		return
	}
	p.Connected = false
	m.log.WithField("player", playerID).Info("player disconnected")
	m.fireEvent(GameEvent{Type: EventPlayerDisconnected, User: &EventUser{ID: p.ID, Side: p.Side}})

	if m.Started && !m.GameOver && m.owes(p.Side) {
		m.handleTimeout(context.Background())
	}
}

// HandleReconnect marks a player as back and sends them a full sync.
func (m *Match) HandleReconnect(playerID uuid.UUID) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	p := m.getPlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.Connected = true
	m.log.WithField("player", playerID).Info("player reconnected")
	m.fireEvent(GameEvent{Type: EventPlayerReconnected, User: &EventUser{ID: p.ID, Side: p.Side}})
	m.sendSyncState(playerID)
	return nil
}

// endMatch stops the clock, announces the result and runs OnGameEnd.
// Assumes lock is held by caller.
func (m *Match) endMatch() {
	if m.GameOver {
		return
	}
	m.GameOver = true
	if m.turnTimer != nil {
		m.turnTimer.Stop()
		m.turnTimer = nil
	}
	winner := m.Winner()
	payload := map[string]interface{}{"turnNumber": m.State.TurnNumber}
	if m.forfeit >= 0 {
		payload["forfeit"] = m.Players[m.forfeit].ID
	}
	m.log.WithFields(logrus.Fields{"winner": winner, "seq": m.Seq, "hash": m.lastHash}).Info("match ended")
	ev := GameEvent{Type: EventMatchEnd, Seq: m.Seq, Hash: m.lastHash, Payload: payload}
	if winner != uuid.Nil {
		ev.User = &EventUser{ID: winner, Side: m.getPlayerByID(winner).Side}
	}
	m.fireEvent(ev)
	if m.OnGameEnd != nil {
		m.OnGameEnd(m.ID, winner)
	}
}

func (m *Match) getPlayerByID(id uuid.UUID) *Player {
	for _, p := range m.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *Match) fireEvent(ev GameEvent) {
	if m.BroadcastFn != nil {
		m.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends ev to one connected human player.
func (m *Match) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if m.BroadcastToPlayerFn == nil {
		return
	}
	if p := m.getPlayerByID(playerID); p != nil && p.Connected && !p.Bot {
		m.BroadcastToPlayerFn(playerID, ev)
	}
}

func (m *Match) sendSyncState(playerID uuid.UUID) {
	state := m.GetCurrentObfuscatedGameState(playerID)
	m.fireEventToPlayer(playerID, GameEvent{Type: EventPrivateSyncState, Seq: m.Seq, Hash: m.lastHash, State: &state})
}

func (m *Match) syncAll() {
	for _, p := range m.Players {
		m.sendSyncState(p.ID)
	}
}
