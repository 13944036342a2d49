package game

import (
	"github.com/google/uuid"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
)

// ObfPlayerState is one side as seen by a particular viewer. Hand and deck
// contents are only revealed to their owner; everything on the table is
// public.
type ObfPlayerState struct {
	PlayerID      uuid.UUID        `json:"playerId"`
	Name          string           `json:"name"`
	Side          uint8            `json:"side"`
	Connected     bool             `json:"connected"`
	Bot           bool             `json:"bot"`
	IsCurrentTurn bool             `json:"isCurrentTurn"`
	HeroHealth    int              `json:"heroHealth"`
	MaxHealth     int              `json:"maxHealth"`
	HeroArmor     int              `json:"heroArmor"`
	HeroClass     string           `json:"heroClass"`
	HeroPower     engine.HeroPower `json:"heroPower"`
	Mana          engine.ManaPool  `json:"mana"`
	HandSize      int              `json:"handSize"`
	DeckSize      int              `json:"deckSize"`
	SecretCount   int              `json:"secretCount"`
	MulliganDone  bool             `json:"mulliganDone"`

	Battlefield []engine.CardInstance `json:"battlefield"`
	Weapon      *engine.CardInstance  `json:"weapon,omitempty"`
	Artifact    *engine.CardInstance  `json:"artifact,omitempty"`
	Graveyard   []engine.CardInstance `json:"graveyard"`

	// Hand and Secrets are populated only for the viewer's own side.
	Hand    []engine.CardInstance `json:"hand,omitempty"`
	Secrets []engine.CardInstance `json:"secrets,omitempty"`
}

// ObfGameState is the match as seen by a particular viewer.
type ObfGameState struct {
	MatchID         uuid.UUID        `json:"matchId"`
	Seq             int              `json:"seq"`
	Hash            string           `json:"hash"`
	TurnID          int              `json:"turnId"`
	TurnNumber      int              `json:"turnNumber"`
	Phase           string           `json:"phase"`
	CurrentPlayerID uuid.UUID        `json:"currentPlayerId"`
	GameOver        bool             `json:"gameOver"`
	WinnerID        uuid.UUID        `json:"winnerId"`
	Players         []ObfPlayerState `json:"players"`
}

// GetCurrentObfuscatedGameState builds the state forUser may see. An unknown
// viewer gets the spectator view with both hands hidden.
// Assumes lock is held by caller.
func (m *Match) GetCurrentObfuscatedGameState(forUser uuid.UUID) ObfGameState {
	obf := ObfGameState{
		MatchID:  m.ID,
		Seq:      m.Seq,
		Hash:     m.lastHash,
		TurnID:   m.TurnID,
		GameOver: m.GameOver,
		WinnerID: m.Winner(),
	}
	if m.State == nil {
		return obf
	}
	g := m.State
	obf.TurnNumber = g.TurnNumber
	obf.Phase = phaseName(g.Phase)
	if !m.GameOver && g.Phase == engine.PhasePlaying {
		obf.CurrentPlayerID = m.Players[g.ActingPlayer()].ID
	}

	obf.Players = make([]ObfPlayerState, len(m.Players))
	for i, pl := range m.Players {
		ep := &g.Players[pl.Side]
		ps := ObfPlayerState{
			PlayerID:      pl.ID,
			Name:          pl.Name,
			Side:          pl.Side,
			Connected:     pl.Connected,
			Bot:           pl.Bot,
			IsCurrentTurn: obf.CurrentPlayerID == pl.ID,
			HeroHealth:    ep.HeroHealth,
			MaxHealth:     ep.MaxHealth,
			HeroArmor:     ep.HeroArmor,
			HeroClass:     ep.HeroClass.String(),
			HeroPower:     ep.HeroPower,
			Mana:          ep.Mana,
			HandSize:      len(ep.Hand),
			DeckSize:      len(ep.Deck),
			SecretCount:   len(ep.Secrets),
			MulliganDone:  ep.MulliganDone,
			Battlefield:   append([]engine.CardInstance{}, ep.Battlefield...),
			Graveyard:     append([]engine.CardInstance{}, ep.Graveyard...),
			Weapon:        copyCard(ep.Weapon),
			Artifact:      copyCard(ep.Artifact),
		}
		if pl.ID == forUser {
			ps.Hand = append([]engine.CardInstance{}, ep.Hand...)
			ps.Secrets = append([]engine.CardInstance{}, ep.Secrets...)
		}
		obf.Players[i] = ps
	}
	return obf
}

func copyCard(c *engine.CardInstance) *engine.CardInstance {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func phaseName(p engine.Phase) string {
	switch p {
	case engine.PhaseMulligan:
		return "mulligan"
	case engine.PhasePlaying:
		return "playing"
	case engine.PhaseEnded:
		return "ended"
	case engine.PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}
