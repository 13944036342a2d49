// Package engine implements the Ragnarok card game rules.
//
// The engine is a synchronous, deterministic state machine. Every public
// operation mutates a caller-owned GameState in place and never performs I/O;
// all randomness comes from the 32-bit PRNG state carried inside the
// GameState, so two engines fed the same seed and action sequence produce
// byte-identical canonical encodings and digests.
package engine

import "strconv"

// GameState is the root aggregate of a match. Both players and every card
// instance are reachable only through it.
type GameState struct {
	Players         [2]Player `json:"players"`
	CurrentTurn     uint8     `json:"currentTurn"`
	TurnNumber      int       `json:"turnNumber"`
	Phase           Phase     `json:"gamePhase"`
	Winner          int8      `json:"winner"`
	RNGState        uint32    `json:"rngState"`
	InstanceCounter int       `json:"instanceCounter"`
	Rules           Rules     `json:"rules"`

	// Events is a presentation log for the caller to drain. It never
	// contributes to the canonical encoding.
	Events []Event `json:"events,omitempty"`
}

// NewGameState returns an empty match in the mulligan phase with starting
// health, mana and hero powers for both sides.
func NewGameState(rules Rules) *GameState {
	g := &GameState{
		TurnNumber: 1,
		Phase:      PhaseMulligan,
		Winner:     NoWinner,
		Rules:      rules,
	}
	hp := g.Rules.startingHealth()
	g.Players[PlayerSelf] = NewPlayer(PlayerSelf, hp)
	g.Players[PlayerOpponent] = NewPlayer(PlayerOpponent, hp)
	return g
}

// Seat describes one side before the match starts.
type Seat struct {
	Name      string     `json:"name"`
	Class     HeroClass  `json:"class"`
	HeroID    string     `json:"heroId"`
	HeroPower *HeroPower `json:"heroPower,omitempty"` // nil keeps the default power
	Deck      []int      `json:"deck"`
}

// NewGame seeds the PRNG, shuffles both decks and deals opening hands.
// The match is left in the mulligan phase.
func NewGame(seed uint32, rules Rules, cat *Catalog, first, second Seat) *GameState {
	g := NewGameState(rules)
	g.RNGState = seed
	for side, seat := range [2]Seat{first, second} {
		p := &g.Players[side]
		p.Name = seat.Name
		p.HeroClass = seat.Class
		p.HeroID = seat.HeroID
		if seat.HeroPower != nil {
			p.HeroPower = *seat.HeroPower
			p.HeroPower.Used = false
		}
		p.Deck = append([]int{}, seat.Deck...)
		g.shuffleDeck(uint8(side))
	}
	for side := uint8(0); side < 2; side++ {
		for i := 0; i < g.Rules.openingHand(side); i++ {
			g.DrawCard(cat, side)
		}
	}
	return g
}

// Active returns the player whose turn it is.
func (g *GameState) Active() *Player { return &g.Players[g.CurrentTurn&1] }

// Inactive returns the player waiting for their turn.
func (g *GameState) Inactive() *Player { return &g.Players[opponentOf(g.CurrentTurn&1)] }

// IsGameOver reports whether the match has been decided.
func (g *GameState) IsGameOver() bool { return g.Phase == PhaseGameOver }

// nextInstanceID allocates a fresh, never reused instance id.
func (g *GameState) nextInstanceID() string {
	g.InstanceCounter++
	return instanceIDPrefix + strconv.Itoa(g.InstanceCounter)
}

// newInstance builds a card instance for side from its definition. A missing
// definition yields a stat-less instance that can still sit in a hand.
func (g *GameState) newInstance(def *CardDef, cardID int, side uint8) CardInstance {
	c := CardInstance{
		InstanceID:      g.nextInstanceID(),
		CardID:          cardID,
		IsSummoningSick: true,
		IsPlayerOwned:   side == PlayerSelf,
		EvolutionLevel:  MaxEvolutionLevel,
	}
	if def != nil {
		c.CurrentAttack = def.Attack
		c.CurrentHealth = def.Health
		c.MaxHealth = def.Health
		if def.Type == CardWeapon {
			c.CurrentDurability = def.Health
		}
		applyKeywords(&c, def.Keywords)
	}
	return c
}

// placeMinion puts c at the end of side's battlefield. Charge and rush
// minions arrive ready; everything else is summoning sick.
func (g *GameState) placeMinion(side uint8, c CardInstance) {
	c.IsSummoningSick = !(c.HasCharge || c.IsRush)
	c.CanAttack = !c.IsSummoningSick
	c.AttacksPerformed = 0
	c.HasAttacked = false
	g.Players[side].Battlefield = append(g.Players[side].Battlefield, c)
}

// ---------------------------------------------------------------------------
// PRNG plumbing
// ---------------------------------------------------------------------------

// rand returns a generator positioned at the stored state. Callers must
// write the state back with commitRand.
func (g *GameState) rand() *Rand { return NewRand(g.RNGState) }

func (g *GameState) commitRand(r *Rand) { g.RNGState = r.State() }

// shuffleDeck performs a Fisher-Yates shuffle of side's deck.
func (g *GameState) shuffleDeck(side uint8) {
	deck := g.Players[side].Deck
	r := g.rand()
	r.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	g.commitRand(r)
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// EventKind names a presentation event.
type EventKind string

const (
	EventCardPlayed    EventKind = "card_played"
	EventCardDrawn     EventKind = "card_drawn"
	EventCardBurned    EventKind = "card_burned"
	EventFatigue       EventKind = "fatigue"
	EventAttack        EventKind = "attack"
	EventMinionDied    EventKind = "minion_died"
	EventWeaponBroken  EventKind = "weapon_broken"
	EventHeroPower     EventKind = "hero_power"
	EventMulligan      EventKind = "mulligan"
	EventTurnStarted   EventKind = "turn_started"
	EventGameOver      EventKind = "game_over"
	EventEffectApplied EventKind = "effect_applied"
)

// Event is one entry of the presentation log.
type Event struct {
	Kind       EventKind `json:"kind"`
	Side       uint8     `json:"side"`
	InstanceID string    `json:"instanceId,omitempty"`
	CardID     int       `json:"cardId,omitempty"`
	TargetID   string    `json:"targetId,omitempty"`
	Amount     int       `json:"amount,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}

func (g *GameState) emit(e Event) { g.Events = append(g.Events, e) }

// DrainEvents returns and clears the presentation log.
func (g *GameState) DrainEvents() []Event {
	ev := g.Events
	g.Events = nil
	return ev
}

// ---------------------------------------------------------------------------
// Save / Restore
// ---------------------------------------------------------------------------

// Snapshot is an opaque deep copy of a GameState.
type Snapshot struct{ state *GameState }

// Clone returns a deep copy of g.
func (g *GameState) Clone() *GameState {
	c := *g
	for i := range c.Players {
		c.Players[i] = g.Players[i].clone()
	}
	c.Events = append([]Event(nil), g.Events...)
	return &c
}

func (p Player) clone() Player {
	p.Hand = cloneCards(p.Hand)
	p.Battlefield = cloneCards(p.Battlefield)
	p.Graveyard = cloneCards(p.Graveyard)
	p.Secrets = cloneCards(p.Secrets)
	p.Deck = append([]int{}, p.Deck...)
	if p.Weapon != nil {
		w := *p.Weapon
		p.Weapon = &w
	}
	if p.Artifact != nil {
		a := *p.Artifact
		p.Artifact = &a
	}
	return p
}

func cloneCards(cs []CardInstance) []CardInstance {
	return append([]CardInstance{}, cs...)
}

// Save captures the current state for a later Restore.
func (g *GameState) Save() Snapshot { return Snapshot{state: g.Clone()} }

// Restore overwrites g with a previously saved state.
func (g *GameState) Restore(s Snapshot) {
	if s.state == nil {
		return
	}
	*g = *s.state.Clone()
}

// ActingPlayer returns the side whose turn it is.
func (g *GameState) ActingPlayer() uint8 { return g.CurrentTurn & 1 }
