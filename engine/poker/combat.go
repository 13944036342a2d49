package poker

import "errors"

// CheckThroughDamage is the HP lost by the showdown loser when nobody bet
// or raised on any street.
const CheckThroughDamage = 2

// maxActionsPerStreet bounds a single street. Past it, every decision is
// coerced to a call, which always settles the street.
const maxActionsPerStreet = 32

var (
	ErrCombatOver = errors.New("poker: combat already resolved")
	ErrNotBetting = errors.New("poker: no betting in this phase")
	ErrOutOfTurn  = errors.New("poker: not this side's turn to act")
	ErrStreetOpen = errors.New("poker: betting round not complete")
)

// View is what a side may see when asked to act.
type View struct {
	Side      Side         `json:"side"`
	Phase     Phase        `json:"phase"`
	Hole      []Card       `json:"hole"`
	Community []Card       `json:"community"`
	Betting   BettingState `json:"betting"`
	Stake     int          `json:"stake"`
	ToCall    int          `json:"toCall"`
}

// Policy decides betting actions. amount is read for bets and raises.
type Policy interface {
	Decide(v View) (action Action, amount int)
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(View) (Action, int)

func (f PolicyFunc) Decide(v View) (Action, int) { return f(v) }

// Outcome summarizes a resolved combat.
type Outcome struct {
	// Winner is SideNone on a draw.
	Winner Side `json:"winner"`
	// Folded is the side that folded, or SideNone after a showdown.
	Folded Side `json:"folded"`
	// Damage is the HP the loser gives up.
	Damage int          `json:"damage"`
	Hands  [2]Evaluated `json:"hands"`
	Pot    int          `json:"pot"`
	// Strike is the winner's base attack plus its own commitment, scaled by
	// the winning hand. Zero on a fold or a draw.
	Strike int `json:"strike"`
}

// Combat is one poker-combat round between SidePlayer and SideOpponent.
type Combat struct {
	Phase     Phase        `json:"phase"`
	Hole      [2][]Card    `json:"hole"`
	Community []Card       `json:"community"`
	Betting   BettingState `json:"betting"`
	// HP caps what each side can commit.
	HP        [2]int `json:"hp"`
	Attack    [2]int `json:"attack"`
	Committed [2]int `json:"committed"`

	deck       []Card
	top        int
	toAct      Side
	aggression bool
	streetActs int
	outcome    *Outcome
}

// NewCombat shuffles a deck with s and deals two hole cards to each side,
// alternating from the top, player first.
func NewCombat(s Shuffler, hp, attack [2]int) *Combat {
	c := &Combat{
		Phase:  PhaseFirstStrike,
		HP:     hp,
		Attack: attack,
		deck:   Deal(s),
		toAct:  SideNone,
	}
	for i := 0; i < 2; i++ {
		c.Hole[SidePlayer] = append(c.Hole[SidePlayer], c.draw())
		c.Hole[SideOpponent] = append(c.Hole[SideOpponent], c.draw())
	}
	return c
}

func (c *Combat) draw() Card {
	card := c.deck[c.top]
	c.top++
	return card
}

// Over reports whether the combat is resolved.
func (c *Combat) Over() bool { return c.outcome != nil }

// Outcome returns the result, or nil while the combat is running.
func (c *Combat) Outcome() *Outcome { return c.outcome }

// ToAct is the side that owes a betting decision, or SideNone.
func (c *Combat) ToAct() Side {
	if c.Over() || !IsBettingPhase(c.Phase) || c.Betting.RoundComplete {
		return SideNone
	}
	return c.toAct
}

// Stake is what side can still commit.
func (c *Combat) Stake(side Side) int {
	if !side.valid() {
		return 0
	}
	return max(c.HP[side]-c.Committed[side], 0)
}

// View builds the decision view for side.
func (c *Combat) View(side Side) View {
	v := View{
		Side:      side,
		Phase:     c.Phase,
		Community: append([]Card(nil), c.Community...),
		Betting:   c.Betting,
		Stake:     c.Stake(side),
		ToCall:    c.Betting.CallAmount(side),
	}
	if side.valid() {
		v.Hole = append([]Card(nil), c.Hole[side]...)
	}
	return v
}

// Advance moves to the next phase, revealing community cards and opening
// a new street as needed. It refuses while a street is still open.
func (c *Combat) Advance() error {
	if c.Over() {
		return ErrCombatOver
	}
	if IsBettingPhase(c.Phase) && !c.Betting.RoundComplete {
		return ErrStreetOpen
	}
	c.Phase = NextPhase(c.Phase)
	c.streetActs = 0

	for i := 0; i < CardsToReveal(c.Phase); i++ {
		c.Community = append(c.Community, c.draw())
	}

	switch {
	case c.Phase == PhasePreFlop:
		c.Betting = NewBettingState()
		c.Committed = c.Betting.Bets
		c.toAct = SideOpponent
	case IsBettingPhase(c.Phase):
		c.Betting = c.Betting.ResetForNewRound()
		c.toAct = SidePlayer
	case c.Phase == PhaseResolution:
		c.showdown()
	}
	return nil
}

// Act applies a betting action for side.
func (c *Combat) Act(side Side, action Action, amount int) error {
	if c.Over() {
		return ErrCombatOver
	}
	if !IsBettingPhase(c.Phase) {
		return ErrNotBetting
	}
	if side != c.ToAct() {
		return ErrOutOfTurn
	}
	if c.streetActs >= maxActionsPerStreet && action != Fold {
		action = Call
	}

	res, err := ProcessAction(c.Betting, side, action, amount, c.Stake(side))
	if err != nil {
		return err
	}
	c.streetActs++
	c.Betting = res.State
	c.Committed[side] += res.Committed
	if res.State.LastAggressor != SideNone {
		c.aggression = true
	}

	if res.FoldWinner != SideNone {
		c.Phase = PhaseResolution
		c.resolve(res.FoldWinner, side)
		return nil
	}
	c.toAct = side.Other()
	return nil
}

func (c *Combat) showdown() {
	h0 := FindBestHand(c.Hole[SidePlayer], c.Community)
	h1 := FindBestHand(c.Hole[SideOpponent], c.Community)
	switch Compare(h0, h1) {
	case 1:
		c.resolve(SidePlayer, SideNone)
	case -1:
		c.resolve(SideOpponent, SideNone)
	default:
		c.resolve(SideNone, SideNone)
	}
}

func (c *Combat) resolve(winner, folded Side) {
	out := &Outcome{Winner: winner, Folded: folded, Pot: c.Betting.Pot}
	out.Hands[SidePlayer] = FindBestHand(c.Hole[SidePlayer], c.Community)
	out.Hands[SideOpponent] = FindBestHand(c.Hole[SideOpponent], c.Community)

	switch {
	case folded != SideNone:
		out.Damage = c.Committed[folded]
	case winner == SideNone:
	case !c.aggression:
		out.Damage = CheckThroughDamage
	default:
		out.Damage = c.Committed[winner.Other()]
	}
	if folded == SideNone && winner != SideNone {
		out.Strike = FinalDamage(c.Attack[winner], c.Committed[winner], out.Hands[winner].Rank, 0)
	}
	c.outcome = out
}

// Run drives the combat to resolution, asking policies for every betting
// decision. A side that is all-in checks automatically, and a rejected
// decision is replaced by a call.
func (c *Combat) Run(policies [2]Policy) *Outcome {
	for !c.Over() {
		side := c.ToAct()
		if side == SideNone {
			if err := c.Advance(); err != nil {
				break
			}
			continue
		}
		action, amount := Check, 0
		if !c.Betting.AllIn[side] && policies[side] != nil {
			action, amount = policies[side].Decide(c.View(side))
		}
		if err := c.Act(side, action, amount); err != nil {
			if err := c.Act(side, Call, 0); err != nil {
				break
			}
		}
	}
	return c.outcome
}
