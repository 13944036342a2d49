package poker

import "errors"

// Side identifies a combatant.
type Side int8

const (
	SideNone     Side = -1
	SidePlayer   Side = 0
	SideOpponent Side = 1
)

// Other returns the opposing side. SideNone maps to itself.
func (s Side) Other() Side {
	switch s {
	case SidePlayer:
		return SideOpponent
	case SideOpponent:
		return SidePlayer
	}
	return SideNone
}

func (s Side) valid() bool { return s == SidePlayer || s == SideOpponent }

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	}
	return "none"
}

// Action is a betting decision.
type Action uint8

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
)

var actionNames = [...]string{"fold", "check", "call", "bet", "raise"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Blind structure. The ante is half a chip per side, rounded to one for the pot.
const (
	SmallBlind = 5
	BigBlind   = 10
	AnteTotal  = 1
)

var (
	ErrBadSide   = errors.New("poker: invalid side")
	ErrBadAction = errors.New("poker: invalid action")
	ErrComplete  = errors.New("poker: betting round already complete")
)

// BettingState is the wagering state of one street. Bets and flags are
// indexed by Side.
type BettingState struct {
	Pot           int     `json:"pot"`
	Bets          [2]int  `json:"bets"`
	MinBet        int     `json:"minBet"`
	LastAggressor Side    `json:"lastAggressor"`
	Acted         [2]bool `json:"acted"`
	AllIn         [2]bool `json:"allIn"`
	RoundComplete bool    `json:"roundComplete"`
}

// NewBettingState posts the blinds and the ante. The player holds the big
// blind.
func NewBettingState() BettingState {
	return BettingState{
		Pot:           SmallBlind + BigBlind + AnteTotal,
		Bets:          [2]int{BigBlind, SmallBlind},
		MinBet:        BigBlind,
		LastAggressor: SideNone,
	}
}

// ResetForNewRound opens the next street. The pot and all-in flags carry over.
func (s BettingState) ResetForNewRound() BettingState {
	return BettingState{
		Pot:           s.Pot,
		MinBet:        BigBlind,
		LastAggressor: SideNone,
		AllIn:         s.AllIn,
	}
}

func (s BettingState) maxBet() int { return max(s.Bets[0], s.Bets[1]) }

// CallAmount is what side must add to match the other side.
func (s BettingState) CallAmount(side Side) int {
	if !side.valid() {
		return 0
	}
	return max(s.maxBet()-s.Bets[side], 0)
}

// MinRaise is the smallest committed amount a raise can reach.
func (s BettingState) MinRaise() int { return s.maxBet() + s.MinBet }

// Result is the outcome of one betting action.
type Result struct {
	State         BettingState
	RoundComplete bool
	// FoldWinner is the non-folding side, or SideNone when nobody folded.
	FoldWinner Side
	// Committed is how much the actor added to the pot.
	Committed int
}

// ProcessAction applies action for actor, who has stake chips left behind.
// amount is only read for bets and raises. The input state is not modified.
func ProcessAction(s BettingState, actor Side, action Action, amount, stake int) (Result, error) {
	if !actor.valid() {
		return Result{}, ErrBadSide
	}
	if s.RoundComplete {
		return Result{}, ErrComplete
	}
	stake = max(stake, 0)
	other := actor.Other()
	res := Result{FoldWinner: SideNone}

	commit := func(n int) {
		s.Bets[actor] += n
		s.Pot += n
		res.Committed += n
	}

	switch action {
	case Fold:
		s.Acted[actor] = true
		s.RoundComplete = true
		res.State, res.RoundComplete, res.FoldWinner = s, true, other
		return res, nil

	case Check, Call:
		owed := s.CallAmount(actor)
		if owed >= stake && owed > 0 {
			commit(stake)
			s.AllIn[actor] = true
		} else {
			commit(owed)
		}
		s.Acted[actor] = true

	case Bet, Raise:
		top := s.maxBet()
		target := top + s.MinBet
		if amount > top {
			target = amount
		}
		inc := target - s.Bets[actor]
		if inc >= stake {
			inc = stake
			s.AllIn[actor] = true
		}
		commit(inc)
		s.Acted[actor] = true
		if s.Bets[actor] > top {
			s.Acted[other] = false
			s.LastAggressor = actor
			if raise := s.Bets[actor] - top; raise > s.MinBet {
				s.MinBet = raise
			}
		}

	default:
		return Result{}, ErrBadAction
	}

	s.RoundComplete = s.Acted[0] && s.Acted[1] && s.settled()
	res.State, res.RoundComplete = s, s.RoundComplete
	return res, nil
}

// settled reports whether no more chips can be asked of anyone: the bets
// match, or the side behind is all-in.
func (s BettingState) settled() bool {
	if s.Bets[0] == s.Bets[1] {
		return true
	}
	behind := SidePlayer
	if s.Bets[1] < s.Bets[0] {
		behind = SideOpponent
	}
	return s.AllIn[behind]
}
