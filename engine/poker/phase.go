package poker

// Phase is one step of a combat round.
type Phase uint8

const (
	PhaseFirstStrike Phase = iota
	PhaseMulligan
	PhaseSpellPet
	PhasePreFlop
	PhaseFaith     // flop
	PhaseForesight // turn
	PhaseDestiny   // river
	PhaseResolution
)

var phaseNames = [...]string{
	PhaseFirstStrike: "first_strike",
	PhaseMulligan:    "mulligan",
	PhaseSpellPet:    "spell_pet",
	PhasePreFlop:     "pre_flop",
	PhaseFaith:       "faith",
	PhaseForesight:   "foresight",
	PhaseDestiny:     "destiny",
	PhaseResolution:  "resolution",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// NextPhase advances one step and stays at resolution.
func NextPhase(p Phase) Phase {
	if p >= PhaseResolution {
		return PhaseResolution
	}
	return p + 1
}

// BettingRound returns the wagering round index 0..3, or -1 for phases
// without betting.
func BettingRound(p Phase) int {
	if p < PhasePreFlop || p > PhaseDestiny {
		return -1
	}
	return int(p - PhasePreFlop)
}

func IsBettingPhase(p Phase) bool { return BettingRound(p) >= 0 }

// IsRevealPhase reports whether community cards are turned in p.
func IsRevealPhase(p Phase) bool { return CardsToReveal(p) > 0 }

// CardsToReveal is the number of community cards turned when p begins.
func CardsToReveal(p Phase) int {
	switch p {
	case PhaseFaith:
		return 3
	case PhaseForesight, PhaseDestiny:
		return 1
	}
	return 0
}

// TotalCommunityCards is the community card count visible at the start of p,
// before p reveals anything.
func TotalCommunityCards(p Phase) int {
	switch p {
	case PhaseForesight:
		return 3
	case PhaseDestiny:
		return 4
	case PhaseResolution:
		return 5
	}
	return 0
}
