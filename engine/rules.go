package engine

// Rules holds the configurable match limits. Zero fields fall back to the defaults.
type Rules struct {
	MaxBoard          int `json:"maxBoard"` // minions per battlefield
	MaxHand           int `json:"maxHand"`  // cards per hand; draws beyond this burn
	MaxMana           int `json:"maxMana"`  // mana crystal cap
	StartingHealth    int `json:"startingHealth"`
	OpeningHandFirst  int `json:"openingHandFirst"` // cards dealt to the side that acts first
	OpeningHandSecond int `json:"openingHandSecond"`
	PoisonDamage      int `json:"poisonDamage"`  // end-of-turn damage to poisoned minions
	MaxDeathChain     int `json:"maxDeathChain"` // sweep/deathrattle passes before resolution stops
}

const (
	DefaultMaxBoard          = 5
	DefaultMaxHand           = 7
	DefaultMaxMana           = 10
	DefaultStartingHealth    = 30
	DefaultOpeningHandFirst  = 3
	DefaultOpeningHandSecond = 4
	DefaultPoisonDamage      = 3
	DefaultMaxDeathChain     = 16
)

// DefaultRules returns the standard match rules.
func DefaultRules() Rules {
	return Rules{
		MaxBoard:          DefaultMaxBoard,
		MaxHand:           DefaultMaxHand,
		MaxMana:           DefaultMaxMana,
		StartingHealth:    DefaultStartingHealth,
		OpeningHandFirst:  DefaultOpeningHandFirst,
		OpeningHandSecond: DefaultOpeningHandSecond,
		PoisonDamage:      DefaultPoisonDamage,
		MaxDeathChain:     DefaultMaxDeathChain,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (r *Rules) boardLimit() int      { return orDefault(r.MaxBoard, DefaultMaxBoard) }
func (r *Rules) handLimit() int       { return orDefault(r.MaxHand, DefaultMaxHand) }
func (r *Rules) manaLimit() int       { return orDefault(r.MaxMana, DefaultMaxMana) }
func (r *Rules) poisonDamage() int    { return orDefault(r.PoisonDamage, DefaultPoisonDamage) }
func (r *Rules) deathChainLimit() int { return orDefault(r.MaxDeathChain, DefaultMaxDeathChain) }

func (r *Rules) startingHealth() int {
	return orDefault(r.StartingHealth, DefaultStartingHealth)
}

func (r *Rules) openingHand(side uint8) int {
	if side == PlayerSelf {
		return orDefault(r.OpeningHandFirst, DefaultOpeningHandFirst)
	}
	return orDefault(r.OpeningHandSecond, DefaultOpeningHandSecond)
}
