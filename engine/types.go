package engine

// CardType classifies a catalog definition.
type CardType uint8

const (
	CardMinion     CardType = 0
	CardSpell      CardType = 1
	CardWeapon     CardType = 2
	CardHero       CardType = 3
	CardSecret     CardType = 4
	CardLocation   CardType = 5
	CardPokerSpell CardType = 6
	CardArtifact   CardType = 7
	CardArmor      CardType = 8
)

var cardTypeNames = [...]string{
	CardMinion:     "minion",
	CardSpell:      "spell",
	CardWeapon:     "weapon",
	CardHero:       "hero",
	CardSecret:     "secret",
	CardLocation:   "location",
	CardPokerSpell: "poker_spell",
	CardArtifact:   "artifact",
	CardArmor:      "armor",
}

func (t CardType) String() string {
	if int(t) < len(cardTypeNames) {
		return cardTypeNames[t]
	}
	return "unknown"
}

// ParseCardType maps an authored type name to its CardType.
func ParseCardType(s string) (CardType, bool) {
	for i, name := range cardTypeNames {
		if name == s {
			return CardType(i), true
		}
	}
	return 0, false
}

// HeroClass identifies the class a card or hero belongs to.
type HeroClass uint8

const (
	ClassWarrior     HeroClass = 0
	ClassMage        HeroClass = 1
	ClassHunter      HeroClass = 2
	ClassPaladin     HeroClass = 3
	ClassPriest      HeroClass = 4
	ClassRogue       HeroClass = 5
	ClassShaman      HeroClass = 6
	ClassWarlock     HeroClass = 7
	ClassDruid       HeroClass = 8
	ClassDeathKnight HeroClass = 9
	ClassDemonHunter HeroClass = 10
	ClassNeutral     HeroClass = 11
	ClassMonk        HeroClass = 12
)

var heroClassNames = [...]string{
	ClassWarrior:     "warrior",
	ClassMage:        "mage",
	ClassHunter:      "hunter",
	ClassPaladin:     "paladin",
	ClassPriest:      "priest",
	ClassRogue:       "rogue",
	ClassShaman:      "shaman",
	ClassWarlock:     "warlock",
	ClassDruid:       "druid",
	ClassDeathKnight: "deathknight",
	ClassDemonHunter: "demonhunter",
	ClassNeutral:     "neutral",
	ClassMonk:        "monk",
}

func (c HeroClass) String() string {
	if int(c) < len(heroClassNames) {
		return heroClassNames[c]
	}
	return "unknown"
}

// ParseHeroClass maps an authored class name to its HeroClass.
func ParseHeroClass(s string) (HeroClass, bool) {
	for i, name := range heroClassNames {
		if name == s {
			return HeroClass(i), true
		}
	}
	return 0, false
}

// Phase is the overall match phase.
type Phase uint8

const (
	PhaseMulligan Phase = 0
	PhasePlaying  Phase = 1
	PhaseEnded    Phase = 2
	PhaseGameOver Phase = 3
)

// Seats. PlayerSelf always acts first.
const (
	PlayerSelf     uint8 = 0
	PlayerOpponent uint8 = 1
)

// NoWinner is the Winner value while the match is undecided.
const NoWinner int8 = -1

// HeroTarget addresses a hero instead of a minion in target and attacker ids.
const HeroTarget = "hero"

// Fixed combat modifiers.
const (
	StatusDamageBonus = 3 // extra damage taken while vulnerable, and again while bleeding
	WeakenedPenalty   = 3 // attack lost while weakened
	MaxEvolutionLevel = 3

	instanceIDPrefix     = "w-"
	defaultHeroPowerCost = 2
)

// Keywords understood on cards and by grant_keyword effects.
const (
	KeywordTaunt        = "taunt"
	KeywordDivineShield = "divine_shield"
	KeywordStealth      = "stealth"
	KeywordWindfury     = "windfury"
	KeywordMegaWindfury = "mega_windfury"
	KeywordLifesteal    = "lifesteal"
	KeywordPoisonous    = "poisonous"
	KeywordCharge       = "charge"
	KeywordRush         = "rush"
)

// ---------------------------------------------------------------------------
// Catalog records
// ---------------------------------------------------------------------------

// EffectDef is a data-only ability description run by the effect interpreter.
type EffectDef struct {
	Pattern    string   `json:"pattern" mapstructure:"pattern"`
	Value      int      `json:"value" mapstructure:"value"`
	Value2     int      `json:"value2" mapstructure:"value2"`
	TargetType string   `json:"targetType" mapstructure:"targetType"`
	Condition  string   `json:"condition" mapstructure:"condition"`
	Keywords   []string `json:"keywords" mapstructure:"keywords"`
	CardID     int      `json:"cardId" mapstructure:"cardId"`
	Count      int      `json:"count" mapstructure:"count"`
}

// NewEffectDef returns an effect with the catalog defaults applied.
func NewEffectDef(pattern string) EffectDef {
	return EffectDef{Pattern: pattern, Condition: "none", Count: 1}
}

// CardDef is an immutable catalog entry.
type CardDef struct {
	ID          int        `json:"id" mapstructure:"id"`
	Name        string     `json:"name" mapstructure:"name"`
	Type        CardType   `json:"cardType" mapstructure:"cardType"`
	ManaCost    int        `json:"manaCost" mapstructure:"manaCost"`
	Attack      int        `json:"attack" mapstructure:"attack"`
	Health      int        `json:"health" mapstructure:"health"` // durability for weapons
	Class       HeroClass  `json:"heroClass" mapstructure:"heroClass"`
	Rarity      string     `json:"rarity" mapstructure:"rarity"`
	Race        string     `json:"race" mapstructure:"race"`
	Keywords    []string   `json:"keywords" mapstructure:"keywords"`
	Battlecry   *EffectDef `json:"battlecry,omitempty" mapstructure:"battlecry"`
	Deathrattle *EffectDef `json:"deathrattle,omitempty" mapstructure:"deathrattle"`
	SpellEffect *EffectDef `json:"spellEffect,omitempty" mapstructure:"spellEffect"`
	Combo       *EffectDef `json:"combo,omitempty" mapstructure:"combo"`
	Overload    int        `json:"overload" mapstructure:"overload"`
	SpellDamage int        `json:"spellDamage" mapstructure:"spellDamage"`
	HeroID      string     `json:"heroId" mapstructure:"heroId"`
	ArmorSlot   string     `json:"armorSlot" mapstructure:"armorSlot"`
}

// HasKeyword reports whether the definition lists kw.
func (d *CardDef) HasKeyword(kw string) bool {
	for _, k := range d.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Match records
// ---------------------------------------------------------------------------

// CardInstance is one concrete card during a match.
type CardInstance struct {
	InstanceID        string `json:"instanceId"`
	CardID            int    `json:"cardId"`
	CurrentAttack     int    `json:"currentAttack"`
	CurrentHealth     int    `json:"currentHealth"`
	MaxHealth         int    `json:"maxHealth"`
	CurrentDurability int    `json:"currentDurability"`

	CanAttack        bool `json:"canAttack"`
	IsSummoningSick  bool `json:"isSummoningSick"`
	HasAttacked      bool `json:"hasAttacked"`
	HasDivineShield  bool `json:"hasDivineShield"`
	IsFrozen         bool `json:"isFrozen"`
	IsStealth        bool `json:"isStealth"`
	IsTaunt          bool `json:"isTaunt"`
	IsRush           bool `json:"isRush"`
	HasCharge        bool `json:"hasCharge"`
	HasWindfury      bool `json:"hasWindfury"`
	HasMegaWindfury  bool `json:"hasMegaWindfury"`
	HasLifesteal     bool `json:"hasLifesteal"`
	HasPoisonous     bool `json:"hasPoisonous"`
	Silenced         bool `json:"silenced"`
	AttacksPerformed int  `json:"attacksPerformed"`
	IsPlayerOwned    bool `json:"isPlayerOwned"`
	EvolutionLevel   int  `json:"evolutionLevel"` // 1 mortal, 2 ascended, 3 divine

	IsPoisonedDoT bool `json:"isPoisonedDoT"`
	IsBleeding    bool `json:"isBleeding"`
	IsParalyzed   bool `json:"isParalyzed"`
	IsWeakened    bool `json:"isWeakened"`
	IsVulnerable  bool `json:"isVulnerable"`
	IsMarked      bool `json:"isMarked"`
}

// applyKeywords sets the flag for every recognised keyword. Unknown keywords are ignored.
func applyKeywords(c *CardInstance, keywords []string) {
	for _, kw := range keywords {
		switch kw {
		case KeywordTaunt:
			c.IsTaunt = true
		case KeywordDivineShield:
			c.HasDivineShield = true
		case KeywordStealth:
			c.IsStealth = true
		case KeywordWindfury:
			c.HasWindfury = true
		case KeywordMegaWindfury:
			c.HasMegaWindfury = true
		case KeywordLifesteal:
			c.HasLifesteal = true
		case KeywordPoisonous:
			c.HasPoisonous = true
		case KeywordCharge:
			c.HasCharge = true
		case KeywordRush:
			c.IsRush = true
		}
	}
}

// silence strips every keyword and status flag.
func silence(c *CardInstance) {
	c.Silenced = true
	c.IsTaunt = false
	c.HasDivineShield = false
	c.IsStealth = false
	c.HasWindfury = false
	c.HasMegaWindfury = false
	c.HasLifesteal = false
	c.HasPoisonous = false
	c.HasCharge = false
	c.IsRush = false
	c.IsFrozen = false
	c.IsPoisonedDoT = false
	c.IsBleeding = false
	c.IsParalyzed = false
	c.IsWeakened = false
	c.IsVulnerable = false
	c.IsMarked = false
}

// ManaPool tracks spendable mana and overload.
type ManaPool struct {
	Current         int `json:"current"`
	Max             int `json:"max"`
	Overloaded      int `json:"overloaded"`
	PendingOverload int `json:"pendingOverload"`
}

// HeroPower is the hero's once-per-turn ability. Effect is optional.
type HeroPower struct {
	Name   string     `json:"name"`
	Cost   int        `json:"cost"`
	Used   bool       `json:"used"`
	Effect *EffectDef `json:"effect,omitempty"`
}

// Player is one side of the match.
type Player struct {
	ID          uint8          `json:"id"`
	Name        string         `json:"name"`
	Hand        []CardInstance `json:"hand"`
	Battlefield []CardInstance `json:"battlefield"`
	Deck        []int          `json:"deck"` // catalog ids, front is drawn first
	Graveyard   []CardInstance `json:"graveyard"`
	Secrets     []CardInstance `json:"secrets"`
	Weapon      *CardInstance  `json:"weapon"`
	Artifact    *CardInstance  `json:"artifact"`
	Mana        ManaPool       `json:"mana"`

	HeroHealth int       `json:"heroHealth"`
	MaxHealth  int       `json:"maxHealth"`
	HeroArmor  int       `json:"heroArmor"`
	HeroClass  HeroClass `json:"heroClass"`
	HeroID     string    `json:"heroId"`
	HeroPower  HeroPower `json:"heroPower"`

	CardsPlayedThisTurn      int  `json:"cardsPlayedThisTurn"`
	AttacksPerformedThisTurn int  `json:"attacksPerformedThisTurn"` // hero attacks
	FatigueCounter           int  `json:"fatigueCounter"`
	MulliganDone             bool `json:"mulliganDone"`
}

// NewPlayer returns a player with starting mana, health and hero power.
func NewPlayer(id uint8, health int) Player {
	return Player{
		ID:          id,
		Hand:        []CardInstance{},
		Battlefield: []CardInstance{},
		Deck:        []int{},
		Graveyard:   []CardInstance{},
		Secrets:     []CardInstance{},
		Mana:        ManaPool{Current: 1, Max: 1},
		HeroHealth:  health,
		MaxHealth:   health,
		HeroClass:   ClassNeutral,
		HeroPower:   HeroPower{Cost: defaultHeroPowerCost},
	}
}

// findMinion returns the battlefield index of instanceID, or -1.
func (p *Player) findMinion(instanceID string) int {
	for i := range p.Battlefield {
		if p.Battlefield[i].InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// findInHand returns the hand index of instanceID, or -1.
func (p *Player) findInHand(instanceID string) int {
	for i := range p.Hand {
		if p.Hand[i].InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// healHero restores hero health up to the maximum.
func (p *Player) healHero(amount int) {
	if amount <= 0 {
		return
	}
	p.HeroHealth += amount
	if p.HeroHealth > p.MaxHealth {
		p.HeroHealth = p.MaxHealth
	}
}

func opponentOf(side uint8) uint8 { return 1 - side }
