package agent

import engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"

// Feature layout of an encoded position. The viewing side is always encoded
// first, so the same weights serve both seats.
const (
	heroFeatures   = 8 // health, armor, mana, max mana, hand, deck, weapon attack, weapon durability
	minionFeatures = 6 // attack, health, taunt, divine shield, ready, stealth
	BoardSlots     = engine.DefaultMaxBoard
	sideFeatures   = heroFeatures + BoardSlots*minionFeatures
	NumStages      = 3
	InputDim       = 2*sideFeatures + NumStages
)

// Offsets inside one side's block.
const (
	featHealth = iota
	featArmor
	featMana
	featMaxMana
	featHand
	featDeck
	featWeaponAttack
	featWeaponDurability
)

// Offsets inside one minion slot.
const (
	featAttack = iota
	featMinionHealth
	featTaunt
	featDivineShield
	featReady
	featStealth
)

// Stage buckets the match by turn number.
type Stage uint8

const (
	StageEarly Stage = iota // turns 1-4
	StageMid                // turns 5-10
	StageLate               // turn 11 on
)

// StageOf returns the stage for a turn number.
func StageOf(turn int) Stage {
	switch {
	case turn <= 4:
		return StageEarly
	case turn <= 10:
		return StageMid
	}
	return StageLate
}

// MulliganCost is the default threshold above which opening cards are
// returned.
const MulliganCost = 4

// Terminal scores dominate every board evaluation.
const (
	winScore  = 1e6
	lossScore = -1e6
)
