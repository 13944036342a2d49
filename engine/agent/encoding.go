package agent

import engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"

// Encode writes the feature vector of g as seen by side into out.
// out is zeroed before writing. Minions beyond BoardSlots are dropped.
func Encode(g *engine.GameState, side uint8, out *[InputDim]float32) {
	*out = [InputDim]float32{}
	encodeSide(&g.Players[side&1], out[:sideFeatures])
	encodeSide(&g.Players[(side^1)&1], out[sideFeatures:2*sideFeatures])
	out[2*sideFeatures+int(StageOf(g.TurnNumber))] = 1
}

func encodeSide(p *engine.Player, out []float32) {
	out[featHealth] = float32(p.HeroHealth)
	out[featArmor] = float32(p.HeroArmor)
	out[featMana] = float32(p.Mana.Current)
	out[featMaxMana] = float32(p.Mana.Max)
	out[featHand] = float32(len(p.Hand))
	out[featDeck] = float32(len(p.Deck))
	if p.Weapon != nil {
		out[featWeaponAttack] = float32(p.Weapon.CurrentAttack)
		out[featWeaponDurability] = float32(p.Weapon.CurrentDurability)
	}

	for i := 0; i < BoardSlots && i < len(p.Battlefield); i++ {
		m := &p.Battlefield[i]
		slot := out[heroFeatures+i*minionFeatures:]
		slot[featAttack] = float32(m.CurrentAttack)
		slot[featMinionHealth] = float32(m.CurrentHealth)
		slot[featTaunt] = flag(m.IsTaunt)
		slot[featDivineShield] = flag(m.HasDivineShield)
		slot[featReady] = flag(engine.CanAttack(m))
		slot[featStealth] = flag(m.IsStealth)
	}
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Weights scores an encoded position linearly.
type Weights [InputDim]float32

// DefaultWeights approximates the engine's board evaluation: hero durability,
// card advantage and minion stats, mirrored for the opponent.
func DefaultWeights() *Weights {
	var w Weights
	own := []float32{
		featHealth:           1,
		featArmor:            1,
		featHand:             2,
		featWeaponAttack:     1,
		featWeaponDurability: 1,
	}
	minion := []float32{
		featAttack:       2,
		featMinionHealth: 1,
		featTaunt:        2,
		featDivineShield: 2,
		featReady:        1,
	}
	for side, sign := range []float32{1, -1} {
		base := side * sideFeatures
		for i, v := range own {
			w[base+i] = sign * v
		}
		for s := 0; s < BoardSlots; s++ {
			for i, v := range minion {
				w[base+heroFeatures+s*minionFeatures+i] = sign * v
			}
		}
	}
	return &w
}

// Score returns the weighted sum of the features.
func (w *Weights) Score(features *[InputDim]float32) float32 {
	var s float32
	for i, f := range features {
		s += w[i] * f
	}
	return s
}
