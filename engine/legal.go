package engine

// targetedPatterns take a single chosen target rather than an area.
var targetedPatterns = map[string]bool{
	PatternDamage:       true,
	PatternHeal:         true,
	PatternBuff:         true,
	PatternDestroy:      true,
	PatternTransform:    true,
	PatternGrantKeyword: true,
	PatternSetStats:     true,
	PatternFreeze:       true,
	PatternSilence:      true,
	PatternReturnToHand: true,
	PatternCopyToHand:   true,
}

// needsTarget reports whether e resolves against a chosen target.
func needsTarget(e *EffectDef) bool {
	if e == nil || !targetedPatterns[e.Pattern] {
		return false
	}
	switch e.TargetType {
	case TargetHero, TargetAllMinions, TargetAllFriendly, TargetAllEnemy:
		return false
	}
	return true
}

// LegalActions lists every action the engine would currently accept, in a
// stable order: mulligans, card plays, attacks, hero power, end turn.
// Draw-card is a scripted action and is never listed.
func LegalActions(g *GameState, cat *Catalog) []Action {
	if g == nil || g.IsGameOver() {
		return nil
	}
	var out []Action
	if g.Phase == PhaseMulligan {
		for side := uint8(0); side < 2; side++ {
			if !g.Players[side].MulliganDone {
				out = append(out, Action{Kind: ActionMulligan, Side: side})
			}
		}
		return out
	}

	p, opp := g.Active(), g.Inactive()
	targets := g.effectTargets()

	for _, c := range p.Hand {
		def, ok := cat.Lookup(c.CardID)
		if !ok || p.Mana.Current < def.ManaCost {
			continue
		}
		if def.Type == CardMinion && len(p.Battlefield) >= g.Rules.boardLimit() {
			continue
		}
		effect := def.SpellEffect
		if def.Type == CardMinion || def.Type == CardWeapon {
			effect = def.Battlecry
		}
		if needsTarget(effect) {
			for _, t := range targets {
				out = append(out, Action{Kind: ActionPlayCard, CardInstanceID: c.InstanceID, TargetID: t})
			}
			continue
		}
		out = append(out, Action{Kind: ActionPlayCard, CardInstanceID: c.InstanceID})
	}

	for i := range p.Battlefield {
		a := &p.Battlefield[i]
		if !CanAttack(a) {
			continue
		}
		if IsValidTarget(nil, true, opp, a) {
			out = append(out, Action{Kind: ActionAttack, AttackerID: a.InstanceID, DefenderID: HeroTarget})
		}
		for j := range opp.Battlefield {
			d := &opp.Battlefield[j]
			if IsValidTarget(d, false, opp, a) {
				out = append(out, Action{Kind: ActionAttack, AttackerID: a.InstanceID, DefenderID: d.InstanceID})
			}
		}
	}
	if HeroCanAttack(p) {
		if IsValidTarget(nil, true, opp, nil) {
			out = append(out, Action{Kind: ActionAttack, AttackerID: HeroTarget, DefenderID: HeroTarget})
		}
		for j := range opp.Battlefield {
			d := &opp.Battlefield[j]
			if IsValidTarget(d, false, opp, nil) {
				out = append(out, Action{Kind: ActionAttack, AttackerID: HeroTarget, DefenderID: d.InstanceID})
			}
		}
	}

	if !p.HeroPower.Used && p.Mana.Current >= p.HeroPower.Cost {
		if needsTarget(p.HeroPower.Effect) {
			for _, t := range targets {
				out = append(out, Action{Kind: ActionHeroPower, TargetID: t})
			}
		} else {
			out = append(out, Action{Kind: ActionHeroPower})
		}
	}

	return append(out, Action{Kind: ActionEndTurn})
}

// effectTargets lists every minion on both boards plus the enemy hero.
func (g *GameState) effectTargets() []string {
	var ts []string
	for _, side := range []uint8{opponentOf(g.CurrentTurn & 1), g.CurrentTurn & 1} {
		for _, m := range g.Players[side].Battlefield {
			ts = append(ts, m.InstanceID)
		}
	}
	return append(ts, HeroTarget)
}
