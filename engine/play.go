package engine

import "fmt"

// PlayCard plays instanceID from the active hand. targetID feeds the card's
// battlecry or spell effect. Every precondition is checked before the state
// is touched, so a returned error means nothing happened.
func (g *GameState) PlayCard(cat *Catalog, instanceID, targetID string) error {
	side := g.CurrentTurn & 1
	p := g.Active()

	hi := p.findInHand(instanceID)
	if hi < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, instanceID)
	}
	card := p.Hand[hi]
	def, ok := cat.Lookup(card.CardID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCard, card.CardID)
	}
	if p.Mana.Current < def.ManaCost {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughMana, p.Mana.Current, def.ManaCost)
	}
	if def.Type == CardMinion && len(p.Battlefield) >= g.Rules.boardLimit() {
		return ErrBoardFull
	}

	p.Mana.Current -= def.ManaCost
	p.Hand = append(p.Hand[:hi], p.Hand[hi+1:]...)
	p.Mana.PendingOverload += def.Overload
	p.CardsPlayedThisTurn++
	g.emit(Event{Kind: EventCardPlayed, Side: side, InstanceID: card.InstanceID, CardID: card.CardID, TargetID: targetID})

	switch def.Type {
	case CardMinion:
		g.placeMinion(side, card)
		g.executeEffect(cat, side, def.Battlecry, card.InstanceID, targetID, 0)
	case CardWeapon:
		if p.Weapon != nil {
			p.Graveyard = append(p.Graveyard, *p.Weapon)
		}
		card.CurrentDurability = def.Health
		p.Weapon = &card
		g.executeEffect(cat, side, def.Battlecry, card.InstanceID, targetID, 0)
	case CardSecret:
		p.Secrets = append(p.Secrets, card)
	case CardArtifact:
		if p.Artifact != nil {
			p.Graveyard = append(p.Graveyard, *p.Artifact)
		}
		p.Artifact = &card
	default:
		// Spells and every other one-shot type resolve and go to the graveyard.
		g.executeEffect(cat, side, def.SpellEffect, card.InstanceID, targetID, g.spellPower(cat, side))
		p.Graveyard = append(p.Graveyard, card)
	}

	if p.CardsPlayedThisTurn >= 2 && def.Combo != nil {
		g.executeEffect(cat, side, def.Combo, card.InstanceID, targetID, 0)
	}

	g.resolveDeaths(cat)
	g.CheckGameOver()
	return nil
}

// UseHeroPower spends the active hero's power for this turn.
func (g *GameState) UseHeroPower(cat *Catalog, targetID string) error {
	side := g.CurrentTurn & 1
	p := g.Active()
	if p.HeroPower.Used {
		return ErrHeroPowerUsed
	}
	if p.Mana.Current < p.HeroPower.Cost {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughMana, p.Mana.Current, p.HeroPower.Cost)
	}

	p.Mana.Current -= p.HeroPower.Cost
	p.HeroPower.Used = true
	g.emit(Event{Kind: EventHeroPower, Side: side, TargetID: targetID, Detail: p.HeroPower.Name})
	g.executeEffect(cat, side, p.HeroPower.Effect, HeroTarget, targetID, 0)

	g.resolveDeaths(cat)
	g.CheckGameOver()
	return nil
}
