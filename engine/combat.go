package engine

import "fmt"

// maxAttacks returns how many times c may attack per turn.
func maxAttacks(c *CardInstance) int {
	switch {
	case c.HasMegaWindfury:
		return 4
	case c.HasWindfury:
		return 2
	}
	return 1
}

// CanAttack reports whether a minion may declare an attack right now.
func CanAttack(c *CardInstance) bool {
	if c.IsFrozen {
		return false
	}
	if c.IsSummoningSick && !c.HasCharge && !c.IsRush {
		return false
	}
	if c.CurrentAttack <= 0 {
		return false
	}
	return c.AttacksPerformed < maxAttacks(c)
}

// IsValidTarget applies taunt and rush restrictions. defender is nil when the
// hero is targeted. attacker is nil for hero attacks.
func IsValidTarget(defender *CardInstance, targetIsHero bool, defending *Player, attacker *CardInstance) bool {
	if hasActiveTaunt(defending) {
		if targetIsHero {
			return false
		}
		if defender != nil && !defender.IsTaunt {
			return false
		}
	}
	if attacker != nil && attacker.IsRush && attacker.IsSummoningSick && targetIsHero {
		return false
	}
	return true
}

func hasActiveTaunt(p *Player) bool {
	for i := range p.Battlefield {
		if p.Battlefield[i].IsTaunt && !p.Battlefield[i].IsStealth {
			return true
		}
	}
	return false
}

// DealDamageToMinion applies amount to target and returns the health actually
// removed. Vulnerable and bleeding each add StatusDamageBonus before a divine
// shield is consulted; a shield absorbs the whole hit and is consumed.
func DealDamageToMinion(target *CardInstance, amount int) int {
	if amount <= 0 {
		return 0
	}
	if target.IsVulnerable {
		amount += StatusDamageBonus
	}
	if target.IsBleeding {
		amount += StatusDamageBonus
	}
	if target.HasDivineShield {
		target.HasDivineShield = false
		return 0
	}
	target.CurrentHealth -= amount
	return amount
}

// DealDamageToHero removes armor first and health with the remainder.
// It returns the health lost.
func DealDamageToHero(p *Player, amount int) int {
	if amount <= 0 {
		return 0
	}
	if p.HeroArmor >= amount {
		p.HeroArmor -= amount
		return 0
	}
	amount -= p.HeroArmor
	p.HeroArmor = 0
	p.HeroHealth -= amount
	return amount
}

// ---------------------------------------------------------------------------
// Attack resolution
// ---------------------------------------------------------------------------

// ProcessAttack resolves an attack by the active side. attackerID may be
// HeroTarget to swing the equipped weapon; defenderID HeroTarget or ""
// targets the enemy hero. The state is untouched when validation fails.
func (g *GameState) ProcessAttack(cat *Catalog, attackerID, defenderID string) error {
	if attackerID == HeroTarget {
		return g.processHeroAttack(cat, defenderID)
	}
	side := g.CurrentTurn & 1
	active, inactive := g.Active(), g.Inactive()

	ai := active.findMinion(attackerID)
	if ai < 0 {
		return fmt.Errorf("%w: %s", ErrAttackerNotFound, attackerID)
	}
	attacker := &active.Battlefield[ai]
	if !CanAttack(attacker) {
		return fmt.Errorf("%w: %s", ErrCannotAttack, attackerID)
	}

	targetIsHero := defenderID == HeroTarget || defenderID == ""
	var defender *CardInstance
	if !targetIsHero {
		di := inactive.findMinion(defenderID)
		if di < 0 {
			return fmt.Errorf("%w: %s", ErrDefenderNotFound, defenderID)
		}
		defender = &inactive.Battlefield[di]
	}
	if !IsValidTarget(defender, targetIsHero, inactive, attacker) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTarget, attackerID, defenderID)
	}

	damage := attacker.CurrentAttack
	if attacker.IsWeakened {
		damage -= WeakenedPenalty
	}
	if damage < 0 {
		damage = 0
	}

	if targetIsHero {
		DealDamageToHero(inactive, damage)
	} else {
		counter := defender.CurrentAttack
		DealDamageToMinion(defender, damage)
		DealDamageToMinion(attacker, counter)
		if attacker.HasPoisonous && defender.CurrentHealth > 0 {
			defender.CurrentHealth = 0
		}
		if defender.HasPoisonous && attacker.CurrentHealth > 0 {
			attacker.CurrentHealth = 0
		}
	}
	if attacker.HasLifesteal {
		active.healHero(damage)
	}

	attacker.AttacksPerformed++
	attacker.HasAttacked = true
	if attacker.AttacksPerformed >= maxAttacks(attacker) {
		attacker.CanAttack = false
	}
	attacker.IsStealth = false

	g.emit(Event{Kind: EventAttack, Side: side, InstanceID: attackerID, TargetID: defenderTag(defenderID), Amount: damage})
	g.resolveDeaths(cat)
	g.CheckGameOver()
	return nil
}

// heroMaxAttacks mirrors maxAttacks for the equipped weapon.
func heroMaxAttacks(w *CardInstance) int {
	if w == nil {
		return 0
	}
	return maxAttacks(w)
}

// HeroCanAttack reports whether p may swing its weapon.
func HeroCanAttack(p *Player) bool {
	w := p.Weapon
	if w == nil || w.CurrentAttack <= 0 || w.CurrentDurability <= 0 {
		return false
	}
	return p.AttacksPerformedThisTurn < heroMaxAttacks(w)
}

func (g *GameState) processHeroAttack(cat *Catalog, defenderID string) error {
	side := g.CurrentTurn & 1
	active, inactive := g.Active(), g.Inactive()
	if !HeroCanAttack(active) {
		return fmt.Errorf("%w: hero", ErrCannotAttack)
	}

	targetIsHero := defenderID == HeroTarget || defenderID == ""
	var defender *CardInstance
	if !targetIsHero {
		di := inactive.findMinion(defenderID)
		if di < 0 {
			return fmt.Errorf("%w: %s", ErrDefenderNotFound, defenderID)
		}
		defender = &inactive.Battlefield[di]
	}
	if !IsValidTarget(defender, targetIsHero, inactive, nil) {
		return fmt.Errorf("%w: hero -> %s", ErrInvalidTarget, defenderID)
	}

	w := active.Weapon
	damage := w.CurrentAttack
	if targetIsHero {
		DealDamageToHero(inactive, damage)
	} else {
		counter := defender.CurrentAttack
		DealDamageToMinion(defender, damage)
		DealDamageToHero(active, counter)
		if w.HasPoisonous && defender.CurrentHealth > 0 {
			defender.CurrentHealth = 0
		}
	}
	if w.HasLifesteal {
		active.healHero(damage)
	}
	active.AttacksPerformedThisTurn++

	g.emit(Event{Kind: EventAttack, Side: side, InstanceID: HeroTarget, TargetID: defenderTag(defenderID), Amount: damage})
	g.resolveDeaths(cat)
	g.CheckGameOver()
	return nil
}

func defenderTag(id string) string {
	if id == "" {
		return HeroTarget
	}
	return id
}
