package engine

// Fixture card ids.
const (
	cardFootman    = 1  // 1 mana 1/2
	cardShieldwall = 2  // 2 mana 2/3 taunt
	cardBerserker  = 3  // 3 mana 3/1 charge
	cardFireball   = 4  // 4 mana spell, 6 damage
	cardLightning  = 5  // 1 mana spell, 3 damage, overload 2
	cardAxe        = 6  // 2 mana weapon 3/2
	cardDragonkin  = 7  // 3 mana 2/2, deathrattle summons a footman
	cardSorcerer   = 8  // 2 mana 1/3, spell damage +1
	cardCutthroat  = 9  // 2 mana 2/2, combo deals 2
	cardValkyrie   = 10 // 1 mana 1/1 divine shield
	cardFlameNova  = 11 // 3 mana spell, 2 damage to enemy minions
	cardSnare      = 12 // 2 mana secret
	cardRune       = 13 // 1 mana artifact
	cardAdder      = 14 // 1 mana 1/1 poisonous
	cardWolf       = 15 // 2 mana 2/2 rush
	cardGreataxe   = 16 // 4 mana weapon 5/1
	cardRiddle     = 17 // spell whose effect pattern is not implemented
	cardEmberling  = 18 // 1 mana 1/1, deathrattle deals 1 to enemy minions
)

func effect(pattern string, value int) *EffectDef {
	e := NewEffectDef(pattern)
	e.Value = value
	return &e
}

var testCatalog = func() *Catalog {
	summonFootman := NewEffectDef(PatternSummon)
	summonFootman.CardID = cardFootman
	nova := effect(PatternAoeDamage, 2)
	nova.TargetType = TargetAllEnemy
	embers := effect(PatternAoeDamage, 1)
	embers.TargetType = TargetAllEnemy

	c := NewCatalog().MustRegister(
		CardDef{ID: cardFootman, Name: "Footman", Type: CardMinion, ManaCost: 1, Attack: 1, Health: 2},
		CardDef{ID: cardShieldwall, Name: "Shieldwall", Type: CardMinion, ManaCost: 2, Attack: 2, Health: 3, Keywords: []string{KeywordTaunt}},
		CardDef{ID: cardBerserker, Name: "Berserker", Type: CardMinion, ManaCost: 3, Attack: 3, Health: 1, Keywords: []string{KeywordCharge}},
		CardDef{ID: cardFireball, Name: "Fireball", Type: CardSpell, ManaCost: 4, SpellEffect: effect(PatternDamage, 6)},
		CardDef{ID: cardLightning, Name: "Lightning", Type: CardSpell, ManaCost: 1, Overload: 2, SpellEffect: effect(PatternDamage, 3)},
		CardDef{ID: cardAxe, Name: "Axe", Type: CardWeapon, ManaCost: 2, Attack: 3, Health: 2},
		CardDef{ID: cardDragonkin, Name: "Dragonkin", Type: CardMinion, ManaCost: 3, Attack: 2, Health: 2, Deathrattle: &summonFootman},
		CardDef{ID: cardSorcerer, Name: "Sorcerer", Type: CardMinion, ManaCost: 2, Attack: 1, Health: 3, SpellDamage: 1},
		CardDef{ID: cardCutthroat, Name: "Cutthroat", Type: CardMinion, ManaCost: 2, Attack: 2, Health: 2, Combo: effect(PatternDamage, 2)},
		CardDef{ID: cardValkyrie, Name: "Valkyrie", Type: CardMinion, ManaCost: 1, Attack: 1, Health: 1, Keywords: []string{KeywordDivineShield}},
		CardDef{ID: cardFlameNova, Name: "Flame Nova", Type: CardSpell, ManaCost: 3, SpellEffect: nova},
		CardDef{ID: cardSnare, Name: "Snare", Type: CardSecret, ManaCost: 2},
		CardDef{ID: cardRune, Name: "Rune", Type: CardArtifact, ManaCost: 1},
		CardDef{ID: cardAdder, Name: "Adder", Type: CardMinion, ManaCost: 1, Attack: 1, Health: 1, Keywords: []string{KeywordPoisonous}},
		CardDef{ID: cardWolf, Name: "Wolf", Type: CardMinion, ManaCost: 2, Attack: 2, Health: 2, Keywords: []string{KeywordRush}},
		CardDef{ID: cardGreataxe, Name: "Greataxe", Type: CardWeapon, ManaCost: 4, Attack: 5, Health: 1},
		CardDef{ID: cardRiddle, Name: "Riddle", Type: CardSpell, ManaCost: 0, SpellEffect: effect("summon_the_kraken", 9)},
		CardDef{ID: cardEmberling, Name: "Emberling", Type: CardMinion, ManaCost: 1, Attack: 1, Health: 1, Deathrattle: embers},
	)
	c.Freeze()
	return c
}()

// newTestGame returns a match already past the mulligan with empty zones.
func newTestGame() *GameState {
	g := NewGameState(DefaultRules())
	g.Phase = PhasePlaying
	g.Players[PlayerSelf].MulliganDone = true
	g.Players[PlayerOpponent].MulliganDone = true
	return g
}

// giveCard puts a fresh instance of cardID into side's hand.
func giveCard(g *GameState, side uint8, cardID int) string {
	c := g.newInstance(testCatalog.def(cardID), cardID, side)
	g.Players[side].Hand = append(g.Players[side].Hand, c)
	return c.InstanceID
}

// putMinion places a ready-to-attack instance of cardID on side's board.
func putMinion(g *GameState, side uint8, cardID int) string {
	c := g.newInstance(testCatalog.def(cardID), cardID, side)
	g.placeMinion(side, c)
	m := &g.Players[side].Battlefield[len(g.Players[side].Battlefield)-1]
	m.IsSummoningSick = false
	m.CanAttack = true
	return c.InstanceID
}

// putStatMinion places a ready footman with overridden stats.
func putStatMinion(g *GameState, side uint8, attack, health int) string {
	id := putMinion(g, side, cardFootman)
	m := mustMinion(g, side, id)
	m.CurrentAttack = attack
	m.CurrentHealth = health
	m.MaxHealth = health
	return id
}

func mustMinion(g *GameState, side uint8, id string) *CardInstance {
	i := g.Players[side].findMinion(id)
	if i < 0 {
		return nil
	}
	return &g.Players[side].Battlefield[i]
}

func setMana(g *GameState, side uint8, n int) {
	g.Players[side].Mana.Current = n
	g.Players[side].Mana.Max = n
}
