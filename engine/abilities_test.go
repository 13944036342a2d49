package engine

import (
	"bytes"
	"testing"
)

// run executes e for the self side with src as the source card.
func run(g *GameState, e *EffectDef, src, target string) {
	g.ExecuteEffect(testCatalog, PlayerSelf, e, src, target)
}

func withTarget(e *EffectDef, targetType string) *EffectDef {
	e.TargetType = targetType
	return e
}

func TestEffectDamage(t *testing.T) {
	g := newTestGame()
	m := putStatMinion(g, PlayerOpponent, 1, 5)
	run(g, effect(PatternDamage, 2), "", m)
	if got := mustMinion(g, PlayerOpponent, m).CurrentHealth; got != 3 {
		t.Errorf("minion health = %d, want 3", got)
	}
	run(g, withTarget(effect(PatternDamage, 4), TargetHero), "", "")
	if got := g.Players[PlayerOpponent].HeroHealth; got != 26 {
		t.Errorf("opponent health = %d, want 26", got)
	}
}

func TestEffectAoeDamage(t *testing.T) {
	g := newTestGame()
	own := putStatMinion(g, PlayerSelf, 1, 5)
	foe := putStatMinion(g, PlayerOpponent, 1, 5)

	run(g, effect(PatternAoeDamage, 1), "", "")
	if mustMinion(g, PlayerSelf, own).CurrentHealth != 5 || mustMinion(g, PlayerOpponent, foe).CurrentHealth != 4 {
		t.Error("default aoe should hit only enemy minions")
	}
	run(g, withTarget(effect(PatternAoeDamage, 1), TargetAllMinions), "", "")
	if mustMinion(g, PlayerSelf, own).CurrentHealth != 4 || mustMinion(g, PlayerOpponent, foe).CurrentHealth != 3 {
		t.Error("all_minions aoe should hit both boards")
	}
}

func TestEffectHeal(t *testing.T) {
	g := newTestGame()
	g.Players[PlayerSelf].HeroHealth = 25
	run(g, effect(PatternHeal, 10), "", "")
	if got := g.Players[PlayerSelf].HeroHealth; got != 30 {
		t.Errorf("hero health = %d, want 30 (capped)", got)
	}

	m := putStatMinion(g, PlayerSelf, 1, 6)
	mustMinion(g, PlayerSelf, m).CurrentHealth = 2
	run(g, effect(PatternHeal, 3), "", m)
	if got := mustMinion(g, PlayerSelf, m).CurrentHealth; got != 5 {
		t.Errorf("minion health = %d, want 5", got)
	}
	run(g, effect(PatternHeal, 3), "", m)
	if got := mustMinion(g, PlayerSelf, m).CurrentHealth; got != 6 {
		t.Errorf("minion health = %d, want 6 (capped)", got)
	}
}

func TestEffectBuff(t *testing.T) {
	g := newTestGame()
	a := putStatMinion(g, PlayerSelf, 1, 1)
	b := putStatMinion(g, PlayerSelf, 1, 1)

	e := effect(PatternBuff, 2)
	e.Value2 = 3
	run(g, e, "", a)
	if m := mustMinion(g, PlayerSelf, a); m.CurrentAttack != 3 || m.CurrentHealth != 4 || m.MaxHealth != 4 {
		t.Errorf("buffed = %d/%d (max %d), want 3/4 (max 4)", m.CurrentAttack, m.CurrentHealth, m.MaxHealth)
	}
	run(g, withTarget(e, TargetAllFriendly), "", "")
	if m := mustMinion(g, PlayerSelf, b); m.CurrentAttack != 3 || m.CurrentHealth != 4 {
		t.Errorf("all_friendly buff = %d/%d, want 3/4", m.CurrentAttack, m.CurrentHealth)
	}
}

func TestEffectBuffAdjacent(t *testing.T) {
	g := newTestGame()
	left := putStatMinion(g, PlayerSelf, 1, 1)
	mid := putStatMinion(g, PlayerSelf, 1, 1)
	right := putStatMinion(g, PlayerSelf, 1, 1)
	far := putStatMinion(g, PlayerSelf, 1, 1)

	e := effect(PatternBuffAdjacent, 1)
	e.Value2 = 1
	run(g, e, mid, "")

	for _, tc := range []struct {
		id   string
		want int
	}{{left, 2}, {mid, 1}, {right, 2}, {far, 1}} {
		if got := mustMinion(g, PlayerSelf, tc.id).CurrentAttack; got != tc.want {
			t.Errorf("%s attack = %d, want %d", tc.id, got, tc.want)
		}
	}
}

func TestEffectDraw(t *testing.T) {
	g := newTestGame()
	g.Players[PlayerSelf].Deck = []int{cardFootman, cardFootman, cardFootman}
	run(g, effect(PatternDraw, 2), "", "")
	if n := len(g.Players[PlayerSelf].Hand); n != 2 {
		t.Errorf("hand = %d, want 2", n)
	}
}

func TestEffectSummon(t *testing.T) {
	g := newTestGame()
	e := NewEffectDef(PatternSummon)
	e.CardID = cardShieldwall
	e.Count = 2
	run(g, &e, "", "")

	bf := g.Players[PlayerSelf].Battlefield
	if len(bf) != 2 {
		t.Fatalf("board = %d, want 2", len(bf))
	}
	if !bf[0].IsTaunt || !bf[0].IsSummoningSick || bf[0].InstanceID == bf[1].InstanceID {
		t.Errorf("summoned = %+v", bf)
	}

	e.CardID = 999
	run(g, &e, "", "")
	if len(g.Players[PlayerSelf].Battlefield) != 2 {
		t.Error("summon of an unknown card placed a minion")
	}

	e.CardID = cardFootman
	e.Count = 10
	run(g, &e, "", "")
	if n := len(g.Players[PlayerSelf].Battlefield); n != DefaultMaxBoard {
		t.Errorf("board = %d, want capped at %d", n, DefaultMaxBoard)
	}
}

func TestEffectDestroyAndSetStats(t *testing.T) {
	g := newTestGame()
	a := putStatMinion(g, PlayerOpponent, 5, 5)
	b := putStatMinion(g, PlayerOpponent, 5, 5)

	run(g, effect(PatternDestroy, 0), "", a)
	if got := mustMinion(g, PlayerOpponent, a).CurrentHealth; got != 0 {
		t.Errorf("destroyed health = %d, want 0", got)
	}

	e := effect(PatternSetStats, 1)
	e.Value2 = 1
	run(g, e, "", b)
	if m := mustMinion(g, PlayerOpponent, b); m.CurrentAttack != 1 || m.CurrentHealth != 1 || m.MaxHealth != 1 {
		t.Errorf("set stats = %+v, want 1/1", m)
	}
}

func TestEffectTransform(t *testing.T) {
	g := newTestGame()
	victim := putStatMinion(g, PlayerOpponent, 9, 9)
	e := NewEffectDef(PatternTransform)
	e.CardID = cardShieldwall
	run(g, &e, "", victim)

	bf := g.Players[PlayerOpponent].Battlefield
	if len(bf) != 1 {
		t.Fatalf("board = %d, want 1", len(bf))
	}
	m := bf[0]
	if m.CardID != cardShieldwall || m.CurrentAttack != 2 || m.CurrentHealth != 3 || !m.IsTaunt {
		t.Errorf("transformed = %+v, want 2/3 taunt shieldwall", m)
	}
	if m.InstanceID == victim {
		t.Error("transform kept the old instance id")
	}
}

func TestEffectArmorKeywordFreezeSilence(t *testing.T) {
	g := newTestGame()
	run(g, effect(PatternGainArmor, 5), "", "")
	if got := g.Players[PlayerSelf].HeroArmor; got != 5 {
		t.Errorf("armor = %d, want 5", got)
	}

	own := putStatMinion(g, PlayerSelf, 1, 1)
	m := mustMinion(g, PlayerSelf, own)
	m.IsSummoningSick = true
	m.CanAttack = false
	kw := NewEffectDef(PatternGrantKeyword)
	kw.Keywords = []string{KeywordTaunt, KeywordCharge}
	run(g, &kw, "", own)
	if m := mustMinion(g, PlayerSelf, own); !m.IsTaunt || !m.HasCharge || m.IsSummoningSick || !m.CanAttack {
		t.Errorf("granted = %+v, want ready taunt charge", m)
	}

	foe1 := putMinion(g, PlayerOpponent, cardValkyrie)
	foe2 := putStatMinion(g, PlayerOpponent, 1, 1)
	run(g, effect(PatternFreeze, 0), "", foe1)
	if !mustMinion(g, PlayerOpponent, foe1).IsFrozen || mustMinion(g, PlayerOpponent, foe2).IsFrozen {
		t.Error("single freeze hit the wrong minions")
	}
	run(g, withTarget(effect(PatternFreeze, 0), TargetAllEnemy), "", "")
	if !mustMinion(g, PlayerOpponent, foe2).IsFrozen {
		t.Error("all_enemy freeze missed a minion")
	}

	run(g, effect(PatternSilence, 0), "", foe1)
	if m := mustMinion(g, PlayerOpponent, foe1); m.HasDivineShield || m.IsFrozen || !m.Silenced {
		t.Errorf("silenced = %+v", m)
	}
}

func TestEffectModifyMana(t *testing.T) {
	tests := []struct {
		mode         string
		value        int
		wantCurrent  int
		wantMaxAfter int
	}{
		{ManaGain, 5, 6, 6},
		{ManaGainMax, 2, 6, 8},
		{ManaSet, 0, 0, 6},
	}
	for _, tt := range tests {
		g := newTestGame()
		g.Players[PlayerSelf].Mana = ManaPool{Current: 4, Max: 6}
		run(g, withTarget(effect(PatternModifyMana, tt.value), tt.mode), "", "")
		mana := g.Players[PlayerSelf].Mana
		if mana.Current != tt.wantCurrent || mana.Max != tt.wantMaxAfter {
			t.Errorf("%s: mana = %d/%d, want %d/%d", tt.mode, mana.Current, mana.Max, tt.wantCurrent, tt.wantMaxAfter)
		}
	}

	g := newTestGame()
	g.Players[PlayerSelf].Mana = ManaPool{Current: 9, Max: 9}
	run(g, withTarget(effect(PatternModifyMana, 3), ManaGainMax), "", "")
	if m := g.Players[PlayerSelf].Mana; m.Max != 10 || m.Current != 10 {
		t.Errorf("gain_max past cap = %d/%d, want 10/10", m.Current, m.Max)
	}
}

func TestEffectReturnAndCopyToHand(t *testing.T) {
	g := newTestGame()
	foe := putMinion(g, PlayerOpponent, cardShieldwall)
	run(g, effect(PatternCopyToHand, 0), "", foe)
	if h := g.Players[PlayerSelf].Hand; len(h) != 1 || h[0].CardID != cardShieldwall || h[0].InstanceID == foe {
		t.Errorf("copy = %+v, want a fresh shieldwall", h)
	}

	run(g, effect(PatternReturnToHand, 0), "", foe)
	if len(g.Players[PlayerOpponent].Battlefield) != 0 {
		t.Error("minion still on board")
	}
	if h := g.Players[PlayerOpponent].Hand; len(h) != 1 || h[0].InstanceID != foe {
		t.Errorf("opponent hand = %+v, want the bounced minion", h)
	}

	// A full hand swallows the bounced minion.
	g2 := newTestGame()
	for i := 0; i < DefaultMaxHand; i++ {
		giveCard(g2, PlayerOpponent, cardFootman)
	}
	foe2 := putMinion(g2, PlayerOpponent, cardFootman)
	run(g2, effect(PatternReturnToHand, 0), "", foe2)
	if len(g2.Players[PlayerOpponent].Battlefield) != 0 || len(g2.Players[PlayerOpponent].Hand) != DefaultMaxHand {
		t.Error("bounce into a full hand")
	}
}

func TestEffectDamageAll(t *testing.T) {
	g := newTestGame()
	own := putStatMinion(g, PlayerSelf, 1, 5)
	foe := putStatMinion(g, PlayerOpponent, 1, 5)
	g.Players[PlayerSelf].HeroArmor = 1

	run(g, effect(PatternDamageAll, 2), "", "")
	if mustMinion(g, PlayerSelf, own).CurrentHealth != 3 || mustMinion(g, PlayerOpponent, foe).CurrentHealth != 3 {
		t.Error("damage_all missed a minion")
	}
	if g.Players[PlayerSelf].HeroHealth != 29 || g.Players[PlayerOpponent].HeroHealth != 28 {
		t.Errorf("hero health = %d/%d, want 29/28", g.Players[PlayerSelf].HeroHealth, g.Players[PlayerOpponent].HeroHealth)
	}
}

func TestEffectRandomDamage(t *testing.T) {
	g := newTestGame()
	g.RNGState = 42
	foe := putStatMinion(g, PlayerOpponent, 1, 5)

	e := effect(PatternRandomDamage, 1)
	e.Count = 3
	run(g, e, "", "")
	if got := mustMinion(g, PlayerOpponent, foe).CurrentHealth; got != 2 {
		t.Errorf("health = %d, want 2", got)
	}
	if g.RNGState == 42 {
		t.Error("random_damage did not advance the PRNG")
	}

	// No living targets: nothing to roll.
	g2 := newTestGame()
	g2.RNGState = 42
	run(g2, e, "", "")
	if g2.RNGState != 42 {
		t.Error("random_damage consumed randomness without targets")
	}
}

func TestEffectConditional(t *testing.T) {
	g := newTestGame()
	foe := putStatMinion(g, PlayerOpponent, 1, 5)
	e := effect(PatternConditional, 2)
	e.Condition = ConditionIfBoardEmpty
	e.TargetType = PatternDamage

	run(g, e, "", foe)
	if got := mustMinion(g, PlayerOpponent, foe).CurrentHealth; got != 3 {
		t.Errorf("health = %d, want 3", got)
	}

	putStatMinion(g, PlayerSelf, 1, 1)
	run(g, e, "", foe)
	if got := mustMinion(g, PlayerOpponent, foe).CurrentHealth; got != 3 {
		t.Errorf("condition ignored: health = %d, want 3", got)
	}

	e.Condition = ConditionIfDamaged
	g.Players[PlayerSelf].HeroHealth = 29
	run(g, e, "", foe)
	if got := mustMinion(g, PlayerOpponent, foe).CurrentHealth; got != 1 {
		t.Errorf("if_damaged: health = %d, want 1", got)
	}
}

func TestUnknownPatternIsNoop(t *testing.T) {
	g := newTestGame()
	putStatMinion(g, PlayerOpponent, 1, 1)
	before := Canonical(g)

	run(g, effect("summon_the_kraken", 9), "", HeroTarget)
	run(g, nil, "", "")
	if !bytes.Equal(before, Canonical(g)) {
		t.Error("unknown pattern mutated the state")
	}
	if KnownPattern("summon_the_kraken") || !KnownPattern(PatternFreeze) {
		t.Error("KnownPattern disagrees with the pattern table")
	}

	// Played from hand it still costs its mana and reaches the graveyard.
	id := giveCard(g, PlayerSelf, cardRiddle)
	if err := g.PlayCard(testCatalog, id, ""); err != nil {
		t.Fatal(err)
	}
	if len(g.Players[PlayerSelf].Graveyard) != 1 {
		t.Error("unknown-effect spell not discarded")
	}
}
