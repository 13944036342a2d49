package engine

import (
	"errors"
	"testing"
)

func TestDivineShieldAbsorbsWholeHit(t *testing.T) {
	c := CardInstance{CurrentAttack: 1, CurrentHealth: 1, MaxHealth: 1, HasDivineShield: true}
	if got := DealDamageToMinion(&c, 50); got != 0 {
		t.Errorf("DealDamageToMinion = %d, want 0", got)
	}
	if c.CurrentHealth != 1 {
		t.Errorf("CurrentHealth = %d, want 1", c.CurrentHealth)
	}
	if c.HasDivineShield {
		t.Error("HasDivineShield still set after absorbing")
	}
	if got := DealDamageToMinion(&c, 1); got != 1 || c.CurrentHealth != 0 {
		t.Errorf("second hit = %d (health %d), want 1 (health 0)", got, c.CurrentHealth)
	}
}

func TestDealDamageToMinionStatusBonus(t *testing.T) {
	tests := []struct {
		name       string
		vulnerable bool
		bleeding   bool
		want       int
	}{
		{"plain", false, false, 2},
		{"vulnerable", true, false, 5},
		{"bleeding", false, true, 5},
		{"both", true, true, 8},
	}
	for _, tt := range tests {
		c := CardInstance{CurrentHealth: 10, IsVulnerable: tt.vulnerable, IsBleeding: tt.bleeding}
		if got := DealDamageToMinion(&c, 2); got != tt.want {
			t.Errorf("%s: DealDamageToMinion = %d, want %d", tt.name, got, tt.want)
		}
		if c.CurrentHealth != 10-tt.want {
			t.Errorf("%s: CurrentHealth = %d, want %d", tt.name, c.CurrentHealth, 10-tt.want)
		}
	}

	c := CardInstance{CurrentHealth: 3, IsVulnerable: true}
	if got := DealDamageToMinion(&c, 0); got != 0 || c.CurrentHealth != 3 {
		t.Errorf("zero damage applied %d, health %d", got, c.CurrentHealth)
	}
}

func TestDealDamageToHeroArmorFirst(t *testing.T) {
	p := NewPlayer(PlayerSelf, 30)
	p.HeroArmor = 5
	if got := DealDamageToHero(&p, 8); got != 3 {
		t.Errorf("DealDamageToHero = %d, want 3", got)
	}
	if p.HeroArmor != 0 || p.HeroHealth != 27 {
		t.Errorf("armor/health = %d/%d, want 0/27", p.HeroArmor, p.HeroHealth)
	}

	p.HeroArmor = 10
	DealDamageToHero(&p, 4)
	if p.HeroArmor != 6 || p.HeroHealth != 27 {
		t.Errorf("armor/health = %d/%d, want 6/27", p.HeroArmor, p.HeroHealth)
	}
}

func TestCanAttack(t *testing.T) {
	tests := []struct {
		name string
		c    CardInstance
		want bool
	}{
		{"ready", CardInstance{CurrentAttack: 1}, true},
		{"frozen", CardInstance{CurrentAttack: 1, IsFrozen: true}, false},
		{"sick", CardInstance{CurrentAttack: 1, IsSummoningSick: true}, false},
		{"sick charge", CardInstance{CurrentAttack: 1, IsSummoningSick: true, HasCharge: true}, true},
		{"sick rush", CardInstance{CurrentAttack: 1, IsSummoningSick: true, IsRush: true}, true},
		{"no attack", CardInstance{}, false},
		{"spent", CardInstance{CurrentAttack: 1, AttacksPerformed: 1}, false},
		{"windfury second", CardInstance{CurrentAttack: 1, HasWindfury: true, AttacksPerformed: 1}, true},
		{"windfury spent", CardInstance{CurrentAttack: 1, HasWindfury: true, AttacksPerformed: 2}, false},
		{"mega windfury", CardInstance{CurrentAttack: 1, HasMegaWindfury: true, AttacksPerformed: 3}, true},
		{"mega windfury spent", CardInstance{CurrentAttack: 1, HasMegaWindfury: true, AttacksPerformed: 4}, false},
	}
	for _, tt := range tests {
		if got := CanAttack(&tt.c); got != tt.want {
			t.Errorf("%s: CanAttack = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsValidTargetTaunt(t *testing.T) {
	g := newTestGame()
	opp := &g.Players[PlayerOpponent]
	plainID := putMinion(g, PlayerOpponent, cardFootman)
	tauntID := putMinion(g, PlayerOpponent, cardShieldwall)
	attacker := &CardInstance{CurrentAttack: 2}

	if IsValidTarget(nil, true, opp, attacker) {
		t.Error("hero targetable through taunt")
	}
	if IsValidTarget(mustMinion(g, PlayerOpponent, plainID), false, opp, attacker) {
		t.Error("non-taunt minion targetable through taunt")
	}
	if !IsValidTarget(mustMinion(g, PlayerOpponent, tauntID), false, opp, attacker) {
		t.Error("taunt minion not targetable")
	}

	mustMinion(g, PlayerOpponent, tauntID).IsStealth = true
	if !IsValidTarget(nil, true, opp, attacker) {
		t.Error("stealthed taunt still guards the hero")
	}
}

func TestIsValidTargetRush(t *testing.T) {
	g := newTestGame()
	opp := &g.Players[PlayerOpponent]
	rusher := &CardInstance{CurrentAttack: 2, IsRush: true, IsSummoningSick: true}
	if IsValidTarget(nil, true, opp, rusher) {
		t.Error("summoning-sick rush minion may hit the hero")
	}
	rusher.IsSummoningSick = false
	if !IsValidTarget(nil, true, opp, rusher) {
		t.Error("rested rush minion may not hit the hero")
	}
}

func TestProcessAttackTrade(t *testing.T) {
	g := newTestGame()
	a := putStatMinion(g, PlayerSelf, 3, 3)
	d := putStatMinion(g, PlayerOpponent, 2, 2)

	if err := g.ProcessAttack(testCatalog, a, d); err != nil {
		t.Fatalf("ProcessAttack: %v", err)
	}
	att := mustMinion(g, PlayerSelf, a)
	if att == nil || att.CurrentHealth != 1 {
		t.Fatalf("attacker = %+v, want health 1", att)
	}
	if !att.HasAttacked || att.AttacksPerformed != 1 || att.CanAttack {
		t.Errorf("attacker bookkeeping = %+v", att)
	}
	if mustMinion(g, PlayerOpponent, d) != nil {
		t.Error("defender still on board")
	}
	if n := len(g.Players[PlayerOpponent].Graveyard); n != 1 {
		t.Errorf("opponent graveyard = %d, want 1", n)
	}
}

func TestProcessAttackPoisonous(t *testing.T) {
	g := newTestGame()
	a := putMinion(g, PlayerSelf, cardAdder)
	d := putStatMinion(g, PlayerOpponent, 0, 10)

	if err := g.ProcessAttack(testCatalog, a, d); err != nil {
		t.Fatal(err)
	}
	if mustMinion(g, PlayerOpponent, d) != nil {
		t.Error("poisonous attack did not destroy the defender")
	}
	if mustMinion(g, PlayerSelf, a) == nil {
		t.Error("adder died to a 0-attack defender")
	}
}

func TestProcessAttackHeroLifesteal(t *testing.T) {
	g := newTestGame()
	a := putStatMinion(g, PlayerSelf, 4, 4)
	mustMinion(g, PlayerSelf, a).HasLifesteal = true
	mustMinion(g, PlayerSelf, a).IsStealth = true
	g.Players[PlayerSelf].HeroHealth = 20

	if err := g.ProcessAttack(testCatalog, a, HeroTarget); err != nil {
		t.Fatal(err)
	}
	if got := g.Players[PlayerOpponent].HeroHealth; got != 26 {
		t.Errorf("opponent health = %d, want 26", got)
	}
	if got := g.Players[PlayerSelf].HeroHealth; got != 24 {
		t.Errorf("own health = %d, want 24", got)
	}
	if mustMinion(g, PlayerSelf, a).IsStealth {
		t.Error("stealth not cleared by attacking")
	}
}

func TestProcessAttackTradeLifesteal(t *testing.T) {
	tests := []struct {
		name     string
		weakened bool
		health   int
		want     int
	}{
		{"full damage", false, 20, 25},
		{"weakened damage", true, 20, 22},
		{"capped at max health", false, 28, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame()
			a := putStatMinion(g, PlayerSelf, 5, 5)
			mustMinion(g, PlayerSelf, a).HasLifesteal = true
			mustMinion(g, PlayerSelf, a).IsWeakened = tt.weakened
			d := putStatMinion(g, PlayerOpponent, 1, 8)
			g.Players[PlayerSelf].HeroHealth = tt.health

			if err := g.ProcessAttack(testCatalog, a, d); err != nil {
				t.Fatal(err)
			}
			if got := g.Players[PlayerSelf].HeroHealth; got != tt.want {
				t.Errorf("own health = %d, want %d", got, tt.want)
			}
			if got := g.Players[PlayerOpponent].HeroHealth; got != 30 {
				t.Errorf("opponent health = %d, want 30 (minion took the hit)", got)
			}
		})
	}
}

func TestProcessAttackWeakened(t *testing.T) {
	g := newTestGame()
	a := putStatMinion(g, PlayerSelf, 2, 2)
	mustMinion(g, PlayerSelf, a).IsWeakened = true
	if err := g.ProcessAttack(testCatalog, a, ""); err != nil {
		t.Fatal(err)
	}
	if got := g.Players[PlayerOpponent].HeroHealth; got != 30 {
		t.Errorf("opponent health = %d, want 30 (weakened floors at 0)", got)
	}
}

func TestProcessAttackWindfury(t *testing.T) {
	g := newTestGame()
	a := putStatMinion(g, PlayerSelf, 1, 5)
	mustMinion(g, PlayerSelf, a).HasWindfury = true
	for i := 0; i < 2; i++ {
		if err := g.ProcessAttack(testCatalog, a, HeroTarget); err != nil {
			t.Fatalf("attack %d: %v", i+1, err)
		}
	}
	if err := g.ProcessAttack(testCatalog, a, HeroTarget); !errors.Is(err, ErrCannotAttack) {
		t.Errorf("third attack = %v, want ErrCannotAttack", err)
	}
	if got := g.Players[PlayerOpponent].HeroHealth; got != 28 {
		t.Errorf("opponent health = %d, want 28", got)
	}
}

func TestProcessAttackRejections(t *testing.T) {
	g := newTestGame()
	a := putStatMinion(g, PlayerSelf, 2, 2)
	putMinion(g, PlayerOpponent, cardShieldwall)
	plain := putMinion(g, PlayerOpponent, cardFootman)
	before := Hash(g)

	tests := []struct {
		name               string
		attacker, defender string
		want               error
	}{
		{"missing attacker", "w-999", HeroTarget, ErrAttackerNotFound},
		{"missing defender", a, "w-999", ErrDefenderNotFound},
		{"through taunt to hero", a, HeroTarget, ErrInvalidTarget},
		{"through taunt to minion", a, plain, ErrInvalidTarget},
		{"hero without weapon", HeroTarget, HeroTarget, ErrCannotAttack},
	}
	for _, tt := range tests {
		if err := g.ProcessAttack(testCatalog, tt.attacker, tt.defender); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
	if Hash(g) != before {
		t.Error("rejected attacks changed the state")
	}
}

func TestHeroWeaponAttack(t *testing.T) {
	g := newTestGame()
	setMana(g, PlayerSelf, 10)
	axe := giveCard(g, PlayerSelf, cardAxe)
	if err := g.PlayCard(testCatalog, axe, ""); err != nil {
		t.Fatal(err)
	}
	d := putStatMinion(g, PlayerOpponent, 2, 5)

	if err := g.ProcessAttack(testCatalog, HeroTarget, d); err != nil {
		t.Fatalf("hero attack: %v", err)
	}
	if got := mustMinion(g, PlayerOpponent, d).CurrentHealth; got != 2 {
		t.Errorf("defender health = %d, want 2", got)
	}
	if got := g.Players[PlayerSelf].HeroHealth; got != 28 {
		t.Errorf("hero health = %d, want 28 after counterattack", got)
	}
	if got := g.Players[PlayerSelf].AttacksPerformedThisTurn; got != 1 {
		t.Errorf("AttacksPerformedThisTurn = %d, want 1", got)
	}
	if err := g.ProcessAttack(testCatalog, HeroTarget, HeroTarget); !errors.Is(err, ErrCannotAttack) {
		t.Errorf("second hero attack = %v, want ErrCannotAttack", err)
	}
}

func TestRemoveDeadMinionsBothSides(t *testing.T) {
	g := newTestGame()
	keep := putStatMinion(g, PlayerSelf, 1, 1)
	putStatMinion(g, PlayerSelf, 1, 0)
	putStatMinion(g, PlayerSelf, 1, -2)
	putStatMinion(g, PlayerOpponent, 1, 0)

	dead := g.RemoveDeadMinions()
	if len(dead) != 3 {
		t.Fatalf("removed %d, want 3", len(dead))
	}
	if bf := g.Players[PlayerSelf].Battlefield; len(bf) != 1 || bf[0].InstanceID != keep {
		t.Errorf("self battlefield = %+v, want only %s", bf, keep)
	}
	if len(g.Players[PlayerSelf].Graveyard) != 2 || len(g.Players[PlayerOpponent].Graveyard) != 1 {
		t.Error("graveyards not filled")
	}
}

func TestCheckGameOver(t *testing.T) {
	tests := []struct {
		name       string
		self, opp  int
		turn       uint8
		wantWinner int8
	}{
		{"alive", 1, 1, PlayerSelf, NoWinner},
		{"self dead", 0, 5, PlayerSelf, int8(PlayerOpponent)},
		{"opponent dead", 5, -1, PlayerSelf, int8(PlayerSelf)},
		{"both dead on self turn", 0, 0, PlayerSelf, int8(PlayerOpponent)},
		{"both dead on opponent turn", -3, 0, PlayerOpponent, int8(PlayerSelf)},
	}
	for _, tt := range tests {
		g := newTestGame()
		g.CurrentTurn = tt.turn
		g.Players[PlayerSelf].HeroHealth = tt.self
		g.Players[PlayerOpponent].HeroHealth = tt.opp
		g.CheckGameOver()
		if g.Winner != tt.wantWinner {
			t.Errorf("%s: Winner = %d, want %d", tt.name, g.Winner, tt.wantWinner)
		}
		if over := tt.wantWinner != NoWinner; g.IsGameOver() != over {
			t.Errorf("%s: IsGameOver = %v, want %v", tt.name, g.IsGameOver(), over)
		}
	}
}
