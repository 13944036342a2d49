package engine

import (
	"errors"
	"testing"
)

func TestNewGameDealsOpeningHands(t *testing.T) {
	g := newSeededGame(7)
	if g.Phase != PhaseMulligan {
		t.Errorf("Phase = %d, want mulligan", g.Phase)
	}
	self, opp := &g.Players[PlayerSelf], &g.Players[PlayerOpponent]
	if len(self.Hand) != 3 || len(opp.Hand) != 4 {
		t.Errorf("hands = %d/%d, want 3/4", len(self.Hand), len(opp.Hand))
	}
	total := len(testDeck())
	if len(self.Deck) != total-3 || len(opp.Deck) != total-4 {
		t.Errorf("decks = %d/%d, want %d/%d", len(self.Deck), len(opp.Deck), total-3, total-4)
	}
	if self.Name != "Odin" || opp.HeroClass != ClassRogue {
		t.Errorf("seats not applied: %q %v", self.Name, opp.HeroClass)
	}
	if g.InstanceCounter != 7 {
		t.Errorf("InstanceCounter = %d, want 7", g.InstanceCounter)
	}
	for _, c := range self.Hand {
		if !c.IsPlayerOwned {
			t.Errorf("self card %s not player owned", c.InstanceID)
		}
	}
}

func TestNewGameZeroRulesUseDefaults(t *testing.T) {
	g := NewGame(1, Rules{}, testCatalog, Seat{Deck: testDeck()}, Seat{Deck: testDeck()})
	if g.Players[PlayerSelf].HeroHealth != DefaultStartingHealth {
		t.Errorf("HeroHealth = %d, want %d", g.Players[PlayerSelf].HeroHealth, DefaultStartingHealth)
	}
	if len(g.Players[PlayerOpponent].Hand) != DefaultOpeningHandSecond {
		t.Errorf("opening hand = %d, want %d", len(g.Players[PlayerOpponent].Hand), DefaultOpeningHandSecond)
	}
}

func TestNewGameCustomHeroPower(t *testing.T) {
	hp := &HeroPower{Name: "Rune Strike", Cost: 1, Used: true, Effect: effect(PatternDamage, 1)}
	g := NewGame(1, DefaultRules(), testCatalog, Seat{HeroPower: hp}, Seat{})
	got := g.Players[PlayerSelf].HeroPower
	if got.Name != "Rune Strike" || got.Cost != 1 || got.Used {
		t.Errorf("HeroPower = %+v", got)
	}
	if g.Players[PlayerOpponent].HeroPower.Cost != 2 {
		t.Errorf("default hero power cost = %d, want 2", g.Players[PlayerOpponent].HeroPower.Cost)
	}
}

func TestMulligan(t *testing.T) {
	g := newSeededGame(11)
	self := &g.Players[PlayerSelf]
	swap := self.Hand[0].InstanceID
	deckLen := len(self.Deck)

	res := Apply(g, testCatalog, Action{Kind: ActionMulligan, Side: PlayerSelf, InstanceIDs: []string{swap}})
	if !res.Success {
		t.Fatal(res.Error)
	}
	if len(self.Hand) != 3 || len(self.Deck) != deckLen {
		t.Errorf("hand/deck = %d/%d, want 3/%d", len(self.Hand), len(self.Deck), deckLen)
	}
	if self.findInHand(swap) >= 0 {
		t.Error("returned card still in hand")
	}
	if g.Phase != PhaseMulligan {
		t.Error("phase advanced before both sides submitted")
	}

	if err := g.Mulligan(testCatalog, PlayerSelf, nil); !errors.Is(err, ErrMulliganDone) {
		t.Errorf("second mulligan = %v, want ErrMulliganDone", err)
	}

	opp := &g.Players[PlayerOpponent]
	id := opp.Hand[0].InstanceID
	if err := g.Mulligan(testCatalog, PlayerOpponent, []string{id, id}); !errors.Is(err, ErrCardNotInHand) {
		t.Errorf("duplicate ids = %v, want ErrCardNotInHand", err)
	}
	if opp.MulliganDone {
		t.Error("failed mulligan marked done")
	}

	if err := g.Mulligan(testCatalog, PlayerOpponent, nil); err != nil {
		t.Fatal(err)
	}
	if g.Phase != PhasePlaying {
		t.Errorf("Phase = %d, want playing", g.Phase)
	}
	if err := g.Mulligan(testCatalog, PlayerOpponent, nil); !errors.Is(err, ErrNotMulligan) {
		t.Errorf("mulligan while playing = %v, want ErrNotMulligan", err)
	}
}

func TestSaveRestore(t *testing.T) {
	g := newSeededGame(5)
	snap := g.Save()
	before := Hash(g)

	g.Players[PlayerSelf].Hand[0].CurrentAttack = 99
	g.Players[PlayerOpponent].Deck[0] = 404
	g.RNGState++
	if Hash(g) == before {
		t.Fatal("mutation not visible in digest")
	}

	g.Restore(snap)
	if Hash(g) != before {
		t.Error("Restore did not bring back the saved state")
	}

	// The snapshot survives mutation of the restored state.
	g.Players[PlayerSelf].Hand = nil
	g.Restore(snap)
	if Hash(g) != before {
		t.Error("snapshot aliased the live state")
	}

	g.Restore(Snapshot{})
	if Hash(g) != before {
		t.Error("empty snapshot changed the state")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := newTestGame()
	putMinion(g, PlayerSelf, cardFootman)
	g.Players[PlayerSelf].Weapon = &CardInstance{InstanceID: "w-50", CurrentDurability: 2}

	c := g.Clone()
	c.Players[PlayerSelf].Battlefield[0].CurrentHealth = 0
	c.Players[PlayerSelf].Weapon.CurrentDurability = 0
	if g.Players[PlayerSelf].Battlefield[0].CurrentHealth != 2 || g.Players[PlayerSelf].Weapon.CurrentDurability != 2 {
		t.Error("clone shares memory with the original")
	}
	if g.ActingPlayer() != PlayerSelf {
		t.Errorf("ActingPlayer = %d, want self", g.ActingPlayer())
	}
}

func TestDrainEvents(t *testing.T) {
	g := newTestGame()
	g.Players[PlayerSelf].Deck = []int{cardFootman}
	g.DrawCard(testCatalog, PlayerSelf)
	ev := g.DrainEvents()
	if len(ev) != 1 || ev[0].Kind != EventCardDrawn {
		t.Errorf("events = %+v, want one card_drawn", ev)
	}
	if len(g.DrainEvents()) != 0 {
		t.Error("DrainEvents did not clear the log")
	}
}
