package engine

import "fmt"

// Mulligan returns the listed hand cards of side to its deck, reshuffles and
// draws the same number of replacements. Each side submits once; play begins
// when both have.
func (g *GameState) Mulligan(cat *Catalog, side uint8, instanceIDs []string) error {
	if g.Phase != PhaseMulligan {
		return ErrNotMulligan
	}
	side &= 1
	p := &g.Players[side]
	if p.MulliganDone {
		return ErrMulliganDone
	}
	seen := make(map[string]bool, len(instanceIDs))
	for _, id := range instanceIDs {
		if seen[id] || p.findInHand(id) < 0 {
			return fmt.Errorf("%w: %s", ErrCardNotInHand, id)
		}
		seen[id] = true
	}

	kept := p.Hand[:0:0]
	for _, c := range p.Hand {
		if seen[c.InstanceID] {
			p.Deck = append(p.Deck, c.CardID)
		} else {
			kept = append(kept, c)
		}
	}
	p.Hand = kept
	if len(instanceIDs) > 0 {
		g.shuffleDeck(side)
	}
	for range instanceIDs {
		g.DrawCard(cat, side)
	}
	p.MulliganDone = true
	g.emit(Event{Kind: EventMulligan, Side: side, Amount: len(instanceIDs)})

	if g.Players[PlayerSelf].MulliganDone && g.Players[PlayerOpponent].MulliganDone {
		g.Phase = PhasePlaying
	}
	return nil
}
