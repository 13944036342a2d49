package engine

// DrawCard draws the top card of side's deck into hand. An empty deck deals
// escalating fatigue damage that ignores armor; a full hand burns the card.
func (g *GameState) DrawCard(cat *Catalog, side uint8) {
	p := &g.Players[side&1]
	if len(p.Deck) == 0 {
		p.FatigueCounter++
		p.HeroHealth -= p.FatigueCounter
		g.emit(Event{Kind: EventFatigue, Side: side, Amount: p.FatigueCounter})
		return
	}

	cardID := p.Deck[0]
	p.Deck = p.Deck[1:]
	c := g.newInstance(cat.def(cardID), cardID, side)

	if len(p.Hand) >= g.Rules.handLimit() {
		g.emit(Event{Kind: EventCardBurned, Side: side, InstanceID: c.InstanceID, CardID: cardID})
		return
	}
	p.Hand = append(p.Hand, c)
	g.emit(Event{Kind: EventCardDrawn, Side: side, InstanceID: c.InstanceID, CardID: cardID})
}
