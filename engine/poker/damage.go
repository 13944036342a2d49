package poker

// multipliersX100 holds the damage multiplier per rank in hundredths.
var multipliersX100 = [...]int{
	HighCard:          100,
	RuneMark:          105,
	DualRunes:         110,
	ThorsHammer:       115,
	FatesPath:         120,
	OdinsEye:          130,
	ValhallasBlessing: 140,
	GodlyPower:        160,
	DivineAlignment:   180,
	Ragnarok:          200,
}

// MultiplierX100 returns the damage multiplier of rank in hundredths.
// Unknown ranks get 100.
func MultiplierX100(rank HandRank) int {
	if !rank.valid() {
		return 100
	}
	return multipliersX100[rank]
}

// FinalDamage is (base + hpBet) scaled by the rank multiplier and rounded
// down, plus a flat extra.
func FinalDamage(base, hpBet int, rank HandRank, extra int) int {
	return (base+hpBet)*MultiplierX100(rank)/100 + extra
}
