package engine

// Effect pattern tags understood by the interpreter.
const (
	PatternDamage       = "damage"
	PatternAoeDamage    = "aoe_damage"
	PatternHeal         = "heal"
	PatternBuff         = "buff"
	PatternBuffAdjacent = "buff_adjacent"
	PatternDraw         = "draw"
	PatternSummon       = "summon"
	PatternDestroy      = "destroy"
	PatternTransform    = "transform"
	PatternGainArmor    = "gain_armor"
	PatternGrantKeyword = "grant_keyword"
	PatternSetStats     = "set_stats"
	PatternFreeze       = "freeze"
	PatternSilence      = "silence"
	PatternModifyMana   = "modify_mana"
	PatternReturnToHand = "return_to_hand"
	PatternCopyToHand   = "copy_to_hand"
	PatternDamageAll    = "damage_all"
	PatternRandomDamage = "random_damage"
	PatternConditional  = "conditional"
)

// Target selector and condition tags with special meaning.
const (
	TargetHero        = "hero"
	TargetAllMinions  = "all_minions"
	TargetAllFriendly = "all_friendly"
	TargetAllEnemy    = "all_enemy"
	TargetEnemyMinion = "enemy_minion"

	ManaGain    = "gain"
	ManaGainMax = "gain_max"
	ManaSet     = "set"

	ConditionNone         = "none"
	ConditionCombo        = "combo"
	ConditionIfDamaged    = "if_damaged"
	ConditionIfHandEmpty  = "if_hand_empty"
	ConditionIfBoardEmpty = "if_board_empty"
)

// effectCtx carries one effect invocation. The interpreter keeps no state
// between invocations.
type effectCtx struct {
	g          *GameState
	cat        *Catalog
	side       uint8
	active     *Player
	inactive   *Player
	sourceID   string
	targetID   string
	spellPower int
}

type patternFunc func(x *effectCtx, e *EffectDef)

var patterns map[string]patternFunc

func init() {
	patterns = map[string]patternFunc{
		PatternDamage:       applyDamage,
		PatternAoeDamage:    applyAoeDamage,
		PatternHeal:         applyHeal,
		PatternBuff:         applyBuff,
		PatternBuffAdjacent: applyBuffAdjacent,
		PatternDraw:         applyDraw,
		PatternSummon:       applySummon,
		PatternDestroy:      applyDestroy,
		PatternTransform:    applyTransform,
		PatternGainArmor:    applyGainArmor,
		PatternGrantKeyword: applyGrantKeyword,
		PatternSetStats:     applySetStats,
		PatternFreeze:       applyFreeze,
		PatternSilence:      applySilence,
		PatternModifyMana:   applyModifyMana,
		PatternReturnToHand: applyReturnToHand,
		PatternCopyToHand:   applyCopyToHand,
		PatternDamageAll:    applyDamageAll,
		PatternRandomDamage: applyRandomDamage,
		PatternConditional:  applyConditional,
	}
}

// KnownPattern reports whether the interpreter implements pattern.
func KnownPattern(pattern string) bool {
	_, ok := patterns[pattern]
	return ok
}

// ExecuteEffect runs e on behalf of side. sourceID is the card that owns the
// effect and targetID the chosen target, if any. Unknown patterns and nil
// effects are ignored.
func (g *GameState) ExecuteEffect(cat *Catalog, side uint8, e *EffectDef, sourceID, targetID string) {
	g.executeEffect(cat, side, e, sourceID, targetID, 0)
}

func (g *GameState) executeEffect(cat *Catalog, side uint8, e *EffectDef, sourceID, targetID string, spellPower int) {
	if e == nil {
		return
	}
	fn, ok := patterns[e.Pattern]
	if !ok {
		return
	}
	side &= 1
	x := &effectCtx{
		g:          g,
		cat:        cat,
		side:       side,
		active:     &g.Players[side],
		inactive:   &g.Players[opponentOf(side)],
		sourceID:   sourceID,
		targetID:   targetID,
		spellPower: spellPower,
	}
	fn(x, e)
	g.emit(Event{Kind: EventEffectApplied, Side: side, InstanceID: sourceID, TargetID: targetID, Detail: e.Pattern})
}

// spellPower sums the spell damage bonus of side's battlefield.
func (g *GameState) spellPower(cat *Catalog, side uint8) int {
	total := 0
	for _, m := range g.Players[side&1].Battlefield {
		if m.Silenced {
			continue
		}
		if def := cat.def(m.CardID); def != nil {
			total += def.SpellDamage
		}
	}
	return total
}

// minion finds id on the listed boards in order.
func minion(id string, boards ...*Player) *CardInstance {
	for _, p := range boards {
		if i := p.findMinion(id); i >= 0 {
			return &p.Battlefield[i]
		}
	}
	return nil
}

func buffMinion(m *CardInstance, attack, health int) {
	m.CurrentAttack += attack
	m.CurrentHealth += health
	m.MaxHealth += health
}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

func applyDamage(x *effectCtx, e *EffectDef) {
	amount := e.Value + x.spellPower
	if e.TargetType == TargetHero || x.targetID == HeroTarget {
		DealDamageToHero(x.inactive, amount)
		return
	}
	if m := minion(x.targetID, x.inactive, x.active); m != nil {
		DealDamageToMinion(m, amount)
	}
}

func applyAoeDamage(x *effectCtx, e *EffectDef) {
	amount := e.Value + x.spellPower
	if e.TargetType == TargetAllMinions {
		for i := range x.active.Battlefield {
			DealDamageToMinion(&x.active.Battlefield[i], amount)
		}
	}
	for i := range x.inactive.Battlefield {
		DealDamageToMinion(&x.inactive.Battlefield[i], amount)
	}
}

func applyHeal(x *effectCtx, e *EffectDef) {
	if e.TargetType == TargetHero || x.targetID == HeroTarget || x.targetID == "" {
		x.active.healHero(e.Value)
		return
	}
	if m := minion(x.targetID, x.active); m != nil {
		m.CurrentHealth += e.Value
		if m.CurrentHealth > m.MaxHealth {
			m.CurrentHealth = m.MaxHealth
		}
	}
}

func applyBuff(x *effectCtx, e *EffectDef) {
	if e.TargetType == TargetAllFriendly {
		for i := range x.active.Battlefield {
			buffMinion(&x.active.Battlefield[i], e.Value, e.Value2)
		}
		return
	}
	if m := minion(x.targetID, x.active); m != nil {
		buffMinion(m, e.Value, e.Value2)
	}
}

func applyBuffAdjacent(x *effectCtx, e *EffectDef) {
	bf := x.active.Battlefield
	i := x.active.findMinion(x.sourceID)
	if i < 0 {
		return
	}
	if i > 0 {
		buffMinion(&bf[i-1], e.Value, e.Value2)
	}
	if i < len(bf)-1 {
		buffMinion(&bf[i+1], e.Value, e.Value2)
	}
}

func applyDraw(x *effectCtx, e *EffectDef) {
	n := e.Value
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		x.g.DrawCard(x.cat, x.side)
	}
}

func applySummon(x *effectCtx, e *EffectDef) {
	def := x.cat.def(e.CardID)
	if def == nil {
		return
	}
	n := e.Count
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if len(x.active.Battlefield) >= x.g.Rules.boardLimit() {
			return
		}
		x.g.placeMinion(x.side, x.g.newInstance(def, e.CardID, x.side))
	}
}

func applyDestroy(x *effectCtx, e *EffectDef) {
	if m := minion(x.targetID, x.inactive, x.active); m != nil {
		m.CurrentHealth = 0
	}
}

func applyTransform(x *effectCtx, e *EffectDef) {
	def := x.cat.def(e.CardID)
	if def == nil {
		return
	}
	for _, p := range []*Player{x.active, x.inactive} {
		i := p.findMinion(x.targetID)
		if i < 0 {
			continue
		}
		owned := p.Battlefield[i].IsPlayerOwned
		c := x.g.newInstance(def, e.CardID, p.ID)
		c.IsPlayerOwned = owned
		c.IsSummoningSick = !(c.HasCharge || c.IsRush)
		c.CanAttack = !c.IsSummoningSick
		p.Battlefield[i] = c
		return
	}
}

func applyGainArmor(x *effectCtx, e *EffectDef) {
	x.active.HeroArmor += e.Value
}

// applyGrantKeyword only affects friendly minions. Charge and rush make the
// minion ready immediately.
func applyGrantKeyword(x *effectCtx, e *EffectDef) {
	m := minion(x.targetID, x.active)
	if m == nil {
		return
	}
	applyKeywords(m, e.Keywords)
	if m.HasCharge || m.IsRush {
		m.IsSummoningSick = false
		m.CanAttack = true
	}
}

func applySetStats(x *effectCtx, e *EffectDef) {
	if m := minion(x.targetID, x.active, x.inactive); m != nil {
		m.CurrentAttack = e.Value
		m.CurrentHealth = e.Value2
		m.MaxHealth = e.Value2
	}
}

func applyFreeze(x *effectCtx, e *EffectDef) {
	if e.TargetType == TargetAllEnemy {
		for i := range x.inactive.Battlefield {
			x.inactive.Battlefield[i].IsFrozen = true
		}
		return
	}
	if m := minion(x.targetID, x.inactive); m != nil {
		m.IsFrozen = true
	}
}

func applySilence(x *effectCtx, e *EffectDef) {
	if m := minion(x.targetID, x.active, x.inactive); m != nil {
		silence(m)
	}
}

func applyModifyMana(x *effectCtx, e *EffectDef) {
	mana := &x.active.Mana
	switch e.TargetType {
	case ManaGain:
		mana.Current += e.Value
		if mana.Current > mana.Max {
			mana.Current = mana.Max
		}
	case ManaGainMax:
		mana.Max += e.Value
		if limit := x.g.Rules.manaLimit(); mana.Max > limit {
			mana.Max = limit
		}
		mana.Current += e.Value
		if mana.Current > mana.Max {
			mana.Current = mana.Max
		}
	case ManaSet:
		mana.Current = e.Value
	}
}

// applyReturnToHand removes the target from play. It only reaches its
// owner's hand when there is room.
func applyReturnToHand(x *effectCtx, e *EffectDef) {
	for _, p := range []*Player{x.active, x.inactive} {
		i := p.findMinion(x.targetID)
		if i < 0 {
			continue
		}
		c := p.Battlefield[i]
		p.Battlefield = append(p.Battlefield[:i], p.Battlefield[i+1:]...)
		if len(p.Hand) < x.g.Rules.handLimit() {
			p.Hand = append(p.Hand, c)
		}
		return
	}
}

// applyCopyToHand gives the acting side a fresh copy of the target's card.
func applyCopyToHand(x *effectCtx, e *EffectDef) {
	if len(x.active.Hand) >= x.g.Rules.handLimit() {
		return
	}
	m := minion(x.targetID, x.active, x.inactive)
	if m == nil {
		return
	}
	x.active.Hand = append(x.active.Hand, x.g.newInstance(x.cat.def(m.CardID), m.CardID, x.side))
}

func applyDamageAll(x *effectCtx, e *EffectDef) {
	amount := e.Value + x.spellPower
	g := x.g
	for side := range g.Players {
		for i := range g.Players[side].Battlefield {
			DealDamageToMinion(&g.Players[side].Battlefield[i], amount)
		}
	}
	DealDamageToHero(&g.Players[PlayerSelf], amount)
	DealDamageToHero(&g.Players[PlayerOpponent], amount)
}

// applyRandomDamage hits a random living enemy minion Count times, drawing
// from the match PRNG.
func applyRandomDamage(x *effectCtx, e *EffectDef) {
	n := e.Count
	if n <= 0 {
		n = 1
	}
	amount := e.Value + x.spellPower
	r := x.g.rand()
	defer x.g.commitRand(r)
	for hit := 0; hit < n; hit++ {
		var alive []int
		for i := range x.inactive.Battlefield {
			if x.inactive.Battlefield[i].CurrentHealth > 0 {
				alive = append(alive, i)
			}
		}
		if len(alive) == 0 {
			return
		}
		DealDamageToMinion(&x.inactive.Battlefield[alive[r.Intn(len(alive))]], amount)
	}
}

// applyConditional checks the condition and, when it holds, re-runs the
// effect with TargetType as the sub-pattern aimed at an enemy minion.
func applyConditional(x *effectCtx, e *EffectDef) {
	var met bool
	switch e.Condition {
	case ConditionCombo:
		met = x.active.CardsPlayedThisTurn >= 2
	case ConditionIfDamaged:
		met = x.active.HeroHealth < x.active.MaxHealth
	case ConditionIfHandEmpty:
		met = len(x.active.Hand) == 0
	case ConditionIfBoardEmpty:
		met = len(x.active.Battlefield) == 0
	}
	if !met {
		return
	}
	sub := *e
	sub.Pattern = e.TargetType
	sub.TargetType = TargetEnemyMinion
	sub.Condition = ConditionNone
	x.g.executeEffect(x.cat, x.side, &sub, x.sourceID, x.targetID, x.spellPower)
}
