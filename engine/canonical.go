package engine

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
)

// Version identifies the rules and encoding revision.
const Version = "1.0.0"

// object is a canonical map; keys are always written in sorted order.
type object map[string]any

// Canonical returns the deterministic textual encoding of g. Keys are sorted
// lexicographically at every level, slices keep their order, and the
// presentation log and rules configuration are excluded.
func Canonical(g *GameState) []byte {
	var b bytes.Buffer
	writeValue(&b, canonicalState(g))
	return b.Bytes()
}

// Hash returns the lowercase hex SHA-256 digest of the canonical encoding.
func Hash(g *GameState) string { return hashBytes(Canonical(g)) }

// HashString digests arbitrary text, for clients that hash their own encoding.
func HashString(s string) string { return hashBytes([]byte(s)) }

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func canonicalState(g *GameState) object {
	return object{
		"currentTurn":     int(g.CurrentTurn),
		"gamePhase":       int(g.Phase),
		"instanceCounter": g.InstanceCounter,
		"opponent":        canonicalPlayer(&g.Players[PlayerOpponent]),
		"player":          canonicalPlayer(&g.Players[PlayerSelf]),
		"rngState":        int64(g.RNGState),
		"turnNumber":      g.TurnNumber,
		"winner":          int(g.Winner),
	}
}

func canonicalPlayer(p *Player) object {
	deck := make([]any, len(p.Deck))
	for i, id := range p.Deck {
		deck[i] = id
	}
	return object{
		"id":          int(p.ID),
		"name":        p.Name,
		"hand":        canonicalCards(p.Hand),
		"battlefield": canonicalCards(p.Battlefield),
		"deck":        deck,
		"graveyard":   canonicalCards(p.Graveyard),
		"secrets":     canonicalCards(p.Secrets),
		"weapon":      canonicalCardPtr(p.Weapon),
		"artifact":    canonicalCardPtr(p.Artifact),
		"mana": object{
			"current":         p.Mana.Current,
			"max":             p.Mana.Max,
			"overloaded":      p.Mana.Overloaded,
			"pendingOverload": p.Mana.PendingOverload,
		},
		"heroHealth": p.HeroHealth,
		"maxHealth":  p.MaxHealth,
		"heroArmor":  p.HeroArmor,
		"heroClass":  int(p.HeroClass),
		"heroId":     p.HeroID,
		"heroPower": object{
			"name":   p.HeroPower.Name,
			"cost":   p.HeroPower.Cost,
			"used":   p.HeroPower.Used,
			"effect": canonicalEffect(p.HeroPower.Effect),
		},
		"cardsPlayedThisTurn":      p.CardsPlayedThisTurn,
		"attacksPerformedThisTurn": p.AttacksPerformedThisTurn,
		"fatigueCounter":           p.FatigueCounter,
		"mulliganDone":             p.MulliganDone,
	}
}

func canonicalCards(cs []CardInstance) []any {
	out := make([]any, len(cs))
	for i := range cs {
		out[i] = canonicalCard(&cs[i])
	}
	return out
}

func canonicalCardPtr(c *CardInstance) any {
	if c == nil {
		return nil
	}
	return canonicalCard(c)
}

func canonicalCard(c *CardInstance) object {
	return object{
		"instanceId":        c.InstanceID,
		"cardId":            c.CardID,
		"currentAttack":     c.CurrentAttack,
		"currentHealth":     c.CurrentHealth,
		"maxHealth":         c.MaxHealth,
		"currentDurability": c.CurrentDurability,
		"canAttack":         c.CanAttack,
		"isSummoningSick":   c.IsSummoningSick,
		"hasAttacked":       c.HasAttacked,
		"hasDivineShield":   c.HasDivineShield,
		"isFrozen":          c.IsFrozen,
		"isStealth":         c.IsStealth,
		"isTaunt":           c.IsTaunt,
		"isRush":            c.IsRush,
		"hasCharge":         c.HasCharge,
		"hasWindfury":       c.HasWindfury,
		"hasMegaWindfury":   c.HasMegaWindfury,
		"hasLifesteal":      c.HasLifesteal,
		"hasPoisonous":      c.HasPoisonous,
		"silenced":          c.Silenced,
		"attacksPerformed":  c.AttacksPerformed,
		"isPlayerOwned":     c.IsPlayerOwned,
		"evolutionLevel":    c.EvolutionLevel,
		"isPoisonedDoT":     c.IsPoisonedDoT,
		"isBleeding":        c.IsBleeding,
		"isParalyzed":       c.IsParalyzed,
		"isWeakened":        c.IsWeakened,
		"isVulnerable":      c.IsVulnerable,
		"isMarked":          c.IsMarked,
	}
}

func canonicalEffect(e *EffectDef) any {
	if e == nil {
		return nil
	}
	kws := make([]any, len(e.Keywords))
	for i, k := range e.Keywords {
		kws[i] = k
	}
	return object{
		"pattern":    e.Pattern,
		"value":      e.Value,
		"value2":     e.Value2,
		"targetType": e.TargetType,
		"condition":  e.Condition,
		"keywords":   kws,
		"cardId":     e.CardID,
		"count":      e.Count,
	}
}

// ---------------------------------------------------------------------------
// Writer
// ---------------------------------------------------------------------------

func writeValue(b *bytes.Buffer, v any) {
	switch v := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case int:
		b.WriteString(strconv.Itoa(v))
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case string:
		writeString(b, v)
	case []any:
		b.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, e)
		}
		b.WriteByte(']')
	case object:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, k)
			b.WriteByte(':')
			writeValue(b, v[k])
		}
		b.WriteByte('}')
	}
}

const hexDigits = "0123456789abcdef"

// writeString quotes s, escaping quotes, backslashes and control characters.
// Everything else is copied through as UTF-8.
func writeString(b *bytes.Buffer, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xF])
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
}
