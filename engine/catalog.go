package engine

import (
	"errors"
	"fmt"
	"sort"
)

// ErrCatalogFrozen is returned when a frozen catalog is modified.
var ErrCatalogFrozen = errors.New("card catalog is frozen")

// Catalog is the id -> definition registry consumed by the engine. It is
// populated once by a loader, frozen, and then only read during simulation.
// A nil *Catalog behaves as an empty, frozen catalog.
type Catalog struct {
	defs   map[int]*CardDef
	frozen bool
}

// NewCatalog returns an empty, writable catalog.
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[int]*CardDef)}
}

// Register adds def. Duplicate ids are rejected.
func (c *Catalog) Register(def CardDef) error {
	if c == nil || c.frozen {
		return ErrCatalogFrozen
	}
	if _, dup := c.defs[def.ID]; dup {
		return fmt.Errorf("card %d (%s) already registered", def.ID, def.Name)
	}
	d := def
	d.Keywords = append([]string(nil), def.Keywords...)
	d.Battlecry = copyEffect(def.Battlecry)
	d.Deathrattle = copyEffect(def.Deathrattle)
	d.SpellEffect = copyEffect(def.SpellEffect)
	d.Combo = copyEffect(def.Combo)
	c.defs[def.ID] = &d
	return nil
}

func copyEffect(e *EffectDef) *EffectDef {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Keywords = append([]string(nil), e.Keywords...)
	return &cp
}

// MustRegister registers every def and panics on the first failure. Intended
// for fixtures built at init time.
func (c *Catalog) MustRegister(defs ...CardDef) *Catalog {
	for _, d := range defs {
		if err := c.Register(d); err != nil {
			panic(err)
		}
	}
	return c
}

// Freeze makes the catalog read-only.
func (c *Catalog) Freeze() {
	if c != nil {
		c.frozen = true
	}
}

// Frozen reports whether Freeze has been called.
func (c *Catalog) Frozen() bool { return c == nil || c.frozen }

// Lookup returns the definition for id. The result must not be modified.
func (c *Catalog) Lookup(id int) (*CardDef, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.defs[id]
	return d, ok
}

// Len returns the number of registered definitions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.defs)
}

// Clear drops every definition from a writable catalog.
func (c *Catalog) Clear() error {
	if c == nil || c.frozen {
		return ErrCatalogFrozen
	}
	c.defs = make(map[int]*CardDef)
	return nil
}

// IDs returns all registered ids in ascending order.
func (c *Catalog) IDs() []int {
	if c == nil {
		return nil
	}
	ids := make([]int, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (c *Catalog) def(id int) *CardDef {
	d, _ := c.Lookup(id)
	return d
}
