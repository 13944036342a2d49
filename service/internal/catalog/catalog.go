// Package catalog loads authored card records into an engine catalog.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
)

var (
	cardTypeType  = reflect.TypeOf(engine.CardType(0))
	heroClassType = reflect.TypeOf(engine.HeroClass(0))
)

// enumHook turns authored names ("minion", "Death Knight") into the engine
// enums. Numeric values pass through untouched.
func enumHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		name := normalize(data.(string))
		switch to {
		case cardTypeType:
			t, ok := engine.ParseCardType(name)
			if !ok {
				return nil, fmt.Errorf("unknown card type %q", data)
			}
			return t, nil
		case heroClassType:
			if name == "" {
				return engine.ClassNeutral, nil
			}
			c, ok := engine.ParseHeroClass(strings.ReplaceAll(name, "_", ""))
			if !ok {
				return nil, fmt.Errorf("unknown hero class %q", data)
			}
			return c, nil
		}
		return data, nil
	}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// Decode converts raw records into definitions. It also returns the sorted
// set of record keys that matched no field.
func Decode(records []map[string]interface{}) ([]engine.CardDef, []string, error) {
	defs := make([]engine.CardDef, 0, len(records))
	unused := map[string]bool{}
	for i, rec := range records {
		var def engine.CardDef
		var md mapstructure.Metadata
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				enumHook(),
				mapstructure.StringToSliceHookFunc(","),
			),
			WeaklyTypedInput: true,
			Metadata:         &md,
			Result:           &def,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := dec.Decode(rec); err != nil {
			return nil, nil, fmt.Errorf("card record %d: %w", i, err)
		}
		for j, kw := range def.Keywords {
			def.Keywords[j] = normalize(kw)
		}
		for _, e := range []*engine.EffectDef{def.Battlecry, def.Deathrattle, def.SpellEffect, def.Combo} {
			if e != nil && e.Condition == "" {
				e.Condition = engine.ConditionNone
			}
		}
		for _, k := range md.Unused {
			unused[k] = true
		}
		defs = append(defs, def)
	}

	keys := make([]string, 0, len(unused))
	for k := range unused {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return defs, keys, nil
}

// Load reads a JSON array of card records from r into a frozen catalog.
func Load(r io.Reader) (*engine.Catalog, []string, error) {
	var records []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("decoding card records: %w", err)
	}
	defs, unused, err := Decode(records)
	if err != nil {
		return nil, nil, err
	}
	cat := engine.NewCatalog()
	for _, d := range defs {
		if err := cat.Register(d); err != nil {
			return nil, nil, err
		}
	}
	cat.Freeze()
	return cat, unused, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) (*engine.Catalog, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}
