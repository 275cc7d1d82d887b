package batch

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
)

type batchDef struct {
	Expressions []any `json:"expressions"`
}

type entryDef struct {
	Name       string `mapstructure:"name"`
	Expression string `mapstructure:"expression"`
	Expect     any    `mapstructure:"expect"`
	Strict     bool   `mapstructure:"strict"`
}

func (d *batchDef) compile() (*Batch, error) {
	if len(d.Expressions) == 0 {
		return nil, fmt.Errorf("empty expressions")
	}

	b := &Batch{Entries: make([]Entry, len(d.Expressions))}
	for i, raw := range d.Expressions {
		entry, err := compileEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("expressions[%d]: %w", i, err)
		}
		if entry.Name == "" {
			entry.Name = fmt.Sprintf("expressions[%d]", i)
		}
		b.Entries[i] = entry
	}
	return b, nil
}

func compileEntry(raw any) (Entry, error) {
	switch v := raw.(type) {
	case string:
		return Entry{Expression: v}, nil

	case json.Number:
		return Entry{Expression: v.String()}, nil

	case map[string]any:
		var def entryDef
		if err := mapstructure.Decode(v, &def); err != nil {
			return Entry{}, fmt.Errorf("mapstructure.Decode: %w", err)
		}
		if def.Expression == "" {
			return Entry{}, fmt.Errorf("expression is required")
		}

		entry := Entry{
			Name:       def.Name,
			Expression: def.Expression,
			Strict:     def.Strict,
		}
		if def.Expect != nil {
			expect, err := decodeExpect(def.Expect)
			if err != nil {
				return Entry{}, fmt.Errorf("expect: %w", err)
			}
			entry.Expect = &expect
		}
		return entry, nil

	default:
		return Entry{}, fmt.Errorf("invalid type: %T", raw)
	}
}

func decodeExpect(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("invalid number: %v", v)
	}
}
