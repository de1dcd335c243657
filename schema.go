package sqlkit

import (
	"encoding/json"
	"fmt"

	"github.com/zoobzio/sqlkit/internal/types"
	"gopkg.in/yaml.v3"
)

// SequenceSchema is a CREATE SEQUENCE statement in declarative form,
// serialized from YAML or JSON.
//
//	name: public.order_id
//	if_not_exists: true
//	start_with: 1000
//	no_max_value: true
//	cycle: false
type SequenceSchema struct {
	StartWith   *json.Number `json:"start_with,omitempty" yaml:"start_with,omitempty"`
	IncrementBy *json.Number `json:"increment_by,omitempty" yaml:"increment_by,omitempty"`
	MinValue    *json.Number `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue    *json.Number `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	Cache       *json.Number `json:"cache,omitempty" yaml:"cache,omitempty"`
	Cycle       *bool        `json:"cycle,omitempty" yaml:"cycle,omitempty"` // false renders NO CYCLE
	Name        string       `json:"name" yaml:"name"`
	IfNotExists bool         `json:"if_not_exists,omitempty" yaml:"if_not_exists,omitempty"`
	NoMinValue  bool         `json:"no_min_value,omitempty" yaml:"no_min_value,omitempty"`
	NoMaxValue  bool         `json:"no_max_value,omitempty" yaml:"no_max_value,omitempty"`
	NoCache     bool         `json:"no_cache,omitempty" yaml:"no_cache,omitempty"`
}

// ParseSequenceSchema decodes a YAML or JSON sequence definition.
func ParseSequenceSchema(data []byte) (*SequenceSchema, error) {
	var s SequenceSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse sequence schema: %w", err)
	}
	return &s, nil
}

// Builder returns a builder populated from the schema.
func (s *SequenceSchema) Builder() *Builder {
	b := CreateSequence(s.Name)
	if s.IfNotExists {
		b.IfNotExists()
	}

	for _, v := range []struct {
		value   *json.Number
		set     func(any) *Builder
		negate  func() *Builder
		clause  string
		negated bool
	}{
		{s.StartWith, b.StartWith, nil, "start_with", false},
		{s.IncrementBy, b.IncrementBy, nil, "increment_by", false},
		{s.MinValue, b.MinValue, b.NoMinValue, "min_value", s.NoMinValue},
		{s.MaxValue, b.MaxValue, b.NoMaxValue, "max_value", s.NoMaxValue},
		{s.Cache, b.Cache, b.NoCache, "cache", s.NoCache},
	} {
		switch {
		case v.value != nil && v.negated:
			if b.err == nil {
				b.err = fmt.Errorf("%s and no_%s are mutually exclusive", v.clause, v.clause)
			}
		case v.value != nil:
			v.set(types.DecimalString(*v.value))
		case v.negated:
			v.negate()
		}
	}

	if s.Cycle != nil {
		if *s.Cycle {
			b.Cycle()
		} else {
			b.NoCycle()
		}
	}
	return b
}

// BuildFromSchema converts a declarative schema into a statement.
func BuildFromSchema(s *SequenceSchema) (*types.CreateSequence, error) {
	if s == nil {
		return nil, fmt.Errorf("sequence schema is nil")
	}
	return s.Builder().Build()
}
