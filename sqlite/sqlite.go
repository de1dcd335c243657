// Package sqlite provides the SQLite dialect renderer for sqlkit.
//
// SQLite has no sequence objects, so RenderCreateSequence always fails with
// an UnsupportedFeatureError. Conditions and type resolution work normally.
package sqlite

import (
	"strings"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Renderer implements the SQLite dialect renderer.
type Renderer struct {
	*render.Renderer
}

// New creates a new SQLite renderer using the built-in capabilities.
func New() *Renderer {
	return &Renderer{render.Must(render.New(types.SQLite, render.DefaultCapabilities()))}
}

// TypeResolver resolves declared column types with SQLite's affinity rules.
// INTEGER affinity maps to BIGINT since SQLite integers are 64-bit.
// Standard names for boolean, temporal and UUID columns keep their kind.
func TypeResolver() types.TypeResolver {
	return types.TypeResolverFunc(func(name string) types.DataType {
		normalized := types.NormalizeTypeName(name)
		switch {
		case strings.Contains(normalized, "INT"):
			return types.Bigint
		case strings.Contains(normalized, "CHAR"),
			strings.Contains(normalized, "CLOB"),
			strings.Contains(normalized, "TEXT"):
			return types.Varchar
		case strings.Contains(normalized, "BLOB"):
			return types.Binary
		case strings.Contains(normalized, "REAL"),
			strings.Contains(normalized, "FLOA"),
			strings.Contains(normalized, "DOUB"):
			return types.Double
		}
		if t, ok := types.LookupType(normalized); ok {
			return t
		}
		return types.Decimal
	})
}
