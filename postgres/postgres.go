// Package postgres provides the PostgreSQL dialect renderer for sqlkit.
package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Renderer implements the PostgreSQL dialect renderer.
type Renderer struct {
	*render.Renderer
}

// New creates a new PostgreSQL renderer using the built-in capabilities.
func New() *Renderer {
	return &Renderer{render.Must(render.New(types.Postgres, render.DefaultCapabilities()))}
}

// oidTypes maps PostgreSQL type OIDs to data types.
var oidTypes = map[uint32]types.DataType{
	pgtype.BoolOID:        types.Boolean,
	pgtype.Int2OID:        types.Smallint,
	pgtype.Int4OID:        types.Integer,
	pgtype.Int8OID:        types.Bigint,
	pgtype.NumericOID:     types.Decimal,
	pgtype.Float4OID:      types.Double,
	pgtype.Float8OID:      types.Double,
	pgtype.TextOID:        types.Clob,
	pgtype.VarcharOID:     types.Varchar,
	pgtype.BPCharOID:      types.Char,
	pgtype.NameOID:        types.Varchar,
	pgtype.JSONOID:        types.Clob,
	pgtype.JSONBOID:       types.Clob,
	pgtype.DateOID:        types.Date,
	pgtype.TimeOID:        types.Time,
	pgtype.TimestampOID:   types.Timestamp,
	pgtype.TimestamptzOID: types.Timestamp,
	pgtype.ByteaOID:       types.Binary,
	pgtype.UUIDOID:        types.UUID,
}

// TypeResolver resolves PostgreSQL type names such as int4, float8 or
// timestamptz. Names pgx does not know fall back to the standard SQL names;
// known types without a matching kind, such as arrays and ranges, are OTHER.
func TypeResolver() types.TypeResolver {
	m := pgtype.NewMap()
	return types.TypeResolverFunc(func(name string) types.DataType {
		if t, ok := types.LookupType(name); ok {
			return t
		}
		key := strings.ToLower(types.NormalizeTypeName(name))
		if strings.HasSuffix(key, "[]") {
			return types.Other
		}
		pt, ok := m.TypeForName(key)
		if !ok {
			return types.Varchar
		}
		if t, ok := oidTypes[pt.OID]; ok {
			return t
		}
		return types.Other
	})
}
