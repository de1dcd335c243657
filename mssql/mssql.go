// Package mssql provides the SQL Server dialect renderer for sqlkit.
package mssql

import (
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Renderer implements the SQL Server dialect renderer.
type Renderer struct {
	*render.Renderer
}

// New creates a new SQL Server renderer using the built-in capabilities.
func New() *Renderer {
	return &Renderer{render.Must(render.New(types.SQLServer, render.DefaultCapabilities()))}
}

var typeNames = map[string]types.DataType{
	"BIT":              types.Boolean,
	"TINYINT":          types.Smallint,
	"MONEY":            types.Decimal,
	"SMALLMONEY":       types.Decimal,
	"NTEXT":            types.Clob,
	"XML":              types.Clob,
	"DATETIME2":        types.Timestamp,
	"SMALLDATETIME":    types.Timestamp,
	"DATETIMEOFFSET":   types.Timestamp,
	"IMAGE":            types.Binary,
	"ROWVERSION":       types.Binary,
	"UNIQUEIDENTIFIER": types.UUID,
	"SQL_VARIANT":      types.Other,
}

// TypeResolver resolves SQL Server type names such as BIT, NVARCHAR(MAX)
// or UNIQUEIDENTIFIER.
func TypeResolver() types.TypeResolver {
	return types.TypeResolverFunc(func(name string) types.DataType {
		if t, ok := typeNames[types.NormalizeTypeName(name)]; ok {
			return t
		}
		return types.ResolveType(name)
	})
}
