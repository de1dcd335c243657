// Package mariadb provides the MariaDB dialect renderer for sqlkit.
package mariadb

import (
	"strings"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Renderer implements the MariaDB dialect renderer.
type Renderer struct {
	*render.Renderer
}

// New creates a new MariaDB renderer using the built-in capabilities.
func New() *Renderer {
	return &Renderer{render.Must(render.New(types.MariaDB, render.DefaultCapabilities()))}
}

var typeNames = map[string]types.DataType{
	"TINYINT":    types.Smallint,
	"MEDIUMINT":  types.Integer,
	"YEAR":       types.Smallint,
	"TINYTEXT":   types.Clob,
	"MEDIUMTEXT": types.Clob,
	"LONGTEXT":   types.Clob,
	"JSON":       types.Clob,
	"ENUM":       types.Varchar,
	"SET":        types.Varchar,
	"TINYBLOB":   types.Binary,
	"MEDIUMBLOB": types.Binary,
	"LONGBLOB":   types.Binary,
	"BIT":        types.Binary,
	"INET4":      types.Varchar,
	"INET6":      types.Varchar,
}

// TypeResolver resolves MariaDB type names. TINYINT(1) and BIT(1) are
// BOOLEAN; UNSIGNED integers widen to the next larger kind.
func TypeResolver() types.TypeResolver {
	return types.TypeResolverFunc(func(name string) types.DataType {
		compact := strings.ToUpper(strings.Join(strings.Fields(name), ""))
		if compact == "TINYINT(1)" || compact == "BIT(1)" {
			return types.Boolean
		}

		normalized := strings.TrimSuffix(types.NormalizeTypeName(name), " ZEROFILL")
		if base, ok := strings.CutSuffix(normalized, " UNSIGNED"); ok {
			return unsigned(resolve(base))
		}
		return resolve(normalized)
	})
}

func resolve(name string) types.DataType {
	if t, ok := typeNames[name]; ok {
		return t
	}
	return types.ResolveType(name)
}

func unsigned(t types.DataType) types.DataType {
	switch t.Kind {
	case types.KindSmallint:
		return types.Integer
	case types.KindInteger:
		return types.Bigint
	case types.KindBigint:
		return types.Decimal
	}
	return t
}
