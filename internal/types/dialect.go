package types

import (
	"fmt"
	"strings"
)

// Dialect identifies a target SQL dialect.
type Dialect string

const (
	Cubrid     Dialect = "cubrid"
	Derby      Dialect = "derby"
	DuckDB     Dialect = "duckdb"
	Firebird   Dialect = "firebird"
	H2         Dialect = "h2"
	HSQLDB     Dialect = "hsqldb"
	Ignite     Dialect = "ignite"
	MariaDB    Dialect = "mariadb"
	MySQL      Dialect = "mysql"
	Oracle     Dialect = "oracle"
	Postgres   Dialect = "postgres"
	Snowflake  Dialect = "snowflake"
	SQLite     Dialect = "sqlite"
	SQLServer  Dialect = "sqlserver"
	Trino      Dialect = "trino"
	YugabyteDB Dialect = "yugabytedb"
)

// Dialects returns every known dialect in a stable order.
func Dialects() []Dialect {
	return []Dialect{
		Cubrid, Derby, DuckDB, Firebird, H2, HSQLDB, Ignite, MariaDB,
		MySQL, Oracle, Postgres, Snowflake, SQLite, SQLServer, Trino, YugabyteDB,
	}
}

var dialectAliases = map[string]Dialect{
	"postgresql": Postgres,
	"pg":         Postgres,
	"mssql":      SQLServer,
	"sqlite3":    SQLite,
	"yugabyte":   YugabyteDB,
}

// ParseDialect resolves a dialect name, case-insensitively.
func ParseDialect(name string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if d, ok := dialectAliases[key]; ok {
		return d, nil
	}
	for _, d := range Dialects() {
		if string(d) == key {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dialect: %q", name)
}

// String returns the dialect name.
func (d Dialect) String() string {
	return string(d)
}
