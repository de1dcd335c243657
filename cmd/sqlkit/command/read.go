package command

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/mariadb"
	"github.com/zoobzio/sqlkit/mssql"
	"github.com/zoobzio/sqlkit/postgres"
	"github.com/zoobzio/sqlkit/sqlite"
)

// AddReadCommand adds the read command.
func AddReadCommand(root *cobra.Command, sc *SqlkitCommand) {
	cmd := &cobra.Command{
		Use:   "read [file]",
		Short: "Read a result document and write it in another format",
		Long: `Read a JSON or XML result document and write it back out.

The input format is detected from the first character unless --from is
given. Declared column types are resolved with the configured dialect's type
names, so "int4" reads as INTEGER for postgres and "bit" as BOOLEAN for
sqlserver. Reads standard input when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.runRead(cmd, args)
		},
	}

	cmd.Flags().String("from", "", "Input format: json or xml (default: detect)")
	cmd.Flags().String("to", "json", "Output format: json or xml")

	root.AddCommand(cmd)
}

func (sc *SqlkitCommand) runRead(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	d, err := sc.dialect()
	if err != nil {
		return err
	}
	opts := []sqlkit.ReadOption{
		sqlkit.WithLogger(sc.logger),
		sqlkit.WithTypeResolver(typeResolver(d)),
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	var res *sqlkit.Result
	if from == "" {
		res, err = sqlkit.ReadString(string(data), opts...)
	} else {
		res, err = sqlkit.Read(sqlkit.Format(from), bytes.NewReader(data), opts...)
	}
	if err != nil {
		return err
	}
	sc.logger.Debug("result read", "columns", res.Schema().Len(), "records", res.Len())

	return sqlkit.Write(sqlkit.Format(to), cmd.OutOrStdout(), res)
}

// typeResolver returns the type resolver for a dialect's type names.
func typeResolver(d sqlkit.Dialect) sqlkit.TypeResolver {
	switch d {
	case sqlkit.Postgres, sqlkit.YugabyteDB:
		return postgres.TypeResolver()
	case sqlkit.MariaDB, sqlkit.MySQL:
		return mariadb.TypeResolver()
	case sqlkit.SQLServer:
		return mssql.TypeResolver()
	case sqlkit.SQLite:
		return sqlite.TypeResolver()
	default:
		return sqlkit.TypeResolverFunc(sqlkit.ResolveType)
	}
}
