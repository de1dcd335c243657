package integration

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mariadb"
	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/guard"
	mariadbrenderer "github.com/zoobzio/sqlkit/mariadb"
)

// MariaDBContainer wraps a testcontainers MariaDB instance.
type MariaDBContainer struct {
	container *mariadb.MariaDBContainer
	db        *sql.DB
	connStr   string
}

// Exec executes a SQL statement.
func (mc *MariaDBContainer) Exec(ctx context.Context, t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := mc.db.ExecContext(ctx, sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}

// QueryRow executes a query and returns a single row.
func (mc *MariaDBContainer) QueryRow(ctx context.Context, t *testing.T, sql string, args ...any) *sql.Row {
	t.Helper()
	return mc.db.QueryRowContext(ctx, sql, args...)
}

// createMariaDBTestCatalog creates a catalog matching the MariaDB test schema.
func createMariaDBTestCatalog(t *testing.T) *sqlkit.Catalog {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int unsigned"))
	users.AddColumn(dbml.NewColumn("active", "tinyint(1)"))
	project.AddTable(users)

	catalog, err := sqlkit.NewCatalog(project, sqlkit.WithCatalogResolver(mariadbrenderer.TypeResolver()))
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	return catalog
}

// setupMariaDB creates and seeds the test tables.
func setupMariaDB(ctx context.Context, t *testing.T, mc *MariaDBContainer) {
	t.Helper()

	mc.Exec(ctx, t, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			age INT UNSIGNED,
			active TINYINT(1) DEFAULT 1
		)
	`)
	mc.Exec(ctx, t, `
		INSERT INTO users (id, username, age, active) VALUES
		(1, 'alice', 30, 1),
		(2, 'bob', 25, 1),
		(3, 'charlie', 35, 0)
	`)
}

// cleanupMariaDB drops everything the tests create.
func cleanupMariaDB(ctx context.Context, t *testing.T, mc *MariaDBContainer) {
	t.Helper()
	mc.Exec(ctx, t, `DROP TABLE IF EXISTS users`)
	mc.Exec(ctx, t, `DROP SEQUENCE IF EXISTS invoice_number`)
}

func TestMariaDB_CreateSequence(t *testing.T) {
	skipShort(t)

	ctx := context.Background()
	mc := getMariaDBContainer(t)
	t.Cleanup(func() { cleanupMariaDB(ctx, t, mc) })

	result, err := sqlkit.CreateSequence("invoice_number").
		IfNotExists().
		StartWith(500).
		IncrementBy(5).
		NoMaxValue().
		NoCycle().
		Cache(100).
		Render(mariadbrenderer.New())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(result.SQL, "NOMAXVALUE") {
		t.Errorf("Expected MariaDB spelling, got %s", result.SQL)
	}

	for i := 0; i < 2; i++ {
		if err := guard.Exec(ctx, mc.db, result); err != nil {
			t.Fatalf("Exec %d failed: %v", i, err)
		}
	}

	var next int64
	if err := mc.QueryRow(ctx, t, `SELECT NEXTVAL(invoice_number)`).Scan(&next); err != nil {
		t.Fatalf("NEXTVAL failed: %v", err)
	}
	if next != 500 {
		t.Errorf("Expected 500, got %d", next)
	}
}

func TestMariaDB_CreateSequenceGuarded(t *testing.T) {
	skipShort(t)

	ctx := context.Background()
	mc := getMariaDBContainer(t)
	t.Cleanup(func() { cleanupMariaDB(ctx, t, mc) })

	r := sqlkit.MustRenderer(sqlkit.MariaDB, sqlkit.WithCapabilities(withoutIfNotExists(sqlkit.MariaDB)))
	result, err := sqlkit.CreateSequence("invoice_number").IfNotExists().NoCache().Render(r)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Guard == nil {
		t.Fatal("Expected guard")
	}

	for i := 0; i < 2; i++ {
		if err := guard.Exec(ctx, mc.db, result); err != nil {
			t.Fatalf("Exec %d failed: %v", i, err)
		}
	}

	_, err = mc.db.ExecContext(ctx, result.SQL)
	if !guard.IsAlreadyExists(err) {
		t.Errorf("Expected already exists, got %v", err)
	}
}

func TestMariaDB_BoolField(t *testing.T) {
	skipShort(t)

	ctx := context.Background()
	mc := getMariaDBContainer(t)
	setupMariaDB(ctx, t, mc)
	t.Cleanup(func() { cleanupMariaDB(ctx, t, mc) })

	catalog := createMariaDBTestCatalog(t)
	result, err := mariadbrenderer.New().RenderCondition(sqlkit.Or(
		sqlkit.BoolField(catalog.F("users", "active")),
		sqlkit.C(catalog.F("users", "username"), sqlkit.EQ, "charlie"),
	))
	if err != nil {
		t.Fatalf("RenderCondition failed: %v", err)
	}

	var count int
	if err := mc.QueryRow(ctx, t, `SELECT COUNT(*) FROM users WHERE `+result.SQL).Scan(&count); err != nil {
		t.Fatalf("Query failed: %v\nSQL: %s", err, result.SQL)
	}
	if count != 3 {
		t.Errorf("Expected 3 users, got %d", count)
	}
}

func TestMariaDB_ReadJSON(t *testing.T) {
	skipShort(t)

	ctx := context.Background()
	mc := getMariaDBContainer(t)
	setupMariaDB(ctx, t, mc)
	t.Cleanup(func() { cleanupMariaDB(ctx, t, mc) })

	catalog := createMariaDBTestCatalog(t)

	var doc string
	err := mc.QueryRow(ctx, t, `
		SELECT JSON_ARRAYAGG(JSON_ARRAY(id, username, age) ORDER BY id)
		FROM users
	`).Scan(&doc)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	schema := sqlkit.NewRowSchema(
		catalog.F("users", "id"),
		catalog.F("users", "username"),
		catalog.F("users", "age"),
	)
	res, err := sqlkit.ReadJSON(strings.NewReader(doc), sqlkit.WithSchema(schema))
	if err != nil {
		t.Fatalf("ReadJSON failed: %v\nJSON: %s", err, doc)
	}
	if res.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", res.Len())
	}
	// INT UNSIGNED widens to BIGINT.
	if v := res.Record(1).Get(2); v != int64(25) {
		t.Errorf("Expected int64(25), got %#v", v)
	}
}
