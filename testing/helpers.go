// Package testing provides test utilities for sqlkit.
package testing

import (
	"strings"
	"testing"

	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlkit"
)

// TestCatalog creates a catalog for testing.
// Includes users, posts, orders, and products tables.
func TestCatalog(t *testing.T) *sqlkit.Catalog {
	t.Helper()

	project := dbml.NewProject("test")

	// Users table
	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	users.AddColumn(dbml.NewColumn("external_id", "uuid"))
	project.AddTable(users)

	// Posts table
	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("body", "text"))
	posts.AddColumn(dbml.NewColumn("published", "boolean"))
	project.AddTable(posts)

	// Orders table
	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	orders.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(orders)

	// Products table
	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "bigint"))
	products.AddColumn(dbml.NewColumn("name", "varchar"))
	products.AddColumn(dbml.NewColumn("price", "numeric"))
	products.AddColumn(dbml.NewColumn("image", "blob"))
	project.AddTable(products)

	catalog, err := sqlkit.NewCatalog(project)
	if err != nil {
		t.Fatalf("Failed to create test catalog: %v", err)
	}
	return catalog
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertGuarded checks whether a rendered statement carries a guard.
func AssertGuarded(t *testing.T, result *sqlkit.QueryResult, guarded bool) {
	t.Helper()
	if result == nil {
		t.Fatal("Expected non-nil query result")
	}
	if guarded && result.Guard == nil {
		t.Errorf("Expected a guard for %s statement: %s", result.Dialect, result.SQL)
	}
	if !guarded && result.Guard != nil {
		t.Errorf("Unexpected %s guard for %s statement: %s", result.Guard.Suppress, result.Dialect, result.SQL)
	}
}

// AssertResultEqual compares two results record by record, reporting the
// first difference.
func AssertResultEqual(t *testing.T, expected, actual *sqlkit.Result) {
	t.Helper()
	if expected.Equal(actual) {
		return
	}
	if !expected.Schema().Equal(actual.Schema()) {
		t.Errorf("Schema mismatch:\nExpected: %v\nActual:   %v", sqlkit.Metadata(expected.Schema()), sqlkit.Metadata(actual.Schema()))
		return
	}
	if expected.Len() != actual.Len() {
		t.Errorf("Record count mismatch: expected %d, got %d", expected.Len(), actual.Len())
		return
	}
	for i := 0; i < expected.Len(); i++ {
		if !expected.Record(i).Equal(actual.Record(i)) {
			t.Errorf("Record %d mismatch:\nExpected: %v\nActual:   %v", i, expected.Record(i).Values(), actual.Record(i).Values())
			return
		}
	}
	t.Errorf("Result mismatch")
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}
