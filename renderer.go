package sqlkit

import "github.com/zoobzio/sqlkit/internal/types"

// Renderer defines the interface for SQL dialect-specific rendering.
// Implementations hold no mutable state; a built statement may be rendered
// concurrently.
type Renderer interface {
	// Dialect returns the target dialect.
	Dialect() types.Dialect

	// RenderCreateSequence converts a CREATE SEQUENCE statement to SQL.
	RenderCreateSequence(stmt *types.CreateSequence) (*types.QueryResult, error)

	// RenderCondition converts a predicate to SQL.
	RenderCondition(cond types.ConditionItem) (*types.QueryResult, error)
}
