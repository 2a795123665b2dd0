package storage

import "fmt"

// RecordNotFoundError signals that a lookup matched no row. The response
// renderer maps it to 404 with code "model.not_found", deriving the display
// message from Entity.
type RecordNotFoundError struct {
	Entity string
	ID     int64
}

// Error implements the error interface.
func (e *RecordNotFoundError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("%s record with id %d not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s record not found", e.Entity)
}

// QueryError signals a database failure while executing a query. The query
// text and arguments are logged at the boundary and never returned to the
// caller.
type QueryError struct {
	Query string
	Args  []any
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

// Unwrap returns the underlying driver error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
