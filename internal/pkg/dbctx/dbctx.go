package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context pairs a request context with an optional transaction. Repo methods
// take one of these so callers choose the transaction scope: handlers pass
// just the context, tests pass a rolled-back Tx.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Conn returns the transaction when one is set, otherwise the fallback
// connection, with the request context applied either way.
func (c Context) Conn(fallback *gorm.DB) *gorm.DB {
	conn := c.Tx
	if conn == nil {
		conn = fallback
	}
	return conn.WithContext(c.Ctx)
}
