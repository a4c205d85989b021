package sqlite

import (
	"database/sql"

	"github.com/Chris-Devine/codecamp/internal/store"
)

// storeTx is a transaction-scoped view over the same repos.
type storeTx struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *storeTx { return &storeTx{tx: tx} }

func (t *storeTx) Users() store.Users       { return &usersRepo{db: t.tx} }
func (t *storeTx) Camps() store.Camps       { return &campsRepo{db: t.tx} }
func (t *storeTx) Sessions() store.Sessions { return &sessionsRepo{db: t.tx} }
