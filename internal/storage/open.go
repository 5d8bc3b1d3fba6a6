package storage

import (
	"github.com/julianstephens/chorewheel/internal/storage/postgres"
	"github.com/julianstephens/chorewheel/internal/storage/sqlite"
)

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)

	_ SchemaReporter = (*sqlite.Store)(nil)
	_ SchemaReporter = (*postgres.Store)(nil)
)

// New returns the PostgreSQL store for a connection string and the SQLite
// store for a file path.
func New(location string, isPostgres bool) Provider {
	if isPostgres {
		return postgres.New(location)
	}
	return sqlite.NewStore(location)
}
