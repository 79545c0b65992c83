package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/random"

	_ "embed"
	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
)

//go:embed init.sql
var initialiseSchemaScript string

// Database holds two connection pools, one for read/write operations and one
// for read-only operations. Keeping a single writer connection avoids
// SQLITE_BUSY under concurrent request handlers, see
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995
type Database struct {
	ReadWrite *sqlx.DB
	ReadOnly  *sqlx.DB
}

// NewDatabase opens the SQLite database at url and initializes the schema.
// Pass ":memory:" for an in-memory database; every call then gets its own
// database so that parallel tests don't share data.
func NewDatabase(url string) (*Database, error) {
	var err error

	// In-memory databases need shared cache mode so that both pools see the
	// same data. See https://www.sqlite.org/inmemorydb.html.
	inMemoryConfig := ""
	if strings.Contains(url, ":memory:") {
		var name string
		if name, err = random.Letters(20); err != nil {
			return nil, errors.Wrap(err, "generate database name")
		}
		url = name
		inMemoryConfig = "&mode=memory&cache=shared"
	}

	// Options prefixed with '_' are SQLite pragmas (https://www.sqlite.org/pragma.html),
	// the rest are URI parameters (https://www.sqlite.org/uri.html).
	commonConfig := "_journal_mode=wal&_busy_timeout=5000&_synchronous=normal&_foreign_keys=on"
	readWriteConfig := fmt.Sprintf("file:%s?_txlock=immediate&%s%s", url, commonConfig, inMemoryConfig)
	readOnlyConfig := fmt.Sprintf("file:%s?_txlock=deferred&_query_only=true&%s%s", url, commonConfig, inMemoryConfig)

	var readWrite *sqlx.DB
	if readWrite, err = sqlx.Connect("sqlite3", readWriteConfig); err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}
	readWrite.SetMaxOpenConns(1)
	readWrite.SetMaxIdleConns(1)
	readWrite.SetConnMaxLifetime(time.Hour)
	readWrite.SetConnMaxIdleTime(time.Hour)

	if _, err = readWrite.Exec(initialiseSchemaScript); err != nil {
		return nil, errors.Wrap(err, "initialize schema")
	}

	var readOnly *sqlx.DB
	if readOnly, err = sqlx.Connect("sqlite3", readOnlyConfig); err != nil {
		return nil, errors.Wrap(err, "open read-only database")
	}
	maxReadConns := 10
	readOnly.SetMaxOpenConns(maxReadConns)
	readOnly.SetMaxIdleConns(maxReadConns)
	readOnly.SetConnMaxLifetime(time.Hour)
	readOnly.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
	}, nil
}

// Close closes both connection pools.
func (d *Database) Close() error {
	return errors.Join(d.ReadWrite.Close(), d.ReadOnly.Close())
}
