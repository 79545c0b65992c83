package repositories_test

import (
	_ "embed"
	"testing"

	"github.com/myrjola/interrogation-room/internal/sqlite"
)

//go:embed testdata/fixtures.sql
var testFixtures string

// newTestDB creates a new in-memory database seeded with test fixtures.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()

	db, err := sqlite.NewDatabase(":memory:")
	if err != nil {
		t.Fatal(err)
	}

	if _, err = db.ReadWrite.Exec(testFixtures); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return db
}
