package migrate

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsAreGooseAnnotated(t *testing.T) {
	files, err := fs.Glob(journalMigrations, journalDir+"/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no migrations embedded")
	}
	for _, f := range files {
		raw, err := fs.ReadFile(journalMigrations, f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		body := string(raw)
		if !strings.Contains(body, "-- +goose Up") || !strings.Contains(body, "-- +goose Down") {
			t.Fatalf("%s is missing goose annotations", f)
		}
	}
}

func TestJournalMigrationCreatesTable(t *testing.T) {
	raw, err := fs.ReadFile(journalMigrations, journalDir+"/00001_appointment_journal.sql")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "appointment_journal") {
		t.Fatal("first migration does not create appointment_journal")
	}
}
