package shared

import (
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		if migrations[0].Name != "create_sessions" {
			t.Errorf("expected first migration name create_sessions, got %q", migrations[0].Name)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM sessions LIMIT 1"); err != nil {
			t.Errorf("sessions table should exist after migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM sessions LIMIT 1"); err == nil {
			t.Error("sessions table should be dropped after rollback")
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing is left to roll back")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		for range 2 {
			if err := RunMigrations(db); err != nil {
				t.Fatalf("failed to run migrations: %v", err)
			}
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})

	t.Run("OpenDatabase", func(t *testing.T) {
		db, err := OpenDatabase(DatabaseConfig{Path: ":memory:"})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := db.Exec("SELECT 1 FROM sessions LIMIT 1"); err != nil {
			t.Errorf("sessions table should exist: %v", err)
		}
	})
}

func TestStripComments(t *testing.T) {
	got := stripComments("-- heading\nCREATE TABLE t (id INTEGER); -- trailing\n\n")
	if got != "CREATE TABLE t (id INTEGER);" {
		t.Errorf("unexpected statement %q", got)
	}
}

func TestSplitStatements(t *testing.T) {
	script := "-- sessions; the id is the cookie value\nCREATE TABLE a (id TEXT); -- one; two\nCREATE INDEX i ON a (id);\n"

	got := splitStatements(script)
	want := []string{"CREATE TABLE a (id TEXT)", "CREATE INDEX i ON a (id)"}
	if len(got) != len(want) {
		t.Fatalf("expected %d statements, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestExecMigration(t *testing.T) {
	t.Run("semicolon inside a comment", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		if _, err := db.Exec("CREATE TABLE schema_migrations (version INTEGER PRIMARY KEY)"); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}

		script := "-- Widgets; one per row.\nCREATE TABLE widgets (id TEXT PRIMARY KEY);\n"
		if err := execMigration(db, script, "INSERT INTO schema_migrations (version) VALUES (?)", 7); err != nil {
			t.Fatalf("expected migration to apply, got %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM widgets LIMIT 1"); err != nil {
			t.Errorf("widgets table should exist: %v", err)
		}
	})
}
