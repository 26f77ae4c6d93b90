package database

import (
	"context"
	"testing"
	"testing/fstest"
)

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"20260101_000000_widgets.up.sql":   {Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);")},
		"20260101_000000_widgets.down.sql": {Data: []byte("DROP TABLE widgets;")},
		"20260102_000000_gadgets.up.sql":   {Data: []byte("CREATE TABLE gadgets (id INTEGER PRIMARY KEY);")},
		"README.md":                        {Data: []byte("ignored")},
	}
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&n)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return n == 1
}

func TestMigrate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fsys := testMigrations()

	if err := db.Migrate(ctx, fsys); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if !tableExists(t, db, "widgets") || !tableExists(t, db, "gadgets") {
		t.Fatal("tables not created")
	}

	pending, err := db.Pending(ctx, fsys)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("Pending() = %d, want 0", len(pending))
	}

	if err := db.Migrate(ctx, fsys); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestMigrateDown(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	fsys := testMigrations()
	delete(fsys, "20260102_000000_gadgets.up.sql")

	if err := db.Migrate(ctx, fsys); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := db.MigrateDown(ctx, fsys); err != nil {
		t.Fatalf("MigrateDown() error = %v", err)
	}
	if tableExists(t, db, "widgets") {
		t.Error("widgets still exists after rollback")
	}

	pending, err := db.Pending(ctx, fsys)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("Pending() = %d, want 1", len(pending))
	}

	// Nothing left to roll back.
	if err := db.MigrateDown(ctx, fsys); err != nil {
		t.Errorf("MigrateDown() on empty error = %v", err)
	}
}

func TestMigrateDown_NoDownSQL(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fsys := fstest.MapFS{
		"20260102_000000_gadgets.up.sql": {Data: []byte("CREATE TABLE gadgets (id INTEGER PRIMARY KEY);")},
	}

	if err := db.Migrate(ctx, fsys); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := db.MigrateDown(ctx, fsys); err == nil {
		t.Error("MigrateDown() error = nil, want missing down SQL")
	}
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fsys := fstest.MapFS{
		"20260101_000000_ok.up.sql":  {Data: []byte("CREATE TABLE ok (id INTEGER);")},
		"20260102_000000_bad.up.sql": {Data: []byte("CREATE TABLE broken (;")},
	}

	if err := db.Migrate(ctx, fsys); err == nil {
		t.Fatal("Migrate() error = nil, want SQL error")
	}
	if !tableExists(t, db, "ok") {
		t.Error("earlier migration was not kept")
	}
	pending, err := db.Pending(ctx, fsys)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 1 || pending[0].Name != "bad" {
		t.Errorf("Pending() = %+v, want [bad]", pending)
	}
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := LoadMigrations(testMigrations())
	if err != nil {
		t.Fatalf("LoadMigrations() error = %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("LoadMigrations() = %d, want 2", len(migrations))
	}
	if migrations[0].Version != "20260101_000000" || migrations[0].Name != "widgets" || migrations[0].DownSQL == "" {
		t.Errorf("first = %+v", migrations[0])
	}
	if migrations[1].DownSQL != "" {
		t.Errorf("second DownSQL = %q, want empty", migrations[1].DownSQL)
	}

	if got, err := LoadMigrations(nil); err != nil || got != nil {
		t.Errorf("LoadMigrations(nil) = %v, %v", got, err)
	}

	_, err = LoadMigrations(fstest.MapFS{
		"20260101_000000_orphan.down.sql": {Data: []byte("DROP TABLE x;")},
	})
	if err == nil {
		t.Error("LoadMigrations() with only down SQL error = nil")
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		file        string
		wantVersion string
		wantName    string
		wantUp      bool
		wantOK      bool
	}{
		{"20260301_090000_script_executions.up.sql", "20260301_090000", "script_executions", true, true},
		{"20260301_090000_script_executions.down.sql", "20260301_090000", "script_executions", false, true},
		{"20260301_090000.up.sql", "20260301_090000", "20260301_090000", true, true},
		{"20260301_090000_x.sql", "", "", false, false},
		{"2026_090000_x.up.sql", "", "", false, false},
		{"notes.txt", "", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			version, name, up, ok := parseMigrationFilename(tt.file)
			if version != tt.wantVersion || name != tt.wantName || up != tt.wantUp || ok != tt.wantOK {
				t.Errorf("parseMigrationFilename(%q) = %q, %q, %v, %v", tt.file, version, name, up, ok)
			}
		})
	}
}
