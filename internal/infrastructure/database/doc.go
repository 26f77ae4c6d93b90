// Package database provides the SQLite store behind the script execution
// log.
//
// The connection runs with a single writer, foreign keys on, and WAL mode
// when configured. Schema changes are versioned SQL files applied by
// Migrate from any fs.FS, normally the embedded one in package migrations:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx, migrations.FS); err != nil {
//	    return err
//	}
package database
