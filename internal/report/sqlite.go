package report

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/25smoking/bamparse/internal/forensics"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS bam_entries (
    id INTEGER PRIMARY KEY,
    sid TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bam_executables (
    entry_id INTEGER NOT NULL REFERENCES bam_entries(id),
    position INTEGER NOT NULL,
    path TEXT NOT NULL,
    date TEXT NOT NULL,
    PRIMARY KEY (entry_id, position)
);

CREATE INDEX IF NOT EXISTS idx_bam_executables_path ON bam_executables(path);
`

// WriteSQLite stores result in a fresh SQLite database at path. Entry ids
// and record positions follow enumeration order, starting at 1 and 0.
func WriteSQLite(path string, result forensics.BamResult) error {
	// 覆盖旧文件，避免与上次结果混在一起
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove old database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1) // SQLite only allows one writer at a time

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entryStmt, err := tx.Prepare("INSERT INTO bam_entries (id, sid) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer entryStmt.Close()

	exeStmt, err := tx.Prepare("INSERT INTO bam_executables (entry_id, position, path, date) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare executable insert: %w", err)
	}
	defer exeStmt.Close()

	for i, e := range result {
		id := i + 1
		if _, err := entryStmt.Exec(id, e.SID); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.SID, err)
		}
		for pos, rec := range e.Executable {
			if _, err := exeStmt.Exec(id, pos, rec.Path, rec.Date); err != nil {
				return fmt.Errorf("failed to insert executable %s: %w", rec.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReadSQLite loads a result written by WriteSQLite.
func ReadSQLite(path string) (forensics.BamResult, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT e.id, e.sid, x.path, x.date
		FROM bam_entries e
		LEFT JOIN bam_executables x ON x.entry_id = e.id
		ORDER BY e.id, x.position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	result := forensics.BamResult{}
	lastID := int64(-1)
	for rows.Next() {
		var (
			id         int64
			sid        string
			path, date sql.NullString
		)
		if err := rows.Scan(&id, &sid, &path, &date); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if id != lastID {
			result = append(result, forensics.BamEntry{SID: sid, Executable: []forensics.ExecutableRecord{}})
			lastID = id
		}
		if path.Valid {
			last := &result[len(result)-1]
			last.Executable = append(last.Executable, forensics.ExecutableRecord{Path: path.String, Date: date.String})
		}
	}
	return result, rows.Err()
}
