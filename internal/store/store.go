// Package store keeps batch classification results in SQLite. It is an
// output sink for batch runs, nothing more. In particular it is not the
// wall of shame; the wall stays empty no matter what lands here.
package store

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"ratiocop/internal/model"
)

// DB wraps a SQLite database holding batch results.
type DB struct{ sql *sql.DB }

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = d.Close()
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS analyses (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  run_id TEXT NOT NULL,
	  username TEXT NOT NULL,
	  following REAL NOT NULL,
	  followers REAL NOT NULL,
	  ratio TEXT NOT NULL,
	  verdict TEXT NOT NULL,
	  shame INTEGER NOT NULL,
	  analyzed_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_run ON analyses(run_id);
	CREATE INDEX IF NOT EXISTS idx_analyses_verdict ON analyses(verdict);
	`)
	return err
}

// Result is one stored row. Description and recommendation are not stored;
// they are canned per verdict and rehydrated on load.
type Result struct {
	RunID    string
	Username string
	Analysis model.RatioAnalysis
}

// PutResult stores one classified account under a batch run id.
func (d *DB) PutResult(ctx context.Context, runID, username string, a model.RatioAnalysis) error {
	shame := 0
	if a.Shame {
		shame = 1
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO analyses(run_id, username, following, followers, ratio, verdict, shame, analyzed_at) VALUES(?,?,?,?,?,?,?,?)`,
		runID, username, a.Following, a.Followers, a.Ratio, string(a.Verdict), shame, a.Timestamp)
	return err
}

// LoadResults returns stored results in insertion order. An empty runID
// selects every run.
func (d *DB) LoadResults(ctx context.Context, runID string) ([]Result, error) {
	var rows *sql.Rows
	var err error
	if runID == "" {
		rows, err = d.sql.QueryContext(ctx, `SELECT run_id, username, following, followers, ratio, verdict, shame, analyzed_at FROM analyses ORDER BY id`)
	} else {
		rows, err = d.sql.QueryContext(ctx, `SELECT run_id, username, following, followers, ratio, verdict, shame, analyzed_at FROM analyses WHERE run_id=? ORDER BY id`, runID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Result
	for rows.Next() {
		var r Result
		var verdict string
		var shame int
		if err := rows.Scan(&r.RunID, &r.Username, &r.Analysis.Following, &r.Analysis.Followers, &r.Analysis.Ratio, &verdict, &shame, &r.Analysis.Timestamp); err != nil {
			return nil, err
		}
		r.Analysis.Verdict = model.Verdict(verdict)
		r.Analysis.Shame = shame != 0
		r.Analysis.Description, r.Analysis.Recommendation = model.VerdictText(r.Analysis.Verdict)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountByVerdict tallies stored results per verdict. An empty runID counts
// every run.
func (d *DB) CountByVerdict(ctx context.Context, runID string) (map[model.Verdict]int, error) {
	var rows *sql.Rows
	var err error
	if runID == "" {
		rows, err = d.sql.QueryContext(ctx, `SELECT verdict, COUNT(*) FROM analyses GROUP BY verdict`)
	} else {
		rows, err = d.sql.QueryContext(ctx, `SELECT verdict, COUNT(*) FROM analyses WHERE run_id=? GROUP BY verdict`, runID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[model.Verdict]int{}
	for rows.Next() {
		var verdict string
		var n int
		if err := rows.Scan(&verdict, &n); err != nil {
			return nil, err
		}
		out[model.Verdict(verdict)] = n
	}
	return out, rows.Err()
}
