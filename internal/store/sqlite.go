package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one benchmarked game.
type Run struct {
	ID             string    `json:"id"`
	Solver         string    `json:"solver"`
	Seed           int64     `json:"seed"`
	Score          int       `json:"score"`
	HeuristicScore int       `json:"heuristic_score"`
	Output         string    `json:"output"`
	CreatedAt      time.Time `json:"created_at"`
}

// SolverTotal summarizes the stored runs of one solver.
type SolverTotal struct {
	Solver string `json:"solver"`
	Runs   int    `json:"runs"`
	Total  int64  `json:"total"`
	Best   int    `json:"best"`
	Worst  int    `json:"worst"`
}

// ResultStore keeps benchmark runs in SQLite, one row per solver and seed.
type ResultStore struct {
	db *sql.DB
}

const createRunsSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	solver TEXT NOT NULL,
	seed INTEGER NOT NULL,
	score INTEGER NOT NULL,
	heuristic_score INTEGER NOT NULL,
	output TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	UNIQUE (solver, seed)
);
`

func OpenResults(dbPath string) (*ResultStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createRunsSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

// SaveRun stores r, replacing an earlier run of the same solver and seed.
func (s *ResultStore) SaveRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, solver, seed, score, heuristic_score, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (solver, seed) DO UPDATE SET
			id = excluded.id,
			score = excluded.score,
			heuristic_score = excluded.heuristic_score,
			output = excluded.output,
			created_at = excluded.created_at
	`, r.ID, r.Solver, r.Seed, r.Score, r.HeuristicScore, r.Output, r.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save run %s/%d: %w", r.Solver, r.Seed, err)
	}
	return nil
}

// Runs lists runs ordered by seed. An empty solver lists every solver.
func (s *ResultStore) Runs(ctx context.Context, solver string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, solver, seed, score, heuristic_score, output, created_at
		FROM runs
		WHERE ? = '' OR solver = ?
		ORDER BY solver, seed
	`, solver, solver)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Solver, &r.Seed, &r.Score, &r.HeuristicScore, &r.Output, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *ResultStore) Totals(ctx context.Context) ([]SolverTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT solver, COUNT(*), SUM(score), MAX(score), MIN(score)
		FROM runs
		GROUP BY solver
		ORDER BY SUM(score) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var out []SolverTotal
	for rows.Next() {
		var t SolverTotal
		if err := rows.Scan(&t.Solver, &t.Runs, &t.Total, &t.Best, &t.Worst); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
