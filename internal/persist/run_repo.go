package persist

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RunSummary is one finished simulated run.
type RunSummary struct {
	ID                 int64
	Seed               int64
	Mode               string
	Duration           time.Duration
	Distance           float64
	Chunks             int
	Crossings          int
	PopulatedCrossings int
	Skyscrapers        int
	Cranes             int
	Airplanes          int
	Flocks             int
	Pedestrians        int
	Vehicles           int
	Hazards            int
	Fingerprint        string
	FinishedAt         time.Time
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// SaveBatch writes all summaries in a single transaction and fills in
// their IDs. Either every row is stored or none is.
func (r *RunRepo) SaveBatch(ctx context.Context, runs []*RunSummary) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("runs begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range runs {
		if err := tx.QueryRow(ctx,
			`INSERT INTO runs (seed, mode, duration_ms, distance, chunks, crossings, populated_crossings,
			                   skyscrapers, cranes, airplanes, flocks, pedestrians, vehicles, hazards, fingerprint)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			 RETURNING id, finished_at`,
			s.Seed, s.Mode, s.Duration.Milliseconds(), s.Distance, s.Chunks, s.Crossings, s.PopulatedCrossings,
			s.Skyscrapers, s.Cranes, s.Airplanes, s.Flocks, s.Pedestrians, s.Vehicles, s.Hazards, s.Fingerprint,
		).Scan(&s.ID, &s.FinishedAt); err != nil {
			return fmt.Errorf("runs insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("runs commit: %w", err)
	}
	r.db.log.Debug("run summaries stored", zap.Int("count", len(runs)))
	return nil
}

// Recent returns the latest runs of a mode, newest first.
func (r *RunRepo) Recent(ctx context.Context, mode string, limit int) ([]RunSummary, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, seed, mode, duration_ms, distance, chunks, crossings, populated_crossings,
		        skyscrapers, cranes, airplanes, flocks, pedestrians, vehicles, hazards, fingerprint, finished_at
		 FROM runs WHERE mode = $1 ORDER BY finished_at DESC, id DESC LIMIT $2`, mode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			s  RunSummary
			ms int64
		)
		if err := rows.Scan(&s.ID, &s.Seed, &s.Mode, &ms, &s.Distance, &s.Chunks, &s.Crossings, &s.PopulatedCrossings,
			&s.Skyscrapers, &s.Cranes, &s.Airplanes, &s.Flocks, &s.Pedestrians, &s.Vehicles, &s.Hazards,
			&s.Fingerprint, &s.FinishedAt); err != nil {
			return nil, err
		}
		s.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, s)
	}
	return out, rows.Err()
}

// FingerprintDrift reports whether a stored run with the same seed, mode
// and duration produced a different layout. Used to detect generator drift.
func (r *RunRepo) FingerprintDrift(ctx context.Context, s *RunSummary) (bool, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM runs
		 WHERE seed = $1 AND mode = $2 AND duration_ms = $3 AND fingerprint <> $4`,
		s.Seed, s.Mode, s.Duration.Milliseconds(), s.Fingerprint,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
