package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/curbrush/world/internal/config"
)

func TestNewDBRejectsBadDSN(t *testing.T) {
	_, err := NewDB(context.Background(), config.DatabaseConfig{DSN: "postgres://%zz"}, nil)
	if err == nil {
		t.Fatal("expected dsn parse error")
	}
}

func TestPoolConfigFromDatabaseSection(t *testing.T) {
	pc, err := poolConfig(config.DatabaseConfig{
		DSN:             "postgres://curbrush:pw@db.local:5432/runs?sslmode=disable",
		MaxOpenConns:    4,
		MaxIdleConns:    9,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		t.Fatal(err)
	}
	if pc.MaxConns != 4 || pc.MinConns != 4 {
		t.Errorf("conns max=%d min=%d, idle must be capped at the pool size", pc.MaxConns, pc.MinConns)
	}
	if pc.MaxConnLifetime != 30*time.Minute {
		t.Errorf("lifetime = %v", pc.MaxConnLifetime)
	}
	if got := pc.ConnConfig.RuntimeParams["application_name"]; got != applicationName {
		t.Errorf("application_name = %q", got)
	}
	if pc.ConnConfig.Host != "db.local" || pc.ConnConfig.Database != "runs" {
		t.Errorf("host/db = %s/%s", pc.ConnConfig.Host, pc.ConnConfig.Database)
	}

	named, err := poolConfig(config.DatabaseConfig{DSN: "postgres://u@h/d?application_name=replay"})
	if err != nil {
		t.Fatal(err)
	}
	if got := named.ConnConfig.RuntimeParams["application_name"]; got != "replay" {
		t.Errorf("dsn application_name overridden: %q", got)
	}
}

// testDB connects to WORLD_TEST_DSN and migrates it, or skips.
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("WORLD_TEST_DSN")
	if dsn == "" {
		t.Skip("WORLD_TEST_DSN not set")
	}
	ctx := context.Background()
	db, err := NewDB(ctx, config.DatabaseConfig{DSN: dsn, MaxOpenConns: 2}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Close)
	version, err := RunMigrations(ctx, db.Pool)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if version < 1 {
		t.Fatalf("schema version = %d", version)
	}
	return db
}

func TestRunRepoRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewRunRepo(db)
	ctx := context.Background()
	seed := time.Now().UnixNano()

	runs := []*RunSummary{
		{Seed: seed, Mode: "test", Duration: 90 * time.Second, Distance: 1234.5, Chunks: 40, Hazards: 77, Fingerprint: "aa"},
		{Seed: seed + 1, Mode: "test", Duration: 90 * time.Second, Distance: 999, Chunks: 31, Fingerprint: "bb"},
	}
	if err := repo.SaveBatch(ctx, runs); err != nil {
		t.Fatalf("save: %v", err)
	}
	if runs[0].ID == 0 || runs[1].ID == 0 {
		t.Fatal("ids not assigned")
	}

	got, err := repo.Recent(ctx, "test", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	found := false
	for _, r := range got {
		if r.ID == runs[0].ID {
			found = true
			if r.Duration != runs[0].Duration || r.Hazards != 77 || r.Fingerprint != "aa" {
				t.Errorf("row = %+v", r)
			}
		}
	}
	if !found {
		t.Error("saved run not listed")
	}

	drift, err := repo.FingerprintDrift(ctx, &RunSummary{Seed: seed, Mode: "test", Duration: 90 * time.Second, Fingerprint: "cc"})
	if err != nil || !drift {
		t.Errorf("drift = %v, %v; want true", drift, err)
	}
	drift, err = repo.FingerprintDrift(ctx, runs[0])
	if err != nil || drift {
		t.Errorf("drift = %v, %v; want false", drift, err)
	}
}
