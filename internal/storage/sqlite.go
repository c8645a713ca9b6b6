// Package storage provides SQLite-based persistence for episode scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

// Store manages the SQLite database connection for episode persistence.
type Store struct {
	db *sql.DB
}

// EpisodeRecord is one finished scoring run.
type EpisodeRecord struct {
	ID                 int64
	Pilot              string
	Scenario           string
	Seed               int64
	StopReason         game.StoppingCondition
	SimTime            float64
	FrameCount         int
	LivesRemaining     int
	AsteroidsDestroyed int
	MaxAsteroids       int
	BulletsFired       int
	Deaths             int
	Accuracy           float64
	DistanceTravelled  float64
	ComputeCostTotal   *float64 // nil when cost tracking was off
	CreatedAt          time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pilot TEXT NOT NULL,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			stop_reason INTEGER NOT NULL,
			sim_time REAL NOT NULL,
			frame_count INTEGER NOT NULL,
			lives_remaining INTEGER NOT NULL,
			asteroids_destroyed INTEGER NOT NULL,
			max_asteroids INTEGER NOT NULL,
			bullets_fired INTEGER NOT NULL,
			deaths INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			distance_travelled REAL NOT NULL,
			compute_cost_total REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_pilot ON episodes(pilot);
		CREATE INDEX IF NOT EXISTS idx_episodes_best ON episodes(scenario, asteroids_destroyed DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveEpisode records a finished episode built from its final score.
// Returns the ID of the inserted record.
func (s *Store) SaveEpisode(pilot, scenario string, seed int64, score game.Score) (int64, error) {
	var cost any
	if score.ComputeCost != nil {
		cost = score.ComputeCost.Total
	}

	result, err := s.db.Exec(
		`INSERT INTO episodes
		 (pilot, scenario, seed, stop_reason, sim_time, frame_count, lives_remaining,
		  asteroids_destroyed, max_asteroids, bullets_fired, deaths, accuracy,
		  distance_travelled, compute_cost_total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pilot, scenario, seed, score.StoppingCondition.Int(), score.Time, score.FrameCount,
		score.LivesRemaining, score.AsteroidsDestroyed, score.MaxAsteroids,
		score.BulletsFired, score.Deaths, score.Accuracy(), score.DistanceTravelled, cost,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const episodeColumns = `id, pilot, scenario, seed, stop_reason, sim_time, frame_count,
	lives_remaining, asteroids_destroyed, max_asteroids, bullets_fired, deaths,
	accuracy, distance_travelled, compute_cost_total, created_at`

// RecentEpisodes retrieves the most recently recorded episodes.
func (s *Store) RecentEpisodes(limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()
	return scanEpisodes(rows)
}

// BestEpisodes retrieves the top episodes for a scenario, ranked by
// asteroids destroyed and then by how fast the field was cleared.
func (s *Store) BestEpisodes(scenario string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE scenario = ?
		 ORDER BY asteroids_destroyed DESC, sim_time ASC
		 LIMIT ?`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()
	return scanEpisodes(rows)
}

// PilotEpisodes retrieves the most recent episodes flown by one pilot.
func (s *Store) PilotEpisodes(pilot string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE pilot = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		pilot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()
	return scanEpisodes(rows)
}

func scanEpisodes(rows *sql.Rows) ([]EpisodeRecord, error) {
	var records []EpisodeRecord
	for rows.Next() {
		var r EpisodeRecord
		var stopReason int
		var cost sql.NullFloat64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Pilot, &r.Scenario, &r.Seed, &stopReason, &r.SimTime, &r.FrameCount,
			&r.LivesRemaining, &r.AsteroidsDestroyed, &r.MaxAsteroids, &r.BulletsFired,
			&r.Deaths, &r.Accuracy, &r.DistanceTravelled, &cost, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		reason, err := game.ParseStoppingCondition(stopReason)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		r.StopReason = reason
		if cost.Valid {
			v := cost.Float64
			r.ComputeCostTotal = &v
		}
		r.CreatedAt = parseTimestamp(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// parseTimestamp handles both time.Time and string representations coming
// back from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// PilotStats contains aggregated statistics for one pilot.
type PilotStats struct {
	Pilot         string
	Episodes      int
	BestDestroyed int
	AvgDestroyed  float64
	AvgAccuracy   float64
	TotalDeaths   int
	LastFlown     time.Time
}

// GetPilotStats retrieves aggregated statistics for a specific pilot.
func (s *Store) GetPilotStats(pilot string) (*PilotStats, error) {
	stats := &PilotStats{Pilot: pilot}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(asteroids_destroyed), 0),
		        COALESCE(AVG(asteroids_destroyed), 0), COALESCE(AVG(accuracy), 0),
		        COALESCE(SUM(deaths), 0)
		 FROM episodes WHERE pilot = ?`,
		pilot,
	).Scan(&stats.Episodes, &stats.BestDestroyed, &stats.AvgDestroyed,
		&stats.AvgAccuracy, &stats.TotalDeaths)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pilot stats: %w", err)
	}

	var lastFlown any
	err = s.db.QueryRow(
		`SELECT created_at FROM episodes WHERE pilot = ? ORDER BY id DESC LIMIT 1`,
		pilot,
	).Scan(&lastFlown)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last flown: %w", err)
	}
	if err == nil {
		stats.LastFlown = parseTimestamp(lastFlown)
	}
	return stats, nil
}

// GetAllPilotStats retrieves statistics for every pilot with recorded
// episodes.
func (s *Store) GetAllPilotStats() (map[string]*PilotStats, error) {
	rows, err := s.db.Query(
		`SELECT pilot, COUNT(*), MAX(asteroids_destroyed), AVG(asteroids_destroyed),
		        AVG(accuracy), SUM(deaths), MAX(created_at)
		 FROM episodes
		 GROUP BY pilot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all pilot stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PilotStats)
	for rows.Next() {
		var p PilotStats
		var lastFlown any
		if err := rows.Scan(&p.Pilot, &p.Episodes, &p.BestDestroyed, &p.AvgDestroyed,
			&p.AvgAccuracy, &p.TotalDeaths, &lastFlown); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		p.LastFlown = parseTimestamp(lastFlown)
		stats[p.Pilot] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearEpisodes deletes all episodes recorded for the given pilot.
func (s *Store) ClearEpisodes(pilot string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE pilot = ?", pilot)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}
