// Package sqlite persists deserialized tracking datasets for downstream
// analysis. Frames, periods, and per-player observations land in normalized
// tables keyed by a dataset row; the schema is applied inline on first use.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/banshee-data/pitch.report/internal/timeutil"
	"github.com/banshee-data/pitch.report/internal/tracking"
)

// Schema is applied by Init. Player observations cascade with their
// dataset so a re-import can replace a match wholesale.
const schema = `
CREATE TABLE IF NOT EXISTS track_datasets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	provider TEXT NOT NULL,
	orientation TEXT NOT NULL,
	frame_rate REAL NOT NULL,
	home_team TEXT NOT NULL,
	away_team TEXT NOT NULL,
	frame_count INTEGER NOT NULL,
	created_unix INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS track_periods (
	dataset_id INTEGER NOT NULL REFERENCES track_datasets(id) ON DELETE CASCADE,
	period_id INTEGER NOT NULL,
	start_ns INTEGER NOT NULL,
	end_ns INTEGER NOT NULL,
	attacking_direction TEXT NOT NULL,
	PRIMARY KEY (dataset_id, period_id)
);

CREATE TABLE IF NOT EXISTS track_frames (
	dataset_id INTEGER NOT NULL REFERENCES track_datasets(id) ON DELETE CASCADE,
	frame_id INTEGER NOT NULL,
	period_id INTEGER NOT NULL,
	ts_ns INTEGER NOT NULL,
	ball_x REAL,
	ball_y REAL,
	ball_z REAL,
	ball_speed REAL,
	ball_state TEXT NOT NULL,
	ball_owning TEXT,
	PRIMARY KEY (dataset_id, frame_id)
);

CREATE TABLE IF NOT EXISTS track_player_obs (
	dataset_id INTEGER NOT NULL REFERENCES track_datasets(id) ON DELETE CASCADE,
	frame_id INTEGER NOT NULL,
	player_id TEXT NOT NULL,
	ground TEXT NOT NULL,
	jersey_no INTEGER NOT NULL,
	x REAL,
	y REAL,
	speed REAL
);

CREATE INDEX IF NOT EXISTS idx_track_player_obs_frame
	ON track_player_obs(dataset_id, frame_id);
`

// FrameStore manages persistence for tracking datasets.
type FrameStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewFrameStore creates a store backed by the given database.
func NewFrameStore(db *sql.DB) *FrameStore {
	return &FrameStore{db: db, clock: timeutil.RealClock{}}
}

// SetClock replaces the clock used for dataset timestamps. Tests use this
// to pin created_unix.
func (s *FrameStore) SetClock(clock timeutil.Clock) {
	s.clock = clock
}

// Init applies the schema. Safe to call on every start.
func (s *FrameStore) Init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("apply tracking schema: %w", err)
	}
	return nil
}

// SaveDataset stores one deserialized dataset under the given name and
// returns its row id. The whole dataset lands in a single transaction.
func (s *FrameStore) SaveDataset(name string, ds *tracking.Dataset) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin dataset save: %w", err)
	}
	defer tx.Rollback()

	meta := &ds.Metadata
	result, err := tx.Exec(`
		INSERT INTO track_datasets (name, provider, orientation, frame_rate, home_team, away_team, frame_count, created_unix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		name, meta.Provider, meta.Orientation.String(), meta.FrameRate,
		meta.Teams[0].Name, meta.Teams[1].Name, len(ds.Frames), s.clock.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert dataset: %w", err)
	}
	datasetID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get dataset insert ID: %w", err)
	}

	for _, period := range meta.Periods {
		_, err := tx.Exec(`
			INSERT INTO track_periods (dataset_id, period_id, start_ns, end_ns, attacking_direction)
			VALUES (?, ?, ?, ?, ?)`,
			datasetID, period.ID, period.Start.Nanoseconds(), period.End.Nanoseconds(),
			period.AttackingDirection().String(),
		)
		if err != nil {
			return 0, fmt.Errorf("insert period %d: %w", period.ID, err)
		}
	}

	frameStmt, err := tx.Prepare(`
		INSERT INTO track_frames (dataset_id, frame_id, period_id, ts_ns, ball_x, ball_y, ball_z, ball_speed, ball_state, ball_owning)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare frame insert: %w", err)
	}
	defer frameStmt.Close()

	obsStmt, err := tx.Prepare(`
		INSERT INTO track_player_obs (dataset_id, frame_id, player_id, ground, jersey_no, x, y, speed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare observation insert: %w", err)
	}
	defer obsStmt.Close()

	for _, frame := range ds.Frames {
		if err := insertFrame(frameStmt, obsStmt, datasetID, frame); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit dataset save: %w", err)
	}
	return datasetID, nil
}

func insertFrame(frameStmt, obsStmt *sql.Stmt, datasetID int64, frame *tracking.Frame) error {
	var ballX, ballY, ballZ interface{}
	if frame.BallCoordinates != nil {
		ballX = frame.BallCoordinates.X
		ballY = frame.BallCoordinates.Y
		ballZ = frame.BallCoordinates.Z
	}
	var ballSpeed interface{}
	if frame.BallSpeed != nil {
		ballSpeed = *frame.BallSpeed
	}
	var owning interface{}
	if frame.BallOwningTeam != nil {
		owning = string(frame.BallOwningTeam.Ground)
	}

	_, err := frameStmt.Exec(
		datasetID, frame.FrameID, frame.Period.ID, frame.Timestamp.Nanoseconds(),
		ballX, ballY, ballZ, ballSpeed, string(frame.BallState), owning,
	)
	if err != nil {
		return fmt.Errorf("insert frame %d: %w", frame.FrameID, err)
	}

	for player, data := range frame.PlayersData {
		var x, y interface{}
		if data.Coordinates != nil {
			x = data.Coordinates.X
			y = data.Coordinates.Y
		}
		var speed interface{}
		if data.Speed != nil {
			speed = *data.Speed
		}
		var ground tracking.Ground
		if player.Team != nil {
			ground = player.Team.Ground
		}
		_, err := obsStmt.Exec(datasetID, frame.FrameID, player.PlayerID, string(ground), player.JerseyNo, x, y, speed)
		if err != nil {
			return fmt.Errorf("insert observation frame=%d player=%s: %w", frame.FrameID, player.PlayerID, err)
		}
	}
	return nil
}

// DatasetSummary is one stored dataset's headline row.
type DatasetSummary struct {
	ID          int64
	Name        string
	Provider    string
	Orientation string
	FrameRate   float64
	FrameCount  int
}

// GetDataset returns the summary row for one stored dataset.
func (s *FrameStore) GetDataset(datasetID int64) (*DatasetSummary, error) {
	var summary DatasetSummary
	err := s.db.QueryRow(`
		SELECT id, name, provider, orientation, frame_rate, frame_count
		FROM track_datasets WHERE id = ?`, datasetID).
		Scan(&summary.ID, &summary.Name, &summary.Provider, &summary.Orientation,
			&summary.FrameRate, &summary.FrameCount)
	if err != nil {
		return nil, fmt.Errorf("get dataset %d: %w", datasetID, err)
	}
	return &summary, nil
}

// CountFrames returns the number of stored frames for a dataset.
func (s *FrameStore) CountFrames(datasetID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM track_frames WHERE dataset_id = ?`, datasetID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count frames for dataset %d: %w", datasetID, err)
	}
	return n, nil
}

// DeleteDataset removes a dataset and its cascaded rows.
func (s *FrameStore) DeleteDataset(datasetID int64) error {
	if _, err := s.db.Exec(`DELETE FROM track_datasets WHERE id = ?`, datasetID); err != nil {
		return fmt.Errorf("delete dataset %d: %w", datasetID, err)
	}
	return nil
}
