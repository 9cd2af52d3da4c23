package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"habitkit/internal/models"
)

// SchemaVersion is stored in PRAGMA user_version and bumped whenever the
// DDL below changes shape.
const SchemaVersion = 1

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id          TEXT PRIMARY KEY,
	owner_id    TEXT NOT NULL DEFAULT '',
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	kind        TEXT NOT NULL,
	schedule    TEXT NOT NULL,
	goal        INTEGER,
	created_at  TEXT NOT NULL,
	deleted_at  TEXT
);

CREATE TABLE IF NOT EXISTS completions (
	habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	day      TEXT NOT NULL,
	outcome  TEXT NOT NULL,
	PRIMARY KEY (habit_id, day)
);

CREATE INDEX IF NOT EXISTS idx_habits_owner ON habits(owner_id);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitkit init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return s.validateSchemaVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) validateSchemaVersion() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", version, SchemaVersion)
	}
	if version < SchemaVersion {
		return fmt.Errorf("database schema version (%d) is older than supported version (%d), re-run 'habitkit init'", version, SchemaVersion)
	}
	return nil
}

// GetDB exposes the underlying connection for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	return s.writeHabit(habit)
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ?", habit.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check habit existence: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("habit not found: %s", habit.ID)
	}
	return s.writeHabit(habit)
}

// writeHabit persists the whole aggregate: the habit row plus its full
// completion history, in one transaction.
func (s *SQLiteStore) writeHabit(habit models.Habit) error {
	scheduleJSON, err := json.Marshal(habit.Schedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	var goal sql.NullInt64
	if habit.Goal != nil {
		goal = sql.NullInt64{Int64: int64(*habit.Goal), Valid: true}
	}
	var deletedAt sql.NullString
	if habit.DeletedAt != nil {
		deletedAt = sql.NullString{String: *habit.DeletedAt, Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO habits (
			id, owner_id, name, description, kind, schedule, goal, created_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.OwnerID, habit.Name, habit.Description, string(habit.Kind),
		string(scheduleJSON), goal, habit.CreatedAt.UTC().Format(time.RFC3339), deletedAt,
	)
	if err != nil {
		return err
	}

	// Replace the history wholesale; the aggregate is the unit of persistence
	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = ?", habit.ID); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO completions (habit_id, day, outcome) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for day, outcome := range habit.History {
		if _, err := stmt.Exec(habit.ID, day, string(outcome)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, owner_id, name, description, kind, schedule, goal, created_at, deleted_at
		FROM habits WHERE id = ? AND deleted_at IS NULL`, id)

	habit, err := s.scanHabit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, fmt.Errorf("habit not found: %s", id)
		}
		return models.Habit{}, err
	}

	if err := s.loadHistory(&habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *SQLiteStore) GetAllHabits(ownerID string, includeDeleted bool) ([]models.Habit, error) {
	query := `
		SELECT id, owner_id, name, description, kind, schedule, goal, created_at, deleted_at
		FROM habits WHERE owner_id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	rows, err := s.db.Query(query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := s.scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		if err := s.loadHistory(&habits[i]); err != nil {
			return nil, err
		}
	}

	return habits, nil
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	// Soft delete: set deleted_at timestamp instead of removing the record
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM habits WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit not found: %s", id)
		}
		return fmt.Errorf("failed to check habit existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("habit already deleted: %s", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE habits SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *SQLiteStore) RestoreHabit(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM habits WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit not found: %s", id)
		}
		return fmt.Errorf("failed to check habit existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a habit that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE habits SET deleted_at = NULL WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) PurgeHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = ?", id); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var kind, scheduleJSON, createdAt string
	var goal sql.NullInt64
	var deletedAt sql.NullString

	err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Description, &kind, &scheduleJSON, &goal, &createdAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Kind = models.HabitKind(kind)

	var days []models.Weekday
	if err := json.Unmarshal([]byte(scheduleJSON), &days); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse schedule for habit %s: %w", h.ID, err)
	}
	h.Schedule, err = models.NewSchedule(days...)
	if err != nil {
		return models.Habit{}, fmt.Errorf("stored schedule for habit %s is invalid: %w", h.ID, err)
	}

	if goal.Valid {
		g := int(goal.Int64)
		h.Goal = &g
	}
	if deletedAt.Valid {
		h.DeletedAt = &deletedAt.String
	}

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}

	h.History = make(map[string]models.Outcome)
	return h, nil
}

func (s *SQLiteStore) loadHistory(habit *models.Habit) error {
	rows, err := s.db.Query("SELECT day, outcome FROM completions WHERE habit_id = ?", habit.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var day, outcome string
		if err := rows.Scan(&day, &outcome); err != nil {
			return err
		}
		habit.History[day] = models.Outcome(outcome)
	}
	return rows.Err()
}
