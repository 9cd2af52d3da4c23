package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"habitkit/internal/constants"
	"habitkit/internal/models"
)

const postgresSchema = `
CREATE SCHEMA IF NOT EXISTS habitkit;

CREATE TABLE IF NOT EXISTS habitkit.habits (
	id          TEXT PRIMARY KEY,
	owner_id    TEXT NOT NULL DEFAULT '',
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	kind        TEXT NOT NULL,
	schedule    TEXT NOT NULL,
	goal        INTEGER,
	created_at  TIMESTAMPTZ NOT NULL,
	deleted_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS habitkit.completions (
	habit_id TEXT NOT NULL REFERENCES habitkit.habits(id) ON DELETE CASCADE,
	day      TEXT NOT NULL,
	outcome  TEXT NOT NULL,
	PRIMARY KEY (habit_id, day)
);

CREATE INDEX IF NOT EXISTS idx_habits_owner ON habitkit.habits(owner_id);
`

// PostgresStore is the shared/remote backend, selected when the config
// string is a postgres:// URL.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	s := &PostgresStore{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath pins the connection to the habitkit schema so table
// names stay unqualified in queries.
func (s *PostgresStore) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else if !strings.Contains(s.connStr, "search_path=") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

func (s *PostgresStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to reach database: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load() error {
	if err := s.open(); err != nil {
		return err
	}
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = 'habits')",
		constants.AppName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("storage not initialized, run 'habitkit init' first")
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) AddHabit(habit models.Habit) error {
	return s.writeHabit(habit)
}

func (s *PostgresStore) UpdateHabit(habit models.Habit) error {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM habits WHERE id = $1", habit.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check habit existence: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("habit not found: %s", habit.ID)
	}
	return s.writeHabit(habit)
}

func (s *PostgresStore) writeHabit(habit models.Habit) error {
	scheduleJSON, err := json.Marshal(habit.Schedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	var goal sql.NullInt64
	if habit.Goal != nil {
		goal = sql.NullInt64{Int64: int64(*habit.Goal), Valid: true}
	}
	var deletedAt sql.NullTime
	if habit.DeletedAt != nil {
		t, err := time.Parse(time.RFC3339, *habit.DeletedAt)
		if err != nil {
			return fmt.Errorf("bad deleted_at timestamp: %w", err)
		}
		deletedAt = sql.NullTime{Time: t, Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO habits (id, owner_id, name, description, kind, schedule, goal, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			kind = EXCLUDED.kind,
			schedule = EXCLUDED.schedule,
			goal = EXCLUDED.goal,
			deleted_at = EXCLUDED.deleted_at`,
		habit.ID, habit.OwnerID, habit.Name, habit.Description, string(habit.Kind),
		string(scheduleJSON), goal, habit.CreatedAt.UTC(), deletedAt,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = $1", habit.ID); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO completions (habit_id, day, outcome) VALUES ($1, $2, $3)")
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

func (s *PostgresStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, owner_id, name, description, kind, schedule, goal, created_at, deleted_at
		FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)

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

func (s *PostgresStore) GetAllHabits(ownerID string, includeDeleted bool) ([]models.Habit, error) {
	query := `
		SELECT id, owner_id, name, description, kind, schedule, goal, created_at, deleted_at
		FROM habits WHERE owner_id = $1`
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

func (s *PostgresStore) DeleteHabit(id string) error {
	var deletedAt sql.NullTime
	err := s.db.QueryRow("SELECT deleted_at FROM habits WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit not found: %s", id)
		}
		return fmt.Errorf("failed to check habit existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("habit already deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE habits SET deleted_at = NOW() WHERE id = $1", id)
	return err
}

func (s *PostgresStore) RestoreHabit(id string) error {
	var deletedAt sql.NullTime
	err := s.db.QueryRow("SELECT deleted_at FROM habits WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit not found: %s", id)
		}
		return fmt.Errorf("failed to check habit existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a habit that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE habits SET deleted_at = NULL WHERE id = $1", id)
	return err
}

func (s *PostgresStore) PurgeHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = $1", id); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM habits WHERE id = $1", id)
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

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

func (s *PostgresStore) scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var kind, scheduleJSON string
	var goal sql.NullInt64
	var createdAt time.Time
	var deletedAt sql.NullTime

	err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Description, &kind, &scheduleJSON, &goal, &createdAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Kind = models.HabitKind(kind)
	h.CreatedAt = createdAt

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
		str := deletedAt.Time.UTC().Format(time.RFC3339)
		h.DeletedAt = &str
	}

	h.History = make(map[string]models.Outcome)
	return h, nil
}

func (s *PostgresStore) loadHistory(habit *models.Habit) error {
	rows, err := s.db.Query("SELECT day, outcome FROM completions WHERE habit_id = $1", habit.ID)
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
