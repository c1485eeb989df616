package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brk3/flexhabits/internal/storage"
	"github.com/brk3/flexhabits/pkg/habit"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY NOT NULL,
	name TEXT NOT NULL,
	frequency TEXT NOT NULL DEFAULT 'daily',
	custom_days TEXT,
	flexible_target INTEGER,
	implementation_cue TEXT NOT NULL DEFAULT '',
	implementation_action TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'active',
	pause_end_date TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS habit_completions (
	id TEXT PRIMARY KEY NOT NULL,
	habit_id TEXT NOT NULL,
	date TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'completed',
	context_tag TEXT,
	context_note TEXT,
	completed_at INTEGER,
	FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_completions_habit_date
	ON habit_completions(habit_id, date);

CREATE INDEX IF NOT EXISTS idx_completions_date
	ON habit_completions(date);

CREATE TABLE IF NOT EXISTS daily_moods (
	id TEXT PRIMARY KEY NOT NULL,
	date TEXT NOT NULL UNIQUE,
	rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
	note TEXT,
	created_at INTEGER NOT NULL
);
`

const habitColumns = `id, name, frequency, custom_days, flexible_target, implementation_cue,
	implementation_action, status, pause_end_date, created_at, updated_at`

const completionColumns = `id, habit_id, date, status, context_tag, context_note, completed_at`

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" is accepted for
// tests; the pool is pinned to one connection so it stays a single database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PutHabit(h habit.Habit) error {
	if h.ID == "" {
		return fmt.Errorf("habit id is required")
	}
	var customDays sql.NullString
	if len(h.CustomDays) > 0 {
		b, err := json.Marshal(h.CustomDays)
		if err != nil {
			return err
		}
		customDays = sql.NullString{String: string(b), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			frequency = excluded.frequency,
			custom_days = excluded.custom_days,
			flexible_target = excluded.flexible_target,
			implementation_cue = excluded.implementation_cue,
			implementation_action = excluded.implementation_action,
			status = excluded.status,
			pause_end_date = excluded.pause_end_date,
			updated_at = excluded.updated_at`,
		h.ID, h.Name, string(h.Frequency), customDays, nullInt(h.FlexibleTarget),
		h.Cue, h.Action, string(h.Status), nullString(h.PauseEndDate), h.CreatedAt, h.UpdatedAt,
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (habit.Habit, error) {
	var h habit.Habit
	var freq, status string
	var customDays, pauseEnd sql.NullString
	var target sql.NullInt64

	if err := row.Scan(&h.ID, &h.Name, &freq, &customDays, &target, &h.Cue, &h.Action,
		&status, &pauseEnd, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return habit.Habit{}, err
	}
	h.Frequency = habit.Frequency(freq)
	h.Status = habit.Status(status)
	h.PauseEndDate = pauseEnd.String
	h.FlexibleTarget = int(target.Int64)
	if customDays.Valid && customDays.String != "" {
		if err := json.Unmarshal([]byte(customDays.String), &h.CustomDays); err != nil {
			return habit.Habit{}, fmt.Errorf("habit %q: bad custom_days: %w", h.ID, err)
		}
	}
	return h, nil
}

func (s *Store) GetHabit(id string) (habit.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.Habit{}, fmt.Errorf("habit %q: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) ListHabits() ([]habit.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []habit.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM habit_completions WHERE habit_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("habit %q: %w", id, storage.ErrNotFound)
	}
	return tx.Commit()
}

func (s *Store) PutCompletion(c habit.Completion) (habit.Completion, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return c, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM habits WHERE id = ?`, c.HabitID).Scan(&exists); err != nil {
		return c, err
	}
	if exists == 0 {
		return c, fmt.Errorf("habit %q: %w", c.HabitID, storage.ErrNotFound)
	}

	var existingID string
	err = tx.QueryRow(`SELECT id FROM habit_completions WHERE habit_id = ? AND date = ?`, c.HabitID, c.Date).Scan(&existingID)
	switch {
	case err == nil:
		c.ID = existingID
		_, err = tx.Exec(`
			UPDATE habit_completions
			SET status = ?, context_tag = ?, context_note = ?, completed_at = ?
			WHERE id = ?`,
			string(c.Status), nullString(c.ContextTag), nullString(c.ContextNote), nullInt64(c.CompletedAt), c.ID,
		)
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(`INSERT INTO habit_completions (`+completionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.HabitID, c.Date, string(c.Status), nullString(c.ContextTag), nullString(c.ContextNote), nullInt64(c.CompletedAt),
		)
	}
	if err != nil {
		return c, err
	}
	return c, tx.Commit()
}

func (s *Store) ListCompletions(habitID, start, end string) ([]habit.Completion, error) {
	return s.queryCompletions(`habit_id = ?`, habitID, start, end)
}

func (s *Store) ListCompletionsInRange(start, end string) ([]habit.Completion, error) {
	return s.queryCompletions(`1 = 1`, nil, start, end)
}

func (s *Store) queryCompletions(where string, habitID any, start, end string) ([]habit.Completion, error) {
	args := []any{}
	if habitID != nil {
		args = append(args, habitID)
	}
	if start != "" {
		where += ` AND date >= ?`
		args = append(args, start)
	}
	if end != "" {
		where += ` AND date <= ?`
		args = append(args, end)
	}

	rows, err := s.db.Query(`SELECT `+completionColumns+` FROM habit_completions WHERE `+where+` ORDER BY date, habit_id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []habit.Completion{}
	for rows.Next() {
		var c habit.Completion
		var status string
		var tag, note sql.NullString
		var completedAt sql.NullInt64
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Date, &status, &tag, &note, &completedAt); err != nil {
			return nil, err
		}
		c.Status = habit.CompletionStatus(status)
		c.ContextTag = tag.String
		c.ContextNote = note.String
		c.CompletedAt = completedAt.Int64
		out = append(out, c)
	}
	return out, rows.Err()
}

// PutMood upserts on date. An existing row keeps its id and created_at.
func (s *Store) PutMood(m habit.Mood) (habit.Mood, error) {
	if m.Date == "" {
		return m, fmt.Errorf("mood date is required")
	}
	err := s.db.QueryRow(`
		INSERT INTO daily_moods (id, date, rating, note, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			rating = excluded.rating,
			note = excluded.note
		RETURNING id, created_at`,
		m.ID, m.Date, m.Rating, nullString(m.Note), m.CreatedAt,
	).Scan(&m.ID, &m.CreatedAt)
	return m, err
}

func (s *Store) ListMoods(start, end string) ([]habit.Mood, error) {
	where := `1 = 1`
	args := []any{}
	if start != "" {
		where += ` AND date >= ?`
		args = append(args, start)
	}
	if end != "" {
		where += ` AND date <= ?`
		args = append(args, end)
	}

	rows, err := s.db.Query(`SELECT id, date, rating, note, created_at FROM daily_moods WHERE `+where+` ORDER BY date`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []habit.Mood{}
	for rows.Next() {
		var m habit.Mood
		var note sql.NullString
		if err := rows.Scan(&m.ID, &m.Date, &m.Rating, &note, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Note = note.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

var _ storage.Store = (*Store)(nil)
