package services

import (
	"database/sql"
	"fmt"

	"github.com/isdelr/classmate-be/internal/models"
)

// ItemServiceProvider defines the interface for the per-user item
// collections. Every save is a full-set replace: the previous set for the
// user is discarded and the submitted items become the new set, in order.
type ItemServiceProvider interface {
	ReplaceGoals(userID string, goals []models.Goal) error
	ListGoals(userID string) ([]models.Goal, error)
	Performance(userID string) (models.Performance, error)

	ReplaceNotes(userID string, notes []models.Note) error
	ListNotes(userID string) ([]models.Note, error)

	ReplaceTasks(userID string, tasks []models.Task) error
	ListTasks(userID string) ([]models.Task, error)
}

// ItemService stores goals, notes and tasks scoped per user.
type ItemService struct {
	db *sql.DB
}

// NewItemService creates a new ItemService.
func NewItemService(db *sql.DB) *ItemService {
	return &ItemService{db: db}
}

// replaceAll deletes a user's rows from table and re-inserts via insert, all
// inside one transaction so readers never observe a half-replaced set.
func (s *ItemService) replaceAll(table, columns, placeholders, userID string, count int, insert func(stmt *sql.Stmt, i int) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE user_id = ?", table), userID); err != nil {
		return err
	}

	if count > 0 {
		stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s(user_id, %s, position) VALUES(?, %s, ?)", table, columns, placeholders))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i := 0; i < count; i++ {
			if err := insert(stmt, i); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// ReplaceGoals overwrites the user's goal set. An empty slice clears it.
func (s *ItemService) ReplaceGoals(userID string, goals []models.Goal) error {
	return s.replaceAll("goals", "goal, checked", "?, ?", userID, len(goals), func(stmt *sql.Stmt, i int) error {
		_, err := stmt.Exec(userID, goals[i].Goal, goals[i].Checked, i)
		return err
	})
}

// ListGoals returns the user's goals in the order they were saved.
func (s *ItemService) ListGoals(userID string) ([]models.Goal, error) {
	rows, err := s.db.Query("SELECT goal, checked FROM goals WHERE user_id = ? ORDER BY position", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.Goal, &g.Checked); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Performance computes goal completion for the user. An empty set yields
// all zeros rather than a division by zero.
func (s *ItemService) Performance(userID string) (models.Performance, error) {
	var p models.Performance
	row := s.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(checked), 0) FROM goals WHERE user_id = ?", userID)
	if err := row.Scan(&p.Total, &p.Completed); err != nil {
		return models.Performance{}, err
	}
	if p.Total > 0 {
		p.Percent = float64(p.Completed) / float64(p.Total) * 100
	}
	return p, nil
}

// ReplaceNotes overwrites the user's note set. An empty slice clears it.
func (s *ItemService) ReplaceNotes(userID string, notes []models.Note) error {
	return s.replaceAll("notes", "content, timestamp", "?, ?", userID, len(notes), func(stmt *sql.Stmt, i int) error {
		_, err := stmt.Exec(userID, notes[i].Content, notes[i].Timestamp, i)
		return err
	})
}

// ListNotes returns the user's notes in the order they were saved.
func (s *ItemService) ListNotes(userID string) ([]models.Note, error) {
	rows, err := s.db.Query("SELECT content, timestamp FROM notes WHERE user_id = ? ORDER BY position", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.Content, &n.Timestamp); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// ReplaceTasks overwrites the user's task set. An empty slice clears it.
func (s *ItemService) ReplaceTasks(userID string, tasks []models.Task) error {
	return s.replaceAll("tasks", "task, checked", "?, ?", userID, len(tasks), func(stmt *sql.Stmt, i int) error {
		_, err := stmt.Exec(userID, tasks[i].Task, tasks[i].Checked, i)
		return err
	})
}

// ListTasks returns the user's tasks in the order they were saved.
func (s *ItemService) ListTasks(userID string) ([]models.Task, error) {
	rows, err := s.db.Query("SELECT task, checked FROM tasks WHERE user_id = ? ORDER BY position", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.Task, &t.Checked); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
