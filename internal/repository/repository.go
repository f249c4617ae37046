package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avdeev/task-service/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a row does not exist. For tasks the
	// lookups are owner-scoped, so a row owned by another user is also
	// reported as not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate")
)

const uniqueViolation = "23505"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the users and tasks tables if they do not exist
func (r *Repository) EnsureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			due_date TIMESTAMPTZ,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			user_id BIGINT NOT NULL REFERENCES users(id)
		);`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1`
	err := r.db.QueryRow(query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateTask creates a new task in the database
func (r *Repository) CreateTask(task *models.Task) error {
	query := `
		INSERT INTO tasks (title, description, due_date, status, created_at, updated_at, user_id)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $5)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, task.Title, task.Description, task.DueDate, task.Status, task.UserID).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindTaskByID retrieves a task by id, scoped to its owner. A task owned
// by a different user is indistinguishable from a missing one.
func (r *Repository) FindTaskByID(taskID, ownerID int64) (*models.Task, error) {
	task := &models.Task{}
	query := `
		SELECT id, title, description, due_date, status, created_at, updated_at, user_id
		FROM tasks
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, taskID, ownerID).
		Scan(&task.ID, &task.Title, &task.Description, &task.DueDate, &task.Status,
			&task.CreatedAt, &task.UpdatedAt, &task.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasksByOwner retrieves all tasks owned by ownerID, ordered by id
func (r *Repository) ListTasksByOwner(ownerID int64) ([]models.Task, error) {
	query := `
		SELECT id, title, description, due_date, status, created_at, updated_at, user_id
		FROM tasks
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.DueDate,
			&task.Status, &task.CreatedAt, &task.UpdatedAt, &task.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask writes the mutable fields of task back to its row, scoped to
// the owner recorded on the task
func (r *Repository) UpdateTask(task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND user_id = $6
		RETURNING updated_at`
	err := r.db.QueryRow(query, task.Title, task.Description, task.DueDate, task.Status,
		task.ID, task.UserID).Scan(&task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// DeleteTask deletes a task by id, scoped to its owner
func (r *Repository) DeleteTask(taskID, ownerID int64) error {
	result, err := r.db.Exec(`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTasksDueBetween retrieves unfinished tasks due in [from, to) together
// with their owners' contact details, for reminder delivery
func (r *Repository) ListTasksDueBetween(from, to time.Time) ([]models.TaskReminder, error) {
	query := `
		SELECT t.id, t.title, t.due_date, u.username, u.email
		FROM tasks t
		JOIN users u ON t.user_id = u.id
		WHERE t.due_date >= $1 AND t.due_date < $2 AND t.status <> $3
		ORDER BY t.due_date`
	rows, err := r.db.Query(query, from, to, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	defer rows.Close()

	reminders := []models.TaskReminder{}
	for rows.Next() {
		var rem models.TaskReminder
		if err := rows.Scan(&rem.TaskID, &rem.Title, &rem.DueDate, &rem.Username, &rem.Email); err != nil {
			return nil, fmt.Errorf("failed to scan due task: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate due tasks: %w", err)
	}
	return reminders, nil
}
