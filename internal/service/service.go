package service

import (
	"errors"
	"fmt"

	"github.com/avdeev/task-service/internal/auth"
	"github.com/avdeev/task-service/internal/models"
	"github.com/avdeev/task-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// Repository is the storage surface the service depends on
type Repository interface {
	CreateUser(user *models.User) error
	FindUserByUsername(username string) (*models.User, error)
	CreateTask(task *models.Task) error
	FindTaskByID(taskID, ownerID int64) (*models.Task, error)
	ListTasksByOwner(ownerID int64) ([]models.Task, error)
	UpdateTask(task *models.Task) error
	DeleteTask(taskID, ownerID int64) error
}

// Service handles business logic
type Service struct {
	repo   Repository
	log    *logrus.Logger
	tokens *auth.TokenService
}

// NewService initializes a new service
func NewService(repo Repository, log *logrus.Logger, tokens *auth.TokenService) *Service {
	return &Service{repo: repo, log: log, tokens: tokens}
}

// Register creates a new user with a hashed password. Duplicate usernames
// yield ErrConflict with no detail about the existing user.
func (s *Service) Register(username, password, email string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidCredentials)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, nil
}

// Login authenticates a user and returns a bearer token. Unknown usernames
// and wrong passwords produce the same error.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.repo.FindUserByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, 0)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Username)
	return token, nil
}

// Authenticate resolves a bearer token to its stored user record. An
// invalid token and a valid token for a deleted user both fail with
// ErrUnauthenticated.
func (s *Service) Authenticate(token string) (*models.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.repo.FindUserByUsername(subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// ListTasks returns all tasks owned by user
func (s *Service) ListTasks(user *models.User) ([]models.Task, error) {
	return s.repo.ListTasksByOwner(user.ID)
}

// GetTask returns the task with the given id if user owns it
func (s *Service) GetTask(user *models.User, taskID int64) (*models.Task, error) {
	task, err := s.repo.FindTaskByID(taskID, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return task, err
}

// CreateTask creates a task owned by user. The owner id is always stamped
// from the resolved identity; the request cannot carry one.
func (s *Service) CreateTask(user *models.User, req models.CreateTaskRequest) (*models.Task, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, req.Status)
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		UserID:      user.ID,
	}
	if err := s.repo.CreateTask(task); err != nil {
		return nil, err
	}

	s.log.Infof("Task %d created for user %s", task.ID, user.Username)
	return task, nil
}

// UpdateTask applies a partial update to an owned task. Only fields present
// in the request are overwritten; a pointer to the zero value clears the
// field rather than being dropped.
func (s *Service) UpdateTask(user *models.User, taskID int64, req models.UpdateTaskRequest) (*models.Task, error) {
	if req.Title != nil && *req.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *req.Status)
	}

	task, err := s.repo.FindTaskByID(taskID, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := s.repo.UpdateTask(task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.log.Infof("Task %d updated for user %s", task.ID, user.Username)
	return task, nil
}

// DeleteTask deletes an owned task. Deleting a missing or foreign task is
// ErrNotFound, never success.
func (s *Service) DeleteTask(user *models.User, taskID int64) error {
	if err := s.repo.DeleteTask(taskID, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.log.Infof("Task %d deleted for user %s", taskID, user.Username)
	return nil
}
