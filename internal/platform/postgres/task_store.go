package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/phrazzld/taskman-api/internal/store"
)

const taskColumns = "id, user_id, title, description, status, created_at, updated_at"

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create.
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("task owner does not exist",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", id.String()),
				slog.String("user_id", ownerID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET status = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`
	result, err := s.db.ExecContext(ctx, query, task.Status, task.UpdatedAt, task.ID, task.UserID)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			log.Error("failed to check rows affected",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
		}
		return err
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for deletion",
				slog.String("task_id", id.String()),
				slog.String("user_id", ownerID.String()))
		}
		return err
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// Find implements store.TaskStore.Find
func (s *PostgresTaskStore) Find(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildFindQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", filter.OwnerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("tasks found",
		slog.String("user_id", filter.OwnerID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// buildFindQuery composes the owner, status and search predicates with AND.
func buildFindQuery(filter store.TaskFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{filter.OwnerID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.SearchTerm != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.SearchTerm)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(LOWER(title) LIKE LOWER($%d) ESCAPE '\' OR LOWER(description) LIKE LOWER($%d) ESCAPE '\')`,
			n, n))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` +
		strings.Join(conds, " AND ") +
		` ORDER BY created_at, id`
	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	return &task, nil
}
