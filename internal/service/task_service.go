package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/events"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/phrazzld/taskman-api/internal/store"
)

// TaskService provides task operations on behalf of a single user. Every
// method takes the caller's user id and never touches another user's tasks.
type TaskService interface {
	// CreateTask creates a task in the CREATED status.
	CreateTask(ctx context.Context, userID uuid.UUID, title, description string) (*domain.Task, error)

	// GetTask retrieves one of the user's tasks.
	// Returns ErrTaskNotFound if the user has no such task.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// DeleteTask removes one of the user's tasks.
	// Returns ErrTaskNotFound if the user has no such task.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// UpdateTaskStatus changes a task's status and returns the updated task.
	// Returns ErrTaskNotFound if the user has no such task.
	UpdateTaskStatus(
		ctx context.Context,
		userID, taskID uuid.UUID,
		status domain.TaskStatus,
	) (*domain.Task, error)

	// SearchTasks returns the user's tasks matching the filter, oldest first.
	// The filter's OwnerID is always replaced with userID.
	SearchTasks(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks        store.TaskStore
	db           store.TxBeginner
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	db store.TxBeginner,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	}
	if db == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "event emitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:        tasks,
		db:           db,
		eventEmitter: eventEmitter,
		logger:       logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	title, description string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("operation", "create_task"),
		slog.String("user_id", userID.String()),
	)

	task, err := domain.NewTask(userID, title, description)
	if err != nil {
		log.Debug("task failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Error("failed to save task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.String("task_id", task.ID.String()))
	s.emit(ctx, log, events.TypeTaskCreated, task.ID, userID, nil)
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.String("operation", "get_task"),
			slog.String("user_id", userID.String()),
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("operation", "delete_task"),
		slog.String("user_id", userID.String()),
		slog.String("task_id", taskID.String()),
	)

	if err := s.tasks.Delete(ctx, taskID, userID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("no task matched delete")
			return ErrTaskNotFound
		}
		log.Error("failed to delete task", slog.String("error", err.Error()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted")
	s.emit(ctx, log, events.TypeTaskDeleted, taskID, userID, nil)
	return nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	userID, taskID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("operation", "update_task_status"),
		slog.String("user_id", userID.String()),
		slog.String("task_id", taskID.String()),
		slog.String("status", string(status)),
	)

	var (
		updated  *domain.Task
		previous domain.TaskStatus
	)
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, taskID, userID)
		if err != nil {
			return err
		}

		previous = task.Status
		if err := task.UpdateStatus(status); err != nil {
			return err
		}

		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTaskNotFound):
			log.Debug("no task matched status update")
			return nil, ErrTaskNotFound
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidTaskStatus):
			return nil, err
		}
		log.Error("failed to update task status", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("update_task_status", "failed to update task status", err)
	}

	log.Info("task status updated", slog.String("previous_status", string(previous)))
	s.emit(ctx, log, events.TypeTaskStatusChanged, taskID, userID, events.StatusChange{
		From: string(previous),
		To:   string(updated.Status),
	})
	return updated, nil
}

// SearchTasks implements TaskService.SearchTasks
func (s *taskServiceImpl) SearchTasks(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	filter.OwnerID = userID

	tasks, err := s.tasks.Find(ctx, filter)
	if err != nil {
		status := ""
		if filter.Status != nil {
			status = string(*filter.Status)
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to search tasks",
			slog.String("operation", "search_tasks"),
			slog.String("user_id", userID.String()),
			slog.String("filter_status", status),
			slog.String("filter_search_term", filter.SearchTerm),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("search_tasks", "failed to search tasks", err)
	}
	return tasks, nil
}

// emit publishes a task event. Failures are logged and otherwise ignored:
// the mutation they describe has already been committed.
func (s *taskServiceImpl) emit(
	ctx context.Context,
	log *slog.Logger,
	eventType string,
	taskID, userID uuid.UUID,
	payload interface{},
) {
	event, err := events.NewTaskEvent(eventType, taskID, userID, payload)
	if err != nil {
		log.Error("failed to build task event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit task event",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}
