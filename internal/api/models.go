package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/taskman-api/internal/api/shared"
	"github.com/phrazzld/taskman-api/internal/domain"
)

// SignupRequest defines the payload for the registration endpoint.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate applies the registration credential policy.
func (r *SignupRequest) Validate() error {
	verr := &domain.ValidationError{}
	domain.ValidateUsername(r.Username, verr)

	var pwErr *domain.ValidationError
	if err := domain.ValidatePassword(r.Password); errors.As(err, &pwErr) {
		verr.Errors = append(verr.Errors, pwErr.Errors...)
	}
	return errOrNil(verr)
}

// SigninRequest defines the payload for the sign-in endpoint.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate only checks presence and upper bounds. The password policy is not
// applied at sign-in.
func (r *SigninRequest) Validate() error {
	verr := &domain.ValidationError{}
	shared.CheckField(verr, "username", r.Username, fmt.Sprintf("required,max=%d", domain.UsernameMaxLength))
	shared.CheckField(verr, "password", r.Password, fmt.Sprintf("required,max=%d", domain.PasswordMaxLength))
	return errOrNil(verr)
}

// SigninResponse is returned by a successful sign-in.
type SigninResponse struct {
	AccessToken string `json:"accessToken"`
}

// CreateTaskRequest defines the payload for creating a task. A status sent by
// the client is not part of the shape and is ignored.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks the title and description limits.
func (r *CreateTaskRequest) Validate() error {
	verr := &domain.ValidationError{}
	shared.CheckField(verr, "title", r.Title, fmt.Sprintf("required,max=%d", domain.TaskTitleMaxLength))
	shared.CheckField(verr, "description", r.Description, fmt.Sprintf("max=%d", domain.TaskDescriptionMaxLength))
	return errOrNil(verr)
}

// UpdateTaskStatusRequest defines the payload for changing a task's status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks that status is one of the known values.
func (r *UpdateTaskStatusRequest) Validate() error {
	verr := &domain.ValidationError{}
	if r.Status == "" {
		verr.Add("status", "is required")
	} else if _, err := domain.ParseTaskStatus(r.Status); err != nil {
		verr.Add("status", statusChoices())
	}
	return errOrNil(verr)
}

// TaskResponse is the JSON shape of a task. The owner is not exposed.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

func statusChoices() string {
	names := make([]string, 0, len(domain.AllTaskStatuses))
	for _, s := range domain.AllTaskStatuses {
		names = append(names, string(s))
	}
	return "must be one of: " + strings.Join(names, ", ")
}

func errOrNil(verr *domain.ValidationError) error {
	if !verr.HasErrors() {
		return nil
	}
	return verr
}
