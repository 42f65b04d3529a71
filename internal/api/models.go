// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"time"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// Optional distinguishes an absent JSON field from one explicitly set to
// null. Set reports whether the field appeared in the payload at all;
// Value is nil for an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only invoked for fields present in the payload, which
// is what makes the absent/null distinction possible.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// CreateTaskRequest is the request body for creating a draft task.
// Every field is optional; an empty body yields an untitled draft.
type CreateTaskRequest struct {
	Title           string          `json:"title"`
	ContentState    json.RawMessage `json:"contentState"`
	LeaderID        *int64          `json:"leaderId"`
	Deadline        *time.Time      `json:"deadline"`
	Importance      string          `json:"importance"`
	AssignedUserIDs []int64         `json:"assignedUserIds"`
}

// UpdateTaskRequest is the request body for a full task update. The
// assignment set is replaced wholesale; omitting assignedUserIds clears it.
type UpdateTaskRequest struct {
	Title           string          `json:"title"`
	ContentState    json.RawMessage `json:"contentState"`
	LeaderID        *int64          `json:"leaderId"`
	Deadline        *time.Time      `json:"deadline"`
	Importance      string          `json:"importance"`
	AssignedUserIDs []int64         `json:"assignedUserIds"`
}

// UpdateDeadlineRequest is the request body for the deadline endpoint.
// An absent deadline field leaves the stored value untouched; an explicit
// null clears it.
type UpdateDeadlineRequest struct {
	Deadline Optional[time.Time] `json:"deadline"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	ContentState    json.RawMessage `json:"contentState"`
	CreatorID       int64           `json:"creatorId"`
	LeaderID        *int64          `json:"leaderId,omitempty"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	Importance      string          `json:"importance,omitempty"`
	Status          string          `json:"status"`
	PublicationDate time.Time       `json:"publicationDate"`
}

// CalendarEntryResponse is a task enriched with display names for the
// calendar view.
type CalendarEntryResponse struct {
	TaskResponse
	CreatorName       string   `json:"creatorName"`
	LeaderName        *string  `json:"leaderName,omitempty"`
	AssignedUserNames []string `json:"assignedUserNames"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:              task.ID,
		Title:           task.Title,
		ContentState:    task.ContentState,
		CreatorID:       task.CreatorID,
		LeaderID:        task.LeaderID,
		Deadline:        task.Deadline,
		Importance:      task.Importance,
		Status:          string(task.Status),
		PublicationDate: task.PublicationDate,
	}
}

func calendarEntryToResponse(entry store.CalendarEntry) CalendarEntryResponse {
	names := entry.AssignedUserNames
	if names == nil {
		names = []string{}
	}
	return CalendarEntryResponse{
		TaskResponse:      taskToResponse(&entry.Task),
		CreatorName:       entry.CreatorName,
		LeaderName:        entry.LeaderName,
		AssignedUserNames: names,
	}
}

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
	Subrole  string `json:"subrole"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FCMTokenRequest registers or clears the caller's device token.
type FCMTokenRequest struct {
	Token *string `json:"token"`
}

// UserResponse represents the response data for a user. The password
// hash never leaves the server.
type UserResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	Subrole string `json:"subrole,omitempty"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Subrole: user.Subrole,
	}
}

// CreateCommentRequest is the request body for adding a task comment.
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// CommentResponse represents the response data for a comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"taskId"`
	AuthorID  int64     `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func commentToResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

// CreateStatisticRequest is the request body for recording a statistic.
type CreateStatisticRequest struct {
	PeriodType string `json:"periodType" validate:"required,oneof=month week"`
	Year       int    `json:"year"       validate:"required,gt=0"`
	Period     int    `json:"period"     validate:"required,gte=1,lte=53"`
	Quantity   int64  `json:"quantity"   validate:"gte=0"`
}

// UpdateStatisticRequest is the request body for a partial statistic
// update. Absent fields are left untouched.
type UpdateStatisticRequest struct {
	PeriodType *string `json:"periodType" validate:"omitempty,oneof=month week"`
	Year       *int    `json:"year"       validate:"omitempty,gt=0"`
	Period     *int    `json:"period"     validate:"omitempty,gte=1,lte=53"`
	Quantity   *int64  `json:"quantity"   validate:"omitempty,gte=0"`
}

// StatisticResponse represents the response data for a statistic.
type StatisticResponse struct {
	ID         int64  `json:"id"`
	PeriodType string `json:"periodType"`
	Year       int    `json:"year"`
	Period     int    `json:"period"`
	Quantity   int64  `json:"quantity"`
}

func statisticToResponse(stat *domain.Statistic) StatisticResponse {
	return StatisticResponse{
		ID:         stat.ID,
		PeriodType: string(stat.PeriodType),
		Year:       stat.Year,
		Period:     stat.Period,
		Quantity:   stat.Quantity,
	}
}
