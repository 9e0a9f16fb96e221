package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/go-planner/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrTaskNotFound         = errors.New("task not found")
	ErrMeetingNotFound      = errors.New("meeting not found")
)

// ValidationError is a client-facing rejection of a create or update
// payload. Its message is surfaced verbatim in the error response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a user with the given email and password.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with the given fingerprint and a fresh JWT token pair.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type TaskService interface {
	// GetTasksByUserID returns every task owned by the given user.
	GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// CreateTask persists a new task for the given user, filling in
	// the defaults (empty description, medium priority, not completed),
	// and returns it with the store-assigned ID.
	CreateTask(ctx context.Context, userID string, params CreateTaskParams) (*models.Task, error)

	// UpdateTask applies the given partial fields to the task matching
	// both the task and the user ID. It returns ErrTaskNotFound if no
	// document matched.
	UpdateTask(ctx context.Context, taskID, userID string, fields map[string]any) error

	// DeleteTask removes the task matching both the task and the user
	// ID, or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, taskID, userID string) error
}

type MeetingService interface {
	// GetMeetingsByUserID returns every meeting owned by the given user,
	// each annotated with the computed is_past and is_upcoming flags.
	GetMeetingsByUserID(ctx context.Context, userID string) ([]models.Meeting, error)

	// CreateMeeting validates and persists the given payload.
	//
	// It returns a *ValidationError if a required field is missing, the
	// date or time doesn't match the expected layout, or the combined
	// date and time is before the current local time.
	CreateMeeting(ctx context.Context, userID string, payload models.Meeting) (models.Meeting, error)

	// GetMeetingByID returns the annotated meeting matching both IDs,
	// or ErrMeetingNotFound.
	GetMeetingByID(ctx context.Context, meetingID, userID string) (models.Meeting, error)

	// UpdateMeeting re-validates meeting_date and meeting_time when
	// present in fields and applies the partial update. It returns
	// ErrMeetingNotFound if no document matched.
	UpdateMeeting(ctx context.Context, meetingID, userID string, fields map[string]any) error

	// DeleteMeeting removes the meeting matching both IDs, or returns
	// ErrMeetingNotFound.
	DeleteMeeting(ctx context.Context, meetingID, userID string) error
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type CreateTaskParams struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
}
