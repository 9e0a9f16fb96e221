package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-planner/internal/models"
	"github.com/adanyl0v/go-planner/internal/services"
)

type stubMeetingService struct {
	listFn   func(ctx context.Context, userID string) ([]models.Meeting, error)
	createFn func(ctx context.Context, userID string, payload models.Meeting) (models.Meeting, error)
	getFn    func(ctx context.Context, meetingID, userID string) (models.Meeting, error)
	updateFn func(ctx context.Context, meetingID, userID string, fields map[string]any) error
	deleteFn func(ctx context.Context, meetingID, userID string) error
}

func (s *stubMeetingService) GetMeetingsByUserID(ctx context.Context, userID string) ([]models.Meeting, error) {
	return s.listFn(ctx, userID)
}

func (s *stubMeetingService) CreateMeeting(ctx context.Context, userID string, payload models.Meeting) (models.Meeting, error) {
	return s.createFn(ctx, userID, payload)
}

func (s *stubMeetingService) GetMeetingByID(ctx context.Context, meetingID, userID string) (models.Meeting, error) {
	return s.getFn(ctx, meetingID, userID)
}

func (s *stubMeetingService) UpdateMeeting(ctx context.Context, meetingID, userID string, fields map[string]any) error {
	return s.updateFn(ctx, meetingID, userID, fields)
}

func (s *stubMeetingService) DeleteMeeting(ctx context.Context, meetingID, userID string) error {
	return s.deleteFn(ctx, meetingID, userID)
}

// newTestRouter wires the planner routes behind a middleware that
// injects a fixed user, standing in for the real auth middleware.
func newTestRouter(tasks services.TaskService, meetings services.MeetingService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := New(zerolog.Nop(), nil, nil, tasks, meetings).(*handlerImpl)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(userIDCtxKey, "user-1")
	})

	router.GET("/meetings/", handler.HandleGetMeetings)
	router.POST("/meetings/", handler.HandleCreateMeeting)
	router.GET("/meetings/:id", handler.HandleGetMeeting)
	router.PUT("/meetings/:id", handler.HandleUpdateMeeting)
	router.DELETE("/meetings/:id", handler.HandleDeleteMeeting)

	router.GET("/tasks/", handler.HandleGetTasks)
	router.POST("/tasks/", handler.HandleCreateTask)
	router.PATCH("/tasks/:id", handler.HandleUpdateTask)
	router.DELETE("/tasks/:id", handler.HandleDeleteTask)

	return router
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := make(map[string]any)
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHandleGetMeetingsWrapsList(t *testing.T) {
	meetings := &stubMeetingService{
		listFn: func(_ context.Context, userID string) ([]models.Meeting, error) {
			if userID != "user-1" {
				t.Errorf("listed for user %q, want user-1", userID)
			}
			return []models.Meeting{
				{"title": "standup", "is_past": false, "is_upcoming": true},
			}, nil
		},
	}
	router := newTestRouter(nil, meetings)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/meetings/", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := decodeBody(t, rec)
	list, ok := body["meetings"].([]any)
	if !ok {
		t.Fatalf("response is not wrapped in a meetings key: %v", body)
	}
	if len(list) != 1 {
		t.Errorf("len(meetings) = %d, want 1", len(list))
	}
}

func TestHandleCreateMeeting(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
		wantError  string
	}{
		{
			name:       "created",
			body:       `{"title":"planning","meeting_date":"2099-01-01","meeting_time":"10:00"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing field",
			body:       `{"meeting_date":"2099-01-01","meeting_time":"10:00"}`,
			createErr:  &services.ValidationError{Message: "title is required"},
			wantStatus: http.StatusBadRequest,
			wantError:  "title is required",
		},
		{
			name:       "bad format",
			body:       `{"title":"x","meeting_date":"13/25/2099","meeting_time":"10:00"}`,
			createErr:  &services.ValidationError{Message: "Invalid date or time format. Use YYYY-MM-DD and HH:MM"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid date or time format. Use YYYY-MM-DD and HH:MM",
		},
		{
			name:       "past meeting",
			body:       `{"title":"x","meeting_date":"2000-01-01","meeting_time":"10:00"}`,
			createErr:  &services.ValidationError{Message: "Cannot create meeting in the past"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Cannot create meeting in the past",
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meetings := &stubMeetingService{
				createFn: func(_ context.Context, userID string, payload models.Meeting) (models.Meeting, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					payload["_id"] = "665f1f77bcf86cd799439011"
					payload["user_id"] = userID
					return payload, nil
				},
			}
			router := newTestRouter(nil, meetings)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/meetings/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			body := decodeBody(t, rec)
			if tt.wantError != "" {
				if got, _ := body["error"].(string); got != tt.wantError {
					t.Errorf("error = %q, want %q", got, tt.wantError)
				}
				return
			}

			if body["message"] != "Meeting created successfully" {
				t.Errorf("message = %v, want creation message", body["message"])
			}
			meeting, ok := body["meeting"].(map[string]any)
			if !ok {
				t.Fatalf("no meeting in response: %v", body)
			}
			if meeting["user_id"] != "user-1" {
				t.Errorf("meeting user_id = %v, want user-1", meeting["user_id"])
			}
		})
	}
}

func TestHandleGetMeetingNotFound(t *testing.T) {
	meetings := &stubMeetingService{
		getFn: func(context.Context, string, string) (models.Meeting, error) {
			return nil, services.ErrMeetingNotFound
		},
	}
	router := newTestRouter(nil, meetings)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/meetings/665f1f77bcf86cd799439011", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if body := decodeBody(t, rec); body["error"] != "Meeting not found" {
		t.Errorf("error = %v, want %q", body["error"], "Meeting not found")
	}
}

func TestHandleUpdateMeeting(t *testing.T) {
	updatedFields := map[string]any{}
	meetings := &stubMeetingService{
		updateFn: func(_ context.Context, meetingID, userID string, fields map[string]any) error {
			for key, value := range fields {
				updatedFields[key] = value
			}
			return nil
		},
		getFn: func(context.Context, string, string) (models.Meeting, error) {
			return models.Meeting{"title": "moved", "is_past": false, "is_upcoming": false}, nil
		},
	}
	router := newTestRouter(nil, meetings)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPut,
		"/meetings/665f1f77bcf86cd799439011",
		strings.NewReader(`{"title":"moved","user_id":"someone-else"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if _, leaked := updatedFields["user_id"]; leaked {
		t.Error("user_id from the body must not reach the update")
	}

	body := decodeBody(t, rec)
	if body["message"] != "Meeting updated successfully" {
		t.Errorf("message = %v, want update message", body["message"])
	}
}

func TestHandleDeleteMeeting(t *testing.T) {
	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		{
			name:       "deleted",
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantValue:  "Meeting deleted successfully",
		},
		{
			name:       "not found",
			deleteErr:  services.ErrMeetingNotFound,
			wantStatus: http.StatusNotFound,
			wantKey:    "error",
			wantValue:  "Meeting not found or delete failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meetings := &stubMeetingService{
				deleteFn: func(context.Context, string, string) error {
					return tt.deleteErr
				},
			}
			router := newTestRouter(nil, meetings)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/meetings/665f1f77bcf86cd799439011", nil)
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decodeBody(t, rec); body[tt.wantKey] != tt.wantValue {
				t.Errorf("%s = %v, want %q", tt.wantKey, body[tt.wantKey], tt.wantValue)
			}
		})
	}
}
