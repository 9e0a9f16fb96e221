package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adanyl0v/go-planner/internal/models"
	"github.com/adanyl0v/go-planner/internal/services"
)

type stubTaskService struct {
	listFn   func(ctx context.Context, userID string) ([]*models.Task, error)
	createFn func(ctx context.Context, userID string, params services.CreateTaskParams) (*models.Task, error)
	updateFn func(ctx context.Context, taskID, userID string, fields map[string]any) error
	deleteFn func(ctx context.Context, taskID, userID string) error
}

func (s *stubTaskService) GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	return s.listFn(ctx, userID)
}

func (s *stubTaskService) CreateTask(ctx context.Context, userID string, params services.CreateTaskParams) (*models.Task, error) {
	return s.createFn(ctx, userID, params)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, taskID, userID string, fields map[string]any) error {
	return s.updateFn(ctx, taskID, userID, fields)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, taskID, userID string) error {
	return s.deleteFn(ctx, taskID, userID)
}

func TestHandleGetTasksBareList(t *testing.T) {
	tasks := &stubTaskService{
		listFn: func(_ context.Context, userID string) ([]*models.Task, error) {
			return []*models.Task{
				{
					ID:       primitive.NewObjectID(),
					UserID:   userID,
					Title:    "write report",
					Priority: models.PriorityMedium,
				},
			}, nil
		},
	}
	router := newTestRouter(tasks, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Bare array, not an envelope: the tasks listing has always had a
	// different shape from the meetings one.
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("tasks response is not a bare array: %q", rec.Body.String())
	}
	if len(list) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(list))
	}
	if list[0]["title"] != "write report" {
		t.Errorf("title = %v, want %q", list[0]["title"], "write report")
	}
	if id, _ := list[0]["id"].(string); len(id) != 24 {
		t.Errorf("id = %v, want a 24-char hex string", list[0]["id"])
	}
}

func TestHandleCreateTask(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantParams *services.CreateTaskParams
	}{
		{
			name:       "full payload",
			body:       `{"title":"deploy","description":"staging first","priority":"high","due_date":"2025-12-31"}`,
			wantStatus: http.StatusCreated,
			wantParams: &services.CreateTaskParams{
				Title:       "deploy",
				Description: "staging first",
				Priority:    "high",
				DueDate:     "2025-12-31",
			},
		},
		{
			name:       "title only",
			body:       `{"title":"write report"}`,
			wantStatus: http.StatusCreated,
			wantParams: &services.CreateTaskParams{Title: "write report"},
		},
		{
			name:       "missing title",
			body:       `{"description":"no title"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotParams services.CreateTaskParams
			tasks := &stubTaskService{
				createFn: func(_ context.Context, userID string, params services.CreateTaskParams) (*models.Task, error) {
					gotParams = params
					return &models.Task{
						ID:       primitive.NewObjectID(),
						UserID:   userID,
						Title:    params.Title,
						Priority: models.PriorityMedium,
					}, nil
				},
			}
			router := newTestRouter(tasks, nil)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/tasks/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantParams != nil && gotParams != *tt.wantParams {
				t.Errorf("params = %+v, want %+v", gotParams, *tt.wantParams)
			}
		})
	}
}

func TestHandleUpdateTask(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		updateErr  error
		wantStatus int
	}{
		{
			name:       "partial update succeeds",
			body:       `{"completed":true}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "other user's task reports failure",
			body:       `{"completed":true}`,
			updateErr:  services.ErrTaskNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &stubTaskService{
				updateFn: func(_ context.Context, taskID, userID string, fields map[string]any) error {
					if userID != "user-1" {
						t.Errorf("updated for user %q, want user-1", userID)
					}
					return tt.updateErr
				},
			}
			router := newTestRouter(tasks, nil)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(
				http.MethodPatch,
				"/tasks/665f1f77bcf86cd799439011",
				strings.NewReader(tt.body),
			)
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if body := decodeBody(t, rec); body["success"] != true {
					t.Errorf("success = %v, want true", body["success"])
				}
			}
		})
	}
}

func TestHandleDeleteTask(t *testing.T) {
	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{
			name:       "deleted",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no matching document",
			deleteErr:  services.ErrTaskNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &stubTaskService{
				deleteFn: func(context.Context, string, string) error {
					return tt.deleteErr
				},
			}
			router := newTestRouter(tasks, nil)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/tasks/665f1f77bcf86cd799439011", nil)
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if body := decodeBody(t, rec); body["success"] != true {
					t.Errorf("success = %v, want true", body["success"])
				}
			}
		})
	}
}
