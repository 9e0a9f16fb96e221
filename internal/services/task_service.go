package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adanyl0v/go-planner/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  *mongo.Collection
}

func NewTaskService(
	logger zerolog.Logger,
	tasks *mongo.Collection,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	cursor, err := s.tasks.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to find tasks by user id")
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	tasks := make([]*models.Task, 0)
	err = cursor.All(ctx, &tasks)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to decode tasks")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("found tasks by user id")

	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, userID string, params CreateTaskParams) (*models.Task, error) {
	task := newTask(userID, params)

	result, err := s.tasks.InsertOne(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to insert task")
		return nil, err
	}

	task.ID, _ = result.InsertedID.(primitive.ObjectID)
	s.logger.Debug().
		Str("task_id", task.ID.Hex()).
		Msg("inserted task")

	s.logger.Info().
		Str("task_id", task.ID.Hex()).
		Str("user_id", userID).
		Msg("created task")
	return task, nil
}

// newTask fills in the creation defaults. Due date and priority are
// stored as given: neither is validated server-side.
func newTask(userID string, params CreateTaskParams) *models.Task {
	task := &models.Task{
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		DueDate:     params.DueDate,
		Completed:   false,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	return task
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, taskID, userID string, fields map[string]any) error {
	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("invalid task id")
		return ErrTaskNotFound
	}

	result, err := s.tasks.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "user_id": userID},
		bson.M{"$set": fields},
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		return err
	}
	if result.MatchedCount == 0 {
		s.logger.Error().
			Str("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", userID).
		Msg("updated task")
	return nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("invalid task id")
		return ErrTaskNotFound
	}

	result, err := s.tasks.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	if result.DeletedCount == 0 {
		s.logger.Error().
			Str("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", userID).
		Msg("deleted task")
	return nil
}
