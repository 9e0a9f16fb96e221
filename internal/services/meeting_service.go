package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adanyl0v/go-planner/internal/models"
)

const (
	isPastField     = "is_past"
	isUpcomingField = "is_upcoming"

	upcomingWindow = 24 * time.Hour
)

type meetingServiceImpl struct {
	logger   zerolog.Logger
	meetings *mongo.Collection
	// now is time.Now in production; tests pin it. Listing compares
	// against UTC, create-time rejection against the local clock.
	now func() time.Time
}

func NewMeetingService(
	logger zerolog.Logger,
	meetings *mongo.Collection,
) MeetingService {
	return &meetingServiceImpl{
		logger:   logger,
		meetings: meetings,
		now:      time.Now,
	}
}

func (s *meetingServiceImpl) GetMeetingsByUserID(ctx context.Context, userID string) ([]models.Meeting, error) {
	cursor, err := s.meetings.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to find meetings by user id")
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	meetings := make([]models.Meeting, 0)
	err = cursor.All(ctx, &meetings)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to decode meetings")
		return nil, err
	}

	now := s.now().UTC()
	for _, meeting := range meetings {
		displayMeetingID(meeting)
		annotateMeeting(meeting, now)
	}
	s.logger.Debug().
		Int("count", len(meetings)).
		Str("user_id", userID).
		Msg("found meetings by user id")

	return meetings, nil
}

func (s *meetingServiceImpl) CreateMeeting(ctx context.Context, userID string, payload models.Meeting) (models.Meeting, error) {
	err := s.validateCreateMeeting(payload)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("rejected meeting payload")
		return nil, err
	}

	meeting := make(models.Meeting, len(payload)+1)
	for key, value := range payload {
		meeting[key] = value
	}
	meeting["user_id"] = userID

	result, err := s.meetings.InsertOne(ctx, meeting)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to insert meeting")
		return nil, err
	}

	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		meeting["_id"] = objectID.Hex()
	}
	s.logger.Info().
		Str("user_id", userID).
		Msg("created meeting")
	return meeting, nil
}

func (s *meetingServiceImpl) validateCreateMeeting(payload models.Meeting) error {
	for _, field := range []string{
		models.MeetingTitleField,
		models.MeetingDateField,
		models.MeetingTimeField,
	} {
		value, _ := payload[field].(string)
		if value == "" {
			return newValidationError(fmt.Sprintf("%s is required", field))
		}
	}

	_, dateErr := time.Parse(models.MeetingDateLayout, payload.Date())
	_, timeErr := time.Parse(models.MeetingTimeLayout, payload.Time())
	if dateErr != nil || timeErr != nil {
		return newValidationError("Invalid date or time format. Use YYYY-MM-DD and HH:MM")
	}

	// The past check runs against the local wall clock, while listing
	// annotates against UTC. Preserved as the system always behaved.
	meetingDateTime, err := time.ParseInLocation(
		models.MeetingDateLayout+" "+models.MeetingTimeLayout,
		payload.Date()+" "+payload.Time(),
		time.Local,
	)
	if err != nil {
		return newValidationError("Invalid date or time format. Use YYYY-MM-DD and HH:MM")
	}
	if meetingDateTime.Before(s.now()) {
		return newValidationError("Cannot create meeting in the past")
	}

	return nil
}

func (s *meetingServiceImpl) GetMeetingByID(ctx context.Context, meetingID, userID string) (models.Meeting, error) {
	objectID, err := primitive.ObjectIDFromHex(meetingID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("meeting_id", meetingID).
			Msg("invalid meeting id")
		return nil, ErrMeetingNotFound
	}

	meeting := make(models.Meeting)
	err = s.meetings.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&meeting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn().
				Str("meeting_id", meetingID).
				Str("user_id", userID).
				Msg("meeting not found")
			return nil, ErrMeetingNotFound
		}

		s.logger.Error().
			Err(err).
			Str("meeting_id", meetingID).
			Msg("failed to find meeting by id")
		return nil, err
	}

	displayMeetingID(meeting)
	annotateMeeting(meeting, s.now().UTC())
	return meeting, nil
}

func (s *meetingServiceImpl) UpdateMeeting(ctx context.Context, meetingID, userID string, fields map[string]any) error {
	if value, exists := fields[models.MeetingDateField]; exists {
		date, _ := value.(string)
		if _, err := time.Parse(models.MeetingDateLayout, date); err != nil {
			return newValidationError("Invalid date format")
		}
	}
	if value, exists := fields[models.MeetingTimeField]; exists {
		timeOfDay, _ := value.(string)
		if _, err := time.Parse(models.MeetingTimeLayout, timeOfDay); err != nil {
			return newValidationError("Invalid time format")
		}
	}

	objectID, err := primitive.ObjectIDFromHex(meetingID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("meeting_id", meetingID).
			Msg("invalid meeting id")
		return ErrMeetingNotFound
	}

	result, err := s.meetings.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "user_id": userID},
		bson.M{"$set": fields},
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("meeting_id", meetingID).
			Msg("failed to update meeting")
		return err
	}
	if result.MatchedCount == 0 {
		s.logger.Warn().
			Str("meeting_id", meetingID).
			Str("user_id", userID).
			Msg("meeting not found")
		return ErrMeetingNotFound
	}

	s.logger.Info().
		Str("meeting_id", meetingID).
		Str("user_id", userID).
		Msg("updated meeting")
	return nil
}

func (s *meetingServiceImpl) DeleteMeeting(ctx context.Context, meetingID, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(meetingID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("meeting_id", meetingID).
			Msg("invalid meeting id")
		return ErrMeetingNotFound
	}

	result, err := s.meetings.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("meeting_id", meetingID).
			Msg("failed to delete meeting")
		return err
	}
	if result.DeletedCount == 0 {
		s.logger.Warn().
			Str("meeting_id", meetingID).
			Str("user_id", userID).
			Msg("meeting not found")
		return ErrMeetingNotFound
	}

	s.logger.Info().
		Str("meeting_id", meetingID).
		Str("user_id", userID).
		Msg("deleted meeting")
	return nil
}

// annotateMeeting computes the is_past and is_upcoming flags against
// the given instant. A meeting whose stored date or time doesn't parse
// gets both flags false: listing never fails over one bad document.
func annotateMeeting(meeting models.Meeting, now time.Time) {
	meeting[isPastField] = false
	meeting[isUpcomingField] = false

	meetingDateTime, err := time.Parse(
		models.MeetingDateLayout+" "+models.MeetingTimeLayout,
		meeting.Date()+" "+meeting.Time(),
	)
	if err != nil {
		return
	}

	meeting[isPastField] = now.After(meetingDateTime)
	meeting[isUpcomingField] = now.Before(meetingDateTime) &&
		meetingDateTime.Before(now.Add(upcomingWindow))
}

func displayMeetingID(meeting models.Meeting) {
	if objectID, ok := meeting["_id"].(primitive.ObjectID); ok {
		meeting["_id"] = objectID.Hex()
	}
}
