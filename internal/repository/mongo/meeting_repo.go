package mongo

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const meetingCollectionName = "meetings"

// mongoMeetingRepository implements repository.MeetingRepository
type mongoMeetingRepository struct {
	collection *mongo.Collection
}

func NewMongoMeetingRepository(db *mongo.Database) repository.MeetingRepository {
	return &mongoMeetingRepository{
		collection: db.Collection(meetingCollectionName),
	}
}

func (r *mongoMeetingRepository) List(ctx context.Context) ([]domain.ZoomMeeting, error) {
	return findAll[domain.ZoomMeeting](ctx, r.collection, bson.D{{Key: "startTime", Value: 1}})
}

func (r *mongoMeetingRepository) GetByID(ctx context.Context, id string) (*domain.ZoomMeeting, error) {
	return findByID[domain.ZoomMeeting](ctx, r.collection, id)
}

func (r *mongoMeetingRepository) Create(ctx context.Context, meeting *domain.ZoomMeeting) (string, error) {
	if meeting.Topic == "" || meeting.StartTime.IsZero() {
		return "", errors.New("meeting topic and start time are required")
	}
	meeting.ID = newID()
	if err := insert(ctx, r.collection, meeting); err != nil {
		return "", err
	}
	return meeting.ID, nil
}

func (r *mongoMeetingRepository) Update(ctx context.Context, meeting *domain.ZoomMeeting) error {
	if meeting.ID == "" {
		return errors.New("meeting ID is required for update")
	}
	return replaceByID(ctx, r.collection, meeting.ID, meeting)
}

func (r *mongoMeetingRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

func EnsureMeetingIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(meetingCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "startTime", Value: 1}},
	})
	return err
}
