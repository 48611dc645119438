package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

type mongoAttendanceLogRepository struct {
	collection *mongo.Collection
}

// NewMongoAttendanceLogRepository constructs an attendance log repository backed by MongoDB.
func NewMongoAttendanceLogRepository(db *mongo.Database) AttendanceLogRepository {
	return &mongoAttendanceLogRepository{collection: db.Collection(attendanceLogsCollection)}
}

func (r *mongoAttendanceLogRepository) ListSince(ctx context.Context, cutoff string) ([]models.AttendanceLog, error) {
	return r.find(ctx, bson.M{"timestamp": bson.M{"$gte": cutoff}})
}

func (r *mongoAttendanceLogRepository) ListBefore(ctx context.Context, cutoff string) ([]models.AttendanceLog, error) {
	return r.find(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
}

func (r *mongoAttendanceLogRepository) find(ctx context.Context, filter interface{}) ([]models.AttendanceLog, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var docs []attendanceLogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	logs := make([]models.AttendanceLog, 0, len(docs))
	for _, doc := range docs {
		logs = append(logs, doc.model())
	}
	return logs, nil
}

func (r *mongoAttendanceLogRepository) Create(ctx context.Context, log *models.AttendanceLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	doc := newAttendanceLogDocument(*log)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateMongoError(err)
	}

	log.ID = doc.ID.Hex()
	return nil
}

func (r *mongoAttendanceLogRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoAttendanceLogRepository) DeleteByStudentID(ctx context.Context, studentID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"studentId": studentID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *mongoAttendanceLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
