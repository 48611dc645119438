package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository constructs a user repository backed by a MongoDB database.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{collection: db.Collection(usersCollection)}
}

func (r *mongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.model())
	}
	return users, nil
}

func (r *mongoUserRepository) FindByStudentIDOrEmail(ctx context.Context, studentID, email string) (models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"studentId": studentID},
		bson.M{"email": email},
	}}
	return r.findOne(ctx, filter)
}

func (r *mongoUserRepository) GetByStudentID(ctx context.Context, studentID string) (models.User, error) {
	return r.findOne(ctx, bson.M{"studentId": studentID})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter interface{}) (models.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.User{}, translateMongoError(err)
	}
	return doc.model(), nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	doc := newUserDocument(*user)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateMongoError(err)
	}

	user.ID = doc.ID.Hex()
	return nil
}

func (r *mongoUserRepository) DeleteByStudentID(ctx context.Context, studentID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"studentId": studentID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureMongoIndexes creates the unique and lookup indexes both collections rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "studentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = db.Collection(attendanceLogsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "studentId", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create attendance log indexes: %w", err)
	}
	return nil
}

func translateMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
