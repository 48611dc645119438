package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"

	"github.com/noah-isme/qr-attendance-api/internal/repository"
)

// Store owns the persistence handle for the configured driver and exposes the
// repositories built on it.
type Store struct {
	Driver         string
	Users          repository.UserRepository
	AttendanceLogs repository.AttendanceLogRepository

	mongo *mongo.Client
	gorm  *gorm.DB
}

// Open connects to the store selected by driver: "mongo", "postgres" or "sqlite".
func Open(ctx context.Context, driver, url, name string, log zerolog.Logger) (*Store, error) {
	switch driver {
	case "mongo":
		client, db, err := ConnectMongo(ctx, url, name)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &Store{
			Driver:         driver,
			Users:          repository.NewMongoUserRepository(db),
			AttendanceLogs: repository.NewMongoAttendanceLogRepository(db),
			mongo:          client,
		}, nil
	case "postgres", "sqlite":
		db, err := ConnectGorm(driver, url, log)
		if err != nil {
			return nil, err
		}
		return NewGormStore(driver, db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

// NewGormStore wraps an already opened GORM connection.
func NewGormStore(driver string, db *gorm.DB) *Store {
	return &Store{
		Driver:         driver,
		Users:          repository.NewUserRepository(db),
		AttendanceLogs: repository.NewAttendanceLogRepository(db),
		gorm:           db,
	}
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	switch {
	case s.mongo != nil:
		return s.mongo.Ping(ctx, readpref.Primary())
	case s.gorm != nil:
		sqlDB, err := s.gorm.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	default:
		return fmt.Errorf("store not initialised")
	}
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	switch {
	case s.mongo != nil:
		return s.mongo.Disconnect(ctx)
	case s.gorm != nil:
		sqlDB, err := s.gorm.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	default:
		return nil
	}
}
