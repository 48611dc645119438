package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Waiting for connections"),
				wait.ForListeningPort("27017/tcp"),
			),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("attendance_test")
	require.NoError(t, EnsureMongoIndexes(ctx, db))
	return db
}

func TestMongoRepositoriesRoundTrip(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	users := NewMongoUserRepository(db)
	logs := NewMongoAttendanceLogRepository(db)

	alice := models.User{StudentID: "S1", Name: "Alice", Email: "a@x.com", Role: "Student"}
	require.NoError(t, users.Create(ctx, &alice))
	require.Len(t, alice.ID, 24)

	err := users.Create(ctx, &models.User{StudentID: "S2", Name: "Eve", Email: "a@x.com", Role: "Student"})
	require.ErrorIs(t, err, ErrDuplicate)

	found, err := users.FindByStudentIDOrEmail(ctx, "S1", "none@x.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, found.ID)

	early := newLog("S1", "2024-01-01T09:00:00.000Z")
	require.NoError(t, logs.Create(ctx, early))
	require.NoError(t, logs.Create(ctx, newLog("S1", "2024-01-03T09:00:00.000Z")))
	require.NoError(t, logs.Create(ctx, newLog("S2", "2024-01-03T10:00:00.000Z")))

	active, err := logs.ListSince(ctx, "2024-01-02T00:00:00.000Z")
	require.NoError(t, err)
	require.Len(t, active, 2)

	archived, err := logs.ListBefore(ctx, "2024-01-02T00:00:00.000Z")
	require.NoError(t, err)
	require.Len(t, archived, 1)
	require.Equal(t, early.ID, archived[0].ID)

	require.ErrorIs(t, logs.Delete(ctx, "not-an-object-id"), ErrNotFound)
	require.NoError(t, logs.Delete(ctx, early.ID))
	require.ErrorIs(t, logs.Delete(ctx, early.ID), ErrNotFound)

	require.NoError(t, users.DeleteByStudentID(ctx, "S1"))
	removed, err := logs.DeleteByStudentID(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	_, err = users.GetByStudentID(ctx, "S1")
	require.ErrorIs(t, err, ErrNotFound)

	removed, err = logs.DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)
}
