package database

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

func TestOpenSQLiteStore(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	store, err := Open(ctx, "sqlite", dsn, "", zerolog.New(io.Discard))
	require.NoError(t, err)
	defer store.Close(ctx)

	require.Equal(t, "sqlite", store.Driver)
	require.NoError(t, store.Ping(ctx))

	user := models.User{StudentID: "S1", Name: "Alice", Email: "a@x.com", Role: "Student"}
	require.NoError(t, store.Users.Create(ctx, &user))

	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "cassandra", "whatever", "", zerolog.New(io.Discard))
	require.ErrorContains(t, err, "unsupported store driver")

	_, err = ConnectGorm("postgres", "", zerolog.New(io.Discard))
	require.ErrorContains(t, err, "dsn must not be empty")

	_, _, err = ConnectMongo(context.Background(), "", "")
	require.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	client, err := ConnectRedis(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, client)

	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client, err = ConnectRedis(context.Background(), "redis://"+server.Addr())
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()

	_, err = ConnectRedis(context.Background(), "://bad")
	require.Error(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ConnectRedis(cancelled, "redis://"+server.Addr())
	require.ErrorContains(t, err, "unable to connect to redis")
}

func TestGormLoggerUsesZerologAndSkipsNotFound(t *testing.T) {
	var buf bytes.Buffer
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := ConnectGorm("sqlite", dsn, zerolog.New(&buf))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	var user models.User
	err = db.Where("student_id = ?", "missing").Take(&user).Error
	require.Error(t, err)
	require.NotContains(t, buf.String(), "record not found")

	err = db.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)
	require.Contains(t, buf.String(), `"component":"gorm"`)
	require.Contains(t, buf.String(), "no_such_table")
}

func TestMongoDatabaseName(t *testing.T) {
	cases := []struct {
		name     string
		uri      string
		override string
		want     string
	}{
		{name: "uri path", uri: "mongodb://localhost:27017/qrattendance?retryWrites=true", want: "qrattendance"},
		{name: "explicit name wins", uri: "mongodb://localhost:27017/qrattendance", override: "reports", want: "reports"},
		{name: "no path", uri: "mongodb://localhost:27017", want: DefaultMongoDatabase},
		{name: "bare slash", uri: "mongodb://localhost:27017/?retryWrites=true", want: DefaultMongoDatabase},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MongoDatabaseName(tc.uri, tc.override)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := MongoDatabaseName("postgres://localhost/db", "")
	require.ErrorContains(t, err, "invalid mongo uri")
}
