package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ATTENDANCE_DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("ATTENDANCE_CORS_ORIGIN", "https://attendance.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "mongo", cfg.StoreDriver)
	require.Equal(t, "/api/attendance", cfg.APIPrefix)
	require.Equal(t, ":4000", cfg.HTTPAddress())
	require.Equal(t, "https://attendance.example.com", cfg.FrontendOrigin)
	require.Equal(t, 30*time.Second, cfg.UsersCacheTTL)
	require.Equal(t, 120, cfg.RateLimitMax)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Empty(t, cfg.RedisURL)
}

func TestLoadLegacyVariableNames(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://legacy:27017")
	t.Setenv("PORT", "5000")
	t.Setenv("FRONTEND_URL", "https://legacy.example.com")
	t.Setenv("ATTENDANCE_STORE_DRIVER", "Postgres")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mongodb://legacy:27017", cfg.DatabaseURL)
	require.Equal(t, ":5000", cfg.HTTPAddress())
	require.Equal(t, "https://legacy.example.com", cfg.FrontendOrigin)
	require.Equal(t, "postgres", cfg.StoreDriver)
}

func TestLoadLeavesDatabaseNameToURI(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://legacy:27017/qrattendance?retryWrites=true")
	t.Setenv("FRONTEND_URL", "https://legacy.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Empty(t, cfg.DatabaseName)

	t.Setenv("ATTENDANCE_DATABASE_NAME", "override")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "override", cfg.DatabaseName)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{
			name: "missing database url",
			env:  map[string]string{"ATTENDANCE_CORS_ORIGIN": "https://a.example.com"},
			msg:  "database url",
		},
		{
			name: "missing origin",
			env:  map[string]string{"ATTENDANCE_DATABASE_URL": "mongodb://localhost"},
			msg:  "cors origin",
		},
		{
			name: "unknown driver",
			env: map[string]string{
				"ATTENDANCE_DATABASE_URL": "mongodb://localhost",
				"ATTENDANCE_CORS_ORIGIN":  "https://a.example.com",
				"ATTENDANCE_STORE_DRIVER": "redis",
			},
			msg: "unsupported store driver",
		},
		{
			name: "bad duration",
			env: map[string]string{
				"ATTENDANCE_DATABASE_URL":    "mongodb://localhost",
				"ATTENDANCE_CORS_ORIGIN":     "https://a.example.com",
				"ATTENDANCE_USERS_CACHE_TTL": "soon",
			},
			msg: "invalid users.cache_ttl",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			_, err := Load()
			require.ErrorContains(t, err, tc.msg)
		})
	}
}
