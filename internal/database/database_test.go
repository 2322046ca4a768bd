package database

import (
	"context"
	"testing"
	"time"

	"savvy/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, EVENTS_CACHE_INDEX)
}

func TestNew_WithoutBackends(t *testing.T) {
	db, err := New(config.Config{ServerPort: 8288})

	require.NoError(t, err)
	assert.Nil(t, db.SQL)
	assert.Nil(t, db.Cache.General)
	assert.Nil(t, db.Cache.Events)
	assert.NoError(t, db.Close())
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{
		DatabaseHost:     "db",
		DatabasePort:     5432,
		DatabaseUser:     "savvy",
		DatabasePassword: "secret",
		DatabaseName:     "dispatch",
	})

	assert.Equal(
		t,
		"host=db port=5432 user=savvy password=secret dbname=dispatch sslmode=disable TimeZone=UTC",
		dsn,
	)
}

func TestCacheBuilder_Validation(t *testing.T) {
	assert.EqualError(t, NewCacheBuilder(nil, "").Delete(), "key is required")

	_, err := NewCacheBuilder(nil, "k").WithHash("notification_sent").SetIfAbsent()
	assert.EqualError(t, err, "value is required")
}

func TestCacheBuilder_TimeoutContext(t *testing.T) {
	t.Run("keeps a shorter caller deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		derived, derivedCancel := NewCacheBuilder(nil, "k").WithContext(ctx).createTimeoutContext()
		defer derivedCancel()

		deadline, ok := derived.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
	})

	t.Run("applies the default timeout", func(t *testing.T) {
		derived, derivedCancel := NewCacheBuilder(nil, "k").createTimeoutContext()
		defer derivedCancel()

		deadline, ok := derived.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, 500*time.Millisecond)
	})
}
