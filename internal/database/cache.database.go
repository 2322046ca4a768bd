package database

import (
	"context"
	"fmt"
	"time"

	"savvy/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

type CacheClient = valkey.Client

type Cache struct {
	General CacheClient
	Events  CacheClient
}

// Valkey database indexes.
const (
	// GENERAL_CACHE_INDEX holds the notification dispatch ledger.
	GENERAL_CACHE_INDEX = iota

	// EVENTS_CACHE_INDEX carries pub/sub traffic for dashboard updates.
	EVENTS_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := fmt.Sprintf("%s:%d", config.DatabaseCacheAddress, config.DatabaseCachePort)

	var cacheDB Cache
	var err error

	cacheDB.General, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		SelectDB:    GENERAL_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Events, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		SelectDB:    EVENTS_CACHE_INDEX,
	})
	if err != nil {
		cacheDB.General.Close()
		return log.Err("failed to create events valkey client", err)
	}

	s.Cache = cacheDB
	return nil
}

func (s *DB) FlushAllCaches() error {
	log := logger.New("database").File("cache.database").Function("FlushAllCaches")
	log.Info("Flushing all cache databases")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cacheClients := []struct {
		client CacheClient
		name   string
	}{
		{s.Cache.General, "General"},
		{s.Cache.Events, "Events"},
	}

	for _, cache := range cacheClients {
		if cache.client == nil {
			continue
		}
		if err := cache.client.Do(ctx, cache.client.B().Flushdb().Build()).Error(); err != nil {
			return log.Err("Failed to flush cache database", err, "cache", cache.name)
		}
		log.Info("Successfully flushed cache database", "cache", cache.name)
	}

	return nil
}
