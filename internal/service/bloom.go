package service

import (
	"context"
	"sync"

	"redirector/internal/config"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const bloomFilterKey = "redirect:bloom"

// BloomService tracks issued codes in a RedisBloom filter. Without the
// RedisBloom module it falls back to a filter held in this process.
type BloomService struct {
	client    RedisClient
	capacity  int64
	errorRate float64

	localOnce sync.Once
	localMu   sync.Mutex
	local     *bloom.BloomFilter
}

// RedisClient defines the interface for Redis client operations
type RedisClient interface {
	Do(ctx context.Context, args ...interface{}) *redis.Cmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewBloomService creates a new Bloom Service
func NewBloomService(client RedisClient, cfg *config.BloomConfig) *BloomService {
	bs := &BloomService{
		client:    client,
		capacity:  cfg.Capacity,
		errorRate: cfg.ErrorRate,
	}

	// Initialize Bloom Filter if needed
	bs.initBloomFilter(context.Background())

	return bs
}

// initBloomFilter initializes the Bloom Filter
func (bs *BloomService) initBloomFilter(ctx context.Context) {
	// Check if Bloom Filter exists
	exists, err := bs.client.Exists(ctx, bloomFilterKey).Result()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to check Bloom Filter existence")
		return
	}

	if exists > 0 {
		log.Info().Msg("Bloom Filter already exists")
		return
	}

	// Create Bloom Filter
	cmd := bs.client.Do(ctx, "BF.RESERVE", bloomFilterKey, bs.errorRate, bs.capacity)
	if err := cmd.Err(); err != nil {
		log.Warn().Err(err).Msg("BF.RESERVE not available, using in-process Bloom Filter")
	} else {
		log.Info().Msgf("Bloom Filter created with capacity=%d, error_rate=%f", bs.capacity, bs.errorRate)
	}
}

// Add records an issued code
func (bs *BloomService) Add(ctx context.Context, code string) error {
	// Try BF.ADD first (RedisBloom module)
	cmd := bs.client.Do(ctx, "BF.ADD", bloomFilterKey, code)
	if err := cmd.Err(); err != nil {
		log.Debug().Err(err).Msg("BF.ADD not available, using in-process filter")
		bs.localAdd(code)
	}
	return nil
}

// Exists reports whether a code may have been issued. False means definitely not.
func (bs *BloomService) Exists(ctx context.Context, code string) (bool, error) {
	// Try BF.EXISTS first
	cmd := bs.client.Do(ctx, "BF.EXISTS", bloomFilterKey, code)
	result, err := cmd.Int()
	if err == nil {
		return result == 1, nil
	}

	log.Debug().Err(err).Msg("BF.EXISTS not available, using in-process filter")
	return bs.localTest(code), nil
}

// IsAvailable checks if the RedisBloom filter is reachable
func (bs *BloomService) IsAvailable(ctx context.Context) bool {
	cmd := bs.client.Do(ctx, "BF.INFO", bloomFilterKey)
	if cmd.Err() != nil {
		return false
	}
	return true
}

func (bs *BloomService) localFilter() *bloom.BloomFilter {
	bs.localOnce.Do(func() {
		bs.local = bloom.NewWithEstimates(uint(bs.capacity), bs.errorRate)
	})
	return bs.local
}

func (bs *BloomService) localAdd(code string) {
	f := bs.localFilter()
	bs.localMu.Lock()
	defer bs.localMu.Unlock()
	f.AddString(code)
}

func (bs *BloomService) localTest(code string) bool {
	f := bs.localFilter()
	bs.localMu.Lock()
	defer bs.localMu.Unlock()
	return f.TestString(code)
}
