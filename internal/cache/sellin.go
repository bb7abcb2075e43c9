package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/phardev/apodata-backend/internal/config"
	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	sellinSummaryKeyPrefix = "sellin:summary"
	scanBatchSize          = 100
	defaultSellinTTL       = time.Minute
)

// SellinSummaryCache memoizes full sell-in summaries per request shape.
// Every invocation of the engine recomputes from source data, so repeated
// identical dashboard requests are a natural cache target.
type SellinSummaryCache interface {
	GetSummary(ctx context.Context, req domain.SellinRequest) (*domain.SellinSummary, bool, error)
	SetSummary(ctx context.Context, req domain.SellinRequest, summary *domain.SellinSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisSellinCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSellinCache struct{}

func NewSellinCache(cfg config.CacheConfig) (SellinSummaryCache, error) {
	if !cfg.Enabled {
		return &noopSellinCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.SellinTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSellinTTL
	}

	return &redisSellinCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSellinCache() SellinSummaryCache {
	return &noopSellinCache{}
}

func (c *redisSellinCache) GetSummary(ctx context.Context, req domain.SellinRequest) (*domain.SellinSummary, bool, error) {
	key := buildSellinSummaryKey(req)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.SellinSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode sellin summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisSellinCache) SetSummary(ctx context.Context, req domain.SellinRequest, summary *domain.SellinSummary) error {
	key := buildSellinSummaryKey(req)
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode sellin summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisSellinCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, sellinSummaryKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopSellinCache) GetSummary(ctx context.Context, req domain.SellinRequest) (*domain.SellinSummary, bool, error) {
	return nil, false, nil
}

func (n *noopSellinCache) SetSummary(ctx context.Context, req domain.SellinRequest, summary *domain.SellinSummary) error {
	return nil
}

func (n *noopSellinCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildSellinSummaryKey(req domain.SellinRequest) string {
	parts := []string{
		"period=" + req.StartDate + ".." + req.EndDate,
	}
	if req.ComparisonStartDate != "" && req.ComparisonEndDate != "" {
		parts = append(parts, "comparison="+req.ComparisonStartDate+".."+req.ComparisonEndDate)
	}
	if len(req.PharmacyIDs) > 0 {
		parts = append(parts, "pharmacies="+strings.Join(req.PharmacyIDs, ","))
	}
	if len(req.Code13Refs) > 0 {
		parts = append(parts, "codes="+strings.Join(req.Code13Refs, ","))
	}
	if len(req.Laboratories) > 0 {
		parts = append(parts, "labs="+strings.Join(req.Laboratories, ","))
	}
	for _, seg := range req.Segments {
		parts = append(parts, "segment="+seg.Type+":"+seg.Value)
	}
	if req.FilterMode != "" {
		parts = append(parts, "mode="+req.FilterMode)
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", sellinSummaryKeyPrefix, hex.EncodeToString(hash[:]))
}
