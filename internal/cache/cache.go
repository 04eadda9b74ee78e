package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "farmersconnect:price:"

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is a valid, always-missing cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client. An empty addr disables caching.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return nil
	}
	opts := &redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 500 * time.Millisecond,
		ReadTimeout: 500 * time.Millisecond,
		MaxRetries:  1,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Enabled reports whether a backing redis is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.Enabled() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Ping reports connectivity. Unlike the data methods it does return errors,
// for health reporting.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// PriceKey identifies a unit price prediction.
func PriceKey(market, commodity, unit string, year, month int) string {
	return keyPrefix + strings.Join([]string{market, commodity, unit, strconv.Itoa(year), strconv.Itoa(month)}, "|")
}

// GetUnitPrice returns a cached unit price and whether it was found.
func (c *Client) GetUnitPrice(ctx context.Context, key string) (float64, bool) {
	raw, _ := c.Get(ctx, key)
	if raw == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SetUnitPrice caches a unit price.
func (c *Client) SetUnitPrice(ctx context.Context, key string, price float64, ttl time.Duration) {
	_ = c.Set(ctx, key, []byte(strconv.FormatFloat(price, 'g', -1, 64)), ttl)
}
