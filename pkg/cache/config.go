package cache

import "time"

// unboundedSize stands in for "no bound"; the LRU requires a positive size.
const unboundedSize = 1 << 30

// TTLOption configures a TTL cache.
type TTLOption func(*TTLConfig)

// TTLConfig holds TTL cache configuration.
type TTLConfig struct {
	Clock      Clock
	MaxEntries int
}

// WithClock injects the time source.
func WithClock(clock Clock) TTLOption {
	return func(c *TTLConfig) {
		if clock != nil {
			c.Clock = clock
		}
	}
}

// WithMaxEntries bounds the cache with LRU eviction. Zero or less means unbounded.
func WithMaxEntries(n int) TTLOption {
	return func(c *TTLConfig) {
		c.MaxEntries = n
	}
}

// RedisOption configures Redis cache.
type RedisOption func(*RedisConfig)

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	PoolTimeout  time.Duration
	MinIdleConns int
	Prefix       string
}

// WithRedisHost sets Redis host.
func WithRedisHost(host string) RedisOption {
	return func(c *RedisConfig) {
		c.Host = host
	}
}

// WithRedisPort sets Redis port.
func WithRedisPort(port int) RedisOption {
	return func(c *RedisConfig) {
		c.Port = port
	}
}

// WithRedisPassword sets Redis password.
func WithRedisPassword(password string) RedisOption {
	return func(c *RedisConfig) {
		c.Password = password
	}
}

// WithRedisDB sets Redis database number.
func WithRedisDB(db int) RedisOption {
	return func(c *RedisConfig) {
		c.DB = db
	}
}

// WithRedisPool sets connection pool settings.
func WithRedisPool(poolSize, minIdleConns int, timeout time.Duration) RedisOption {
	return func(c *RedisConfig) {
		c.PoolSize = poolSize
		c.MinIdleConns = minIdleConns
		c.PoolTimeout = timeout
	}
}

// WithRedisPrefix sets key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *RedisConfig) {
		c.Prefix = prefix
	}
}
