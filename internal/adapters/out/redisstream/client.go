package redisstream

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewClient builds a client from a redis:// or rediss:// URL.
func NewClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}
