package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bluedrop/aquarate/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyLoginAttempt = "auth:login:%s"

const (
	loginRate  = 0.2 // one attempt every five seconds, sustained
	loginBurst = 5
)

// LoginLimiter throttles credential checks per username and client IP.
// When redis is not configured the limiter is disabled and every attempt
// is allowed.
type LoginLimiter struct {
	bucket *TokenBucket
}

func NewLoginLimiter(cfg config.Config) *LoginLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &LoginLimiter{bucket: NewTokenBucket(client)}
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow reports whether another login attempt may proceed for the given
// username/IP pair.
func (l *LoginLimiter) Allow(ctx context.Context, username, ip string) (bool, time.Duration, error) {
	if !l.Enabled() {
		return true, 0, nil
	}
	key := fmt.Sprintf(keyLoginAttempt, strings.ToLower(strings.TrimSpace(username))+":"+strings.TrimSpace(ip))
	res, err := l.bucket.Allow(ctx, key, loginRate, loginBurst)
	if err != nil {
		// Redis being down must not lock customers out.
		return true, 0, err
	}
	return res.Allowed, res.RetryAfter, nil
}
