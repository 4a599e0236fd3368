package service

import (
	"context"
	"emotest_backend/internal/util"
	"emotest_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmissionLocker 串行化同一用户的提交
type SubmissionLocker interface {
	Acquire(ctx context.Context, userID string) (release func(), err error)
}

const releaseTimeout = 2 * time.Second

// releaseScript 只删除 token 匹配的锁，避免误删 TTL 过期后被他人重新持有的锁
var releaseScript = redis.NewScript(`if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`)

// RedisSubmissionLocker 基于 SET NX 的用户级锁，TTL 到期自动释放
type RedisSubmissionLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSubmissionLocker(rdb *redis.Client, ttl time.Duration) *RedisSubmissionLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisSubmissionLocker{rdb: rdb, ttl: ttl}
}

func lockKey(userID string) string {
	return "emotest:submission:" + userID
}

func (l *RedisSubmissionLocker) Acquire(ctx context.Context, userID string) (func(), error) {
	key := lockKey(userID)
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrSubmissionInProgress
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if _, err := l.release(ctx, key, token); err != nil {
			logger.Log.Warn("Failed to release submission lock",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}, nil
}

// release 返回是否真的删除了锁
func (l *RedisSubmissionLocker) release(ctx context.Context, key, token string) (bool, error) {
	n, err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
