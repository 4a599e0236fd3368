package service

import (
	"context"
	"emotest_backend/internal/util"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, ttl time.Duration) (*RedisSubmissionLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisSubmissionLocker(rdb, ttl), mr
}

func TestRedisSubmissionLockerContention(t *testing.T) {
	locker, mr := newTestLocker(t, 10*time.Second)
	ctx := context.Background()
	userID := uuid.NewString()

	release, err := locker.Acquire(ctx, userID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(lockKey(userID)))
	assert.Equal(t, 10*time.Second, mr.TTL(lockKey(userID)))

	_, err = locker.Acquire(ctx, userID)
	assert.ErrorIs(t, err, util.ErrSubmissionInProgress)

	// 其他用户不受影响
	otherRelease, err := locker.Acquire(ctx, uuid.NewString())
	require.NoError(t, err)
	otherRelease()

	release()
	assert.False(t, mr.Exists(lockKey(userID)))

	again, err := locker.Acquire(ctx, userID)
	require.NoError(t, err)
	again()
}

func TestRedisSubmissionLockerExpires(t *testing.T) {
	locker, mr := newTestLocker(t, time.Second)
	ctx := context.Background()
	userID := uuid.NewString()

	_, err := locker.Acquire(ctx, userID)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	release, err := locker.Acquire(ctx, userID)
	require.NoError(t, err)
	release()
}

func TestRedisSubmissionLockerKeepsForeignLock(t *testing.T) {
	locker, mr := newTestLocker(t, time.Second)
	ctx := context.Background()
	userID := uuid.NewString()
	key := lockKey(userID)

	release, err := locker.Acquire(ctx, userID)
	require.NoError(t, err)

	// 锁过期后被另一个请求重新持有
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set(key, "someone-else"))

	release()
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)

	deleted, err := locker.release(ctx, key, "not-the-owner")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, mr.Exists(key))
}

func TestRedisSubmissionLockerUnavailable(t *testing.T) {
	locker, mr := newTestLocker(t, time.Second)
	userID := uuid.NewString()

	release, err := locker.Acquire(context.Background(), userID)
	require.NoError(t, err)

	mr.Close()
	assert.NotPanics(t, release)

	_, err = locker.Acquire(context.Background(), userID)
	assert.Error(t, err)
}

func TestProcessWithRedisLocker(t *testing.T) {
	f := newFlowFixture(t, scenarioCatalog())
	locker, mr := newTestLocker(t, 10*time.Second)
	f.flow.Locker = locker
	userID := uuid.NewString()

	res, err := f.flow.Process(context.Background(), ProcessRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CurrentStep)
	assert.False(t, mr.Exists(lockKey(userID)))

	require.NoError(t, mr.Set(lockKey(userID), "in-flight"))
	_, err = f.flow.Process(context.Background(), ProcessRequest{UserID: userID})
	assert.ErrorIs(t, err, util.ErrSubmissionInProgress)
}
