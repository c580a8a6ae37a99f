package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// lockRetryInterval 抢锁失败后的重试间隔
var lockRetryInterval = 200 * time.Millisecond

// TokenBlacklist 已注销 Token 的签名黑名单，由认证服务写入
type TokenBlacklist struct {
	rdb    redis.Cmdable
	prefix string
}

func NewTokenBlacklist(rdb redis.Cmdable, prefix string) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb, prefix: prefix}
}

// IsRevoked 签名存在于黑名单中即视为已注销
func (b *TokenBlacklist) IsRevoked(ctx context.Context, signature string) (bool, error) {
	_, err := b.rdb.Get(ctx, b.prefix+signature).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Locker 基于 SETNX 的分布式锁
type Locker struct {
	rdb redis.Cmdable
}

func NewLocker(rdb redis.Cmdable) *Locker {
	return &Locker{rdb: rdb}
}

// TryLock 抢锁，至少尝试一次；retryTimes 为 -1 时一直重试直到 ctx 结束
func (l *Locker) TryLock(ctx context.Context, key string, value string, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; ; i++ {
		success, err := l.rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		if retryTimes != -1 && i >= retryTimes {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// UnLock 仅当锁仍由 value 持有时释放
func (l *Locker) UnLock(ctx context.Context, key string, value string) error {
	return l.rdb.Eval(ctx, unlockScript, []string{key}, value).Err()
}

// DirtySet 记录待重算的成员，由定时任务批量取出
type DirtySet struct {
	rdb redis.Cmdable
	key string
}

func NewDirtySet(rdb redis.Cmdable, key string) *DirtySet {
	return &DirtySet{rdb: rdb, key: key}
}

func (d *DirtySet) Key() string {
	return d.key
}

// Mark 标记成员为待处理
func (d *DirtySet) Mark(ctx context.Context, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	return d.rdb.SAdd(ctx, d.key, args...).Err()
}

func (d *DirtySet) processingKey() string {
	return d.key + ":processing"
}

// Drain 将集合并入处理中副本并取出副本全部成员，上一轮未确认的成员会一并返回。
// 调用方处理完成后需调用 Ack 删除副本，否则成员会在下一轮再次取出
func (d *DirtySet) Drain(ctx context.Context) ([]string, error) {
	processing := d.processingKey()
	if _, err := d.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SUnionStore(ctx, processing, processing, d.key)
		pipe.Del(ctx, d.key)
		return nil
	}); err != nil {
		return nil, err
	}
	return d.rdb.SMembers(ctx, processing).Result()
}

// Ack 确认本轮取出的成员已处理完毕
func (d *DirtySet) Ack(ctx context.Context) error {
	return d.rdb.Del(ctx, d.processingKey()).Err()
}
