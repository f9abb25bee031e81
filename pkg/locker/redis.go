package locker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "schedule:lock:"

// releaseScript удаляет ключ, только если значение совпадает с токеном владельца
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOptions параметры распределённой блокировки
type RedisOptions struct {
	TTL        time.Duration // время жизни ключа блокировки
	Wait       time.Duration // сколько ждать освобождения
	RetryEvery time.Duration // интервал повторных попыток
}

// RedisLocker распределённая блокировка по ключу (SET NX PX)
type RedisLocker struct {
	client redis.Cmdable
	opts   RedisOptions
}

// NewRedis создает распределённый локер
func NewRedis(client redis.Cmdable, opts RedisOptions) *RedisLocker {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.Wait <= 0 {
		opts.Wait = 5 * time.Second
	}
	if opts.RetryEvery <= 0 {
		opts.RetryEvery = 25 * time.Millisecond
	}
	return &RedisLocker{client: client, opts: opts}
}

// Lock берёт блокировку, повторяя попытки до истечения Wait
func (l *RedisLocker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	redisKey := Key(key)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.opts.Wait)
	defer cancel()

	ticker := time.NewTicker(l.opts.RetryEvery)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.opts.TTL).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("locker: set %s: %w", redisKey, err)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-waitCtx.Done():
			return nil, fmt.Errorf("%w: key=%s", ErrLockTimeout, redisKey)
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlockFunc(redisKey, token string) UnlockFunc {
	return func(ctx context.Context) error {
		res, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
		if err != nil {
			return fmt.Errorf("locker: release %s: %w", redisKey, err)
		}
		if res == 0 {
			return fmt.Errorf("%w: key=%s", ErrLockLost, redisKey)
		}
		return nil
	}
}

// Key возвращает имя ключа блокировки в Redis
func Key(name string) string {
	return keyPrefix + name
}

// ProviderKey ключ блокировки изменений слотов поставщика
func ProviderKey(providerID int64) string {
	return "provider:" + strconv.FormatInt(providerID, 10)
}
