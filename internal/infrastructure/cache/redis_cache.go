package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/petshop-pro/internal/application/settlement"
)

var _ settlement.BalanceCache = (*RedisBalanceCache)(nil)

// RedisBalanceCache cachea el saldo derivado por proveedor en Redis.
// El valor se guarda como string decimal para no perder precisión.
type RedisBalanceCache struct {
	client *redis.Client
}

func NewRedisBalanceCache(addr, password string, db int) *RedisBalanceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisBalanceCache{client: client}
}

func (c *RedisBalanceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

func balanceKey(ownerID string) string {
	return "owner-balance:" + ownerID
}

func (c *RedisBalanceCache) Get(ctx context.Context, ownerID string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, balanceKey(ownerID)).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	balance, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, err
	}
	return balance, true, nil
}

func (c *RedisBalanceCache) Set(ctx context.Context, ownerID string, balance decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, balanceKey(ownerID), balance.String(), ttl).Err()
}

func (c *RedisBalanceCache) Delete(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, balanceKey(ownerID)).Err()
}
