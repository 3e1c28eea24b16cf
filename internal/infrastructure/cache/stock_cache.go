package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/stock-api/internal/application/inventory"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/pkg/config"
)

const (
	keyPrefix = "stock"
	// versionTTL vida de las claves de versión sin invalidaciones nuevas.
	versionTTL = 24 * time.Hour
)

var errStaleVersion = errors.New("versión de caché desactualizada")

// RedisStockCache implementa inventory.StockCache sobre Redis. Guarda la cantidad como texto decimal.
type RedisStockCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	log        zerolog.Logger
}

var _ appinv.StockCache = (*RedisStockCache)(nil)

// NewRedisStockCache abre el cliente y verifica la conexión con un Ping.
func NewRedisStockCache(cfg config.RedisConfig, log zerolog.Logger) (*RedisStockCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}

	c := NewRedisStockCacheWithClient(client, cfg.StockTTL, log)
	c.ownsClient = true
	return c, nil
}

// NewRedisStockCacheWithClient usa un cliente existente; quien lo creó lo cierra.
func NewRedisStockCacheWithClient(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisStockCache {
	return &RedisStockCache{client: client, ttl: ttl, log: log}
}

func stockKey(productID, warehouseID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, productID, warehouseID)
}

// versionKey generación de la clave; Invalidate la incrementa.
func versionKey(productID, warehouseID string) string {
	return fmt.Sprintf("%s:ver:%s:%s", keyPrefix, productID, warehouseID)
}

// Get devuelve la cantidad (Hit) y la generación actual de la clave en un solo MGET.
func (c *RedisStockCache) Get(ctx context.Context, productID, warehouseID string) (appinv.CachedStock, error) {
	key := stockKey(productID, warehouseID)
	vals, err := c.client.MGet(ctx, key, versionKey(productID, warehouseID)).Result()
	if err != nil {
		return appinv.CachedStock{}, fmt.Errorf("redis mget: %w", err)
	}

	var out appinv.CachedStock
	if raw, ok := vals[1].(string); ok {
		if out.Version, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return appinv.CachedStock{}, fmt.Errorf("versión de caché inválida %q: %w", raw, err)
		}
	}
	raw, ok := vals[0].(string)
	if !ok {
		return out, nil
	}
	qty, err := decimal.NewFromString(raw)
	if err != nil {
		// Valor corrupto: se descarta y se trata como fallo.
		c.log.Warn().Str("key", key).Str("value", raw).Msg("valor de caché inválido")
		_ = c.client.Del(ctx, key).Err()
		return out, nil
	}
	out.Quantity = qty
	out.Hit = true
	return out, nil
}

// Set guarda la cantidad con el TTL configurado solo si la generación no cambió desde el Get.
// Usa WATCH sobre la clave de versión: una invalidación concurrente aborta la escritura.
func (c *RedisStockCache) Set(ctx context.Context, productID, warehouseID string, qty decimal.Decimal, version int64) error {
	verKey := versionKey(productID, warehouseID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, stockKey(productID, warehouseID), qty.String(), c.ttl)
			return nil
		})
		return err
	}, verKey)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
		c.log.Debug().Str("key", stockKey(productID, warehouseID)).Msg("valor de caché descartado: clave invalidada")
		return nil
	default:
		return fmt.Errorf("redis set: %w", err)
	}
}

// Invalidate borra las claves tocadas por un movimiento y sube su generación en una transacción MULTI.
func (c *RedisStockCache) Invalidate(ctx context.Context, keys ...inventory.StockKey) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		redisKeys = append(redisKeys, stockKey(k.ProductID, k.WarehouseID))
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, redisKeys...)
		for _, k := range keys {
			verKey := versionKey(k.ProductID, k.WarehouseID)
			pipe.Incr(ctx, verKey)
			pipe.Expire(ctx, verKey, versionTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	c.log.Debug().Int("keys", len(redisKeys)).Msg("caché de stock invalidada")
	return nil
}

// Close cierra el cliente solo si fue creado por NewRedisStockCache.
func (c *RedisStockCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}
