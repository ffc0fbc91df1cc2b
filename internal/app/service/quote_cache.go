package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// QuoteCache stores computed quotes in redis keyed by product and selection.
// The engine itself never caches; this is the embedding service's decision,
// and every variation document mutation drops the product's entries.
//
// A nil *QuoteCache is valid and disables caching, so tests and deployments
// without redis run the same code path.
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQuoteCache(client *redis.Client, ttl time.Duration) *QuoteCache {
	if client == nil {
		return nil
	}
	return &QuoteCache{client: client, ttl: ttl}
}

func (c *QuoteCache) productPrefix(productID uint) string {
	return fmt.Sprintf("quote:%d:", productID)
}

// key derives a stable cache key from the selection regardless of map order.
func (c *QuoteCache) key(productID uint, sel model.Selection) string {
	panelIDs := make([]string, 0, len(sel))
	for panelID := range sel {
		panelIDs = append(panelIDs, panelID)
	}
	sort.Strings(panelIDs)

	var b strings.Builder
	for _, panelID := range panelIDs {
		b.WriteString(panelID)
		b.WriteByte('=')
		b.WriteString(sel[panelID])
		b.WriteByte(';')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return c.productPrefix(productID) + hex.EncodeToString(sum[:])
}

func (c *QuoteCache) Get(ctx context.Context, productID uint, sel model.Selection) (*Quote, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, c.key(productID, sel)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Quote cache read failed", map[string]interface{}{
				"product_id": productID,
				"error":      err.Error(),
			})
		}
		return nil, false
	}

	var quote Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, false
	}
	return &quote, true
}

func (c *QuoteCache) Set(ctx context.Context, productID uint, sel model.Selection, quote *Quote) {
	if c == nil {
		return
	}

	data, err := json.Marshal(quote)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(productID, sel), data, c.ttl).Err(); err != nil {
		logger.Warn("Quote cache write failed", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}
}

// InvalidateProduct drops every cached quote for the product.
func (c *QuoteCache) InvalidateProduct(productID uint) {
	if c == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	iter := c.client.Scan(ctx, 0, c.productPrefix(productID)+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Quote cache invalidation failed", map[string]interface{}{
				"product_id": productID,
				"key":        iter.Val(),
				"error":      err.Error(),
			})
			return
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Quote cache scan failed", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}
}
