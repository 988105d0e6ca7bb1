package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"stockflow/internal/models"
)

type CacheService interface {
	// Product caching
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// Category caching
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, error)
	SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error

	// Stock availability caching. Keyed by product, invalidated on every
	// movement through the product.
	GetAvailability(ctx context.Context, productID uuid.UUID) (int, bool, error)
	SetAvailability(ctx context.Context, productID uuid.UUID, total int, ttl time.Duration) error
	DeleteAvailability(ctx context.Context, productID uuid.UUID) error

	InvalidateAll(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	key := fmt.Sprintf("stockflow:product:%s", productID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	key := fmt.Sprintf("stockflow:product:%s", product.ID.String())
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	key := fmt.Sprintf("stockflow:product:%s", productID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	key := fmt.Sprintf("stockflow:category:%s", categoryID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var category models.Category
	if err := json.Unmarshal(data, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *redisCacheService) SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error {
	key := fmt.Sprintf("stockflow:category:%s", category.ID.String())
	data, err := json.Marshal(category)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	key := fmt.Sprintf("stockflow:category:%s", categoryID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetAvailability(ctx context.Context, productID uuid.UUID) (int, bool, error) {
	key := fmt.Sprintf("stockflow:availability:%s", productID.String())
	total, err := r.client.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil // cache miss
		}
		return 0, false, err
	}
	return total, true, nil
}

func (r *redisCacheService) SetAvailability(ctx context.Context, productID uuid.UUID, total int, ttl time.Duration) error {
	key := fmt.Sprintf("stockflow:availability:%s", productID.String())
	return r.client.Set(ctx, key, total, ttl).Err()
}

func (r *redisCacheService) DeleteAvailability(ctx context.Context, productID uuid.UUID) error {
	key := fmt.Sprintf("stockflow:availability:%s", productID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidateAll(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "stockflow:*").Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}
