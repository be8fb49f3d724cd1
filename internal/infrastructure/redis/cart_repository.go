package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre Redis.
// Clave: <namespace>:cart:<userID>, valor: el carrito serializado a JSON.
type CartRepo struct {
	client    *redis.Client
	namespace string
}

// NewCartRepository construye el adaptador de persistencia de carritos.
func NewCartRepository(client *redis.Client, namespace string) *CartRepo {
	return &CartRepo{client: client, namespace: namespace}
}

func (r *CartRepo) key(userID string) string {
	return fmt.Sprintf("%s:cart:%s", r.namespace, userID)
}

// Get devuelve el carrito persistido, o un carrito vacío si no hay nada guardado.
func (r *CartRepo) Get(ctx context.Context, userID string) (entity.Cart, error) {
	raw, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return entity.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	var cart entity.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

// Put reemplaza el carrito persistido del usuario.
func (r *CartRepo) Put(ctx context.Context, userID string, cart entity.Cart) error {
	if cart == nil {
		cart = entity.Cart{}
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.client.Set(ctx, r.key(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("put cart: %w", err)
	}
	return nil
}
