package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"servicehub/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// IntentRepository holds order intents in ephemeral storage. Keys carry
// the browser-held intent reference, which stays stable across the login
// redirect the intent has to survive; the TTL bounds how long an
// unconsumed selection lingers.
type IntentRepository interface {
	Store(ctx context.Context, intentRef string, intent *entity.OrderIntent, ttl time.Duration) error
	Consume(ctx context.Context, intentRef string) (*entity.OrderIntent, error)
}

type intentRepository struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewIntentRepository(rdb *redis.Client, log *zap.Logger) IntentRepository {
	return &intentRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "intent")),
	}
}

func intentKey(intentRef string) string {
	return "order_intent:" + intentRef
}

// Store overwrites any prior intent held under the same reference.
func (ir *intentRepository) Store(ctx context.Context, intentRef string, intent *entity.OrderIntent, ttl time.Duration) error {
	payload, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("marshal order intent: %w", err)
	}

	if err := ir.rdb.Set(ctx, intentKey(intentRef), payload, ttl).Err(); err != nil {
		ir.log.Error("Failed to store order intent",
			zap.Error(err),
			zap.String("intent_ref", intentRef),
		)
		return fmt.Errorf("store order intent: %w", err)
	}

	return nil
}

// Consume reads and deletes the intent in one round trip (GETDEL), so a
// concurrent or repeated consume sees nothing. Returns nil when no intent
// is stored.
func (ir *intentRepository) Consume(ctx context.Context, intentRef string) (*entity.OrderIntent, error) {
	payload, err := ir.rdb.GetDel(ctx, intentKey(intentRef)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consume order intent: %w", err)
	}

	var intent entity.OrderIntent
	if err := json.Unmarshal([]byte(payload), &intent); err != nil {
		// A corrupt value is as good as no value; it has already been
		// deleted by GETDEL.
		ir.log.Warn("Discarding unreadable order intent",
			zap.Error(err),
			zap.String("intent_ref", intentRef),
		)
		return nil, nil
	}

	return &intent, nil
}
