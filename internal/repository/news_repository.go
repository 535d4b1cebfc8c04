package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storydesk/internal/apperr"
	"storydesk/pkg/news"

	"github.com/redis/go-redis/v9"
)

// NewsRepository holds the singleton category news document in Redis. The
// refresh path overwrites it wholesale; the serving path only reads.
type NewsRepository struct {
	rdb *redis.Client
	key string
}

func NewNewsRepository(rdb *redis.Client, key string) *NewsRepository {
	return &NewsRepository{rdb: rdb, key: key}
}

func (r *NewsRepository) Save(ctx context.Context, doc *news.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if err := r.rdb.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("save news document: %w", err)
	}

	return nil
}

func (r *NewsRepository) Latest(ctx context.Context) (*news.Document, error) {
	raw, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("news cache: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load news document: %w", err)
	}

	var doc news.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode news document: %w", err)
	}

	return &doc, nil
}
