package bolt

import (
	"context"
	"encoding/json"

	bbolt "go.etcd.io/bbolt"

	"github.com/dayflow/backend/domain"
	"github.com/dayflow/backend/internal/infrastructure/boltdb"
)

const streakKey = "streak"

// StreakRepository stores the single streak record in the meta bucket.
type StreakRepository struct {
	client *boltdb.Client
}

func NewStreakRepository(client *boltdb.Client) *StreakRepository {
	return &StreakRepository{client: client}
}

func (r *StreakRepository) Put(ctx context.Context, streak *domain.StreakInfo) error {
	payload, err := json.Marshal(streak)
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "encode streak", err)
	}
	err = r.client.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltdb.BucketMeta)).Put([]byte(streakKey), payload)
	})
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "put streak", err)
	}
	return nil
}

// Get returns the stored streak, or a fresh zero streak when none exists.
func (r *StreakRepository) Get(ctx context.Context) (*domain.StreakInfo, error) {
	var payload []byte
	err := r.client.View(func(tx *bbolt.Tx) error {
		if value := tx.Bucket([]byte(boltdb.BucketMeta)).Get([]byte(streakKey)); value != nil {
			payload = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStorage, "get streak", err)
	}
	if payload == nil {
		return domain.NewStreakInfo(), nil
	}
	var streak domain.StreakInfo
	if err := json.Unmarshal(payload, &streak); err != nil {
		return nil, domain.WrapError(domain.ErrCodeStorage, "decode streak", err)
	}
	return &streak, nil
}
