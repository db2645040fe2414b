package bolt

import (
	"context"
	"encoding/json"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/dayflow/backend/domain"
	"github.com/dayflow/backend/internal/infrastructure/boltdb"
)

// StatsRepository stores one JSON stats snapshot per date key.
type StatsRepository struct {
	client *boltdb.Client
}

func NewStatsRepository(client *boltdb.Client) *StatsRepository {
	return &StatsRepository{client: client}
}

func (r *StatsRepository) Put(ctx context.Context, stats *domain.DailyStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "encode stats", err)
	}
	err = r.client.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltdb.BucketStats)).Put([]byte(domain.DateKey(stats.Date)), payload)
	})
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "put stats", err)
	}
	return nil
}

func (r *StatsRepository) Get(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	var payload []byte
	err := r.client.View(func(tx *bbolt.Tx) error {
		if value := tx.Bucket([]byte(boltdb.BucketStats)).Get([]byte(domain.DateKey(date))); value != nil {
			payload = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStorage, "get stats", err)
	}
	if payload == nil {
		return nil, domain.ErrStatsNotFound
	}
	var stats domain.DailyStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, domain.WrapError(domain.ErrCodeStorage, "decode stats", err)
	}
	return &stats, nil
}
