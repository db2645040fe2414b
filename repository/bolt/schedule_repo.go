package bolt

import (
	"context"
	"encoding/json"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/dayflow/backend/domain"
	"github.com/dayflow/backend/internal/infrastructure/boltdb"
)

// ScheduleRepository stores one JSON schedule per date key.
type ScheduleRepository struct {
	client *boltdb.Client
	clock  domain.Clock
}

func NewScheduleRepository(client *boltdb.Client, clock domain.Clock) *ScheduleRepository {
	if clock == nil {
		clock = domain.SystemClock()
	}
	return &ScheduleRepository{client: client, clock: clock}
}

func (r *ScheduleRepository) Put(ctx context.Context, schedule *domain.Schedule) error {
	payload, err := json.Marshal(schedule)
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "encode schedule", err)
	}
	err = r.client.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltdb.BucketSchedules)).Put([]byte(schedule.DateKey()), payload)
	})
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "put schedule", err)
	}
	return nil
}

func (r *ScheduleRepository) Get(ctx context.Context, date time.Time) (*domain.Schedule, error) {
	return r.getByKey(domain.DateKey(date))
}

func (r *ScheduleRepository) GetToday(ctx context.Context) (*domain.Schedule, error) {
	now := r.clock.Now()
	schedule, err := r.getByKey(domain.DateKey(now))
	if err != nil {
		return nil, err
	}
	// A record stored under today's key but carrying another date is stale.
	if !domain.SameDay(schedule.Date, now) {
		return nil, domain.ErrScheduleNotFound
	}
	return schedule, nil
}

func (r *ScheduleRepository) getByKey(key string) (*domain.Schedule, error) {
	var payload []byte
	err := r.client.View(func(tx *bbolt.Tx) error {
		if value := tx.Bucket([]byte(boltdb.BucketSchedules)).Get([]byte(key)); value != nil {
			payload = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStorage, "get schedule", err)
	}
	if payload == nil {
		return nil, domain.ErrScheduleNotFound
	}
	var schedule domain.Schedule
	if err := json.Unmarshal(payload, &schedule); err != nil {
		return nil, domain.WrapError(domain.ErrCodeStorage, "decode schedule", err)
	}
	return &schedule, nil
}
