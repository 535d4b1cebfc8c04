package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Scheduler struct {
	rdb *redis.Client
	key string
	// delayDivisor shrinks delays for dev environments; 1 means real delays.
	delayDivisor int64
}

func NewScheduler(rdb *redis.Client, key string, delayDivisor int64) *Scheduler {
	if delayDivisor < 1 {
		delayDivisor = 1
	}
	return &Scheduler{rdb: rdb, key: key, delayDivisor: delayDivisor}
}

func (s *Scheduler) Enqueue(ctx context.Context, job Job, delay time.Duration) error {
	job.RunAt = time.Now().Add(delay / time.Duration(s.delayDivisor))

	member, err := json.Marshal(job)
	if err != nil {
		return err
	}

	err = s.rdb.ZAdd(ctx, s.key, redis.Z{
		Score:  float64(job.RunAt.Unix()),
		Member: member,
	}).Err()
	if err != nil {
		return fmt.Errorf("enqueue %s job: %w", job.Kind, err)
	}

	return nil
}

// SchedulePlan enqueues the full notification sequence for a plan tier.
func (s *Scheduler) SchedulePlan(ctx context.Context, plan string, meta ArticleMeta) error {
	for _, spec := range PlanSchedule(plan) {
		job, err := NewJob(spec.Kind, meta)
		if err != nil {
			return err
		}
		if err := s.Enqueue(ctx, job, spec.Delay); err != nil {
			return err
		}
	}
	return nil
}

// ClaimDue returns up to limit jobs whose fire time has passed. Removal from
// the sorted set is the claim: a job is returned only by the worker whose
// ZRem removed it, so concurrent workers never process the same job twice.
func (s *Scheduler) ClaimDue(ctx context.Context, now time.Time, limit int64) ([]Job, error) {
	members, err := s.rdb.ZRangeByScore(ctx, s.key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("range due jobs: %w", err)
	}

	var jobs []Job
	for _, member := range members {
		removed, err := s.rdb.ZRem(ctx, s.key, member).Result()
		if err != nil {
			return jobs, fmt.Errorf("claim job: %w", err)
		}
		if removed == 0 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(member), &job); err != nil {
			return jobs, fmt.Errorf("decode claimed job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (s *Scheduler) PendingCount(ctx context.Context) (int64, error) {
	return s.rdb.ZCard(ctx, s.key).Result()
}
