package repository

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"loan-manager/domain"
)

const (
	redisSequenceKey = "loans:seq"
	redisIndexKey    = "loans:index"
	redisLoanPrefix  = "loan:"
)

// RedisLoanStore keeps each loan as a JSON string under loan:<id>. A sorted
// set scored by id indexes the stored loans; INCR on loans:seq hands out ids.
type RedisLoanStore struct {
	client *redis.Client
}

func NewRedisLoanStore(addr, password string, db int) *RedisLoanStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisLoanStore{client: rdb}
}

func loanKey(id int64) string {
	return redisLoanPrefix + strconv.FormatInt(id, 10)
}

func (r *RedisLoanStore) NextID(ctx context.Context) (int64, error) {
	id, err := r.client.Incr(ctx, redisSequenceKey).Result()
	if err != nil {
		return 0, errors.Wrap(err, "redis: increment loan sequence")
	}
	return id, nil
}

func (r *RedisLoanStore) Insert(ctx context.Context, loan domain.Loan) error {
	payload, err := json.Marshal(loan)
	if err != nil {
		return errors.Wrap(err, "redis: encode loan")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, loanKey(loan.ID), payload, 0)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(loan.ID), Member: loan.ID})
		return nil
	})
	return errors.Wrap(err, "redis: insert loan")
}

func (r *RedisLoanStore) FindAll(ctx context.Context) ([]domain.Loan, error) {
	return r.Find(ctx, domain.LoanFilter{})
}

func (r *RedisLoanStore) FindByID(ctx context.Context, id int64) (domain.Loan, error) {
	val, err := r.client.Get(ctx, loanKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Loan{}, domain.ErrLoanNotFound
	}
	if err != nil {
		return domain.Loan{}, errors.Wrap(err, "redis: get loan")
	}

	var loan domain.Loan
	if err := json.Unmarshal([]byte(val), &loan); err != nil {
		return domain.Loan{}, errors.Wrapf(err, "redis: decode loan %d", id)
	}
	return loan, nil
}

// Find loads every indexed loan and applies the filter in process. Redis has
// no secondary index over loan fields.
func (r *RedisLoanStore) Find(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	ids, err := r.client.ZRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "redis: list loan ids")
	}
	if len(ids) == 0 {
		return []domain.Loan{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisLoanPrefix + id
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "redis: get loans")
	}
	return decodeLoans(vals, filter)
}

// decodeLoans turns MGET replies into loans. Nil replies belong to loans
// deleted between ZRANGE and MGET and are skipped.
func decodeLoans(vals []interface{}, filter domain.LoanFilter) ([]domain.Loan, error) {
	loans := make([]domain.Loan, 0, len(vals))
	for _, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var loan domain.Loan
		if err := json.Unmarshal([]byte(raw), &loan); err != nil {
			return nil, errors.Wrap(err, "redis: decode loan")
		}
		if filter.Matches(loan) {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (r *RedisLoanStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, loanKey(id))
		pipe.ZRem(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "redis: delete loan")
	}
	return del.Val(), nil
}

func (r *RedisLoanStore) Ping(ctx context.Context) error {
	return errors.Wrap(r.client.Ping(ctx).Err(), "redis: ping")
}

func (r *RedisLoanStore) Close(ctx context.Context) error {
	return r.client.Close()
}
