// Package redisstore keeps vote buckets and visitor ballots in Redis
// hashes: one hash per bucket and one hash per visitor.
package redisstore

import (
	"SchoolPick/internal/ballot"
	"context"
	"errors"
	"fmt"
	"github.com/go-redis/redis/v8"
	"strconv"
)

type Store struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// NewClient builds a store on a fresh client. go-redis dials on first use.
func NewClient(addr, password string, db int, prefix string) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return New(client, prefix)
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) votesKey(bucket string) string {
	return s.prefix + "votes:" + bucket
}

func (s *Store) ballotKey(visitor string) string {
	return s.prefix + "ballot:" + visitor
}

func (s *Store) Increment(ctx context.Context, bucket, school string, delta int64) error {
	if err := s.client.HIncrBy(ctx, s.votesKey(bucket), school, delta).Err(); err != nil {
		return fmt.Errorf("redis hincrby %s: %w", bucket, err)
	}
	return nil
}

// IncrementPair wraps both increments in MULTI/EXEC.
func (s *Store) IncrementPair(ctx context.Context, first, second, school string, delta int64) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, s.votesKey(first), school, delta)
		pipe.HIncrBy(ctx, s.votesKey(second), school, delta)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis multi %s+%s: %w", first, second, err)
	}
	return nil
}

func (s *Store) Read(ctx context.Context, bucket string) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, s.votesKey(bucket)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", bucket, err)
	}
	counts := make(map[string]int64, len(raw))
	for school, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bucket %s school %s: %w", bucket, school, err)
		}
		counts[school] = n
	}
	return counts, nil
}

func (s *Store) Scope(visitorID string) ballot.Storage {
	return &scope{client: s.client, key: s.ballotKey(visitorID)}
}

type scope struct {
	client *redis.Client
	key    string
}

func (s *scope) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s: %w", key, err)
	}
	return value, true, nil
}

func (s *scope) Set(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

func (s *scope) Remove(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.key, key).Err(); err != nil {
		return fmt.Errorf("redis hdel %s: %w", key, err)
	}
	return nil
}
