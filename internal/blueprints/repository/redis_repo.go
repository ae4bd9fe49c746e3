package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/migrate"
)

const (
	bpKeyPrefix      = "alf:bp:"   // blueprint JSON: alf:bp:{user_id}:{id}
	userIndexPrefix  = "alf:user:" // set of blueprint ids per user: alf:user:{user_id}
	userIndexPattern = userIndexPrefix + "*"
)

// RedisRepo is the cache-tier blueprint store, the server-side counterpart
// of the SPA's namespaced local-storage fallback. Each blueprint is one JSON
// value plus a per-user index set; unlike the local-storage format the JSON
// carries an explicit schemaVersion so older payloads go through the
// migrator at load.
type RedisRepo struct {
	client *redis.Client
}

func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{client: client}
}

func (r *RedisRepo) bpKey(userID, id string) string {
	return bpKeyPrefix + userID + ":" + id
}

func (r *RedisRepo) indexKey(userID string) string {
	return userIndexPrefix + userID
}

func (r *RedisRepo) List(ctx context.Context, userID string) ([]domain.Blueprint, error) {
	all, err := r.listAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Blueprint, 0, len(all))
	for _, b := range all {
		if !b.IsDeleted() {
			out = append(out, b)
		}
	}
	sortByUpdatedDesc(out)
	return out, nil
}

func (r *RedisRepo) ListDeleted(ctx context.Context, userID string) ([]domain.Blueprint, error) {
	all, err := r.listAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Blueprint, 0)
	for _, b := range all {
		if b.IsDeleted() {
			out = append(out, b)
		}
	}
	sortByUpdatedDesc(out)
	return out, nil
}

func (r *RedisRepo) listAll(ctx context.Context, userID string) ([]domain.Blueprint, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list index: %w", err)
	}

	out := make([]domain.Blueprint, 0, len(ids))
	for _, id := range ids {
		b, err := r.load(ctx, userID, id)
		if err == domain.ErrNotFound {
			// Dangling index entry; drop it opportunistically.
			r.client.SRem(ctx, r.indexKey(userID), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *RedisRepo) Get(ctx context.Context, userID, id string) (*domain.Blueprint, error) {
	return r.load(ctx, userID, id)
}

func (r *RedisRepo) load(ctx context.Context, userID, id string) (*domain.Blueprint, error) {
	data, err := r.client.Get(ctx, r.bpKey(userID, id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blueprint: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("decode blueprint %s: %w", id, err)
	}
	if migrate.NeedsMigration(raw) {
		b, err := migrate.Document(raw)
		if err != nil {
			return nil, err
		}
		b.ID = id
		b.UserID = userID
		return b, nil
	}

	var b domain.Blueprint
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, fmt.Errorf("decode blueprint %s: %w", id, err)
	}
	return &b, nil
}

func (r *RedisRepo) Save(ctx context.Context, b *domain.Blueprint) (*domain.Blueprint, error) {
	saved := *b
	adoptID(&saved)

	now := time.Now().UTC()
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now
	saved.SchemaVersion = domain.SchemaVersion

	data, err := json.Marshal(&saved)
	if err != nil {
		return nil, fmt.Errorf("marshal blueprint: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.bpKey(saved.UserID, saved.ID), data, 0)
	pipe.SAdd(ctx, r.indexKey(saved.UserID), saved.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("save blueprint: %w", err)
	}
	return &saved, nil
}

func (r *RedisRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	b, err := r.load(ctx, userID, id)
	if err == domain.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if b.IsDeleted() {
		return false, nil
	}

	now := time.Now().UTC()
	b.DeletedAt = &now
	b.UpdatedAt = now
	return true, r.write(ctx, b)
}

func (r *RedisRepo) Restore(ctx context.Context, userID, id string) (bool, error) {
	b, err := r.load(ctx, userID, id)
	if err == domain.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !b.IsDeleted() {
		return false, nil
	}

	b.DeletedAt = nil
	b.UpdatedAt = time.Now().UTC()
	return true, r.write(ctx, b)
}

func (r *RedisRepo) PurgeExpiredDeleted(ctx context.Context, userID string, retention time.Duration) (int, error) {
	deleted, err := r.ListDeleted(ctx, userID)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-retention)
	purged := 0
	for _, b := range deleted {
		if b.DeletedAt == nil || !b.DeletedAt.Before(cutoff) {
			continue
		}
		if err := r.remove(ctx, userID, b.ID); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

func (r *RedisRepo) PurgeAllExpired(ctx context.Context, retention time.Duration) (int, error) {
	purged := 0
	iter := r.client.Scan(ctx, 0, userIndexPattern, 100).Iterator()
	for iter.Next(ctx) {
		userID := iter.Val()[len(userIndexPrefix):]
		n, err := r.PurgeExpiredDeleted(ctx, userID, retention)
		if err != nil {
			return purged, err
		}
		purged += n
	}
	if err := iter.Err(); err != nil {
		return purged, fmt.Errorf("purge scan: %w", err)
	}
	return purged, nil
}

func (r *RedisRepo) CleanupEmpty(ctx context.Context, userID string) (int, error) {
	all, err := r.listAll(ctx, userID)
	if err != nil {
		return 0, err
	}

	removed := 0
	for i := range all {
		b := &all[i]
		if b.IsDeleted() || !b.IsEmpty() {
			continue
		}
		if err := r.remove(ctx, userID, b.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (r *RedisRepo) write(ctx context.Context, b *domain.Blueprint) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal blueprint: %w", err)
	}
	if err := r.client.Set(ctx, r.bpKey(b.UserID, b.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("write blueprint: %w", err)
	}
	return nil
}

func (r *RedisRepo) remove(ctx context.Context, userID, id string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.bpKey(userID, id))
	pipe.SRem(ctx, r.indexKey(userID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("remove blueprint %s: %w", id, err)
	}
	return nil
}
