package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/migrate"
)

const blueprintCollection = "blueprints"

// FirestoreRepo is the primary blueprint store, one document per blueprint
// in the "blueprints" collection keyed by blueprint id.
type FirestoreRepo struct {
	client *firestore.Client
}

func NewFirestoreRepo(client *firestore.Client) *FirestoreRepo {
	return &FirestoreRepo{client: client}
}

func (r *FirestoreRepo) col() *firestore.CollectionRef {
	return r.client.Collection(blueprintCollection)
}

// listAll fetches every document for the user and decodes through the
// migrator. Tombstone filtering and ordering happen in memory: querying on
// deletedAt would miss legacy documents without the field and force a
// composite index for the updatedAt ordering.
func (r *FirestoreRepo) listAll(ctx context.Context, userID string) ([]domain.Blueprint, error) {
	iter := r.col().Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	var out []domain.Blueprint
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if isPermissionDenied(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("list blueprints: %w", err)
		}

		b, err := decodeDoc(doc)
		if err != nil {
			// A single undecodable legacy document must not take down the
			// dashboard; skip it.
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *FirestoreRepo) List(ctx context.Context, userID string) ([]domain.Blueprint, error) {
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

func (r *FirestoreRepo) ListDeleted(ctx context.Context, userID string) ([]domain.Blueprint, error) {
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

func (r *FirestoreRepo) Get(ctx context.Context, userID, id string) (*domain.Blueprint, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound || isPermissionDenied(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get blueprint: %w", err)
	}

	b, err := decodeDoc(doc)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (r *FirestoreRepo) Save(ctx context.Context, b *domain.Blueprint) (*domain.Blueprint, error) {
	saved := *b
	adoptID(&saved)

	now := time.Now().UTC()
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now
	saved.SchemaVersion = domain.SchemaVersion

	if _, err := r.col().Doc(saved.ID).Set(ctx, &saved); err != nil {
		return nil, fmt.Errorf("save blueprint: %w", err)
	}
	return &saved, nil
}

func (r *FirestoreRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	b, err := r.Get(ctx, userID, id)
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
	_, err = r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return false, fmt.Errorf("delete blueprint: %w", err)
	}
	return true, nil
}

func (r *FirestoreRepo) Restore(ctx context.Context, userID, id string) (bool, error) {
	b, err := r.Get(ctx, userID, id)
	if err == domain.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !b.IsDeleted() {
		return false, nil
	}

	_, err = r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: firestore.Delete},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return false, fmt.Errorf("restore blueprint: %w", err)
	}
	return true, nil
}

func (r *FirestoreRepo) PurgeExpiredDeleted(ctx context.Context, userID string, retention time.Duration) (int, error) {
	deleted, err := r.ListDeleted(ctx, userID)
	if err != nil {
		return 0, err
	}
	return r.purge(ctx, deleted, retention)
}

func (r *FirestoreRepo) PurgeAllExpired(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-retention)
	iter := r.col().Where("deletedAt", "<", cutoff).Documents(ctx)
	defer iter.Stop()

	purged := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return purged, fmt.Errorf("purge sweep: %w", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return purged, fmt.Errorf("purge %s: %w", doc.Ref.ID, err)
		}
		purged++
	}
	return purged, nil
}

func (r *FirestoreRepo) CleanupEmpty(ctx context.Context, userID string) (int, error) {
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
		if _, err := r.col().Doc(b.ID).Delete(ctx); err != nil {
			return removed, fmt.Errorf("cleanup %s: %w", b.ID, err)
		}
		removed++
	}
	return removed, nil
}

func (r *FirestoreRepo) purge(ctx context.Context, deleted []domain.Blueprint, retention time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-retention)
	purged := 0
	for _, b := range deleted {
		if b.DeletedAt == nil || !b.DeletedAt.Before(cutoff) {
			continue
		}
		if _, err := r.col().Doc(b.ID).Delete(ctx); err != nil {
			return purged, fmt.Errorf("purge %s: %w", b.ID, err)
		}
		purged++
	}
	return purged, nil
}

func decodeDoc(doc *firestore.DocumentSnapshot) (*domain.Blueprint, error) {
	data := doc.Data()
	if migrate.NeedsMigration(data) {
		b, err := migrate.Document(data)
		if err != nil {
			return nil, err
		}
		b.ID = doc.Ref.ID
		return b, nil
	}

	var b domain.Blueprint
	if err := doc.DataTo(&b); err != nil {
		return nil, fmt.Errorf("decode blueprint %s: %w", doc.Ref.ID, err)
	}
	b.ID = doc.Ref.ID
	return &b, nil
}

// adoptID replaces a client placeholder ("new-<ts>") or empty id with a
// minted one. The placeholder is never written as a storage key.
func adoptID(b *domain.Blueprint) {
	if b.ID == "" || domain.IsPlaceholderID(b.ID) {
		b.ID = uuid.NewString()
	}
}

func isPermissionDenied(err error) bool {
	return status.Code(err) == codes.PermissionDenied
}
