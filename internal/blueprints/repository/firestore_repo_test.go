package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
)

// The dashboard treats a permission-denied store as an empty one: listAll
// returns no results and Get reports not-found. These helpers are what the
// call sites key off.
func TestIsPermissionDenied(t *testing.T) {
	assert.True(t, isPermissionDenied(status.Error(codes.PermissionDenied, "missing or insufficient permissions")))

	assert.False(t, isPermissionDenied(status.Error(codes.NotFound, "no such document")))
	assert.False(t, isPermissionDenied(status.Error(codes.Unavailable, "store down")))
	assert.False(t, isPermissionDenied(errors.New("plain error")))
	assert.False(t, isPermissionDenied(nil))
}

func TestAdoptID(t *testing.T) {
	t.Run("placeholder is replaced", func(t *testing.T) {
		b := &domain.Blueprint{ID: "new-1726000000000"}
		adoptID(b)
		assert.False(t, domain.IsPlaceholderID(b.ID))
		assert.NotEmpty(t, b.ID)
	})

	t.Run("empty id is minted", func(t *testing.T) {
		b := &domain.Blueprint{}
		adoptID(b)
		assert.NotEmpty(t, b.ID)
	})

	t.Run("real id is untouched", func(t *testing.T) {
		b := &domain.Blueprint{ID: "b7a9c2"}
		adoptID(b)
		assert.Equal(t, "b7a9c2", b.ID)
	})
}
