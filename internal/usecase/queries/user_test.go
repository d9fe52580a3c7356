//go:build unit

package queries_test

import (
	"context"
	"testing"

	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserReadStore struct {
	users map[uuid.UUID]*user.User
}

func (s *fakeUserReadStore) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored account as a view", func(t *testing.T) {
		b := builder.NewUserBuilder()
		stored, err := b.BuildDomain()
		require.NoError(t, err)

		q := queries.NewUserQueries(&fakeUserReadStore{users: map[uuid.UUID]*user.User{b.ID: stored}})

		actual, err := q.GetCurrentUser(ctx, b.ID)
		require.NoError(t, err)

		if diff := cmp.Diff(b.BuildReadModel(), actual); diff != "" {
			t.Errorf("user view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown id reads as not found", func(t *testing.T) {
		q := queries.NewUserQueries(&fakeUserReadStore{users: map[uuid.UUID]*user.User{}})

		_, err := q.GetCurrentUser(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("deactivated account reads as not found", func(t *testing.T) {
		b := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.IsActive = false })
		stored, err := b.BuildDomain()
		require.NoError(t, err)

		q := queries.NewUserQueries(&fakeUserReadStore{users: map[uuid.UUID]*user.User{b.ID: stored}})

		_, err = q.GetCurrentUser(ctx, b.ID)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
