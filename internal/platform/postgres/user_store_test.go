package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserStoreWithMock(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresUserStore(db, bcrypt.MinCost, nil), mock
}

func TestNewPostgresUserStore_BcryptCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"valid cost", 12, 12},
		{"zero uses default", 0, bcrypt.DefaultCost},
		{"too low uses default", bcrypt.MinCost - 1, bcrypt.DefaultCost},
		{"too high uses default", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPostgresUserStore(nil, tt.cost, nil)
			assert.Equal(t, tt.want, s.bcryptCost)
		})
	}
}

func TestPostgresUserStore_Create(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO users (id, username, hashed_password, created_at, updated_at)")

	t.Run("hashes password and inserts", func(t *testing.T) {
		s, mock := newUserStoreWithMock(t)
		user, err := domain.NewUser("alice1", "Abcdef1!")
		require.NoError(t, err)

		mock.ExpectExec(insert).
			WithArgs(user.ID, "alice1", sqlmock.AnyArg(), user.CreatedAt, user.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), user))

		assert.Empty(t, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("Abcdef1!")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same password gets different salts", func(t *testing.T) {
		s, mock := newUserStoreWithMock(t)
		first, _ := domain.NewUser("alice1", "Abcdef1!")
		second, _ := domain.NewUser("bobby2", "Abcdef1!")

		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), first))
		require.NoError(t, s.Create(context.Background(), second))
		assert.NotEqual(t, first.HashedPassword, second.HashedPassword)
	})

	t.Run("duplicate username", func(t *testing.T) {
		s, mock := newUserStoreWithMock(t)
		user, _ := domain.NewUser("alice1", "Abcdef1!")

		mock.ExpectExec(insert).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_username_key"})

		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("other database error", func(t *testing.T) {
		s, mock := newUserStoreWithMock(t)
		user, _ := domain.NewUser("alice1", "Abcdef1!")
		dbErr := errors.New("connection refused")

		mock.ExpectExec(insert).WillReturnError(dbErr)

		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, dbErr)
		assert.False(t, store.IsDuplicateError(err))
	})

	t.Run("invalid user is rejected before the query", func(t *testing.T) {
		s, mock := newUserStoreWithMock(t)
		user := &domain.User{ID: uuid.New(), Username: "ab", Password: "Abcdef1!"}

		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_GetByUsername(t *testing.T) {
	query := regexp.QuoteMeta("FROM users") + `\s+WHERE username = \$1`
	columns := []string{"id", "username", "hashed_password", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		s, mock := newUserStoreWithMock(t)
		id := uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery(query).
			WithArgs("alice1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "alice1", "$2a$04$hash", now, now))

		user, err := s.GetByUsername(context.Background(), "alice1")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "alice1", user.Username)
		assert.Equal(t, "$2a$04$hash", user.HashedPassword)
		assert.Empty(t, user.Password)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newUserStoreWithMock(t)
		mock.ExpectQuery(query).WithArgs("ghost").WillReturnRows(sqlmock.NewRows(columns))

		user, err := s.GetByUsername(context.Background(), "ghost")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_GetByID(t *testing.T) {
	query := regexp.QuoteMeta("FROM users") + `\s+WHERE id = \$1`
	id := uuid.New()

	s, mock := newUserStoreWithMock(t)
	mock.ExpectQuery(query).WithArgs(id).WillReturnError(errors.New("timeout"))

	user, err := s.GetByID(context.Background(), id)
	assert.Nil(t, user)
	require.Error(t, err)
	assert.False(t, store.IsNotFoundError(err))
}
