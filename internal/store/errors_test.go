package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestWrapErr(t *testing.T) {
	require.NoError(t, wrapErr("op", nil))

	err := wrapErr("op", pgx.ErrNoRows)
	require.ErrorIs(t, err, ErrNotFound)

	err = wrapErr("op", &pgconn.PgError{Code: "23505", ConstraintName: "ix_users_email"})
	require.ErrorIs(t, err, ErrDuplicate)
	require.Contains(t, err.Error(), "ix_users_email")

	err = wrapErr("op", &pgconn.PgError{Code: "23503"})
	require.ErrorIs(t, err, ErrForeignKey)

	base := errors.New("conn reset")
	err = wrapErr("op", base)
	require.ErrorIs(t, err, base)
	require.False(t, errors.Is(err, ErrNotFound))
}
