package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"stacknori/internal/database"
	"stacknori/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func roadmapVals(r model.Roadmap) []any {
	return []any{r.ID, r.Category, r.Name, r.Level, r.Description, r.ParentID, r.CreatedAt, r.UpdatedAt}
}

func TestRoadmapStore(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	root := model.Roadmap{ID: 1, Category: model.CategoryBackend, Name: "Backend", Level: 1, CreatedAt: now, UpdatedAt: now}
	child := model.Roadmap{ID: 2, Category: model.CategoryBackend, Name: "Go", Level: 2, Description: strPtr("lang"), ParentID: intPtr(1), CreatedAt: now, UpdatedAt: now}

	t.Run("ListRoadmaps", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.Contains(t, sql, "ORDER BY level, id")
			require.Empty(t, args)
			return &fakeRows{data: [][]any{roadmapVals(root), roadmapVals(child)}}, nil
		}}
		list, err := ListRoadmaps(ctx, db)
		require.NoError(t, err)
		require.Equal(t, []model.Roadmap{root, child}, list)
	})

	t.Run("ListRoadmaps errors", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("boom")
		}}
		_, err := ListRoadmaps(ctx, db)
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{data: [][]any{roadmapVals(root)}, scanErr: errors.New("scan")}, nil
		}
		_, err = ListRoadmaps(ctx, db)
		require.ErrorContains(t, err, "scan")

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{err: errors.New("iter")}, nil
		}
		_, err = ListRoadmaps(ctx, db)
		require.ErrorContains(t, err, "iter")
	})

	t.Run("GetRoadmapByID", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, []any{2}, args)
			return &fakeRow{vals: roadmapVals(child)}
		}}
		r, err := GetRoadmapByID(ctx, db, 2)
		require.NoError(t, err)
		require.Equal(t, child, *r)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &fakeRow{err: pgx.ErrNoRows} }
		_, err = GetRoadmapByID(ctx, db, 9)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpsertRoadmap", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "ON CONFLICT (category, name, (COALESCE(parent_id, 0)))")
			require.Equal(t, "backend", args[0])
			require.Equal(t, "Go", args[1])
			require.Equal(t, 2, args[2])
			return &fakeRow{vals: []any{5, now, now}}
		}}
		in := &model.Roadmap{Category: model.CategoryBackend, Name: "Go", Level: 2, ParentID: intPtr(1)}
		r, err := UpsertRoadmap(ctx, db, in)
		require.NoError(t, err)
		require.Equal(t, 5, r.ID)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{err: &pgconn.PgError{Code: "23503"}}
		}
		_, err = UpsertRoadmap(ctx, db, in)
		require.ErrorIs(t, err, ErrForeignKey)
	})
}
