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

func progressVals(p model.Progress) []any {
	return []any{p.ID, p.UserID, p.ItemType, p.RoadmapID, p.MaterialID, p.IsCompleted, p.CompletedAt, p.CreatedAt, p.UpdatedAt}
}

func TestGetRoadmapProgressMap(t *testing.T) {
	db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
		require.Contains(t, sql, "item_type = 'roadmap'")
		require.Equal(t, []any{1}, args)
		return &fakeRows{data: [][]any{{10, true}, {11, false}}}, nil
	}}
	m, err := GetRoadmapProgressMap(context.Background(), db, 1)
	require.NoError(t, err)
	require.Equal(t, map[int]bool{10: true, 11: false}, m)
}

func TestUpsertProgress(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("complete material", func(t *testing.T) {
		want := model.Progress{ID: 1, UserID: 2, ItemType: model.ItemTypeMaterial, MaterialID: intPtr(3), IsCompleted: true, CompletedAt: &now, CreatedAt: now, UpdatedAt: now}
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "ON CONFLICT (user_id, material_id)")
			require.Contains(t, sql, "COALESCE(user_progress.completed_at, EXCLUDED.completed_at)")
			require.Equal(t, 2, args[0])
			require.Equal(t, "material", args[1])
			require.Equal(t, 3, args[2])
			require.Equal(t, true, args[3])
			require.Equal(t, &now, args[4])
			return &fakeRow{vals: progressVals(want)}
		}}
		p, err := UpsertProgress(ctx, db, 2, model.ItemTypeMaterial, 3, true, now)
		require.NoError(t, err)
		require.Equal(t, want, *p)
	})

	t.Run("uncomplete roadmap clears completed_at", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "ON CONFLICT (user_id, roadmap_id)")
			require.Nil(t, args[4])
			return &fakeRow{vals: progressVals(model.Progress{ID: 1, ItemType: model.ItemTypeRoadmap, RoadmapID: intPtr(4)})}
		}}
		p, err := UpsertProgress(ctx, db, 2, model.ItemTypeRoadmap, 4, false, now)
		require.NoError(t, err)
		require.Nil(t, p.CompletedAt)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := UpsertProgress(ctx, &database.FakeDB{}, 2, model.ItemType("course"), 4, true, now)
		require.Error(t, err)
	})

	t.Run("missing item", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{err: &pgconn.PgError{Code: "23503"}}
		}}
		_, err := UpsertProgress(ctx, db, 2, model.ItemTypeRoadmap, 404, true, now)
		require.ErrorIs(t, err, ErrForeignKey)
	})
}

func TestListProgress(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	row := model.Progress{ID: 1, UserID: 2, ItemType: model.ItemTypeRoadmap, RoadmapID: intPtr(4), IsCompleted: true, CompletedAt: &now, CreatedAt: now, UpdatedAt: now}

	t.Run("with category and type", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.Contains(t, sql, "p.item_type = $2")
			require.Contains(t, sql, "r.category = $3")
			require.Equal(t, []any{2, "roadmap", "backend"}, args)
			return &fakeRows{data: [][]any{append(progressVals(row), "Go", "backend")}}, nil
		}}
		list, err := ListProgress(ctx, db, 2, model.CategoryBackend, model.ItemTypeRoadmap)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Go", list[0].ItemName)
		require.Equal(t, "backend", list[0].Category)
		require.Equal(t, row, list[0].Progress)
	})

	t.Run("material type ignores category", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.NotContains(t, sql, "r.category =")
			require.Equal(t, []any{2, "material"}, args)
			return &fakeRows{}, nil
		}}
		list, err := ListProgress(ctx, db, 2, model.CategoryBackend, model.ItemTypeMaterial)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("query error", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("boom")
		}}
		_, err := ListProgress(ctx, db, 2, "", "")
		require.ErrorContains(t, err, "ListProgress")
	})
}

func TestCountProgress(t *testing.T) {
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Equal(t, []any{2, "frontend"}, args)
		return &fakeRow{vals: []any{10, 3, 20, 5}}
	}}
	c, err := CountProgress(context.Background(), db, 2, model.CategoryFrontend)
	require.NoError(t, err)
	require.Equal(t, ProgressCounts{RoadmapTotal: 10, RoadmapCompleted: 3, MaterialTotal: 20, MaterialCompleted: 5}, *c)
}
