package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/employee-directory/internal/db/dbtest"
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/repository"
	"github.com/employee-directory/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLevelCounts(t *testing.T) {
	tests := []struct {
		rows int
		want [domain.MaxPositionLevel]int
	}{
		{0, [domain.MaxPositionLevel]int{0, 0, 0, 0, 0}},
		{3, [domain.MaxPositionLevel]int{1, 1, 1, 0, 0}},
		{100, [domain.MaxPositionLevel]int{1, 1, 1, 10, 87}},
		{50000, [domain.MaxPositionLevel]int{5, 50, 500, 5000, 44445}},
	}

	for _, tt := range tests {
		got := seed.LevelCounts(tt.rows)
		assert.Equal(t, tt.want, got, "rows=%d", tt.rows)

		total := 0
		for _, n := range got {
			total += n
		}
		assert.Equal(t, tt.rows, total)
	}
}

func newGenerator(t *testing.T, language string) (*seed.Generator, *gorm.DB) {
	t.Helper()
	gdb := dbtest.SQLite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return seed.NewGenerator(repository.NewStore(gdb), language, 42, logger), gdb
}

func count(t *testing.T, gdb *gorm.DB, sql string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Raw(sql).Scan(&n).Error)
	return n
}

func TestSeed_HierarchyHoldsByConstruction(t *testing.T) {
	g, gdb := newGenerator(t, "ru")

	created, err := g.Seed(context.Background(), 300, true)
	require.NoError(t, err)
	assert.Equal(t, 300, created)

	assert.Equal(t, int64(300), count(t, gdb, "SELECT COUNT(*) FROM employees"))
	assert.Equal(t, int64(len(domain.DefaultPositions)), count(t, gdb, "SELECT COUNT(*) FROM positions"))

	assert.Zero(t, count(t, gdb, `
		SELECT COUNT(*) FROM employees e JOIN positions p ON p.id = e.position_id
		WHERE (p.level = 1 AND e.manager_id IS NOT NULL) OR (p.level > 1 AND e.manager_id IS NULL)`))

	assert.Zero(t, count(t, gdb, `
		SELECT COUNT(*) FROM employees e
		JOIN positions p ON p.id = e.position_id
		JOIN employees m ON m.id = e.manager_id
		JOIN positions mp ON mp.id = m.position_id
		WHERE mp.level <> p.level - 1`))

	assert.Zero(t, count(t, gdb, "SELECT COUNT(*) FROM employees WHERE salary < 30000 OR salary > 300000"))
	assert.Zero(t, count(t, gdb, "SELECT COUNT(*) FROM employees WHERE patronymic IS NULL"))
}

func TestSeed_AppendsWithoutReset(t *testing.T) {
	g, gdb := newGenerator(t, "en")
	ctx := context.Background()

	_, err := g.Seed(ctx, 20, true)
	require.NoError(t, err)
	_, err = g.Seed(ctx, 20, false)
	require.NoError(t, err)

	assert.Equal(t, int64(40), count(t, gdb, "SELECT COUNT(*) FROM employees"))
	assert.Equal(t, int64(2), count(t, gdb, `
		SELECT COUNT(*) FROM employees e JOIN positions p ON p.id = e.position_id WHERE p.level = 1`))
	// у английских имён нет отчеств
	assert.Equal(t, int64(40), count(t, gdb, "SELECT COUNT(*) FROM employees WHERE patronymic IS NULL"))
}

func TestSeed_NegativeRows(t *testing.T) {
	g, _ := newGenerator(t, "en")

	_, err := g.Seed(context.Background(), -1, false)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReset(t *testing.T) {
	g, gdb := newGenerator(t, "en")
	ctx := context.Background()

	_, err := g.Seed(ctx, 50, true)
	require.NoError(t, err)

	require.NoError(t, g.Reset(ctx))
	assert.Zero(t, count(t, gdb, "SELECT COUNT(*) FROM employees"))
	assert.Equal(t, int64(len(domain.DefaultPositions)), count(t, gdb, "SELECT COUNT(*) FROM positions"))
}
