// Package seed заполняет справочник синтетическими сотрудниками так,
// что инвариант иерархии выполняется по построению.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	batchSize = 1000

	minSalaryCents = 30000 * 100
	maxSalaryCents = 300000 * 100
)

var (
	hireDateFrom = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	hireDateTo   = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Generator создаёт сотрудников и раскладывает их по уровням иерархии
type Generator struct {
	store  repository.Store
	names  nameSet
	rnd    *rand.Rand
	logger *slog.Logger
}

// NewGenerator создаёт генератор; seed делает результат воспроизводимым
func NewGenerator(store repository.Store, language string, seed uint64, logger *slog.Logger) *Generator {
	return &Generator{
		store:  store,
		names:  namesFor(language),
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger: logger.With(slog.String("component", "seed")),
	}
}

// LevelCounts распределяет rows сотрудников по уровням 1..5: уровню L < 5
// достаётся доля 0.1^(5-L), но не меньше одного сотрудника, пока они остаются;
// остаток уходит на последний уровень
func LevelCounts(rows int) [domain.MaxPositionLevel]int {
	var counts [domain.MaxPositionLevel]int
	remaining := rows

	for level := domain.MinPositionLevel; level < domain.MaxPositionLevel; level++ {
		n := int(math.Pow(0.1, float64(domain.MaxPositionLevel-level)) * float64(rows))
		if n == 0 {
			n = 1
		}
		n = min(n, remaining)
		counts[level-1] = n
		remaining -= n
	}
	counts[domain.MaxPositionLevel-1] = remaining
	return counts
}

// Reset удаляет всех сотрудников и должности и создаёт стандартные должности
func (g *Generator) Reset(ctx context.Context) error {
	return g.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Employees().DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete employees: %w", err)
		}
		if err := tx.Positions().DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete positions: %w", err)
		}
		for _, p := range domain.DefaultPositions {
			pos := p
			if err := tx.Positions().Create(ctx, &pos); err != nil {
				return fmt.Errorf("create position %s: %w", pos.Title, err)
			}
		}
		return nil
	})
}

// Seed добавляет rows сотрудников; при reset или без должностей сначала
// очищает справочник.
// Уровни заполняются сверху вниз, каждому сотруднику ниже первого уровня
// назначается случайный руководитель с уровня выше.
func (g *Generator) Seed(ctx context.Context, rows int, reset bool) (int, error) {
	if rows < 0 {
		return 0, domain.NewValidationError("rows", "", "must not be negative")
	}
	if !reset {
		// в пустом справочнике сотрудникам не из чего выбрать должность
		positions, err := g.store.Positions().List(ctx)
		if err != nil {
			return 0, err
		}
		reset = len(positions) == 0
	}
	if reset {
		if err := g.Reset(ctx); err != nil {
			return 0, err
		}
	}

	counts := LevelCounts(rows)
	created := 0

	for level := domain.MinPositionLevel; level <= domain.MaxPositionLevel; level++ {
		count := counts[level-1]

		err := g.store.Transaction(ctx, func(tx repository.Store) error {
			positionIDs, err := tx.Positions().IDsByLevel(ctx, level)
			if err != nil {
				return err
			}
			if len(positionIDs) == 0 || count == 0 {
				return nil
			}

			var managerIDs []int64
			if level != domain.RootPositionLevel {
				managerIDs, err = tx.Employees().IDsByLevel(ctx, level-1)
				if err != nil {
					return err
				}
				if len(managerIDs) == 0 {
					g.logger.WarnContext(ctx, "no managers for level, skipping", slog.Int("level", level))
					return nil
				}
			}

			batch := make([]domain.Employee, 0, count)
			for range count {
				var managerID *int64
				if len(managerIDs) > 0 {
					id := managerIDs[g.rnd.IntN(len(managerIDs))]
					managerID = &id
				}
				batch = append(batch, g.employee(positionIDs[g.rnd.IntN(len(positionIDs))], managerID))
			}

			if err := tx.Employees().CreateBatch(ctx, batch, batchSize); err != nil {
				return err
			}
			created += len(batch)
			return nil
		})
		if err != nil {
			return created, fmt.Errorf("seed level %d: %w", level, err)
		}
	}

	g.logger.InfoContext(ctx, "seed completed", slog.Int("employees", created))
	return created, nil
}

func (g *Generator) employee(positionID int64, managerID *int64) domain.Employee {
	male := g.rnd.IntN(2) == 0
	pick := func(list []string) string {
		return list[g.rnd.IntN(len(list))]
	}

	emp := domain.Employee{
		PositionID: positionID,
		ManagerID:  managerID,
		HireDate:   g.hireDate(),
		Salary:     decimal.New(minSalaryCents+g.rnd.Int64N(maxSalaryCents-minSalaryCents+1), -2),
	}

	if male {
		emp.FirstName, emp.LastName = pick(g.names.maleFirst), pick(g.names.maleLast)
		if len(g.names.malePatronymic) > 0 {
			p := pick(g.names.malePatronymic)
			emp.Patronymic = &p
		}
	} else {
		emp.FirstName, emp.LastName = pick(g.names.femaleFirst), pick(g.names.femaleLast)
		if len(g.names.femalePatronymic) > 0 {
			p := pick(g.names.femalePatronymic)
			emp.Patronymic = &p
		}
	}
	return emp
}

func (g *Generator) hireDate() time.Time {
	days := int(hireDateTo.Sub(hireDateFrom).Hours() / 24)
	return hireDateFrom.AddDate(0, 0, g.rnd.IntN(days+1))
}
