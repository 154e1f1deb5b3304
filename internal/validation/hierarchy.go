// Package validation проверяет инвариант иерархии перед записью сотрудника.
// Проверка вызывается явно из транзакции записи.
package validation

import (
	"context"
	"errors"

	"github.com/employee-directory/internal/domain"
)

// Lookup - чтения, которые нужны проверке; реализация должна работать
// внутри той же транзакции, что и запись
type Lookup interface {
	GetPositionByID(ctx context.Context, id int64) (*domain.Position, error)
	// GetManagerForUpdate возвращает руководителя с загруженной должностью
	// и блокирует его строку до конца транзакции, если СУБД это умеет
	GetManagerForUpdate(ctx context.Context, id int64) (*domain.Employee, error)
	// MinSubordinateLevel - наименьший уровень среди прямых подчинённых
	MinSubordinateLevel(ctx context.Context, managerID int64) (level int, found bool, err error)
}

// Candidate - состояние сотрудника, которое собираются записать.
// ID == 0 означает создание нового сотрудника.
type Candidate struct {
	ID         int64
	PositionID int64
	ManagerID  *int64
}

// Validate проверяет правила по порядку:
//  1. должность существует;
//  2. сотрудник первого уровня не имеет руководителя;
//  3. сотрудник остальных уровней имеет руководителя;
//  4. руководитель существует и его уровень строго выше;
//  5. при обновлении уровень сотрудника остаётся выше уровня его подчинённых.
func Validate(ctx context.Context, lookup Lookup, c Candidate) (*domain.Position, error) {
	position, err := lookup.GetPositionByID(ctx, c.PositionID)
	if err != nil {
		if errors.Is(err, domain.ErrPositionNotFound) {
			return nil, domain.NewConstraintViolation(domain.RulePositionNotFound,
				"position %d does not exist", c.PositionID)
		}
		return nil, err
	}

	if position.IsRoot() {
		if c.ManagerID != nil {
			return nil, domain.NewConstraintViolation(domain.RuleRootHasManager,
				"%s (level %d) cannot have a manager", position.Title, position.Level)
		}
	} else {
		if c.ManagerID == nil {
			return nil, domain.NewConstraintViolation(domain.RuleManagerRequired,
				"%s (level %d) requires a manager", position.Title, position.Level)
		}
		if err := checkManager(ctx, lookup, c, position); err != nil {
			return nil, err
		}
	}

	if c.ID != 0 {
		level, found, err := lookup.MinSubordinateLevel(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if found && level <= position.Level {
			return nil, domain.NewConstraintViolation(domain.RuleSubordinateLevel,
				"employee %d manages a level %d subordinate and cannot move to level %d",
				c.ID, level, position.Level)
		}
	}

	return position, nil
}

func checkManager(ctx context.Context, lookup Lookup, c Candidate, position *domain.Position) error {
	managerID := *c.ManagerID
	if c.ID != 0 && managerID == c.ID {
		return domain.NewConstraintViolation(domain.RuleSelfManager,
			"employee %d cannot manage themselves", c.ID)
	}

	manager, err := lookup.GetManagerForUpdate(ctx, managerID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return domain.NewConstraintViolation(domain.RuleManagerNotFound,
				"manager %d does not exist", managerID)
		}
		return err
	}
	if manager.Position == nil {
		return domain.NewConstraintViolation(domain.RulePositionNotFound,
			"manager %d has no position", managerID)
	}

	if manager.Position.Level >= position.Level {
		return domain.NewConstraintViolation(domain.RuleManagerLevel,
			"manager %d (%s, level %d) must be above %s (level %d)",
			managerID, manager.Position.Title, manager.Position.Level, position.Title, position.Level)
	}
	return nil
}
