package query

import (
	"github.com/employee-directory/internal/domain"
	"gorm.io/gorm"
)

// DefaultLimit - размер выборки по умолчанию
const DefaultLimit = 10

// Plan - проверенный запрос к списку сотрудников
type Plan struct {
	Predicate Predicate
	Order     Order
	Limit     int
}

// Compile проверяет фильтры, сортировку и лимит. Ошибки валидации
// возвращаются до обращения к хранилищу.
func Compile(filters []domain.FilterClause, sorts []domain.SortClause, limit int) (*Plan, error) {
	if limit < 0 {
		return nil, domain.NewValidationError("limit", "", "must not be negative")
	}

	predicate, err := BuildPredicate(filters)
	if err != nil {
		return nil, err
	}

	order, err := BuildOrder(sorts)
	if err != nil {
		return nil, err
	}

	return &Plan{Predicate: predicate, Order: order, Limit: limit}, nil
}

// Scope применяет условия и сортировку к запросу, в котором уже
// присоединены таблицы positions и managers
func (p *Plan) Scope(d Dialect) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !p.Predicate.Empty() {
			sql, args := p.Predicate.SQL(d)
			db = db.Where(sql, args...)
		}
		for _, key := range p.Order.Keys {
			db = db.Order(key.SQL())
		}
		return db.Limit(p.Limit)
	}
}
