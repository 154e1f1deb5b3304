package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store объединяет репозитории и даёт выполнить их в одной транзакции
type Store interface {
	Employees() EmployeeRepository
	Positions() PositionRepository
	// Transaction выполняет fn в транзакции; ошибка fn откатывает все изменения
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db        *gorm.DB
	employees EmployeeRepository
	positions PositionRepository
}

// NewStore создаёт хранилище поверх подключения GORM
func NewStore(db *gorm.DB) Store {
	return &store{
		db:        db,
		employees: NewEmployeeRepository(db),
		positions: NewPositionRepository(db),
	}
}

func (s *store) Employees() EmployeeRepository {
	return s.employees
}

func (s *store) Positions() PositionRepository {
	return s.positions
}

func (s *store) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
