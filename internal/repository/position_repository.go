package repository

import (
	"context"
	"errors"

	"github.com/employee-directory/internal/domain"
	"gorm.io/gorm"
)

// PositionRepository определяет интерфейс для работы с должностями
type PositionRepository interface {
	Create(ctx context.Context, pos *domain.Position) error
	GetByID(ctx context.Context, id int64) (*domain.Position, error)
	GetByTitle(ctx context.Context, title string) (*domain.Position, error)
	List(ctx context.Context) ([]domain.Position, error)
	IDsByLevel(ctx context.Context, level int) ([]int64, error)
	DeleteAll(ctx context.Context) error
}

type positionRepository struct {
	db *gorm.DB
}

// NewPositionRepository создаёт новый экземпляр репозитория
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) Create(ctx context.Context, pos *domain.Position) error {
	return r.db.WithContext(ctx).Create(pos).Error
}

func (r *positionRepository) GetByID(ctx context.Context, id int64) (*domain.Position, error) {
	var pos domain.Position
	err := r.db.WithContext(ctx).First(&pos, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPositionNotFound
		}
		return nil, err
	}
	return &pos, nil
}

func (r *positionRepository) GetByTitle(ctx context.Context, title string) (*domain.Position, error) {
	var pos domain.Position
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&pos).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPositionNotFound
		}
		return nil, err
	}
	return &pos, nil
}

func (r *positionRepository) List(ctx context.Context) ([]domain.Position, error) {
	var positions []domain.Position
	err := r.db.WithContext(ctx).
		Order("level ASC").
		Order("id ASC").
		Find(&positions).Error
	return positions, err
}

func (r *positionRepository) IDsByLevel(ctx context.Context, level int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Position{}).
		Where("level = ?", level).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *positionRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Position{}).Error
}
