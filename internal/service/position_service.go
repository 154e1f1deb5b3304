package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/repository"
)

// PositionService определяет интерфейс бизнес-логики для должностей
type PositionService interface {
	Create(ctx context.Context, req *dto.CreatePositionRequest) (*domain.Position, error)
	List(ctx context.Context) ([]domain.Position, error)
}

type positionService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewPositionService создаёт новый экземпляр сервиса
func NewPositionService(store repository.Store, logger *slog.Logger) PositionService {
	return &positionService{
		store:  store,
		logger: logger.With(slog.String("component", "position.service")),
	}
}

func (s *positionService) Create(ctx context.Context, req *dto.CreatePositionRequest) (*domain.Position, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	pos := &domain.Position{
		Title: strings.TrimSpace(req.Title),
		Level: req.Level,
	}
	if err := s.store.Positions().Create(ctx, pos); err != nil {
		s.logger.ErrorContext(ctx, "create position failed", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "position created",
		slog.Int64("position_id", pos.ID),
		slog.Int("level", pos.Level),
	)
	return pos, nil
}

func (s *positionService) List(ctx context.Context) ([]domain.Position, error) {
	return s.store.Positions().List(ctx)
}
