package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/hierarchy"
	"github.com/employee-directory/internal/query"
	"github.com/employee-directory/internal/repository"
	"github.com/employee-directory/internal/validation"
	"github.com/shopspring/decimal"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Query(ctx context.Context, filters []domain.FilterClause, sorts []domain.SortClause, limit int) ([]domain.EmployeeView, error)
	Hierarchy(ctx context.Context, rootID int64, limit int) (*domain.HierarchyNode, bool, error)
	GetByID(ctx context.Context, id int64) (*domain.EmployeeView, error)
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.EmployeeView, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.EmployeeView, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	store  repository.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(store repository.Store, logger *slog.Logger) EmployeeService {
	return &employeeService{
		store:  store,
		logger: logger.With(slog.String("component", "employee.service")),
		now:    time.Now,
	}
}

func (s *employeeService) Query(ctx context.Context, filters []domain.FilterClause, sorts []domain.SortClause, limit int) ([]domain.EmployeeView, error) {
	s.logger.DebugContext(ctx, "query employees requested",
		slog.Int("filters", len(filters)),
		slog.Int("sorts", len(sorts)),
		slog.Int("limit", limit),
	)

	plan, err := query.Compile(filters, sorts, limit)
	if err != nil {
		s.logger.WarnContext(ctx, "query employees rejected", slog.Any("error", err))
		return nil, err
	}

	if plan.Limit == 0 {
		return []domain.EmployeeView{}, nil
	}

	views, err := s.store.Employees().Query(ctx, plan)
	if err != nil {
		s.logger.ErrorContext(ctx, "query employees failed", slog.Any("error", err))
		return nil, err
	}
	return views, nil
}

// Hierarchy возвращает дерево подчинения; false означает, что корня нет
func (s *employeeService) Hierarchy(ctx context.Context, rootID int64, limit int) (*domain.HierarchyNode, bool, error) {
	if limit < 0 {
		return nil, false, domain.NewValidationError("limit", "", "must not be negative")
	}

	var rows []domain.HierarchyRow
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		rows, err = tx.Employees().FetchSubtree(ctx, rootID, limit)
		return err
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch subtree failed", slog.Int64("root_id", rootID), slog.Any("error", err))
		return nil, false, err
	}

	root, found := hierarchy.Resolve(rootID, rows, limit)
	if !found {
		s.logger.DebugContext(ctx, "hierarchy root not found", slog.Int64("root_id", rootID))
	}
	return root, found, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.EmployeeView, error) {
	return s.store.Employees().GetView(ctx, id)
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.EmployeeView, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	hireDate, err := s.parseHireDate(req.HireDate)
	if err != nil {
		return nil, err
	}
	salary, err := parseSalary(req.Salary)
	if err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		LastName:   strings.TrimSpace(req.LastName),
		FirstName:  strings.TrimSpace(req.FirstName),
		Patronymic: trimOptional(req.Patronymic),
		HireDate:   hireDate,
		Salary:     salary,
		ManagerID:  req.ManagerID,
	}

	var view *domain.EmployeeView
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		positionID, err := resolvePositionID(ctx, tx, req.PositionID, req.Position)
		if err != nil {
			return err
		}
		emp.PositionID = positionID

		if _, err := validation.Validate(ctx, tx.Employees(), candidateOf(emp)); err != nil {
			return err
		}

		if err := tx.Employees().Create(ctx, emp); err != nil {
			return err
		}

		view, err = tx.Employees().GetView(ctx, emp.ID)
		return err
	})
	if err != nil {
		s.logWriteError(ctx, "create employee", 0, err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "employee created", slog.Int64("employee_id", emp.ID))
	return view, nil
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.EmployeeView, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var view *domain.EmployeeView
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		// блокировка строки не даёт параллельно добавить подчинённого,
		// пока проверяется subordinate_level
		emp, err := tx.Employees().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := s.applyUpdate(ctx, tx, emp, req); err != nil {
			return err
		}

		if _, err := validation.Validate(ctx, tx.Employees(), candidateOf(emp)); err != nil {
			return err
		}

		if err := tx.Employees().Update(ctx, emp); err != nil {
			return err
		}

		view, err = tx.Employees().GetView(ctx, emp.ID)
		return err
	})
	if err != nil {
		s.logWriteError(ctx, "update employee", id, err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "employee updated", slog.Int64("employee_id", id))
	return view, nil
}

// Delete удаляет сотрудника, у которого нет подчинённых
func (s *employeeService) Delete(ctx context.Context, id int64) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Employees().GetByIDForUpdate(ctx, id); err != nil {
			return err
		}

		count, err := tx.Employees().CountSubordinates(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.NewConstraintViolation(domain.RuleHasSubordinates,
				"employee %d still manages %d employees", id, count)
		}
		return tx.Employees().Delete(ctx, id)
	})
	if err != nil {
		s.logWriteError(ctx, "delete employee", id, err)
		return err
	}

	s.logger.InfoContext(ctx, "employee deleted", slog.Int64("employee_id", id))
	return nil
}

func (s *employeeService) applyUpdate(ctx context.Context, tx repository.Store, emp *domain.Employee, req *dto.UpdateEmployeeRequest) error {
	if req.LastName != nil {
		emp.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.FirstName != nil {
		emp.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.Patronymic != nil {
		emp.Patronymic = trimOptional(req.Patronymic)
	}
	if req.PositionID != nil || req.Position != nil {
		positionID, err := resolvePositionID(ctx, tx, req.PositionID, req.Position)
		if err != nil {
			return err
		}
		emp.PositionID = positionID
		emp.Position = nil
	}
	if req.HireDate != nil {
		hireDate, err := s.parseHireDate(*req.HireDate)
		if err != nil {
			return err
		}
		emp.HireDate = hireDate
	}
	if req.Salary != nil {
		salary, err := parseSalary(*req.Salary)
		if err != nil {
			return err
		}
		emp.Salary = salary
	}
	if req.RemoveManager {
		emp.ManagerID = nil
	} else if req.ManagerID != nil {
		emp.ManagerID = req.ManagerID
	}
	emp.Manager = nil
	return nil
}

func (s *employeeService) parseHireDate(value string) (time.Time, error) {
	hireDate, err := time.Parse(dto.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.NewValidationError("hire_date", value, "expected date in format YYYY-MM-DD")
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if hireDate.After(today) {
		return time.Time{}, domain.NewValidationError("hire_date", value, "must not be in the future")
	}
	return hireDate, nil
}

func (s *employeeService) logWriteError(ctx context.Context, op string, id int64, err error) {
	attrs := []any{slog.String("operation", op), slog.Any("error", err)}
	if id != 0 {
		attrs = append(attrs, slog.Int64("employee_id", id))
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConstraintViolation),
		errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrPositionNotFound):
		s.logger.WarnContext(ctx, "employee write rejected", attrs...)
	default:
		s.logger.ErrorContext(ctx, "employee write failed", attrs...)
	}
}

func parseSalary(value string) (decimal.Decimal, error) {
	salary, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, domain.NewValidationError("salary", value, "must be a number")
	}
	if !salary.IsPositive() {
		return decimal.Decimal{}, domain.NewValidationError("salary", value, "must be positive")
	}
	return salary.Round(2), nil
}

// resolvePositionID находит должность по id или по точному названию
func resolvePositionID(ctx context.Context, tx repository.Store, id *int64, title *string) (int64, error) {
	if id != nil {
		return *id, nil
	}

	pos, err := tx.Positions().GetByTitle(ctx, strings.TrimSpace(*title))
	if err != nil {
		if errors.Is(err, domain.ErrPositionNotFound) {
			return 0, domain.NewConstraintViolation(domain.RulePositionNotFound,
				"position %q does not exist", *title)
		}
		return 0, err
	}
	return pos.ID, nil
}

func candidateOf(emp *domain.Employee) validation.Candidate {
	return validation.Candidate{
		ID:         emp.ID,
		PositionID: emp.PositionID,
		ManagerID:  emp.ManagerID,
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
