package repository

import (
	"context"
	"errors"
	"time"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/query"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// subtreeBatchSize ограничивает число id в одном условии IN
const subtreeBatchSize = 500

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Employee, error)
	GetManagerForUpdate(ctx context.Context, id int64) (*domain.Employee, error)
	GetPositionByID(ctx context.Context, id int64) (*domain.Position, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Query(ctx context.Context, plan *query.Plan) ([]domain.EmployeeView, error)
	GetView(ctx context.Context, id int64) (*domain.EmployeeView, error)
	FetchSubtree(ctx context.Context, rootID int64, maxNodes int) ([]domain.HierarchyRow, error)
	MinSubordinateLevel(ctx context.Context, managerID int64) (int, bool, error)
	CountSubordinates(ctx context.Context, managerID int64) (int64, error)
	IDsByLevel(ctx context.Context, level int) ([]int64, error)
	CreateBatch(ctx context.Context, employees []domain.Employee, batchSize int) error
}

type employeeRepository struct {
	db      *gorm.DB
	dialect query.Dialect
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db, dialect: query.DialectOf(db)}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(emp).Error
}

func (r *employeeRepository) CreateBatch(ctx context.Context, employees []domain.Employee, batchSize int) error {
	if len(employees) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(employees, batchSize).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Preload("Position").First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// GetByIDForUpdate читает сотрудника с должностью и блокирует его строку
// до конца транзакции, если СУБД это умеет
func (r *employeeRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Employee, error) {
	db := r.db.WithContext(ctx)
	if r.dialect.SupportsRowLocks() {
		db = db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var emp domain.Employee
	if err := db.First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	position, err := r.GetPositionByID(ctx, emp.PositionID)
	if err != nil && !errors.Is(err, domain.ErrPositionNotFound) {
		return nil, err
	}
	emp.Position = position
	return &emp, nil
}

func (r *employeeRepository) GetManagerForUpdate(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.GetByIDForUpdate(ctx, id)
}

func (r *employeeRepository) GetPositionByID(ctx context.Context, id int64) (*domain.Position, error) {
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

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(emp).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// DeleteAll удаляет всех сотрудников; сначала снимаются ссылки на руководителей
func (r *employeeRepository) DeleteAll(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Employee{}).Where("manager_id IS NOT NULL").Update("manager_id", nil).Error; err != nil {
		return err
	}
	return db.Where("1 = 1").Delete(&domain.Employee{}).Error
}

// employeeViewRow - строка выборки с присоединёнными должностью и руководителем
type employeeViewRow struct {
	ID                int64
	LastName          string
	FirstName         string
	Patronymic        *string
	PositionID        int64
	PositionTitle     string
	HireDate          time.Time
	Salary            decimal.Decimal
	ManagerID         *int64
	ManagerLastName   *string
	ManagerFirstName  *string
	ManagerPatronymic *string
}

func (row employeeViewRow) toView() domain.EmployeeView {
	view := domain.EmployeeView{
		ID:            row.ID,
		LastName:      row.LastName,
		FirstName:     row.FirstName,
		Patronymic:    row.Patronymic,
		FullName:      domain.FullName(row.LastName, row.FirstName, row.Patronymic),
		PositionID:    row.PositionID,
		PositionTitle: row.PositionTitle,
		HireDate:      row.HireDate,
		Salary:        row.Salary,
		ManagerID:     row.ManagerID,
	}
	if row.ManagerLastName != nil && row.ManagerFirstName != nil {
		view.ManagerName = domain.FullName(*row.ManagerLastName, *row.ManagerFirstName, row.ManagerPatronymic)
	}
	return view
}

// viewQuery - сотрудники с должностью и (необязательным) руководителем
func (r *employeeRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(query.EmployeesTable).
		Select(
			"employees.id AS id",
			"employees.last_name AS last_name",
			"employees.first_name AS first_name",
			"employees.patronymic AS patronymic",
			"employees.position_id AS position_id",
			"positions.title AS position_title",
			"employees.hire_date AS hire_date",
			"employees.salary AS salary",
			"employees.manager_id AS manager_id",
			"managers.last_name AS manager_last_name",
			"managers.first_name AS manager_first_name",
			"managers.patronymic AS manager_patronymic",
		).
		Joins("JOIN positions ON positions.id = employees.position_id").
		Joins("LEFT JOIN employees AS managers ON managers.id = employees.manager_id")
}

func (r *employeeRepository) Query(ctx context.Context, plan *query.Plan) ([]domain.EmployeeView, error) {
	var rows []employeeViewRow
	err := r.viewQuery(ctx).
		Scopes(plan.Scope(r.dialect)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]domain.EmployeeView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toView())
	}
	return views, nil
}

func (r *employeeRepository) GetView(ctx context.Context, id int64) (*domain.EmployeeView, error) {
	var rows []employeeViewRow
	err := r.viewQuery(ctx).
		Where("employees.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmployeeNotFound
	}
	view := rows[0].toView()
	return &view, nil
}

type hierarchyRow struct {
	ID            int64
	ManagerID     *int64
	LastName      string
	FirstName     string
	Patronymic    *string
	PositionTitle string
}

func (r *employeeRepository) hierarchyQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(query.EmployeesTable).
		Select(
			"employees.id AS id",
			"employees.manager_id AS manager_id",
			"employees.last_name AS last_name",
			"employees.first_name AS first_name",
			"employees.patronymic AS patronymic",
			"positions.title AS position_title",
		).
		Joins("JOIN positions ON positions.id = employees.position_id")
}

// FetchSubtree возвращает корень и его прямых и косвенных подчинённых
// уровень за уровнем, в порядке обнаружения. Каждый id попадает в результат
// один раз, поэтому обход завершается даже на несогласованных данных.
// Если maxNodes >= 0, спуск прекращается после уровня, на котором число
// подчинённых достигло maxNodes: более глубокие узлы в дерево не попадут.
func (r *employeeRepository) FetchSubtree(ctx context.Context, rootID int64, maxNodes int) ([]domain.HierarchyRow, error) {
	var roots []hierarchyRow
	if err := r.hierarchyQuery(ctx).Where("employees.id = ?", rootID).Limit(1).Scan(&roots).Error; err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, nil
	}

	result := []domain.HierarchyRow{roots[0].toDomain()}
	seen := map[int64]struct{}{rootID: {}}
	frontier := []int64{rootID}

	for len(frontier) > 0 {
		if maxNodes >= 0 && len(result)-1 >= maxNodes {
			break
		}

		var next []int64
		for start := 0; start < len(frontier); start += subtreeBatchSize {
			end := min(start+subtreeBatchSize, len(frontier))

			var rows []hierarchyRow
			err := r.hierarchyQuery(ctx).
				Where("employees.manager_id IN ?", frontier[start:end]).
				Order("employees.id ASC").
				Scan(&rows).Error
			if err != nil {
				return nil, err
			}

			for _, row := range rows {
				if _, ok := seen[row.ID]; ok {
					continue
				}
				seen[row.ID] = struct{}{}
				result = append(result, row.toDomain())
				next = append(next, row.ID)
			}
		}
		frontier = next
	}

	return result, nil
}

func (row hierarchyRow) toDomain() domain.HierarchyRow {
	return domain.HierarchyRow{
		ID:            row.ID,
		ManagerID:     row.ManagerID,
		LastName:      row.LastName,
		FirstName:     row.FirstName,
		Patronymic:    row.Patronymic,
		PositionTitle: row.PositionTitle,
	}
}

func (r *employeeRepository) MinSubordinateLevel(ctx context.Context, managerID int64) (int, bool, error) {
	var levels []int
	err := r.db.WithContext(ctx).
		Table(query.EmployeesTable).
		Joins("JOIN positions ON positions.id = employees.position_id").
		Where("employees.manager_id = ?", managerID).
		Order("positions.level ASC").
		Limit(1).
		Pluck("positions.level", &levels).Error
	if err != nil {
		return 0, false, err
	}
	if len(levels) == 0 {
		return 0, false, nil
	}
	return levels[0], true, nil
}

func (r *employeeRepository) CountSubordinates(ctx context.Context, managerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("manager_id = ?", managerID).
		Count(&count).Error
	return count, err
}

func (r *employeeRepository) IDsByLevel(ctx context.Context, level int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table(query.EmployeesTable).
		Joins("JOIN positions ON positions.id = employees.position_id").
		Where("positions.level = ?", level).
		Order("employees.id ASC").
		Pluck("employees.id", &ids).Error
	return ids, err
}
