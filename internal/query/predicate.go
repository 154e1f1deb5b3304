package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/employee-directory/internal/domain"
	"github.com/shopspring/decimal"
)

// Псевдонимы таблиц, к которым привязаны условия и ключи сортировки
const (
	EmployeesTable = "employees"
	PositionsTable = "positions"
	ManagersTable  = "managers"
)

// Condition - одно условие фильтра в виде SQL-фрагмента с параметрами
type Condition interface {
	SQL(d Dialect) (string, []any)
}

// Predicate - конъюнкция условий над сотрудником, должностью и руководителем
type Predicate struct {
	Conditions  []Condition
	UsesManager bool
}

// Empty сообщает, что фильтров нет
func (p Predicate) Empty() bool {
	return len(p.Conditions) == 0
}

// SQL собирает условия через AND
func (p Predicate) SQL(d Dialect) (string, []any) {
	parts := make([]string, 0, len(p.Conditions))
	var args []any
	for _, c := range p.Conditions {
		sql, condArgs := c.SQL(d)
		parts = append(parts, "("+sql+")")
		args = append(args, condArgs...)
	}
	return strings.Join(parts, " AND "), args
}

// BuildPredicate проверяет фильтры и превращает их в условие.
// Ошибка возвращается до любого обращения к хранилищу.
func BuildPredicate(filters []domain.FilterClause) (Predicate, error) {
	var p Predicate
	for _, f := range filters {
		cond, err := buildCondition(f)
		if err != nil {
			return Predicate{}, err
		}
		if f.Field == domain.FieldManager {
			p.UsesManager = true
		}
		p.Conditions = append(p.Conditions, cond)
	}
	return p, nil
}

func buildCondition(f domain.FilterClause) (Condition, error) {
	value := strings.TrimSpace(f.Value)

	switch f.Field {
	case domain.FieldID:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, domain.NewValidationError("id", f.Value, "must be an integer")
		}
		return idEquals{id: id}, nil
	case domain.FieldName:
		return contains{column: nameExpr(EmployeesTable), value: value}, nil
	case domain.FieldPosition:
		return contains{column: PositionsTable + ".title", value: value}, nil
	case domain.FieldDate:
		return parseDateFilter(f.Value)
	case domain.FieldSalary:
		salary, err := decimal.NewFromString(value)
		if err != nil {
			return nil, domain.NewValidationError("salary", f.Value, "must be a number")
		}
		return salaryEquals{salary: salary}, nil
	case domain.FieldManager:
		return contains{column: nameExpr(ManagersTable), value: value}, nil
	default:
		return nil, domain.NewValidationError("field", string(f.Field), "unknown filter field")
	}
}

// parseDateFilter принимает либо полную дату YYYY-MM-DD, либо год YYYY.
// Формат YYYY-MM не поддерживается.
func parseDateFilter(raw string) (Condition, error) {
	value := strings.TrimSpace(raw)

	if strings.Contains(value, "-") {
		date, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil, domain.NewValidationError("date", raw, "expected YYYY-MM-DD or YYYY")
		}
		return datePartsEqual{year: date.Year(), month: int(date.Month()), day: date.Day(), withDay: true}, nil
	}

	if len(value) == 4 && isDigits(value) {
		year, _ := strconv.Atoi(value)
		return datePartsEqual{year: year}, nil
	}

	return nil, domain.NewValidationError("date", raw, "expected YYYY-MM-DD or YYYY")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// nameExpr - "Фамилия Имя Отчество" с пустым отчеством вместо NULL
func nameExpr(table string) string {
	return table + ".last_name || ' ' || " +
		table + ".first_name || ' ' || " +
		"COALESCE(" + table + ".patronymic, '')"
}

type idEquals struct {
	id int64
}

func (c idEquals) SQL(Dialect) (string, []any) {
	return EmployeesTable + ".id = ?", []any{c.id}
}

type salaryEquals struct {
	salary decimal.Decimal
}

func (c salaryEquals) SQL(Dialect) (string, []any) {
	return EmployeesTable + ".salary = ?", []any{c.salary}
}

// contains для LEFT JOIN руководителя даёт NULL у сотрудников без руководителя,
// поэтому они никогда не попадают под фильтр manager
type contains struct {
	column string
	value  string
}

func (c contains) SQL(d Dialect) (string, []any) {
	return d.containsExpr(c.column), []any{containsPattern(c.value)}
}

type datePartsEqual struct {
	year, month, day int
	withDay          bool
}

func (c datePartsEqual) SQL(d Dialect) (string, []any) {
	column := EmployeesTable + ".hire_date"
	if !c.withDay {
		return d.datePartExpr("year", column) + " = ?", []any{c.year}
	}
	sql := d.datePartExpr("year", column) + " = ? AND " +
		d.datePartExpr("month", column) + " = ? AND " +
		d.datePartExpr("day", column) + " = ?"
	return sql, []any{c.year, c.month, c.day}
}
