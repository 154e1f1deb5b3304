package query

import (
	"github.com/employee-directory/internal/domain"
)

// OrderKey - один подключ составной сортировки
type OrderKey struct {
	Expr       string
	Descending bool
}

// SQL возвращает фрагмент для ORDER BY
func (k OrderKey) SQL() string {
	if k.Descending {
		return k.Expr + " DESC"
	}
	return k.Expr + " ASC"
}

// Order - составной ключ сортировки в порядке приоритета
type Order struct {
	Keys        []OrderKey
	UsesManager bool
}

// tieBreak делает порядок детерминированным при равенстве всех ключей
var tieBreak = OrderKey{Expr: EmployeesTable + ".id"}

// BuildOrder разворачивает условия сортировки в плоский список подключей.
// Составные поля (name, manager) раскрываются на месте, поэтому подключи
// более раннего условия всегда главнее подключей последующих.
func BuildOrder(sorts []domain.SortClause) (Order, error) {
	var o Order
	sortedByID := false

	for _, s := range sorts {
		exprs, err := sortExprs(s.Field)
		if err != nil {
			return Order{}, err
		}
		for _, expr := range exprs {
			o.Keys = append(o.Keys, OrderKey{Expr: expr, Descending: s.Descending})
		}
		switch s.Field {
		case domain.FieldManager:
			o.UsesManager = true
		case domain.FieldID:
			sortedByID = true
		}
	}

	if !sortedByID {
		o.Keys = append(o.Keys, tieBreak)
	}
	return o, nil
}

func sortExprs(field domain.Field) ([]string, error) {
	switch field {
	case domain.FieldID:
		return []string{EmployeesTable + ".id"}, nil
	case domain.FieldName:
		return nameParts(EmployeesTable), nil
	case domain.FieldPosition:
		return []string{PositionsTable + ".title"}, nil
	case domain.FieldDate:
		return []string{EmployeesTable + ".hire_date"}, nil
	case domain.FieldSalary:
		return []string{EmployeesTable + ".salary"}, nil
	case domain.FieldManager:
		return nameParts(ManagersTable), nil
	default:
		return nil, domain.NewValidationError("order_field", string(field), "unknown sort field")
	}
}

// nameParts - (фамилия, имя, отчество); NULL заменяется пустой строкой, чтобы
// порядок не зависел от того, где СУБД размещает NULL
func nameParts(table string) []string {
	return []string{
		"COALESCE(" + table + ".last_name, '')",
		"COALESCE(" + table + ".first_name, '')",
		"COALESCE(" + table + ".patronymic, '')",
	}
}
