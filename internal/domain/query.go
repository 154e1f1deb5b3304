package domain

import "strings"

// Field - поле сотрудника, доступное для фильтрации и сортировки
type Field string

const (
	FieldID       Field = "id"
	FieldName     Field = "name"
	FieldPosition Field = "position"
	FieldDate     Field = "date"
	FieldSalary   Field = "salary"
	FieldManager  Field = "manager"
)

// Fields перечисляет допустимые поля в порядке вывода справки
var Fields = []Field{FieldID, FieldName, FieldPosition, FieldDate, FieldSalary, FieldManager}

// ParseField нормализует имя поля; неизвестное поле - ошибка валидации
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", NewValidationError("field", s, "unknown field")
}

// FilterClause - условие фильтрации; несколько условий объединяются через AND
type FilterClause struct {
	Field Field
	Value string
}

// SortClause - ключ сортировки; первое условие главнее последующих
type SortClause struct {
	Field      Field
	Descending bool
}
