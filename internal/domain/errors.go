package domain

import (
	"errors"
	"fmt"
)

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrPositionNotFound    = errors.New("position not found")
	ErrValidation          = errors.New("validation error")
	ErrConstraintViolation = errors.New("hierarchy constraint violation")
)

// ValidationError - некорректный запрос; возникает до обращения к хранилищу
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError создаёт ошибку валидации поля
func NewValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// Нарушенные правила иерархии
const (
	RulePositionNotFound = "position_not_found"
	RuleRootHasManager   = "root_has_manager"
	RuleManagerRequired  = "manager_required"
	RuleManagerNotFound  = "manager_not_found"
	RuleManagerLevel     = "manager_level"
	RuleSelfManager      = "self_manager"
	RuleSubordinateLevel = "subordinate_level"
	RuleHasSubordinates  = "has_subordinates"
)

// ConstraintViolation - запись нарушает инвариант иерархии, транзакция откатывается
type ConstraintViolation struct {
	Rule    string
	Message string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func (e *ConstraintViolation) Is(target error) bool {
	return target == ErrConstraintViolation
}

// NewConstraintViolation создаёт ошибку нарушения правила
func NewConstraintViolation(rule, format string, args ...any) *ConstraintViolation {
	return &ConstraintViolation{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// ViolatedRule возвращает имя нарушенного правила или пустую строку
func ViolatedRule(err error) string {
	var cv *ConstraintViolation
	if errors.As(err, &cv) {
		return cv.Rule
	}
	return ""
}
