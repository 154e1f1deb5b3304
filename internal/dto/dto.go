package dto

import (
	"time"
)

// FilterRequest - условие фильтрации списка сотрудников
type FilterRequest struct {
	Field string `json:"field" validate:"required,oneof=id name position date salary manager"`
	Value string `json:"value"`
}

// SortRequest - условие сортировки; порядок в списке задаёт приоритет
type SortRequest struct {
	OrderField string `json:"order_field" validate:"required,oneof=id name position date salary manager"`
	Descending bool   `json:"descending"`
}

// ListEmployeesRequest - запрос списка сотрудников
type ListEmployeesRequest struct {
	Filters []FilterRequest `json:"filters" validate:"dive"`
	Sorts   []SortRequest   `json:"sorts" validate:"dive"`
	Limit   *int            `json:"limit" validate:"omitempty,min=0"`
}

// HierarchyQuery - параметры запроса дерева подчинения
type HierarchyQuery struct {
	Limit int `validate:"min=0"`
}

// CreateEmployeeRequest - запрос на создание сотрудника.
// Должность задаётся через position_id или по названию.
type CreateEmployeeRequest struct {
	LastName   string  `json:"last_name" validate:"required,min=1,max=50"`
	FirstName  string  `json:"first_name" validate:"required,min=1,max=50"`
	Patronymic *string `json:"patronymic" validate:"omitempty,max=50"`
	PositionID *int64  `json:"position_id" validate:"required_without=Position,omitempty,min=1"`
	Position   *string `json:"position" validate:"required_without=PositionID,omitempty,min=1,max=100"`
	HireDate   string  `json:"hire_date" validate:"required,datetime=2006-01-02"`
	Salary     string  `json:"salary" validate:"required,numeric"`
	ManagerID  *int64  `json:"manager_id" validate:"omitempty,min=1"`
}

// UpdateEmployeeRequest - запрос на обновление сотрудника; nil-поля не меняются.
// Новая должность задаётся через position_id или по названию.
type UpdateEmployeeRequest struct {
	LastName      *string `json:"last_name" validate:"omitempty,min=1,max=50"`
	FirstName     *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	Patronymic    *string `json:"patronymic" validate:"omitempty,max=50"`
	PositionID    *int64  `json:"position_id" validate:"omitempty,min=1"`
	Position      *string `json:"position" validate:"omitempty,min=1,max=100,excluded_with=PositionID"`
	HireDate      *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Salary        *string `json:"salary" validate:"omitempty,numeric"`
	ManagerID     *int64  `json:"manager_id" validate:"omitempty,min=1,excluded_with=RemoveManager"`
	RemoveManager bool    `json:"remove_manager"`
}

// CreatePositionRequest - запрос на создание должности
type CreatePositionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
	Level int    `json:"level" validate:"required,min=1,max=5"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID          int64   `json:"id"`
	LastName    string  `json:"last_name"`
	FirstName   string  `json:"first_name"`
	Patronymic  *string `json:"patronymic,omitempty"`
	FullName    string  `json:"full_name"`
	PositionID  int64   `json:"position_id"`
	Position    string  `json:"position"`
	HireDate    string  `json:"hire_date"`
	Salary      string  `json:"salary"`
	ManagerID   *int64  `json:"manager_id"`
	ManagerName string  `json:"manager_name"`
}

// PositionResponse - ответ с данными должности
type PositionResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// HierarchyResponse - узел дерева подчинения
type HierarchyResponse struct {
	ID           int64               `json:"id"`
	FullName     string              `json:"full_name"`
	Position     string              `json:"position"`
	ManagerID    *int64              `json:"manager_id"`
	Subordinates []HierarchyResponse `json:"subordinates"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message,omitempty"`
}

// DateLayout - формат дат в запросах и ответах
const DateLayout = time.DateOnly
