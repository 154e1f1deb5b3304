package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Границы уровней должностей: 1 - высший уровень
const (
	MinPositionLevel  = 1
	MaxPositionLevel  = 5
	RootPositionLevel = MinPositionLevel
)

// Position представляет должность с уровнем в иерархии
type Position struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title string `json:"title" gorm:"type:varchar(100);not null"`
	Level int    `json:"level" gorm:"not null"`
}

// TableName задаёт имя таблицы для GORM
func (Position) TableName() string {
	return "positions"
}

// IsRoot сообщает, что должность находится на вершине иерархии
func (p *Position) IsRoot() bool {
	return p.Level == RootPositionLevel
}

// DefaultPositions - стандартная иерархия должностей
var DefaultPositions = []Position{
	{Title: "CEO", Level: 1},
	{Title: "Manager", Level: 2},
	{Title: "Team Lead", Level: 3},
	{Title: "Senior Developer", Level: 4},
	{Title: "Developer", Level: 5},
}

// Employee представляет сотрудника
type Employee struct {
	ID         int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	LastName   string          `json:"last_name" gorm:"type:varchar(50);not null"`
	FirstName  string          `json:"first_name" gorm:"type:varchar(50);not null"`
	Patronymic *string         `json:"patronymic" gorm:"type:varchar(50)"`
	PositionID int64           `json:"position_id" gorm:"not null;index"`
	HireDate   time.Time       `json:"hire_date" gorm:"type:date;not null"`
	Salary     decimal.Decimal `json:"salary" gorm:"type:numeric(10,2);not null"`
	ManagerID  *int64          `json:"manager_id" gorm:"index"`

	Position *Position `json:"-" gorm:"foreignKey:PositionID"`
	Manager  *Employee `json:"-" gorm:"foreignKey:ManagerID"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// FullName возвращает "Фамилия Имя Отчество" без хвостовых пробелов
func (e *Employee) FullName() string {
	return FullName(e.LastName, e.FirstName, e.Patronymic)
}

// FullName собирает полное имя из частей; отсутствующее отчество опускается
func FullName(lastName, firstName string, patronymic *string) string {
	parts := []string{lastName, firstName}
	if patronymic != nil && *patronymic != "" {
		parts = append(parts, *patronymic)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// EmployeeView - сотрудник с разрешёнными названием должности и именем руководителя
type EmployeeView struct {
	ID            int64
	LastName      string
	FirstName     string
	Patronymic    *string
	FullName      string
	PositionID    int64
	PositionTitle string
	HireDate      time.Time
	Salary        decimal.Decimal
	ManagerID     *int64
	ManagerName   string
}

// HierarchyRow - плоская запись, полученная при обходе подчинённых
type HierarchyRow struct {
	ID            int64
	ManagerID     *int64
	LastName      string
	FirstName     string
	Patronymic    *string
	PositionTitle string
}

// HierarchyNode - узел дерева подчинения, строится заново на каждый запрос
type HierarchyNode struct {
	ID            int64            `json:"id"`
	FullName      string           `json:"full_name"`
	PositionTitle string           `json:"position"`
	ManagerID     *int64           `json:"manager_id"`
	Subordinates  []*HierarchyNode `json:"subordinates"`
}

// Size возвращает количество узлов в поддереве, включая текущий
func (n *HierarchyNode) Size() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, sub := range n.Subordinates {
		total += sub.Size()
	}
	return total
}
