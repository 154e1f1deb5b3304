package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/render"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Table(&buf, "Employees", []string{"ID"}, nil, "nothing"))
	assert.Equal(t, "nothing\n", buf.String())
}

func TestTable_Rows(t *testing.T) {
	managerID := int64(1)
	views := []domain.EmployeeView{
		{
			ID: 1, FullName: "Smith John", PositionTitle: "CEO",
			HireDate: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
			Salary:   decimal.RequireFromString("100000"),
		},
		{
			ID: 2, FullName: "Brown Mary", PositionTitle: "Manager",
			HireDate:  time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
			Salary:    decimal.RequireFromString("70000.5"),
			ManagerID: &managerID, ManagerName: "Smith John",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, render.Table(&buf, "Employees", []string{"ID", "Name", "Position", "Hired", "Salary", "Manager"}, views, "nothing"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Employees", lines[0])
	assert.Contains(t, lines[2], "2020-01-15")
	assert.Contains(t, lines[2], "100000.00")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[2]), "-"))
	assert.Contains(t, lines[3], "70000.50")
	assert.True(t, strings.HasSuffix(lines[3], "Smith John"))
}

func TestTree(t *testing.T) {
	root := &domain.HierarchyNode{
		ID: 1, FullName: "A", PositionTitle: "CEO",
		Subordinates: []*domain.HierarchyNode{
			{ID: 2, FullName: "B", PositionTitle: "Manager", Subordinates: []*domain.HierarchyNode{
				{ID: 4, FullName: "D", PositionTitle: "Team Lead"},
			}},
			{ID: 3, FullName: "C", PositionTitle: "Manager"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, render.Tree(&buf, root))

	want := "A (CEO) [1]\n" +
		"├── B (Manager) [2]\n" +
		"│   └── D (Team Lead) [4]\n" +
		"└── C (Manager) [3]\n"
	assert.Equal(t, want, buf.String())
}

func TestTree_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Tree(&buf, nil))
	assert.Empty(t, buf.String())
}
