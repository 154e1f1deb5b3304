package query_test

import (
	"errors"
	"testing"

	"github.com/employee-directory/internal/db/dbtest"
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBuildPredicate_Fields(t *testing.T) {
	tests := []struct {
		name     string
		filter   domain.FilterClause
		dialect  query.Dialect
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "id",
			filter:   domain.FilterClause{Field: domain.FieldID, Value: " 42 "},
			dialect:  query.DialectPostgres,
			wantSQL:  "(employees.id = ?)",
			wantArgs: []any{int64(42)},
		},
		{
			name:     "name postgres",
			filter:   domain.FilterClause{Field: domain.FieldName, Value: "Ivan"},
			dialect:  query.DialectPostgres,
			wantSQL:  `(employees.last_name || ' ' || employees.first_name || ' ' || COALESCE(employees.patronymic, '') ILIKE ? ESCAPE '\')`,
			wantArgs: []any{"%Ivan%"},
		},
		{
			name:     "position sqlite",
			filter:   domain.FilterClause{Field: domain.FieldPosition, Value: "lead"},
			dialect:  query.DialectSQLite,
			wantSQL:  `(ulower(positions.title) LIKE ulower(?) ESCAPE '\')`,
			wantArgs: []any{"%lead%"},
		},
		{
			name:     "name sqlite",
			filter:   domain.FilterClause{Field: domain.FieldName, Value: "иванов"},
			dialect:  query.DialectSQLite,
			wantSQL:  `(ulower(employees.last_name || ' ' || employees.first_name || ' ' || COALESCE(employees.patronymic, '')) LIKE ulower(?) ESCAPE '\')`,
			wantArgs: []any{"%иванов%"},
		},
		{
			name:     "manager escapes wildcards",
			filter:   domain.FilterClause{Field: domain.FieldManager, Value: "50%_off"},
			dialect:  query.DialectPostgres,
			wantSQL:  `(managers.last_name || ' ' || managers.first_name || ' ' || COALESCE(managers.patronymic, '') ILIKE ? ESCAPE '\')`,
			wantArgs: []any{`%50\%\_off%`},
		},
		{
			name:     "year postgres",
			filter:   domain.FilterClause{Field: domain.FieldDate, Value: "2020"},
			dialect:  query.DialectPostgres,
			wantSQL:  "(EXTRACT(YEAR FROM employees.hire_date) = ?)",
			wantArgs: []any{2020},
		},
		{
			name:     "full date sqlite",
			filter:   domain.FilterClause{Field: domain.FieldDate, Value: "2021-03-09"},
			dialect:  query.DialectSQLite,
			wantSQL:  "(CAST(strftime('%Y', employees.hire_date) AS INTEGER) = ? AND CAST(strftime('%m', employees.hire_date) AS INTEGER) = ? AND CAST(strftime('%d', employees.hire_date) AS INTEGER) = ?)",
			wantArgs: []any{2021, 3, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := query.BuildPredicate([]domain.FilterClause{tt.filter})
			require.NoError(t, err)

			sql, args := p.SQL(tt.dialect)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildPredicate_Salary(t *testing.T) {
	p, err := query.BuildPredicate([]domain.FilterClause{{Field: domain.FieldSalary, Value: "50000"}})
	require.NoError(t, err)

	sql, args := p.SQL(query.DialectPostgres)
	assert.Equal(t, "(employees.salary = ?)", sql)
	require.Len(t, args, 1)
	assert.Equal(t, "50000", args[0].(interface{ String() string }).String())
}

func TestBuildPredicate_Conjunction(t *testing.T) {
	p, err := query.BuildPredicate([]domain.FilterClause{
		{Field: domain.FieldID, Value: "1"},
		{Field: domain.FieldManager, Value: "smith"},
	})
	require.NoError(t, err)
	assert.True(t, p.UsesManager)

	sql, args := p.SQL(query.DialectSQLite)
	assert.Contains(t, sql, ") AND (")
	assert.Len(t, args, 2)
}

func TestBuildPredicate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.FilterClause
		field  string
	}{
		{"non-numeric id", domain.FilterClause{Field: domain.FieldID, Value: "abc"}, "id"},
		{"non-numeric salary", domain.FilterClause{Field: domain.FieldSalary, Value: "lots"}, "salary"},
		{"year-month", domain.FilterClause{Field: domain.FieldDate, Value: "2020-05"}, "date"},
		{"bad date", domain.FilterClause{Field: domain.FieldDate, Value: "2020-02-30"}, "date"},
		{"short year", domain.FilterClause{Field: domain.FieldDate, Value: "20"}, "date"},
		{"letters year", domain.FilterClause{Field: domain.FieldDate, Value: "20ab"}, "date"},
		{"unknown field", domain.FilterClause{Field: "email", Value: "x"}, "field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := query.BuildPredicate([]domain.FilterClause{tt.filter})
			require.Error(t, err)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestBuildOrder_FlattensInPlace(t *testing.T) {
	o, err := query.BuildOrder([]domain.SortClause{
		{Field: domain.FieldName, Descending: true},
		{Field: domain.FieldSalary},
		{Field: domain.FieldManager},
	})
	require.NoError(t, err)
	assert.True(t, o.UsesManager)

	var keys []string
	for _, k := range o.Keys {
		keys = append(keys, k.SQL())
	}
	assert.Equal(t, []string{
		"COALESCE(employees.last_name, '') DESC",
		"COALESCE(employees.first_name, '') DESC",
		"COALESCE(employees.patronymic, '') DESC",
		"employees.salary ASC",
		"COALESCE(managers.last_name, '') ASC",
		"COALESCE(managers.first_name, '') ASC",
		"COALESCE(managers.patronymic, '') ASC",
		"employees.id ASC",
	}, keys)
}

func TestBuildOrder_NoTieBreakWhenSortedByID(t *testing.T) {
	o, err := query.BuildOrder([]domain.SortClause{{Field: domain.FieldPosition}, {Field: domain.FieldID, Descending: true}})
	require.NoError(t, err)

	require.Len(t, o.Keys, 2)
	assert.Equal(t, "positions.title ASC", o.Keys[0].SQL())
	assert.Equal(t, "employees.id DESC", o.Keys[1].SQL())
}

func TestBuildOrder_EmptyIsDeterministic(t *testing.T) {
	o, err := query.BuildOrder(nil)
	require.NoError(t, err)
	require.Len(t, o.Keys, 1)
	assert.Equal(t, "employees.id ASC", o.Keys[0].SQL())
}

func TestBuildOrder_UnknownField(t *testing.T) {
	_, err := query.BuildOrder([]domain.SortClause{{Field: "age"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompile_Limit(t *testing.T) {
	_, err := query.Compile(nil, nil, -1)
	assert.ErrorIs(t, err, domain.ErrValidation)

	plan, err := query.Compile(nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Limit)
}

func TestCompile_ErrorsBeforeStore(t *testing.T) {
	_, err := query.Compile(
		[]domain.FilterClause{{Field: domain.FieldName, Value: "x"}},
		[]domain.SortClause{{Field: "bogus"}},
		10,
	)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlanScope_PostgresSQL(t *testing.T) {
	gdb, _ := dbtest.Postgres(t)
	assert.Equal(t, query.DialectPostgres, query.DialectOf(gdb))

	plan, err := query.Compile(
		[]domain.FilterClause{{Field: domain.FieldName, Value: "ivan"}, {Field: domain.FieldDate, Value: "2020"}},
		[]domain.SortClause{{Field: domain.FieldSalary, Descending: true}},
		5,
	)
	require.NoError(t, err)

	var rows []map[string]any
	stmt := gdb.Session(&gorm.Session{DryRun: true}).
		Table(query.EmployeesTable).
		Scopes(plan.Scope(query.DialectPostgres)).
		Find(&rows).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "ILIKE $1")
	assert.Contains(t, sql, "EXTRACT(YEAR FROM employees.hire_date) = $2")
	assert.Contains(t, sql, "ORDER BY employees.salary DESC,employees.id ASC")
	assert.Contains(t, sql, "LIMIT")
	assert.Equal(t, "%ivan%", stmt.Vars[0])
	assert.Equal(t, 2020, stmt.Vars[1])
}

func TestDialectOf_SQLite(t *testing.T) {
	gdb := dbtest.SQLite(t)
	assert.Equal(t, query.DialectSQLite, query.DialectOf(gdb))
	assert.False(t, query.DialectSQLite.SupportsRowLocks())
	assert.True(t, query.DialectPostgres.SupportsRowLocks())
}
