package dto_test

import (
	"errors"
	"testing"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		arg     string
		want    dto.FilterRequest
		wantErr bool
	}{
		{arg: "name:Ivan", want: dto.FilterRequest{Field: "name", Value: "Ivan"}},
		{arg: "Salary=50000", want: dto.FilterRequest{Field: "salary", Value: "50000"}},
		{arg: "date:2020-01-15", want: dto.FilterRequest{Field: "date", Value: "2020-01-15"}},
		{arg: "manager: Smith John ", want: dto.FilterRequest{Field: "manager", Value: "Smith John"}},
		{arg: "Ivan", wantErr: true},
		{arg: ":Ivan", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := dto.ParseFilter(tt.arg)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		arg     string
		want    dto.SortRequest
		wantErr bool
	}{
		{arg: "name", want: dto.SortRequest{OrderField: "name"}},
		{arg: "-salary", want: dto.SortRequest{OrderField: "salary", Descending: true}},
		{arg: "Date:DESC", want: dto.SortRequest{OrderField: "date", Descending: true}},
		{arg: "manager:asc", want: dto.SortRequest{OrderField: "manager"}},
		{arg: "id:up", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := dto.ParseSort(tt.arg)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewListEmployeesRequest_Clauses(t *testing.T) {
	limit := 5
	req, err := dto.NewListEmployeesRequest([]string{"position:lead", "date:2021"}, []string{"-name", "id"}, &limit)
	require.NoError(t, err)
	require.NoError(t, dto.Validate(req))

	filters, sorts := req.Clauses()
	assert.Equal(t, []domain.FilterClause{
		{Field: domain.FieldPosition, Value: "lead"},
		{Field: domain.FieldDate, Value: "2021"},
	}, filters)
	assert.Equal(t, []domain.SortClause{
		{Field: domain.FieldName, Descending: true},
		{Field: domain.FieldID},
	}, sorts)
	assert.Equal(t, 5, *req.Limit)
}

func TestValidate_ListRequest(t *testing.T) {
	negative := -1

	tests := []struct {
		name  string
		req   *dto.ListEmployeesRequest
		field string
	}{
		{"unknown filter field", &dto.ListEmployeesRequest{Filters: []dto.FilterRequest{{Field: "email", Value: "x"}}}, "field"},
		{"unknown sort field", &dto.ListEmployeesRequest{Sorts: []dto.SortRequest{{OrderField: "age"}}}, "order_field"},
		{"negative limit", &dto.ListEmployeesRequest{Limit: &negative}, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dto.Validate(tt.req)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidate_CreateEmployee(t *testing.T) {
	title := "CEO"
	valid := func() dto.CreateEmployeeRequest {
		return dto.CreateEmployeeRequest{
			LastName:  "Smith",
			FirstName: "John",
			Position:  &title,
			HireDate:  "2020-01-15",
			Salary:    "100000.50",
		}
	}

	req := valid()
	assert.NoError(t, dto.Validate(&req))

	tests := []struct {
		name   string
		mutate func(r *dto.CreateEmployeeRequest)
		field  string
		reason string
	}{
		{"no position", func(r *dto.CreateEmployeeRequest) { r.Position = nil }, "position_id", "is required"},
		{"bad date", func(r *dto.CreateEmployeeRequest) { r.HireDate = "15.01.2020" }, "hire_date", "expected date in format YYYY-MM-DD"},
		{"bad salary", func(r *dto.CreateEmployeeRequest) { r.Salary = "a lot" }, "salary", "must be a number"},
		{"empty name", func(r *dto.CreateEmployeeRequest) { r.FirstName = "" }, "first_name", "is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			var ve *domain.ValidationError
			require.True(t, errors.As(dto.Validate(&req), &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.reason, ve.Reason)
		})
	}
}

func TestValidate_UpdateManagerConflict(t *testing.T) {
	managerID := int64(3)
	err := dto.Validate(&dto.UpdateEmployeeRequest{ManagerID: &managerID, RemoveManager: true})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.NoError(t, dto.Validate(&dto.UpdateEmployeeRequest{RemoveManager: true}))
}

func TestValidate_UpdatePositionConflict(t *testing.T) {
	title := "Manager"
	positionID := int64(2)

	assert.NoError(t, dto.Validate(&dto.UpdateEmployeeRequest{Position: &title}))

	err := dto.Validate(&dto.UpdateEmployeeRequest{Position: &title, PositionID: &positionID})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "position", ve.Field)
	assert.Equal(t, "cannot be combined with PositionID", ve.Reason)
}
