package dto

import (
	"strings"

	"github.com/employee-directory/internal/domain"
)

// Clauses переводит запрос списка в условия фильтрации и сортировки
func (r *ListEmployeesRequest) Clauses() ([]domain.FilterClause, []domain.SortClause) {
	filters := make([]domain.FilterClause, 0, len(r.Filters))
	for _, f := range r.Filters {
		filters = append(filters, domain.FilterClause{Field: domain.Field(f.Field), Value: f.Value})
	}

	sorts := make([]domain.SortClause, 0, len(r.Sorts))
	for _, s := range r.Sorts {
		sorts = append(sorts, domain.SortClause{Field: domain.Field(s.OrderField), Descending: s.Descending})
	}
	return filters, sorts
}

// ParseFilter разбирает условие вида "field:value" или "field=value"
func ParseFilter(arg string) (FilterRequest, error) {
	i := strings.IndexAny(arg, ":=")
	if i <= 0 {
		return FilterRequest{}, domain.NewValidationError("filter", arg, "expected field:value")
	}
	return FilterRequest{
		Field: strings.ToLower(strings.TrimSpace(arg[:i])),
		Value: strings.TrimSpace(arg[i+1:]),
	}, nil
}

// ParseSort разбирает ключ сортировки: "field", "-field", "field:asc" или "field:desc"
func ParseSort(arg string) (SortRequest, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))

	var req SortRequest
	if rest, ok := strings.CutPrefix(arg, "-"); ok {
		req.Descending = true
		arg = rest
	}

	if field, dir, ok := strings.Cut(arg, ":"); ok {
		switch dir {
		case "asc":
		case "desc":
			req.Descending = true
		default:
			return SortRequest{}, domain.NewValidationError("sort", dir, "direction must be asc or desc")
		}
		arg = field
	}

	req.OrderField = arg
	return req, nil
}

// NewListEmployeesRequest собирает запрос списка из строковых аргументов
func NewListEmployeesRequest(filters, sorts []string, limit *int) (*ListEmployeesRequest, error) {
	req := &ListEmployeesRequest{Limit: limit}
	for _, f := range filters {
		fr, err := ParseFilter(f)
		if err != nil {
			return nil, err
		}
		req.Filters = append(req.Filters, fr)
	}
	for _, s := range sorts {
		sr, err := ParseSort(s)
		if err != nil {
			return nil, err
		}
		req.Sorts = append(req.Sorts, sr)
	}
	return req, nil
}
