package validation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	positions map[int64]*domain.Position
	employees map[int64]*domain.Employee
	failWith  error
}

func newFakeLookup() *fakeLookup {
	l := &fakeLookup{
		positions: map[int64]*domain.Position{
			1: {ID: 1, Title: "CEO", Level: 1},
			2: {ID: 2, Title: "Manager", Level: 2},
			3: {ID: 3, Title: "Developer", Level: 3},
		},
		employees: map[int64]*domain.Employee{},
	}
	l.add(1, 1, nil)
	l.add(2, 2, ptr(1))
	l.add(3, 3, ptr(2))
	l.add(4, 3, ptr(2))
	return l
}

func ptr(id int64) *int64 { return &id }

func (l *fakeLookup) add(id, positionID int64, managerID *int64) {
	l.employees[id] = &domain.Employee{ID: id, PositionID: positionID, ManagerID: managerID}
}

func (l *fakeLookup) GetPositionByID(_ context.Context, id int64) (*domain.Position, error) {
	if l.failWith != nil {
		return nil, l.failWith
	}
	if p, ok := l.positions[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPositionNotFound
}

func (l *fakeLookup) GetManagerForUpdate(_ context.Context, id int64) (*domain.Employee, error) {
	emp, ok := l.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	manager := *emp
	manager.Position = l.positions[emp.PositionID]
	return &manager, nil
}

func (l *fakeLookup) MinSubordinateLevel(_ context.Context, managerID int64) (int, bool, error) {
	best, found := 0, false
	for _, emp := range l.employees {
		if emp.ManagerID == nil || *emp.ManagerID != managerID {
			continue
		}
		level := l.positions[emp.PositionID].Level
		if !found || level < best {
			best, found = level, true
		}
	}
	return best, found, nil
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name      string
		candidate validation.Candidate
		wantRule  string
	}{
		{"root without manager", validation.Candidate{PositionID: 1}, ""},
		{"manager under root", validation.Candidate{PositionID: 2, ManagerID: ptr(1)}, ""},
		{"developer under root", validation.Candidate{PositionID: 3, ManagerID: ptr(1)}, ""},
		{"unknown position", validation.Candidate{PositionID: 99}, domain.RulePositionNotFound},
		{"root with manager", validation.Candidate{PositionID: 1, ManagerID: ptr(1)}, domain.RuleRootHasManager},
		{"non-root without manager", validation.Candidate{PositionID: 2}, domain.RuleManagerRequired},
		{"missing manager", validation.Candidate{PositionID: 3, ManagerID: ptr(77)}, domain.RuleManagerNotFound},
		{"peer as manager", validation.Candidate{ID: 3, PositionID: 3, ManagerID: ptr(4)}, domain.RuleManagerLevel},
		{"junior as manager", validation.Candidate{PositionID: 2, ManagerID: ptr(3)}, domain.RuleManagerLevel},
		{"self manager", validation.Candidate{ID: 2, PositionID: 2, ManagerID: ptr(2)}, domain.RuleSelfManager},
		{"demotion below subordinates", validation.Candidate{ID: 2, PositionID: 3, ManagerID: ptr(1)}, domain.RuleSubordinateLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := validation.Validate(context.Background(), newFakeLookup(), tt.candidate)
			if tt.wantRule == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.candidate.PositionID, pos.ID)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConstraintViolation))
			assert.Equal(t, tt.wantRule, domain.ViolatedRule(err))
			assert.Nil(t, pos)
		})
	}
}

func TestValidate_RootLevelAlwaysRejectsManager(t *testing.T) {
	lookup := newFakeLookup()
	for managerID := range lookup.employees {
		_, err := validation.Validate(context.Background(), lookup, validation.Candidate{PositionID: 1, ManagerID: ptr(managerID)})
		assert.Equal(t, domain.RuleRootHasManager, domain.ViolatedRule(err))
	}
}

func TestValidate_StoreErrorPropagated(t *testing.T) {
	lookup := newFakeLookup()
	storeErr := errors.New("connection reset")
	lookup.failWith = storeErr

	_, err := validation.Validate(context.Background(), lookup, validation.Candidate{PositionID: 1})
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, errors.Is(err, domain.ErrConstraintViolation))
}
