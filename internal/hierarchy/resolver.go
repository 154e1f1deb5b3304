// Package hierarchy восстанавливает ограниченное дерево подчинения из плоского
// списка сотрудников, где каждая запись знает только своего руководителя.
package hierarchy

import "github.com/employee-directory/internal/domain"

// DefaultBudget - число подчинённых в дереве по умолчанию
const DefaultBudget = 8

// arena хранит узлы в порядке обнаружения и индекс прямых подчинённых
type arena struct {
	nodes    []*domain.HierarchyNode
	byID     map[int64]int
	children map[int64][]int
}

func newArena(rows []domain.HierarchyRow) *arena {
	a := &arena{
		nodes:    make([]*domain.HierarchyNode, 0, len(rows)),
		byID:     make(map[int64]int, len(rows)),
		children: make(map[int64][]int),
	}

	for _, row := range rows {
		// повторная запись с тем же id игнорируется
		if _, ok := a.byID[row.ID]; ok {
			continue
		}
		idx := len(a.nodes)
		a.nodes = append(a.nodes, &domain.HierarchyNode{
			ID:            row.ID,
			FullName:      domain.FullName(row.LastName, row.FirstName, row.Patronymic),
			PositionTitle: row.PositionTitle,
			ManagerID:     row.ManagerID,
			Subordinates:  []*domain.HierarchyNode{},
		})
		a.byID[row.ID] = idx
		if row.ManagerID != nil {
			a.children[*row.ManagerID] = append(a.children[*row.ManagerID], idx)
		}
	}
	return a
}

// Resolve строит дерево от rootID обходом в ширину, добавляя не более budget
// узлов помимо корня. Корень включается всегда, даже при budget == 0.
// Второе значение false означает, что корня нет среди rows.
func Resolve(rootID int64, rows []domain.HierarchyRow, budget int) (*domain.HierarchyNode, bool) {
	a := newArena(rows)

	rootIdx, ok := a.byID[rootID]
	if !ok {
		return nil, false
	}
	root := a.nodes[rootIdx]

	if budget < 0 {
		budget = 0
	}

	added := map[int64]struct{}{rootID: {}}
	queue := []*domain.HierarchyNode{root}
	count := 0

	for len(queue) > 0 && count < budget {
		current := queue[0]
		queue = queue[1:]

		for _, idx := range a.children[current.ID] {
			if count >= budget {
				break
			}
			child := a.nodes[idx]
			if _, seen := added[child.ID]; seen {
				continue
			}
			current.Subordinates = append(current.Subordinates, child)
			added[child.ID] = struct{}{}
			queue = append(queue, child)
			count++
		}
	}

	return root, true
}
