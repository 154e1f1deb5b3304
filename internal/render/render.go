// Package render выводит сотрудников и дерево подчинения в терминал.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
)

// Table печатает сотрудников таблицей с заголовком; пустой список даёт одну строку empty
func Table(w io.Writer, title string, headers []string, views []domain.EmployeeView, empty string) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, v := range views {
		fmt.Fprintln(tw, strings.Join(row(v), "\t"))
	}
	return tw.Flush()
}

// Positions печатает список должностей
func Positions(w io.Writer, title string, headers []string, positions []domain.Position) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, p := range positions {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", p.ID, p.Title, p.Level)
	}
	return tw.Flush()
}

func row(v domain.EmployeeView) []string {
	manager := v.ManagerName
	if v.ManagerID == nil {
		manager = "-"
	}
	return []string{
		strconv.FormatInt(v.ID, 10),
		v.FullName,
		v.PositionTitle,
		v.HireDate.Format(dto.DateLayout),
		v.Salary.StringFixed(2),
		manager,
	}
}

// Tree печатает дерево подчинения, рисуя ветви через ├── и └──.
// Порядок подчинённых сохраняется таким, каким его построил обход.
func Tree(w io.Writer, root *domain.HierarchyNode) error {
	if root == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, nodeLabel(root)); err != nil {
		return err
	}
	return branches(w, root.Subordinates, "")
}

func branches(w io.Writer, nodes []*domain.HierarchyNode, prefix string) error {
	for i, n := range nodes {
		last := i == len(nodes)-1

		connector, indent := "├── ", "│   "
		if last {
			connector, indent = "└── ", "    "
		}

		if _, err := fmt.Fprintln(w, prefix+connector+nodeLabel(n)); err != nil {
			return err
		}
		if err := branches(w, n.Subordinates, prefix+indent); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n *domain.HierarchyNode) string {
	return fmt.Sprintf("%s (%s) [%d]", n.FullName, n.PositionTitle, n.ID)
}
