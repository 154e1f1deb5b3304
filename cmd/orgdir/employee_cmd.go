package main

import (
	"fmt"
	"strconv"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/messages"
	"github.com/employee-directory/internal/render"
	"github.com/employee-directory/internal/service"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		filters []string
		sorts   []string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees matching filters in the requested order",
		Example: `  orgdir list --filter name=ivan --filter date=2020 --sort position --sort salary:desc
  orgdir list --filter salary=50000 --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			var limitPtr *int
			if cmd.Flags().Changed("limit") {
				limitPtr = &limit
			}

			req, err := dto.NewListEmployeesRequest(filters, sorts, limitPtr)
			if err != nil {
				return err
			}
			if err := dto.Validate(req); err != nil {
				return err
			}

			effective := a.cfg.App.QueryDefaultLimit
			if req.Limit != nil {
				effective = *req.Limit
			}

			f, s := req.Clauses()
			views, err := service.NewEmployeeService(store, a.logger).Query(cmd.Context(), f, s, effective)
			if err != nil {
				return err
			}

			return render.Table(cmd.OutOrStdout(), a.catalog.T(messages.EmployeesTitle, nil),
				a.catalog.EmployeeHeaders(), views, a.catalog.T(messages.EmptyTable, nil))
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as field=value (id, name, position, date, salary, manager); repeatable")
	cmd.Flags().StringArrayVarP(&sorts, "sort", "s", nil, "sort key as field, -field or field:desc; repeatable, first has priority")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum rows (default QUERY_DEFAULT_LIMIT)")
	return cmd
}

func newTreeCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tree <employee-id>",
		Short: "Print the subordination tree below an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.App.HierarchyDefaultLimit
			}

			root, found, err := service.NewEmployeeService(store, a.logger).Hierarchy(cmd.Context(), id, limit)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T(messages.EmptyHierarchy, map[string]any{"id": id}))
				return nil
			}
			return render.Tree(cmd.OutOrStdout(), root)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum subordinates (default HIERARCHY_DEFAULT_LIMIT)")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		req        dto.CreateEmployeeRequest
		patronymic string
		position   string
		positionID int64
		managerID  int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee after checking hierarchy rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("patronymic") {
				req.Patronymic = &patronymic
			}
			if flags.Changed("position") {
				req.Position = &position
			}
			if flags.Changed("position-id") {
				req.PositionID = &positionID
			}
			if flags.Changed("manager") {
				req.ManagerID = &managerID
			}

			view, err := service.NewEmployeeService(store, a.logger).Create(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return a.printEmployee(cmd, messages.Created, view)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.LastName, "last-name", "", "last name")
	flags.StringVar(&req.FirstName, "first-name", "", "first name")
	flags.StringVar(&patronymic, "patronymic", "", "patronymic")
	flags.StringVar(&position, "position", "", "position title")
	flags.Int64Var(&positionID, "position-id", 0, "position id (instead of --position)")
	flags.StringVar(&req.HireDate, "hire-date", "", "hire date YYYY-MM-DD")
	flags.StringVar(&req.Salary, "salary", "", "salary")
	flags.Int64Var(&managerID, "manager", 0, "manager id")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var (
		req dto.UpdateEmployeeRequest

		lastName, firstName, patronymic string
		position, hireDate, salary      string
		positionID, managerID           int64
	)

	cmd := &cobra.Command{
		Use:   "update <employee-id>",
		Short: "Update an employee; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			setIfChanged := func(name string, dst **string, value *string) {
				if flags.Changed(name) {
					*dst = value
				}
			}
			setIfChanged("last-name", &req.LastName, &lastName)
			setIfChanged("first-name", &req.FirstName, &firstName)
			setIfChanged("patronymic", &req.Patronymic, &patronymic)
			setIfChanged("position", &req.Position, &position)
			setIfChanged("hire-date", &req.HireDate, &hireDate)
			setIfChanged("salary", &req.Salary, &salary)
			if flags.Changed("position-id") {
				req.PositionID = &positionID
			}
			if flags.Changed("manager") {
				req.ManagerID = &managerID
			}

			view, err := service.NewEmployeeService(store, a.logger).Update(cmd.Context(), id, &req)
			if err != nil {
				return err
			}
			return a.printEmployee(cmd, messages.Updated, view)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&lastName, "last-name", "", "last name")
	flags.StringVar(&firstName, "first-name", "", "first name")
	flags.StringVar(&patronymic, "patronymic", "", "patronymic; empty string removes it")
	flags.StringVar(&position, "position", "", "position title")
	flags.Int64Var(&positionID, "position-id", 0, "position id (instead of --position)")
	flags.StringVar(&hireDate, "hire-date", "", "hire date YYYY-MM-DD")
	flags.StringVar(&salary, "salary", "", "salary")
	flags.Int64Var(&managerID, "manager", 0, "manager id")
	flags.BoolVar(&req.RemoveManager, "remove-manager", false, "clear the manager (top-level positions only)")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <employee-id>",
		Short: "Delete an employee without subordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			if err := service.NewEmployeeService(store, a.logger).Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T(messages.Deleted, map[string]any{"id": id}))
			return nil
		},
	}
}

func (a *app) printEmployee(cmd *cobra.Command, messageID string, view *domain.EmployeeView) error {
	fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T(messageID, map[string]any{"id": view.ID}))
	return render.Table(cmd.OutOrStdout(), a.catalog.T(messages.EmployeeTitle, nil), a.catalog.EmployeeHeaders(),
		[]domain.EmployeeView{*view}, a.catalog.T(messages.EmptyTable, nil))
}

func parseIDArg(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", raw, "must be a positive integer")
	}
	return id, nil
}
