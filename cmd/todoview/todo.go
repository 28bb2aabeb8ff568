package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fastygo/todoview/domain"
)

var showCmd = &cobra.Command{
	Use:   "show [title]",
	Short: "Print a view: All Todos, Completed, or a due-date label such as 4/24",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

var showCompleted bool

var sidebarCmd = &cobra.Command{
	Use:   "sidebar",
	Short: "Print counts and due-date groups for navigation",
	Args:  cobra.NoArgs,
	RunE:  runSidebar,
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip the completion state of a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

// fields shared by add and update
var (
	todoTitle       string
	todoDay         string
	todoMonth       string
	todoYear        string
	todoDescription string
	todoCompleted   bool
)

func init() {
	rootCmd.AddCommand(showCmd, sidebarCmd, addCmd, updateCmd, toggleCmd, completeCmd, deleteCmd)

	showCmd.Flags().BoolVar(&showCompleted, "completed", false, "Only show completed todos")

	for _, cmd := range []*cobra.Command{addCmd, updateCmd} {
		cmd.Flags().StringVar(&todoDay, "day", "", "Due day")
		cmd.Flags().StringVar(&todoMonth, "month", "", "Due month")
		cmd.Flags().StringVar(&todoYear, "year", "", "Due year, four digits")
		cmd.Flags().StringVar(&todoDescription, "description", "", "Description")
	}
	updateCmd.Flags().StringVar(&todoTitle, "title", "", "Title")
	updateCmd.Flags().BoolVar(&todoCompleted, "completed", false, "Completion state")
}

func runShow(cmd *cobra.Command, args []string) error {
	title := domain.AllTodosView
	if len(args) == 1 {
		title = args[0]
	}
	return printSuccess(cmd, session.Select(title, showCompleted))
}

func runSidebar(cmd *cobra.Command, args []string) error {
	return printSuccess(cmd, session.Sidebar())
}

func runAdd(cmd *cobra.Command, args []string) error {
	rec := domain.Record{
		Title:       args[0],
		Day:         domain.DateField(todoDay),
		Month:       domain.DateField(todoMonth),
		Year:        domain.DateField(todoYear),
		Description: todoDescription,
	}
	view, err := session.Create(cmd.Context(), rec)
	if err != nil {
		return err
	}
	return printSuccess(cmd, view)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	current, err := session.Todo(id)
	if err != nil {
		return err
	}

	rec := applyFlags(cmd, current.Record())
	view, err := session.Update(cmd.Context(), id, rec)
	if err != nil {
		return err
	}
	return printSuccess(cmd, view)
}

func runToggle(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	view, err := session.Toggle(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printSuccess(cmd, view)
}

func runComplete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	view, err := session.MarkComplete(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printSuccess(cmd, view)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	view, err := session.Delete(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printSuccess(cmd, view)
}

// applyFlags overrides rec with the flags set on cmd.
func applyFlags(cmd *cobra.Command, rec domain.Record) domain.Record {
	flags := cmd.Flags()
	if flags.Changed("title") {
		rec.Title = todoTitle
	}
	if flags.Changed("day") {
		rec.Day = domain.DateField(todoDay)
	}
	if flags.Changed("month") {
		rec.Month = domain.DateField(todoMonth)
	}
	if flags.Changed("year") {
		rec.Year = domain.DateField(todoYear)
	}
	if flags.Changed("description") {
		rec.Description = todoDescription
	}
	if flags.Changed("completed") {
		rec.Completed = todoCompleted
	}
	return rec
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, domain.WrapError(domain.ErrCodeInvalid, strconv.Quote(arg), domain.ErrInvalidID)
	}
	return id, nil
}
