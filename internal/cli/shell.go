package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/service"
)

// Main menu choices.
const (
	choiceAddExpense  = "1"
	choiceView        = "2"
	choiceReport      = "3"
	choiceAddCategory = "4"
	choiceExit        = "5"
)

// periodChoices maps the view submenu to periods; anything else means all.
var periodChoices = map[string]model.Period{
	"1": model.PeriodDay,
	"2": model.PeriodWeek,
	"3": model.PeriodMonth,
	"4": model.PeriodAll,
}

// Shell runs the interactive expense menu. Every store failure is reported
// where it happens and the menu comes back; only end of input, cancellation
// or the exit choice end the session.
type Shell struct {
	expenses   service.ExpenseRepository
	categories service.CategoryRepository
	renderer   service.ReportRenderer
	input      *LineReader
	writer     io.Writer
}

// NewShell creates a shell reading answers from reader and writing to writer.
func NewShell(
	expenses service.ExpenseRepository,
	categories service.CategoryRepository,
	renderer service.ReportRenderer,
	reader io.Reader,
	writer io.Writer,
) *Shell {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Shell{
		expenses:   expenses,
		categories: categories,
		renderer:   renderer,
		input:      NewLineReader(reader),
		writer:     writer,
	}
}

// Run loops over the main menu until the user exits. End of input and
// context cancellation end the session without an error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.showMenu()

		choice, err := s.prompt(ctx, "Enter your choice (1-5):")
		if err != nil {
			return s.finish(err)
		}

		switch choice {
		case choiceAddExpense:
			err = s.addExpense(ctx)
		case choiceView:
			err = s.viewExpenses(ctx)
		case choiceReport:
			s.showReport(ctx)
		case choiceAddCategory:
			err = s.addCategory(ctx)
		case choiceExit:
			s.println(FormatInfo(GoodbyeIcon + " Goodbye!"))
			return nil
		default:
			s.println(FormatWarning("Invalid choice. Please try again."))
		}

		if err != nil {
			return s.finish(err)
		}
	}
}

func (s *Shell) finish(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) {
		slog.Debug("input closed, leaving shell", "reason", err)
		s.println()
		s.println(FormatInfo(GoodbyeIcon + " Goodbye!"))
		return nil
	}
	return err
}

func (s *Shell) showMenu() {
	s.println()
	s.println(FormatTitle("Personal Expense Tracker"))
	s.println("1. " + AddIcon + " Add Expense")
	s.println("2. " + ViewIcon + " View Expenses")
	s.println("3. " + ChartIcon + " View Spending Report")
	s.println("4. " + FolderIcon + " Add New Category")
	s.println("5. " + ExitIcon + " Exit")
	s.println()
}

func (s *Shell) addExpense(ctx context.Context) error {
	raw, err := s.prompt(ctx, "Enter amount: $")
	if err != nil {
		return err
	}
	amount, err := parseAmount(raw)
	if err != nil {
		slog.Debug("rejected amount", "input", raw, "error", err)
		s.println(FormatWarning("Invalid input. Please enter a valid amount."))
		return nil
	}

	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		s.println(FormatError("Error loading categories: " + err.Error()))
		return nil
	}

	s.println()
	s.println(BoldStyle.Render("Available categories:"))
	for i, name := range categories {
		s.printf("%d. %s\n", i+1, name)
	}
	s.println()

	raw, err = s.prompt(ctx, "Select category by number or enter new category:")
	if err != nil {
		return err
	}
	choice, err := parseCategoryChoice(raw, len(categories))
	if err != nil {
		s.println(FormatWarning("Category cannot be empty."))
		return nil
	}

	var category string
	switch c := choice.(type) {
	case byIndex:
		category = categories[int(c)]
	case byName:
		category = string(c)
		s.registerCategory(ctx, category)
	}

	description, err := s.promptText(ctx, "Enter description (optional):")
	if err != nil {
		return err
	}

	if _, err := s.expenses.Add(ctx, amount, category, description); err != nil {
		s.println(FormatError("Error adding expense: " + err.Error()))
		return nil
	}

	s.println(FormatSuccess(fmt.Sprintf("Added expense: $%s for %s", amount.StringFixed(2), category)))
	return nil
}

func (s *Shell) viewExpenses(ctx context.Context) error {
	s.println()
	s.println("View expenses for:")
	for i, period := range model.Periods {
		s.printf("%d. %s\n", i+1, period.Label())
	}
	s.println()

	raw, err := s.prompt(ctx, "Enter your choice (1-4):")
	if err != nil {
		return err
	}
	period, ok := periodChoices[raw]
	if !ok {
		period = model.PeriodAll
	}

	expenses, err := s.expenses.List(ctx, period)
	if err != nil {
		s.println(FormatError("Error loading expenses: " + err.Error()))
		return nil
	}

	WriteExpenses(s.writer, expenses)
	return nil
}

func (s *Shell) showReport(ctx context.Context) {
	totals, err := s.expenses.TotalsByCategory(ctx)
	if err != nil {
		s.println(FormatError("Error loading spending data: " + err.Error()))
		return
	}

	report, err := s.renderer.RenderCategoryPie(ctx, totals)
	if err != nil {
		s.println(FormatError("Error generating report: " + err.Error()))
		return
	}

	WriteReport(s.writer, report)
}

func (s *Shell) addCategory(ctx context.Context) error {
	name, err := s.prompt(ctx, "Enter new category name:")
	if err != nil {
		return err
	}
	if name == "" {
		s.println(FormatWarning("Category name cannot be empty."))
		return nil
	}

	s.registerCategory(ctx, name)
	return nil
}

// registerCategory adds name and reports the outcome. Failures are printed,
// never returned: callers carry on either way.
func (s *Shell) registerCategory(ctx context.Context, name string) {
	result, err := s.categories.AddIfAbsent(ctx, name)
	if err != nil {
		s.println(FormatError("Error adding category: " + err.Error()))
		return
	}

	switch result {
	case model.CategoryExists:
		s.println(FormatWarning("Category already exists"))
	default:
		s.println(FormatSuccess("Added new category: " + name))
	}
}

// prompt asks for a menu choice, amount or name; the answer is trimmed.
func (s *Shell) prompt(ctx context.Context, prompt string) (string, error) {
	answer, err := s.promptText(ctx, prompt)
	return strings.TrimSpace(answer), err
}

// promptText asks for free text and returns it exactly as typed.
func (s *Shell) promptText(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(s.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return s.input.ReadLine(ctx)
}

func (s *Shell) println(a ...any) {
	if _, err := fmt.Fprintln(s.writer, a...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func (s *Shell) printf(format string, a ...any) {
	if _, err := fmt.Fprintf(s.writer, format, a...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

// WriteExpenses prints expenses as a grid table followed by their total.
func WriteExpenses(w io.Writer, expenses []model.Expense) {
	if len(expenses) == 0 {
		writeLine(w, InfoStyle.Render("No expenses found."))
		return
	}

	t := newTable("ID", "Amount", "Category", "Description", "Date")
	for _, e := range expenses {
		t.Row(
			strconv.FormatInt(e.ID, 10),
			e.Amount.StringFixed(2),
			e.Category,
			e.Description,
			e.Date.Format(model.DateLayout),
		)
	}

	writeLine(w)
	writeLine(w, t.Render())
	writeLine(w)
	writeLine(w, BoldStyle.Render("Total: $"+model.SumAmounts(expenses).StringFixed(2)))
}

// WriteReport prints the legend of a rendered chart and where it was saved.
func WriteReport(w io.Writer, report *model.ChartReport) {
	if report == nil {
		writeLine(w, InfoStyle.Render("No spending data available."))
		return
	}

	t := newTable("Category", "Amount", "Share")
	for _, slice := range report.Slices {
		t.Row(slice.Category, slice.Amount.StringFixed(2), slice.Percent.StringFixed(1)+"%")
	}

	writeLine(w)
	writeLine(w, TitleStyle.Render(ChartIcon+" Spending by Category"))
	writeLine(w, t.Render())
	writeLine(w, FormatSuccess("Chart saved to "+report.Path))
	if !report.Opened {
		writeLine(w, SubtleStyle.Render("Open it with any image viewer."))
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		BorderStyle(TableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

func writeLine(w io.Writer, a ...any) {
	if _, err := fmt.Fprintln(w, a...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
