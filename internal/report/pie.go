// Package report renders spending charts.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// Default chart dimensions in pixels.
const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

const chartTitle = "Spending by Category"

var hundred = decimal.NewFromInt(100)

// Opener displays a rendered chart file.
type Opener func(path string) error

// PieRenderer draws category totals as a PNG pie chart and hands the file to
// an Opener, which by default is the operating system's viewer.
type PieRenderer struct {
	open   Opener
	path   string
	width  int
	height int
}

// Option configures a PieRenderer.
type Option func(*PieRenderer)

// WithSize sets the chart dimensions. Non-positive values keep the defaults.
func WithSize(width, height int) Option {
	return func(r *PieRenderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithOpener replaces the viewer. A nil opener only writes the file.
func WithOpener(open Opener) Option {
	return func(r *PieRenderer) {
		r.open = open
	}
}

// NewPieRenderer creates a renderer writing to path.
func NewPieRenderer(path string, opts ...Option) *PieRenderer {
	r := &PieRenderer{
		path:   path,
		width:  DefaultWidth,
		height: DefaultHeight,
		open:   browser.OpenFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderCategoryPie draws one slice per category with a positive total. It
// returns nil without touching the filesystem when there is nothing to draw.
func (r *PieRenderer) RenderCategoryPie(ctx context.Context, totals []model.CategoryTotal) (*model.ChartReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices := Slices(totals)
	if len(slices) == 0 {
		slog.Debug("no positive category totals to chart")
		return nil, nil
	}

	values := make([]chart.Value, len(slices))
	for i, s := range slices {
		values[i] = chart.Value{
			Label: s.Label(),
			Value: s.Amount.InexactFloat64(),
		}
	}

	pie := chart.PieChart{
		Title:  chartTitle,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := pie.Render(chart.PNG, f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to render pie chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write chart file: %w", err)
	}

	report := &model.ChartReport{Path: r.path, Slices: slices}

	if r.open != nil {
		if err := r.open(r.path); err != nil {
			slog.Warn("Failed to open chart viewer", "path", r.path, "error", err)
		} else {
			report.Opened = true
		}
	}

	slog.Info("rendered category chart", "path", r.path, "slices", len(slices))
	return report, nil
}

// Slices converts totals into pie slices. Categories whose total is zero or
// negative cannot be drawn and are left out; percentages are shares of the
// remaining positive sum.
func Slices(totals []model.CategoryTotal) []model.ChartSlice {
	sum := decimal.Zero
	for _, t := range totals {
		if t.Total.IsPositive() {
			sum = sum.Add(t.Total)
		}
	}
	if !sum.IsPositive() {
		return nil
	}

	slices := make([]model.ChartSlice, 0, len(totals))
	for _, t := range totals {
		if !t.Total.IsPositive() {
			continue
		}
		slices = append(slices, model.ChartSlice{
			Category: t.Category,
			Amount:   t.Total,
			Percent:  t.Total.Mul(hundred).Div(sum),
		})
	}
	return slices
}
