package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fortranov/sportproject/internal/training"

	"github.com/xuri/excelize/v2"
)

const (
	SheetOverview = "Overview"
	SheetCalendar = "Calendar"
	SheetWeekly   = "Weekly"
)

var borders = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

var bandColors = map[training.IntensityBand]string{
	training.Rest:     "F2F2F2",
	training.Light:    "E2EFDA",
	training.Moderate: "FFF2CC",
	training.High:     "F8CBAD",
	training.VeryHigh: "FF9999",
}

// PlanWorkbook builds an XLSX workbook for the plan with an overview,
// one calendar row per training day and the weekly buckets.
func PlanWorkbook(plan *training.TrainingPlan, now time.Time) (*excelize.File, error) {
	if plan == nil {
		return nil, fmt.Errorf("export: %w: no plan", training.ErrNotFound)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetCalendar); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetWeekly); err != nil {
		return nil, err
	}

	if err := writeOverview(f, plan, now); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("overview sheet: %w", err)
	}
	if err := writeCalendar(f, plan.TrainingDays); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("calendar sheet: %w", err)
	}
	if err := writeWeekly(f, plan.TrainingDays); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("weekly sheet: %w", err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// PlanWorkbookBytes renders the workbook into memory.
func PlanWorkbookBytes(plan *training.TrainingPlan, now time.Time) ([]byte, error) {
	f, err := PlanWorkbook(plan, now)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOverview(f *excelize.File, plan *training.TrainingPlan, now time.Time) error {
	sheet := SheetOverview

	tier, err := training.DifficultyTierOf(plan.Difficulty)
	if err != nil {
		return err
	}
	avg, err := training.AverageWeeklyHours(plan.TrainingDays)
	if err != nil {
		return err
	}
	totals := training.Totals(plan.TrainingDays)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E2EFDA"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	_ = f.SetCellValue(sheet, "A1", "TRAINING PLAN")
	_ = f.MergeCell(sheet, "A1", "B1")
	_ = f.SetCellStyle(sheet, "A1", "B1", headerStyle)
	_ = f.SetRowHeight(sheet, 1, 30)

	info := [][2]any{
		{"Plan ID", plan.ID},
		{"Competition date", plan.CompetitionDate.String()},
		{"Weeks until", training.WeeksUntil(plan.CompetitionDate, now)},
		{"Difficulty", plan.Difficulty},
		{"Level", tier.String()},
		{"Total hours", training.FormatHours(training.ReportedTotalHours(plan.TrainingDays))},
		{"Average per week", training.FormatHours(avg)},
		{"Swimming", training.FormatHours(totals.Swimming)},
		{"Cycling", training.FormatHours(totals.Cycling)},
		{"Running", training.FormatHours(totals.Running)},
	}
	for i, row := range info {
		rowNum := i + 3
		label, _ := excelize.CoordinatesToCellName(1, rowNum)
		value, _ := excelize.CoordinatesToCellName(2, rowNum)
		_ = f.SetCellValue(sheet, label, row[0])
		_ = f.SetCellValue(sheet, value, row[1])
		_ = f.SetCellStyle(sheet, label, label, labelStyle)
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 24)
	return nil
}

func writeCalendar(f *excelize.File, schedule []training.TrainingDay) error {
	sheet := SheetCalendar

	headerStyle, err := tableHeaderStyle(f)
	if err != nil {
		return err
	}
	headers := []string{"Date", "Weekday", "Swimming", "Cycling", "Running", "Total", "Intensity"}
	if err := writeHeader(f, sheet, headers, headerStyle); err != nil {
		return err
	}

	bandStyles := make(map[training.IntensityBand]int, len(bandColors))
	for band, color := range bandColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: borders,
		})
		if err != nil {
			return err
		}
		bandStyles[band] = style
	}

	for i, day := range schedule {
		band, err := training.IntensityBandOf(day.TotalHours)
		if err != nil {
			return fmt.Errorf("day %s: %w", day.Date, err)
		}

		row := i + 2
		values := []any{
			day.Date.String(),
			day.Date.Weekday().String(),
			day.SwimmingHours,
			day.CyclingHours,
			day.RunningHours,
			day.TotalHours,
			band.String(),
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(values), row)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return err
		}
		_ = f.SetCellStyle(sheet, start, end, bandStyles[band])
	}

	_ = f.SetColWidth(sheet, "A", "B", 14)
	_ = f.SetColWidth(sheet, "C", "G", 11)
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeWeekly(f *excelize.File, schedule []training.TrainingDay) error {
	sheet := SheetWeekly

	headerStyle, err := tableHeaderStyle(f)
	if err != nil {
		return err
	}
	headers := []string{"Week", "Swimming", "Cycling", "Running"}
	if err := writeHeader(f, sheet, headers, headerStyle); err != nil {
		return err
	}

	for i, bucket := range training.WeeklyBuckets(schedule) {
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{bucket.Label, bucket.Swimming, bucket.Cycling, bucket.Running}
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "D", 12)
	return nil
}

func tableHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders,
	})
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}
	return nil
}
