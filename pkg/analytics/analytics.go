// Package analytics derives reports from growth history: CSV export, daily
// aggregates, and a summary of when growth actually lands.
package analytics

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"instagrowth/pkg/models"
)

var csvHeader = []string{"Date", "Time", "Followers Added", "Total Followers", "Growth Speed"}

// ExportCSV writes the growth history to w, one row per tick, oldest first.
func ExportCSV(w io.Writer, history []models.GrowthPoint) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, point := range history {
		row := []string{
			point.Timestamp.Format("2006-01-02"),
			point.Timestamp.Format("15:04:05"),
			strconv.Itoa(point.Amount),
			strconv.Itoa(point.Total),
			string(point.Speed),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCSVFile writes the growth history to a file at path.
func ExportCSVFile(path string, history []models.GrowthPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportCSV(f, history); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DailyPoint is one day's aggregate growth.
type DailyPoint struct {
	Date     time.Time
	Amount   int
	EndTotal int
}

// DailySeries folds tick history into per-day totals, oldest first. Days
// inside the range with no ticks get a zero-amount entry that carries the
// running total forward, so chart consumers see a continuous series.
func DailySeries(history []models.GrowthPoint) []DailyPoint {
	byDay := make(map[time.Time]*DailyPoint)
	for _, point := range history {
		y, m, d := point.Timestamp.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, point.Timestamp.Location())

		entry, ok := byDay[day]
		if !ok {
			entry = &DailyPoint{Date: day}
			byDay[day] = entry
		}
		entry.Amount += point.Amount
		entry.EndTotal = point.Total
	}
	if len(byDay) == 0 {
		return nil
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var series []DailyPoint
	total := byDay[days[0]].EndTotal - byDay[days[0]].Amount
	for day := days[0]; !day.After(days[len(days)-1]); day = day.AddDate(0, 0, 1) {
		if entry, ok := byDay[day]; ok {
			total = entry.EndTotal
			series = append(series, *entry)
			continue
		}
		series = append(series, DailyPoint{Date: day, EndTotal: total})
	}
	return series
}

// Report summarizes where and when growth landed.
type Report struct {
	Ticks       int
	TotalGrowth int
	AvgPerTick  float64
	AvgPerDay   float64
	MonthlyRate float64
	BestDay     DailyPoint
	BestHour    int
	HourTotals  [24]int
}

// BuildReport computes summary statistics over the history. An empty
// history yields a zero report.
func BuildReport(history []models.GrowthPoint) Report {
	var report Report
	if len(history) == 0 {
		return report
	}

	report.Ticks = len(history)
	for _, point := range history {
		report.TotalGrowth += point.Amount
		if point.Hour >= 0 && point.Hour < 24 {
			report.HourTotals[point.Hour] += point.Amount
		}
	}
	report.AvgPerTick = float64(report.TotalGrowth) / float64(report.Ticks)

	daily := DailySeries(history)
	report.AvgPerDay = float64(report.TotalGrowth) / float64(len(daily))
	report.MonthlyRate = report.AvgPerDay * 30
	for _, day := range daily {
		if day.Amount > report.BestDay.Amount {
			report.BestDay = day
		}
	}

	for hour, total := range report.HourTotals {
		if total > report.HourTotals[report.BestHour] {
			report.BestHour = hour
		}
	}
	return report
}
