package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"strategy-allocator/internal/model"
)

// WriteSummaryCSV writes the summary table with the fixed column order
// strategy, market_type, total_return, win_rate, sharpe_ratio,
// max_drawdown_pct. An absent metric renders as an empty cell.
func WriteSummaryCSV(path string, rows []model.SummaryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(model.SummaryColumns); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.Strategy,
			r.MarketType,
			fmtMetric(r.TotalReturn),
			fmtMetric(r.WinRate),
			fmtMetric(r.SharpeRatio),
			fmtMetric(r.MaxDrawdownPct),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// ReadSummaryCSV parses a summary artifact back into records. The retrieval
// API uses this to serve the table as flat key-value rows.
func ReadSummaryCSV(path string) ([]model.SummaryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("summary artifact %s is empty", path)
	}
	if err != nil {
		return nil, err
	}
	if len(header) != len(model.SummaryColumns) {
		return nil, fmt.Errorf("summary artifact %s: expected %d columns, got %d",
			path, len(model.SummaryColumns), len(header))
	}

	var rows []model.SummaryRecord
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := model.SummaryRecord{
			Strategy:   rec[0],
			MarketType: rec[1],
		}
		if row.TotalReturn, err = parseMetric(rec[2]); err != nil {
			return nil, fmt.Errorf("summary artifact %s: total_return: %w", path, err)
		}
		if row.WinRate, err = parseMetric(rec[3]); err != nil {
			return nil, fmt.Errorf("summary artifact %s: win_rate: %w", path, err)
		}
		if row.SharpeRatio, err = parseMetric(rec[4]); err != nil {
			return nil, fmt.Errorf("summary artifact %s: sharpe_ratio: %w", path, err)
		}
		if row.MaxDrawdownPct, err = parseMetric(rec[5]); err != nil {
			return nil, fmt.Errorf("summary artifact %s: max_drawdown_pct: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func fmtMetric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}

func parseMetric(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
