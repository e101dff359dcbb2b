package harness

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrOutputExists is returned when a CSV output path already exists and
// the caller did not request --update.
var ErrOutputExists = errors.New("harness: output file exists, refusing to overwrite without --update")

var errorCSVHeader = buildPoweredHeader("top_tier_size", "run",
	[]string{"mean_abs_error", "median_abs_error", "mean_abs_pctg_error"})

var perfCSVHeader = append([]string{
	"top_tier_size", "run",
	"duration_node_rank", "duration_after_mq_node_rank",
	"duration_exact", "duration_after_mq_exact",
}, append(
	poweredColumns("duration_approx"),
	poweredColumns("duration_after_mq_approx")...,
)...)

func buildPoweredHeader(first, second string, series []string) []string {
	header := []string{first, second}
	for _, s := range series {
		header = append(header, poweredColumns(s)...)
	}
	return header
}

func poweredColumns(prefix string) []string {
	cols := make([]string, len(Powers))
	for i, p := range Powers {
		cols[i] = fmt.Sprintf("%s_10_pow_%d", prefix, exponentOf(p))
	}
	return cols
}

func exponentOf(p int) int {
	e := 0
	for v := p; v > 1; v /= 10 {
		e++
	}
	return e
}

// WriteErrorCSV writes rows to path (or stdout if path is ""), refusing
// to overwrite an existing file unless update is true.
func WriteErrorCSV(path string, rows []ErrorDataPoint, update bool) error {
	w, closeFn, err := openOutput(path, update)
	if err != nil {
		return err
	}
	defer closeFn()

	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write(errorCSVHeader); err != nil {
		return fmt.Errorf("harness: writing CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{strconv.Itoa(r.TopTierSize), strconv.Itoa(r.Run)}
		record = append(record, floatsToStrings(r.MeanAbsError[:])...)
		record = append(record, floatsToStrings(r.MedianAbsError[:])...)
		record = append(record, floatsToStrings(r.MeanAbsPctError[:])...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("harness: writing CSV row: %w", err)
		}
	}
	return nil
}

// WritePerfCSV is WriteErrorCSV's analogue for performance rows.
func WritePerfCSV(path string, rows []PerfDataPoint, update bool) error {
	w, closeFn, err := openOutput(path, update)
	if err != nil {
		return err
	}
	defer closeFn()

	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write(perfCSVHeader); err != nil {
		return fmt.Errorf("harness: writing CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{strconv.Itoa(r.TopTierSize), strconv.Itoa(r.Run)}
		record = append(record,
			strconv.FormatFloat(r.DurationNodeRank, 'f', -1, 64),
			strconv.FormatFloat(r.DurationNodeRankAfterMQ, 'f', -1, 64),
			strconv.FormatFloat(r.DurationExact, 'f', -1, 64),
			strconv.FormatFloat(r.DurationExactAfterMQ, 'f', -1, 64),
		)
		record = append(record, floatsToStrings(r.DurationApprox[:])...)
		record = append(record, floatsToStrings(r.DurationApproxAfterMQ[:])...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("harness: writing CSV row: %w", err)
		}
	}
	return nil
}

func floatsToStrings(fs []float64) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return out
}

func openOutput(path string, update bool) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	if !update {
		if _, err := os.Stat(path); err == nil {
			return nil, nil, ErrOutputExists
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("harness: opening %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// ReadExistingErrorRows reads a previously written error CSV, for
// --update mode, keyed by (top_tier_size, run). A missing file is not an
// error: it means there is nothing to resume from.
func ReadExistingErrorRows(path string) (map[InputDataPoint]ErrorDataPoint, error) {
	existing := make(map[InputDataPoint]ErrorDataPoint)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("harness: opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("harness: reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return existing, nil
	}
	for _, rec := range records[1:] {
		row, err := parseErrorRow(rec)
		if err != nil {
			return nil, fmt.Errorf("harness: parsing %s: %w", path, err)
		}
		existing[InputDataPoint{TopTierSize: row.TopTierSize, Run: row.Run}] = row
	}
	return existing, nil
}

// ReadExistingPerfRows is ReadExistingErrorRows's analogue for the
// performance CSV.
func ReadExistingPerfRows(path string) (map[InputDataPoint]PerfDataPoint, error) {
	existing := make(map[InputDataPoint]PerfDataPoint)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("harness: opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("harness: reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return existing, nil
	}
	for _, rec := range records[1:] {
		row, err := parsePerfRow(rec)
		if err != nil {
			return nil, fmt.Errorf("harness: parsing %s: %w", path, err)
		}
		existing[InputDataPoint{TopTierSize: row.TopTierSize, Run: row.Run}] = row
	}
	return existing, nil
}

func parsePerfRow(rec []string) (PerfDataPoint, error) {
	var row PerfDataPoint
	topTierSize, err := strconv.Atoi(rec[0])
	if err != nil {
		return row, err
	}
	run, err := strconv.Atoi(rec[1])
	if err != nil {
		return row, err
	}
	fields := make([]float64, 0, len(rec)-2)
	for _, s := range rec[2:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return row, err
		}
		fields = append(fields, v)
	}
	if len(fields) != 4+2*len(Powers) {
		return row, fmt.Errorf("expected %d numeric columns, got %d", 4+2*len(Powers), len(fields))
	}
	row.TopTierSize = topTierSize
	row.Run = run
	row.DurationNodeRank = fields[0]
	row.DurationNodeRankAfterMQ = fields[1]
	row.DurationExact = fields[2]
	row.DurationExactAfterMQ = fields[3]
	copy(row.DurationApprox[:], fields[4:4+len(Powers)])
	copy(row.DurationApproxAfterMQ[:], fields[4+len(Powers):])
	return row, nil
}

func parseErrorRow(rec []string) (ErrorDataPoint, error) {
	var row ErrorDataPoint
	fields := make([]float64, 0, len(rec))
	topTierSize, err := strconv.Atoi(rec[0])
	if err != nil {
		return row, err
	}
	run, err := strconv.Atoi(rec[1])
	if err != nil {
		return row, err
	}
	for _, s := range rec[2:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return row, err
		}
		fields = append(fields, v)
	}
	if len(fields) != 3*len(Powers) {
		return row, fmt.Errorf("expected %d numeric columns, got %d", 3*len(Powers), len(fields))
	}
	row.TopTierSize = topTierSize
	row.Run = run
	copy(row.MeanAbsError[:], fields[:len(Powers)])
	copy(row.MedianAbsError[:], fields[len(Powers):2*len(Powers)])
	copy(row.MeanAbsPctError[:], fields[2*len(Powers):3*len(Powers)])
	return row, nil
}
