// Package catalog derives the commodity, market and unit pick lists from the
// historical price dataset.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Options is the catalog payload served to clients.
type Options struct {
	Crops   []string `json:"crops"`
	Markets []string `json:"markets"`
	Units   []string `json:"units"`
}

// Catalog holds the option lists computed once at startup.
type Catalog struct {
	opts Options
}

// Empty returns a catalog with three empty lists.
func Empty() *Catalog {
	return &Catalog{opts: Options{Crops: []string{}, Markets: []string{}, Units: []string{}}}
}

// Load reads the dataset at path (.csv, or .xlsx first sheet). Failures are
// logged and produce an empty catalog; callers must tolerate emptiness.
func Load(path string, log zerolog.Logger) *Catalog {
	header, rows, err := readTable(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to load options data")
		return Empty()
	}
	c, err := Parse(header, rows)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to parse options data")
		return Empty()
	}
	log.Info().
		Int("crops", len(c.opts.Crops)).
		Int("markets", len(c.opts.Markets)).
		Int("units", len(c.opts.Units)).
		Msg("options catalog loaded")
	return c
}

// Parse builds a catalog from a header and data rows. The first data row is
// dropped: the published dataset repeats its header there as HXL tags. Rows
// missing any of commodity, market or unit (empty or an NA token) are ignored.
func Parse(header []string, rows [][]string) (*Catalog, error) {
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	commodityIdx, ok1 := cols["commodity"]
	marketIdx, ok2 := cols["market"]
	unitIdx, ok3 := cols["unit"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("dataset needs commodity, market and unit columns, found %v", header)
	}

	if len(rows) > 0 {
		rows = rows[1:]
	}

	crops := map[string]struct{}{}
	markets := map[string]struct{}{}
	units := map[string]struct{}{}
	for _, row := range rows {
		commodity, market, unit := cell(row, commodityIdx), cell(row, marketIdx), cell(row, unitIdx)
		if commodity == "" || market == "" || unit == "" {
			continue
		}
		crops[commodity] = struct{}{}
		markets[market] = struct{}{}
		units[unit] = struct{}{}
	}

	return &Catalog{opts: Options{
		Crops:   sortedKeys(crops),
		Markets: sortedKeys(markets),
		Units:   sortedKeys(units),
	}}, nil
}

// Get returns the option lists. The slices are copies.
func (c *Catalog) Get() Options {
	return Options{
		Crops:   slices.Clone(c.opts.Crops),
		Markets: slices.Clone(c.opts.Markets),
		Units:   slices.Clone(c.opts.Units),
	}
}

// naTokens are the cell values read as missing, the usual spreadsheet and
// dataframe NA markers. Matching is exact: surrounding whitespace makes a value.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// cell returns the raw value at idx, or "" when it is absent or an NA token.
// Values are not trimmed, so " Maize" and "Maize" stay distinct options.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	if _, ok := naTokens[row[idx]]; ok {
		return ""
	}
	return row[idx]
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func readTable(path string) ([]string, [][]string, error) {
	if path == "" {
		return nil, nil, errors.New("dataset path is empty")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	default:
		return readCSV(path)
	}
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("dataset is empty")
	}
	return records[0], records[1:], nil
}

func readXLSX(path string) ([]string, [][]string, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}
	records, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("dataset is empty")
	}
	return records[0], records[1:], nil
}
