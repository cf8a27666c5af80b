// Package catalog imports crop reference data (id + watering interval) from
// spreadsheet exports.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/interval"
)

var ErrUnsupportedFormat = errors.New("unsupported catalog format")

var (
	idAliases       = []string{"crop", "id", "cropid", "name", "crop_name"}
	intervalAliases = []string{"wateringInterval", "watering_interval", "interval", "water_every"}
)

// LoadFile reads a .csv, .xlsx or .html/.htm catalog. For workbooks sheet
// selects the sheet; empty means the first one.
func LoadFile(path, sheet string) ([]entities.CropDefinition, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return LoadCSV(f)
	case ".xlsx":
		return LoadXLSX(path, sheet)
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return LoadHTML(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func LoadCSV(r io.Reader) ([]entities.CropDefinition, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows)
}

func LoadXLSX(path, sheet string) ([]entities.CropDefinition, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	if sheet == "" {
		sheets := x.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRows(rows)
}

// LoadHTML reads the first <table> of the document.
func LoadHTML(r io.Reader) ([]entities.CropDefinition, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errors.New("no table found")
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return fromRows(rows)
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// fromRows maps a header row plus data rows to crop definitions. Later rows
// win over earlier rows with the same id.
func fromRows(rows [][]string) ([]entities.CropDefinition, error) {
	if len(rows) == 0 {
		return nil, errors.New("catalog is empty")
	}

	hmap := map[string]int{}
	for i, h := range rows[0] {
		if _, dup := hmap[norm(h)]; !dup {
			hmap[norm(h)] = i
		}
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}
	cID := findAny(idAliases...)
	cInt := findAny(intervalAliases...)
	if cID == -1 || cInt == -1 {
		return nil, fmt.Errorf("catalog missing required columns, found headers %v; need crop id and watering interval", rows[0])
	}

	var out []entities.CropDefinition
	pos := map[string]int{}
	for n, rec := range rows[1:] {
		get := func(idx int) string {
			if idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		id := get(cID)
		if id == "" {
			continue
		}
		every := get(cInt)
		if _, ok := interval.Parse(every); !ok {
			return nil, fmt.Errorf("row %d: crop %q: invalid watering interval %q", n+2, id, every)
		}

		def := entities.CropDefinition{ID: id, WateringInterval: every}
		if i, seen := pos[id]; seen {
			out[i] = def
			continue
		}
		pos[id] = len(out)
		out = append(out, def)
	}
	return out, nil
}
