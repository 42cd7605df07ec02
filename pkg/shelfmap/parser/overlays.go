package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
)

// LoadOverlays reads an overlay CSV file. A missing file yields an empty map.
func LoadOverlays(path string) (models.OverlayMap, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.OverlayMap{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadOverlays(f)
}

// ReadOverlays parses overlay rows with the columns
// pasillo, lado, estanteria, anaquel, x0, y0, x1, y1.
// Rows with unparsable numbers are skipped; later rows overwrite earlier ones.
func ReadOverlays(r io.Reader) (models.OverlayMap, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	overlays := models.OverlayMap{}
	for _, row := range rows {
		unit, ok := ToInt(row.get("estanteria"))
		if !ok {
			continue
		}
		level, ok := ToInt(row.get("anaquel"))
		if !ok {
			continue
		}
		var box [4]float64
		valid := true
		for i, name := range []string{"x0", "y0", "x1", "y1"} {
			if box[i], ok = ToFloat(row.get(name)); !ok {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		key := models.NewOverlayKey(row.get("pasillo"), row.get("lado"), unit, level)
		overlays[key] = models.AreaOverlay{X0: box[0], Y0: box[1], X1: box[2], Y1: box[3]}
	}
	return overlays, nil
}

// csvRow is a data row addressed by normalized header name.
type csvRow struct {
	index  map[string]int
	fields []string
}

func (r csvRow) get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// readCSV reads a headed CSV. Malformed records are skipped.
func readCSV(r io.Reader) ([]csvRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	index := headerIndex(header)

	var rows []csvRow
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, csvRow{index: index, fields: fields})
	}
	return rows, nil
}
