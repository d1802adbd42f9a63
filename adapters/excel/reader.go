// Package excel loads recorded four-layer scoring inputs from spreadsheet or
// CSV captures, so sessions recorded by the upstream producers can be scored
// offline.
//
// Capture layout (one row per record, first cell is the layer name):
//
//	body,<t_ms>,<value>        one row per body sample, t_ms ascending
//	qualia,<v1>,<v2>,...       exactly one row
//	structure,<v1>,<v2>,...    exactly one row
//	memory,<v1>,<v2>,...       exactly one row
//
// For .xlsx files the rows are read from the first sheet; .csv files use the
// same grid.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"syncscore/domain/score"
	"syncscore/ports"
)

// SessionReader handles reading capture files in .xlsx or .csv form.
type SessionReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSessionReader creates a reader for the given capture file.
func NewSessionReader(filePath string) *SessionReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &SessionReader{filePath: filePath, fileType: fileType}
}

// Read parses the capture into one scoring call's inputs.
func (r *SessionReader) Read() (*ports.Inputs, error) {
	log.Printf("[SessionReader] reading %s capture: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("capture file not found: %s", r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return parseRows(rows)
}

func (r *SessionReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file has no sheets: %s", r.filePath)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *SessionReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // rows have varying widths
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

func parseRows(rows [][]string) (*ports.Inputs, error) {
	in := &ports.Inputs{
		Body: score.LayerSignal{Layer: score.LayerBody},
	}
	vectors := map[score.Layer]*score.LayerVector{
		score.LayerQualia:    {Layer: score.LayerQualia},
		score.LayerStructure: {Layer: score.LayerStructure},
		score.LayerMemory:    {Layer: score.LayerMemory},
	}

	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		layer := score.Layer(strings.ToLower(strings.TrimSpace(row[0])))

		switch layer {
		case score.LayerBody:
			if len(row) < 3 {
				return nil, fmt.Errorf("row %d: body rows need t_ms and value", i+1)
			}
			tms, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad body timestamp: %w", i+1, err)
			}
			val, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad body value: %w", i+1, err)
			}
			in.Body.Samples = append(in.Body.Samples, score.Sample{
				At:    time.Unix(0, 0).Add(time.Duration(tms * float64(time.Millisecond))),
				Value: val,
			})

		case score.LayerQualia, score.LayerStructure, score.LayerMemory:
			v := vectors[layer]
			if len(v.Values) > 0 {
				return nil, fmt.Errorf("row %d: duplicate %s row", i+1, layer)
			}
			for j, cell := range row[1:] {
				cell = strings.TrimSpace(cell)
				if cell == "" {
					continue
				}
				val, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d col %d: bad %s value: %w", i+1, j+2, layer, err)
				}
				v.Values = append(v.Values, val)
			}

		default:
			return nil, fmt.Errorf("row %d: unknown layer %q", i+1, row[0])
		}
	}

	if len(in.Body.Samples) == 0 {
		return nil, fmt.Errorf("capture has no body rows")
	}
	for layer, v := range vectors {
		if len(v.Values) == 0 {
			return nil, fmt.Errorf("capture has no %s row", layer)
		}
	}

	in.Qualia = *vectors[score.LayerQualia]
	in.Structure = *vectors[score.LayerStructure]
	in.Memory = *vectors[score.LayerMemory]

	log.Printf("[SessionReader] loaded %d body samples, vectors dims q=%d s=%d m=%d",
		len(in.Body.Samples), in.Qualia.Dim(), in.Structure.Dim(), in.Memory.Dim())
	return in, nil
}
