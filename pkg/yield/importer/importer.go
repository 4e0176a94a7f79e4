// Package importer reads crop yield configs from spreadsheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"alphafarm/entities"
)

var ErrMissingColumns = errors.New("yield config needs crop and yield columns")

// LoadFile picks the reader by extension: .xlsx (first sheet) or .csv.
func LoadFile(path string) ([]entities.CropYieldConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, filepath.Ext(path))
}

// Load reads rows from r. ext is ".xlsx" or ".csv".
func Load(r io.Reader, ext string) ([]entities.CropYieldConfig, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(ext) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = csv.NewReader(r).ReadAll()
	default:
		return nil, fmt.Errorf("unsupported yield config format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	return parse(rows)
}

func readXLSX(r io.Reader) ([][]string, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return x.GetRows(sheets[0])
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func parse(rows [][]string) ([]entities.CropYieldConfig, error) {
	if len(rows) == 0 {
		return nil, ErrMissingColumns
	}
	hmap := map[string]int{}
	for i, h := range rows[0] {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("crop_name", "crop")
	cSoil := findAny("soil_type", "soil")
	cSeason := findAny("season")
	cIrr := findAny("irrigation_type", "irrigation")
	cYield := findAny("yield_quintals_per_acre", "yield_per_acre", "yield", "quintals_per_acre")
	cActive := findAny("is_active", "active")
	if cCrop == -1 || cYield == -1 {
		return nil, fmt.Errorf("%w; found headers: %v", ErrMissingColumns, rows[0])
	}

	var out []entities.CropYieldConfig
	for _, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		crop := get(cCrop)
		y, err := strconv.ParseFloat(get(cYield), 64)
		if crop == "" || err != nil || y <= 0 {
			continue
		}
		active := true
		if v, err := strconv.ParseBool(get(cActive)); err == nil {
			active = v
		}
		out = append(out, entities.CropYieldConfig{
			CropName:       crop,
			SoilType:       get(cSoil),
			Season:         get(cSeason),
			IrrigationType: get(cIrr),
			YieldPerAcre:   y,
			IsActive:       active,
		})
	}
	return out, nil
}
