package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"stocktrack-backend/internal/models"
)

// exportColumns is the fixed export column order. The header names are
// chosen so an exported file re-imports without modification.
var exportColumns = []string{
	"id", "name", "unit", "category", "brand",
	"stock", "status", "image", "createdAt", "updatedAt",
}

// WriteProductsCSV writes the products in the fixed export column order.
func WriteProductsCSV(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range products {
		image := ""
		if p.Image != nil {
			image = *p.Image
		}
		record := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			p.Unit,
			p.Category,
			p.Brand,
			strconv.Itoa(p.Stock),
			p.Status,
			image,
			p.CreatedAt.Format(time.RFC3339),
			p.UpdatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadProductRows parses a CSV stream into raw row maps keyed by the
// lower-cased, trimmed header names. Ragged rows are tolerated here;
// rows with missing fields fail validation during import instead of
// aborting the parse.
func ReadProductRows(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []map[string]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
