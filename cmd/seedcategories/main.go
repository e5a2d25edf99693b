// Command seedcategories converts a category-mapping Excel workbook into a
// SQL seed file. The workbook is the review sheet operations maintain:
// column A = category name, B = variant product name, C = product code,
// D = supplier name. Data starts on row 2.
// Usage: go run ./cmd/seedcategories <workbook.xlsx> <organization-uuid>
// Output: db/seeds/category_mappings.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type mappingEntry struct {
	categoryName string
	productName  string
	productCode  string // empty = NULL
	supplierName string // empty = NULL
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: seedcategories <workbook.xlsx> <organization-uuid>")
	}
	xlsxPath := os.Args[1]
	orgID, err := uuid.Parse(os.Args[2])
	if err != nil {
		return fmt.Errorf("invalid organization uuid: %w", err)
	}
	outPath := "db/seeds/category_mappings.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseMappingSheet(f)
	if err != nil {
		return fmt.Errorf("parse mapping sheet: %w", err)
	}
	log.Printf("mapping sheet: %d entries", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Category mapping seed data generated from the review workbook.",
		fmt.Sprintf("-- %d entries for organization %s in batches of %d.", len(entries), orgID, batchSize),
		"-- Run: make seed-categories",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, orgID, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

func parseMappingSheet(f *excelize.File) ([]mappingEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []mappingEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		e := mappingEntry{
			categoryName: strings.TrimSpace(cell(row, 0)),
			productName:  strings.TrimSpace(cell(row, 1)),
			productCode:  strings.TrimSpace(cell(row, 2)),
			supplierName: strings.TrimSpace(cell(row, 3)),
		}
		if e.categoryName == "" || e.productName == "" {
			continue
		}
		key := strings.ToLower(e.productName + "|" + e.productCode + "|" + e.supplierName)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, e)
	}
	return entries, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func writeBatch(out *os.File, orgID uuid.UUID, entries []mappingEntry) error {
	if _, err := fmt.Fprintln(out, `INSERT INTO category_mappings
  (mapping_id, organization_id, category_id, variant_product_name, variant_product_code, variant_supplier_name, is_active)
VALUES`); err != nil {
		return err
	}

	for i, e := range entries {
		sep := ","
		if i == len(entries)-1 {
			sep = ""
		}
		// The category subselect requires the categories to be seeded first.
		_, err := fmt.Fprintf(out,
			"  (gen_random_uuid(), '%s', (SELECT category_id FROM product_categories WHERE organization_id = '%s' AND category_name = %s), %s, %s, %s, TRUE)%s\n",
			orgID, orgID, sqlString(e.categoryName),
			sqlString(e.productName), sqlNullString(e.productCode), sqlNullString(e.supplierName), sep)
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(out, "ON CONFLICT DO NOTHING;")
	return err
}

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sqlNullString(s string) string {
	if s == "" {
		return "NULL"
	}
	return sqlString(s)
}
