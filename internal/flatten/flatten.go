// Package flatten converts raw extracted-document payloads into flat field
// maps and ordered per-row table maps, then applies per-data-source field
// mappings to produce typed line fields.
package flatten

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nordbooks/lineflow/internal/domain"
)

// Row is one table row keyed by lowercased column name.
type Row map[string]string

// Document is the flattened form of one source-document payload.
type Document struct {
	Flat map[string]string
	Rows []Row
}

// payloadEntry is one element of the raw payload array: either a flat
// label/value pair or a table block.
type payloadEntry struct {
	Type    string  `json:"type"`
	Label   string  `json:"label"`
	OCRText any     `json:"ocr_text"`
	Columns []string `json:"columns"`
	Rows    [][]any `json:"rows"`
}

// Parse flattens a raw payload. Flat entries fill the field map; every table
// block appends its rows in order, cells zipped against the block's columns.
func Parse(raw json.RawMessage) (*Document, error) {
	var entries []payloadEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("flatten.Parse: %w: %v", domain.ErrInvalidPayload, err)
	}

	doc := &Document{Flat: make(map[string]string)}
	for _, e := range entries {
		switch {
		case e.Type == "table" && len(e.Columns) > 0:
			for _, cells := range e.Rows {
				row := make(Row, len(e.Columns))
				for i, col := range e.Columns {
					if i >= len(cells) {
						break
					}
					row[strings.ToLower(col)] = stringify(cells[i])
				}
				doc.Rows = append(doc.Rows, row)
			}
		case e.Label != "":
			doc.Flat[strings.ToLower(e.Label)] = stringify(e.OCRText)
		}
	}
	return doc, nil
}

// stringify renders a JSON scalar the way OCR text is compared downstream.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		// JSON numbers arrive as float64; %v keeps integral values bare.
		return fmt.Sprintf("%v", t)
	}
}
