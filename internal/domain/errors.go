package domain

import "errors"

var (
	ErrDocumentNotFound    = errors.New("source document not found")
	ErrMappingNotFound     = errors.New("mapping record not found")
	ErrTrackerNotFound     = errors.New("processed tracker record not found")
	ErrBusinessUnitMissing = errors.New("business unit could not be derived from location")
	ErrNoDataMappings      = errors.New("no field mappings configured for data source")
	ErrInvalidPayload      = errors.New("source document payload is malformed")
)
