package domain

// DocumentStatus represents the lifecycle of a source document.
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusProcessed  DocumentStatus = "processed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// NonTerminalStatuses are the statuses picked up by the batch sweep.
var NonTerminalStatuses = []DocumentStatus{
	DocumentStatusPending,
	DocumentStatusProcessing,
	DocumentStatusFailed,
}

// TrackerStatus represents the lifecycle of a processed-tracker record.
type TrackerStatus string

const (
	TrackerStatusPending    TrackerStatus = "pending"
	TrackerStatusProcessing TrackerStatus = "processing"
	TrackerStatusProcessed  TrackerStatus = "processed"
	TrackerStatusFailed     TrackerStatus = "failed"
)

// MappingStatus represents the review state of a pending mapping suggestion.
type MappingStatus string

const (
	MappingStatusPending  MappingStatus = "pending"
	MappingStatusApproved MappingStatus = "approved"
	MappingStatusRejected MappingStatus = "rejected"
)

// Transformation names a field-mapping transformation applied during flattening.
type Transformation string

const (
	TransformToNumber      Transformation = "to_number"
	TransformTrim          Transformation = "trim"
	TransformToDate        Transformation = "to_date"
	TransformNormalizeUnit Transformation = "normalize_unit"
)

// DiscountPattern classifies how discount amounts are expressed across the
// lines of one document. It is computed per document and never persisted.
type DiscountPattern string

const (
	PatternPerUnit   DiscountPattern = "per_unit"
	PatternTotalLine DiscountPattern = "total_line"
	PatternMixed     DiscountPattern = "mixed"
)
