package models

// ImportValidationError describes why one row of an import file was
// rejected. Row numbers are 1-based and include the header row, matching
// what authors see in their spreadsheet.
type ImportValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}
