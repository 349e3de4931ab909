package domain

// DefaultProductColumn is the header fragment ("product") that identifies the product-name column
const DefaultProductColumn = "المنتج"

// BrandCandidate is a token that looks like a brand name, with its frequency
type BrandCandidate struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DetectionResult is the outcome of brand detection.
// On failure only Success and Error are set.
type DetectionResult struct {
	Success       bool             `json:"success"`
	Brands        []BrandCandidate `json:"brands,omitempty"`
	ProductColumn string           `json:"product_column,omitempty"`
	TotalProducts int              `json:"total_products,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// ExtractionResult is the outcome of filtering a table by brands.
// Table holds the retained rows and is not serialized.
type ExtractionResult struct {
	Success       bool   `json:"success"`
	OutputID      string `json:"output_id,omitempty"`
	OutputPath    string `json:"output_path,omitempty"`
	FilteredCount int    `json:"filtered_count,omitempty"`
	TotalCount    int    `json:"total_count,omitempty"`
	Error         string `json:"error,omitempty"`
	Table         *Table `json:"-"`
}

// DetectionFailure builds the failed form of a DetectionResult
func DetectionFailure(err error, language string) *DetectionResult {
	return &DetectionResult{Success: false, Error: Message(err, language)}
}

// ExtractionFailure builds the failed form of an ExtractionResult
func ExtractionFailure(err error, language string) *ExtractionResult {
	return &ExtractionResult{Success: false, Error: Message(err, language)}
}
