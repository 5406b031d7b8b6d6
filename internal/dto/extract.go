package dto

// AI extraction DTOs. These mirror the external extraction service's wire
// format; the proxy forwards the request body unchanged and passes the
// response through, so field shapes must match the upstream contract.

// ExtractCategory is a category descriptor sent to the extraction service.
// CategoryID is an opaque string chosen by the client, not a database ID.
type ExtractCategory struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	IsDefault  bool   `json:"is_default"`
}

// ExtractInputData carries the free-text paragraph and the caller's
// category vocabulary
type ExtractInputData struct {
	Paragraph  string            `json:"paragraph"`
	Categories []ExtractCategory `json:"categories"`
}

// ExtractRequest is the full request body forwarded to the extraction service
type ExtractRequest struct {
	InputData           ExtractInputData `json:"input_data"`
	ConversationHistory []interface{}    `json:"conversation_history"`
}

// ExtractedExpense is a single expense candidate found in the paragraph
type ExtractedExpense struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	CategoryID  string  `json:"category_id"`
	Description string  `json:"description"`
	Date        *string `json:"date"`
	Merchant    *string `json:"merchant"`
}

// ExtractOutputData is the extraction service's result payload
type ExtractOutputData struct {
	Expenses       []ExtractedExpense `json:"expenses"`
	TotalAmount    float64            `json:"total_amount"`
	Currency       string             `json:"currency"`
	CategoriesUsed []ExtractCategory  `json:"categories_used"`
}

// ExtractResponse is the extraction service's response envelope, passed
// through to clients with the upstream HTTP status
type ExtractResponse struct {
	Success    bool               `json:"success"`
	OutputData *ExtractOutputData `json:"output_data,omitempty"`
	Error      *string            `json:"error,omitempty"`
}
