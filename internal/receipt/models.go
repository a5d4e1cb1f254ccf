package receipt

import (
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// TaxRate is the Japanese consumption tax rate applied to tax-excluded
// amounts.
const TaxRate = 0.10

// ErrTemplateNotFound indicates the configured template PDF does not
// exist. Nothing is written when this is returned.
var ErrTemplateNotFound = errors.New("receipt template not found")

// Data is the validated input for one receipt. Derivation and
// formatting are pure functions of these four fields; validation is
// the caller's responsibility (see Validator).
type Data struct {
	Date              string
	Name              string
	AmountTaxExcluded int
	Description       string
}

// TaxAmount derives the consumption tax, truncated toward zero.
func (d Data) TaxAmount() int {
	return int(float64(d.AmountTaxExcluded) * TaxRate)
}

// TotalAmount derives the tax-included total.
func (d Data) TotalAmount() int {
	return d.AmountTaxExcluded + d.TaxAmount()
}

// FormattedFields returns the display strings drawn onto the template,
// keyed by layout field name.
func (d Data) FormattedFields() map[string]string {
	return map[string]string{
		"date":        d.Date,
		"name":        d.Name,
		"amount":      formatYen(d.TotalAmount()) + "-",
		"tax":         formatYen(d.TaxAmount()),
		"breakdown":   formatYen(d.AmountTaxExcluded),
		"description": d.Description,
	}
}

// GenerateRequest mirrors the POST /receipts body. Either Date (a
// preformatted display string) or IssueDate (ISO date, formatted
// server-side) must be present.
type GenerateRequest struct {
	Name              string              `json:"name"`
	AmountTaxExcluded int                 `json:"amountTaxExcluded"`
	Description       string              `json:"description,omitempty"`
	Date              string              `json:"date,omitempty"`
	IssueDate         *openapi_types.Date `json:"issueDate,omitempty"`
	Filename          string              `json:"filename,omitempty"`
}

type GenerateResponse struct {
	ReceiptID    string `json:"receiptId"`
	Path         string `json:"path"`
	TaxAmount    int    `json:"taxAmount"`
	TotalAmount  int    `json:"totalAmount"`
	DegradedFont bool   `json:"degradedFont"`
}

type ValidationErrorItem struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool                  `json:"valid"`
	Errors []ValidationErrorItem `json:"errors"`
}
