package receipt

import (
	"fmt"
	"strings"
)

// Validator enforces the input contract the generation core assumes:
// fields are checked here, before Data is ever constructed.
type Validator struct {
	Config Config
}

func (v Validator) Validate(req GenerateRequest) ValidationResult {
	errors := make([]ValidationErrorItem, 0)

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, errItem("RCPT-REQ-001", "name", "Payee name is required"))
	}
	if len(req.Name) > v.Config.MaxNameLen {
		errors = append(errors, errItem("RCPT-LIMIT-001", "name", fmt.Sprintf("Name too long (max %d)", v.Config.MaxNameLen)))
	}

	if strings.TrimSpace(req.Date) == "" && req.IssueDate == nil {
		errors = append(errors, errItem("RCPT-REQ-002", "date/issueDate", "Issue date is required"))
	}

	if req.AmountTaxExcluded < 0 {
		errors = append(errors, errItem("RCPT-MATH-001", "amountTaxExcluded", "Amount must be a non-negative integer"))
	}

	if len(req.Description) > v.Config.MaxDescLen {
		errors = append(errors, errItem("RCPT-LIMIT-002", "description", fmt.Sprintf("Description too long (max %d)", v.Config.MaxDescLen)))
	}

	if req.Filename != "" && strings.ContainsAny(req.Filename, `/\`) {
		errors = append(errors, errItem("RCPT-REQ-003", "filename", "Filename must not contain path separators"))
	}

	return ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func errItem(code, path, message string) ValidationErrorItem {
	return ValidationErrorItem{
		Code:    code,
		Path:    path,
		Message: message,
	}
}
