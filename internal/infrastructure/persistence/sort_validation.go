package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is invalid, empty, or not
// in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ReturnTransactionSortFields contains allowed sort fields for return
// transactions
var ReturnTransactionSortFields = map[string]bool{
	"id":                        true,
	"created_at":                true,
	"updated_at":                true,
	"number":                    true,
	"kind_code":                 true,
	"document_number":           true,
	"customer_name":             true,
	"situation_id":              true,
	"total_refund_amount":       true,
	"total_exchange_difference": true,
}

// SalesOrderSortFields contains allowed sort fields for the sales order
// source view
var SalesOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"order_number":  true,
	"customer_name": true,
	"total_amount":  true,
	"order_date":    true,
}
