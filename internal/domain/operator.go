package domain

import (
	"net/url"
	"strings"
)

// Record is an API object the store passes through without interpreting.
type Record map[string]any

// OperatorSummary is a list-view projection of an operator.
type OperatorSummary Record

// OperatorDetail is the full record of a single operator.
type OperatorDetail Record

// Expense is one entry of an operator's expense history.
type Expense Record

// Query holds the list parameters the caller edits before listing.
type Query struct {
	Page       int    `json:"page" yaml:"page"`
	PageSize   int    `json:"pageSize" yaml:"pageSize"`
	SearchText string `json:"searchText" yaml:"searchText"`
}

// Normalize clamps the query into its valid range.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 0 {
		q.PageSize = 0
	}
	return q
}

// Params builds the collection request parameters. An empty search text is
// omitted rather than sent as an empty filter.
func (q Query) Params() Params {
	params := Params{
		ParamPage:  q.Page,
		ParamLimit: q.PageSize,
	}
	if q.SearchText != "" {
		params[ParamSearch] = q.SearchText
	}
	return params
}

// ListResult is the reconciled outcome of a collection request.
type ListResult struct {
	Items []OperatorSummary `json:"items" yaml:"items"`
	Total int               `json:"total" yaml:"total"`
}

// RequestStatus tracks one operation family. An empty ErrorMessage and a zero
// ErrorCode mean no error.
type RequestStatus struct {
	Loading      bool   `json:"loading" yaml:"loading"`
	ErrorMessage string `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	ErrorCode    int    `json:"errorCode,omitempty" yaml:"errorCode,omitempty"`
}

// Failed reports whether the last completed call set an error.
func (s RequestStatus) Failed() bool {
	return s.ErrorMessage != ""
}

// TotalPages returns ceil(total/pageSize), or 1 when pageSize is zero.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// OperatorPath returns the detail endpoint for an identifier.
func OperatorPath(id string) string {
	return OperatorsPath + "/" + url.PathEscape(strings.TrimSpace(id))
}

// OperatorExpensesPath returns the expense history endpoint for an identifier.
func OperatorExpensesPath(id string) string {
	return OperatorPath(id) + "/" + operatorExpensesPath
}
