// Package dto holds the JSON envelope every console endpoint answers with.
package dto

import (
	"time"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/reconcile"
)

// Response represents a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta tells the client where the data came from. Fallback data is demo
// data shown because the upstream API could not provide any. A client
// receiving two responses for the same view keeps the higher sequence.
type Meta struct {
	Source     reconcile.Source `json:"source"`
	Fallback   bool             `json:"fallback"`
	Total      int              `json:"total"`
	Dropped    int              `json:"dropped,omitempty"`
	Duplicates int              `json:"duplicates,omitempty"`
	FetchedAt  time.Time        `json:"fetched_at"`
	Sequence   uint64           `json:"sequence"`
}

// NewMeta converts snapshot meta for a response holding total records
func NewMeta(m snapshot.Meta, total int) *Meta {
	return &Meta{
		Source:     m.Source,
		Fallback:   m.IsFallback(),
		Total:      total,
		Dropped:    m.Dropped,
		Duplicates: m.Duplicates,
		FetchedAt:  m.FetchedAt,
		Sequence:   m.Sequence,
	}
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithMeta creates a success response with snapshot meta
func NewSuccessResponseWithMeta(data any, meta snapshot.Meta, total int) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta:    NewMeta(meta, total),
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a validation error response
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// IDRequest represents a request with a numeric ID path parameter
type IDRequest struct {
	ID int64 `uri:"id" binding:"required,gt=0"`
}

// ThresholdQuery is the optional ?threshold= of the stock views
type ThresholdQuery struct {
	Threshold int64 `form:"threshold" binding:"omitempty,gt=0"`
}
