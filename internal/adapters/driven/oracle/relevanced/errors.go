package relevanced

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

// ErrorCode is an error code reported by a relevanced server.
type ErrorCode string

// Error codes a relevanced server may return. The set is closed: any other
// code is reported as CodeUnknown.
const (
	CodeCentroidDoesNotExist  ErrorCode = "ECentroidDoesNotExist"
	CodeCentroidAlreadyExists ErrorCode = "ECentroidAlreadyExists"
	CodeDocumentDoesNotExist  ErrorCode = "EDocumentDoesNotExist"
	CodeDocumentAlreadyExists ErrorCode = "EDocumentAlreadyExists"
	CodeUnknown               ErrorCode = "EUnknown"
)

// knownCodes is the closed set of codes that keep their identity.
var knownCodes = map[ErrorCode]bool{
	CodeCentroidDoesNotExist:  true,
	CodeCentroidAlreadyExists: true,
	CodeDocumentDoesNotExist:  true,
	CodeDocumentAlreadyExists: true,
}

// ParseErrorCode maps a raw code to the closed set.
func ParseErrorCode(raw string) ErrorCode {
	code := ErrorCode(raw)
	if knownCodes[code] {
		return code
	}
	return CodeUnknown
}

// OracleError is a non-success response from a relevanced server.
type OracleError struct {
	Status  int
	Code    ErrorCode
	ID      string
	Message string
}

// Error implements the error interface.
func (e *OracleError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relevanced error (status %d, %s)", e.Status, e.Code)
	}
	return fmt.Sprintf("relevanced error (status %d, %s): %s", e.Status, e.Code, e.Message)
}

// Temporary reports whether the failure is on the server side.
// Only temporary failures count against the circuit breaker.
func (e *OracleError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// errorBody is the relevanced error response format.
type errorBody struct {
	Code    string `json:"code"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// decodeError converts a failed response into a domain error.
// fallback names the centroid to blame when the body omits an ID.
func decodeError(status int, body []byte, fallback domain.CentroidID) error {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &OracleError{
			Status:  status,
			Code:    CodeUnknown,
			Message: string(body),
		}
	}

	code := ParseErrorCode(parsed.Code)
	if code == CodeCentroidDoesNotExist {
		id := domain.CentroidID(parsed.ID)
		if id == "" {
			id = fallback
		}
		// Endpoints without a subject centroid cannot name the missing one.
		if id != "" {
			return domain.NewUnknownCentroidError(id)
		}
	}

	return &OracleError{
		Status:  status,
		Code:    code,
		ID:      parsed.ID,
		Message: parsed.Message,
	}
}

// countsAsFailure reports whether err should trip the circuit breaker.
func countsAsFailure(err error) bool {
	if err == nil || errors.Is(err, domain.ErrUnknownCentroid) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var oracleErr *OracleError
	if errors.As(err, &oracleErr) {
		return oracleErr.Temporary()
	}
	return true
}
