package errors

import "net/http"

// Code classifies a domain error for transport mapping.
type Code string

const (
	// CodeInvalidArgument marks caller input errors.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeUnauthorized marks shared-secret verification failures.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeNotQualified marks verification rejections.
	CodeNotQualified Code = "NOT_QUALIFIED"
	// CodeNotFound marks missing records.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnavailable marks infrastructure failures that the caller may retry.
	CodeUnavailable Code = "UNAVAILABLE"
	// CodeMisconfigured marks missing server configuration.
	CodeMisconfigured Code = "MISCONFIGURED"
	// CodeInternal marks everything else.
	CodeInternal Code = "INTERNAL"
)

// HTTPStatus maps the code to an HTTP response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotQualified:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeMisconfigured, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
