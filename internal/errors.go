package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidLevel     ErrorCode = "INVALID_LEVEL"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeAdminRequired      ErrorCode = "ADMIN_REQUIRED"
	ErrCodeMissingPermission  ErrorCode = "MISSING_PERMISSION"
	ErrCodeInsufficientGrade  ErrorCode = "INSUFFICIENT_GRADE"
	ErrCodeCannotEditSuperior ErrorCode = "CANNOT_EDIT_SUPERIOR"
	ErrCodeCannotPromoteAbove ErrorCode = "CANNOT_PROMOTE_ABOVE"
	ErrCodeCannotDeleteSelf   ErrorCode = "CANNOT_DELETE_SELF"

	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeGradeNotFound   ErrorCode = "GRADE_NOT_FOUND"
	ErrCodePatientNotFound ErrorCode = "PATIENT_NOT_FOUND"
	ErrCodeReportNotFound  ErrorCode = "REPORT_NOT_FOUND"
	ErrCodeRuleNotFound    ErrorCode = "RULE_NOT_FOUND"

	ErrCodeUsernameTaken           ErrorCode = "USERNAME_TAKEN"
	ErrCodeGradeInUse              ErrorCode = "GRADE_IN_USE"
	ErrCodeCascadeConfirmRequired  ErrorCode = "CASCADE_CONFIRMATION_REQUIRED"
	ErrCodeAppointmentNotFound     ErrorCode = "APPOINTMENT_NOT_FOUND"
	ErrCodeInvalidAppointmentState ErrorCode = "INVALID_APPOINTMENT_STATE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// CascadeConflictDetails is the structured payload carried by the patient
// cascade-delete conflict so callers can re-request with an explicit force flag.
type CascadeConflictDetails struct {
	RequiresForce  bool  `json:"requires_force"`
	DependentCount int64 `json:"dependent_count"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewExternalError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadGateway,
	}
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("invalid username or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)

	ErrAdminRequired      = NewForbiddenError("administrator access required", ErrCodeAdminRequired)
	ErrInsufficientGrade  = NewForbiddenError("cannot manage a grade at or above your own level", ErrCodeInsufficientGrade)
	ErrCannotEditSuperior = NewForbiddenError("cannot modify a user at or above your own level", ErrCodeCannotEditSuperior)
	ErrCannotPromoteAbove = NewForbiddenError("cannot assign a grade at or above your own level", ErrCodeCannotPromoteAbove)
	ErrCannotDeleteSelf   = NewValidationError("cannot delete your own account", ErrCodeCannotDeleteSelf)

	ErrUserNotFound        = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrGradeNotFound       = NewNotFoundError("grade not found", ErrCodeGradeNotFound)
	ErrPatientNotFound     = NewNotFoundError("patient not found", ErrCodePatientNotFound)
	ErrReportNotFound      = NewNotFoundError("report not found", ErrCodeReportNotFound)
	ErrAppointmentNotFound = NewNotFoundError("appointment not found", ErrCodeAppointmentNotFound)
	ErrRuleNotFound        = NewNotFoundError("diagnosis rule not found", ErrCodeRuleNotFound)

	ErrUsernameTaken = NewConflictError("username already exists", ErrCodeUsernameTaken)
	ErrGradeInUse    = NewConflictError("grade is still assigned to users", ErrCodeGradeInUse)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
