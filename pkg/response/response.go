package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"cleaning-service-scheduler/pkg/apperror"
)

// Response is the envelope of every JSON body the API writes.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta derives the page count from total and limit.
func NewMeta(page, limit int, total int64) *Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total) / limit
		if int(total)%limit > 0 {
			totalPages++
		}
	}
	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

var kindStatus = map[apperror.Kind]int{
	apperror.KindInvalidInput:      http.StatusBadRequest,
	apperror.KindNotFound:          http.StatusNotFound,
	apperror.KindForbidden:         http.StatusForbidden,
	apperror.KindInvalidState:      http.StatusConflict,
	apperror.KindDuplicateResource: http.StatusConflict,
}

// statusFor maps an error kind to its HTTP status; unknown kinds are 500.
func statusFor(kind apperror.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AppError writes a business error with its message. It reports false,
// writing nothing, when err carries no *apperror.Error so the caller can
// log it and answer with InternalServerError.
func AppError(w http.ResponseWriter, err error) bool {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperror.KindServerFault {
		return false
	}
	Error(w, statusFor(appErr.Kind), appErr.Message, nil)
	return true
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{Success: true, Message: message, Data: data})
}

func SuccessWithMeta(w http.ResponseWriter, statusCode int, message string, data interface{}, meta *Meta) {
	JSON(w, statusCode, Response{Success: true, Message: message, Data: data, Meta: meta})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{Success: false, Message: message, Error: err})
}

// ValidationError carries a field -> message map.
func ValidationError(w http.ResponseWriter, errors interface{}) {
	Error(w, http.StatusBadRequest, "Validation failed", errors)
}

func withDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, withDefault(message, "Unauthorized"), nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, withDefault(message, "Forbidden"), nil)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, withDefault(message, "Resource not found"), nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, withDefault(message, "Internal server error"), nil)
}
