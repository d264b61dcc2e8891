package errors

import (
	"net/http"
	"strings"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeDuplicateCode   = "DUPLICATE_CODE"
	CodeInvalidCriteria = "INVALID_CRITERIA"
	CodeValidation      = "VALIDATION_FAILED"
	CodeAmbiguousCode   = "AMBIGUOUS_CODE"
	CodeOperationDenied = "OPERATION_DENIED"
)

var (
	ErrDuplicateCode = New(
		CodeDuplicateCode,
		"Code already exists in this scope",
		http.StatusConflict,
	)

	ErrInvalidCriteria = New(
		CodeInvalidCriteria,
		"Invalid search criteria",
		http.StatusBadRequest,
	)

	ErrValidation = New(
		CodeValidation,
		"Request validation failed",
		http.StatusBadRequest,
	)

	ErrAmbiguousCode = New(
		CodeAmbiguousCode,
		"Code is not unique across parents, parent code is required",
		http.StatusBadRequest,
	)

	ErrOperationDenied = New(
		CodeOperationDenied,
		"Operation is not allowed in the current state",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Latitude and longitude must be provided together",
		http.StatusBadRequest,
	)

	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Geometry must be a GeoJSON Polygon or MultiPolygon",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// NotFound - ошибка отсутствия сущности уровня entity (PROVINCE_NOT_FOUND, WARD_NOT_FOUND, ...)
func NotFound(entity, key string) *AppError {
	return New(
		entityCode(entity)+"_"+CodeNotFound,
		entityTitle(entity)+" not found",
		http.StatusNotFound,
	).WithDetails(map[string]interface{}{
		"entity": entity,
		"code":   key,
	})
}

func entityCode(entity string) string {
	return strings.ToUpper(entity)
}

func entityTitle(entity string) string {
	if entity == "" {
		return "Location"
	}
	return strings.ToUpper(entity[:1]) + entity[1:]
}
