package errors

import "net/http"

var (
	ErrBoundaryNotFound = New(
		"BOUNDARY_NOT_FOUND",
		"City boundary not found",
		http.StatusNotFound,
	)

	ErrReferenceNotFound = New(
		"REFERENCE_NOT_FOUND",
		"City reference not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidCityID = New(
		"INVALID_CITY_ID",
		"Invalid city ID",
		http.StatusBadRequest,
	)

	ErrEmptySegments = New(
		"EMPTY_SEGMENTS",
		"No boundary segments provided",
		http.StatusBadRequest,
	)

	ErrStitchingFailed = New(
		"STITCHING_FAILED",
		"Way stitching produced no closed rings",
		http.StatusUnprocessableEntity,
	)

	ErrBoundaryRejected = New(
		"BOUNDARY_REJECTED",
		"Boundary failed area validation",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrUpstreamError = New(
		"UPSTREAM_ERROR",
		"OSM upstream request failed",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
