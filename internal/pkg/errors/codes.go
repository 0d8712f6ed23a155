package errors

import "net/http"

var (
	ErrMissingParameter = New(
		"MISSING_PARAMETER",
		"Required parameter is missing",
		http.StatusBadRequest,
	)

	ErrInvalidParameter = New(
		"INVALID_PARAMETER",
		"Invalid parameter value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	ErrRegionNotFound = New(
		"REGION_NOT_FOUND",
		"Region not found",
		http.StatusNotFound,
	)

	ErrNoRegionsFound = New(
		"REGION_NOT_FOUND",
		"No regions found within the specified distance",
		http.StatusNotFound,
	)

	ErrDuplicateRegion = New(
		"DUPLICATE_REGION",
		"Region with the same name and coordinates already exists for the user",
		http.StatusConflict,
	)

	ErrRegionIDConflict = New(
		"REGION_ID_CONFLICT",
		"Region with the same id already exists",
		http.StatusConflict,
	)

	ErrOwnerNotFound = New(
		"OWNER_NOT_FOUND",
		"Owning user does not exist",
		http.StatusInternalServerError,
	)

	ErrResolution = New(
		"RESOLUTION_ERROR",
		"Location resolution failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
