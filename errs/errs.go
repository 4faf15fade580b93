package errs

import "errors"

const (
	CodeInvalidRequest      = "invalid_request"
	CodeFetchFailed         = "fetch_failed"
	CodeNoData              = "no_data"
	CodeTimeout             = "timeout"
	CodeInternalServerError = "internal_server_error"
)

var (
	ErrCoordinatorStopped = errors.New("fetch coordinator is stopped")
	ErrMalformedURL       = errors.New("malformed url")
)

// FetchFailedError is returned when a page could not be retrieved and no
// cached snapshot was available to fall back to.
type FetchFailedError struct {
	Message    string
	Code       string
	StatusCode int
	LeagueType string
}

func (e FetchFailedError) Error() string {
	return e.Message
}

func NewFetchFailedError(message string, statusCode int, leagueType string) FetchFailedError {
	return FetchFailedError{Message: message, Code: CodeFetchFailed, StatusCode: statusCode, LeagueType: leagueType}
}

// NoDataError is returned when extraction produced no teams and no fixtures
// and there was no stored snapshot to substitute.
type NoDataError struct {
	Message    string
	LeagueType string
}

func (e NoDataError) Error() string {
	return e.Message
}

func NewNoDataError(message string, leagueType string) NoDataError {
	return NoDataError{Message: message, LeagueType: leagueType}
}
