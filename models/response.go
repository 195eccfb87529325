package models

// ApiResponse keeps the raw outcome of an API call so callers can assert on
// status, headers and body shape without re-reading the wire.
type ApiResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}
