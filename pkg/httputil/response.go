package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteDocument writes a rendered document with the given content type
func WriteDocument(w http.ResponseWriter, contentType, body string) error {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte(body))
	return err
}

// WriteError writes a plain text error response. Documents are served as
// text, so errors are too.
func WriteError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	http.Error(w, fmt.Sprintf(format, args...), status)
}

// WriteNotFoundError writes a not found error response (404 Not Found)
func WriteNotFoundError(w http.ResponseWriter, format string, args ...interface{}) {
	WriteError(w, http.StatusNotFound, format, args...)
}

// WriteInternalError writes an internal server error response (500 Internal Server Error)
func WriteInternalError(w http.ResponseWriter, message string, err error) {
	WriteError(w, http.StatusInternalServerError, "%s: %v", message, err)
}
