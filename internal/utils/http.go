package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data and writes it with the given status code and an
// application/json content type. When marshaling fails a 500 is written
// instead and the error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	return WriteBody(w, jsonData, "application/json", statusCode)
}

// WriteBody writes body as is with the given content type and status code.
// Nothing is written after the header when body is empty or statusCode
// does not allow a body (1xx, 204, 304).
func WriteBody(w http.ResponseWriter, body []byte, contentType string, statusCode int) (int, error) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)

	if len(body) == 0 || !bodyAllowed(statusCode) {
		return 0, nil
	}
	return w.Write(body)
}

func bodyAllowed(statusCode int) bool {
	switch {
	case statusCode >= 100 && statusCode < 200:
		return false
	case statusCode == http.StatusNoContent, statusCode == http.StatusNotModified:
		return false
	}
	return true
}
