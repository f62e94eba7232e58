package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name        string
		statusCodes []int
		want        int
	}{
		{name: "single call", statusCodes: []int{http.StatusCreated}, want: http.StatusCreated},
		{name: "first of two wins", statusCodes: []int{http.StatusAccepted, http.StatusBadRequest}, want: http.StatusAccepted},
		{name: "first of three wins", statusCodes: []int{http.StatusOK, http.StatusCreated, http.StatusNotFound}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rr}

			for _, code := range tt.statusCodes {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.want, w.status)
			assert.Equal(t, tt.want, rr.Code)
			assert.True(t, w.wroteHeader)
		})
	}
}

func TestResponseWriter_Write(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	n, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 11, w.size)
	assert.Equal(t, "hello world", rr.Body.String())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	assert.Equal(t, http.ResponseWriter(rr), w.Unwrap())
}
