package httpx

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/deadbrock/avalia-o/log"
)

// Envelope is the uniform JSON response body of the API.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Total   *int   `json:"total,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK sends a success envelope.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	render.JSON(w, r, Envelope{Success: true, Data: data})
}

// OKTotal sends a success envelope carrying a collection and its size.
func OKTotal(w http.ResponseWriter, r *http.Request, data any, total int) {
	render.JSON(w, r, Envelope{Success: true, Data: data, Total: &total})
}

// Created sends a 201 success envelope with the created record.
func Created(w http.ResponseWriter, r *http.Request, data any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Envelope{Success: true, Data: data})
}

// Fail logs the error code at debug level and sends an error envelope with
// the given status and a human-readable message.
func Fail(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	log.Debugf("%s: %s", code, msg)
	render.Status(r, status)
	render.JSON(w, r, Envelope{Success: false, Error: msg})
}

// LogInternalError logs an error and sends a generic 500 envelope; the
// underlying failure is never surfaced to the caller.
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, Envelope{Success: false, Error: http.StatusText(http.StatusInternalServerError)})
}

// LogNotFound logs a debug message and sends a 404 envelope.
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, Envelope{Success: false, Error: "record not found"})
}
