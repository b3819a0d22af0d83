package sandbox

import (
	"encoding/json"
	"net/http"
)

const msgNotFound = "The requested resource was not found."

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Text sends a plain text response, the way the API reports errors.
func Text(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(message))
}

// OK sends a 200 OK response with data.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// NotFound sends the API's 404 response.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Text(w, http.StatusNotFound, msgNotFound)
}

// requestError is an error the handler reports to the client as is.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func invalidValue(field string) *requestError {
	return &requestError{status: http.StatusBadRequest, message: "invalid value for " + field}
}
