/*
Package resp provides helpers for sending JSON responses.

Success responses are the raw payload of the endpoint contract (no envelope);
error responses are a {"message": ...} object whose message text the client
may render verbatim or route onto a form field.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"alegarazh/internal/pkg/errs"
	"alegarazh/internal/pkg/logx"
)

// ErrorBody is the error response shape of the backend contract.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON writes payload with the given HTTP status.
func JSON(w http.ResponseWriter, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "error encoding JSON response", "http_status", httpStatus)
		http.Error(w, "error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(body)
}

// Success writes payload with HTTP 200 OK.
func Success(w http.ResponseWriter, payload any) {
	JSON(w, http.StatusOK, payload)
}

// Error writes the application error as a {"message": ...} body with its
// mapped HTTP status.
func Error(w http.ResponseWriter, appErr *errs.Error) {
	if appErr == nil {
		appErr = errs.New(errs.ErrUnknown)
	}

	JSON(w, appErr.Status, ErrorBody{Message: appErr.Message})
}
