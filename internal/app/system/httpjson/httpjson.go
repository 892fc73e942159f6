// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the small JSON request/response helpers shared
// by the feature handlers.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"go.uber.org/zap"
)

// errorBody is the standard error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode parses the request body into v.
func Decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// StatusOf maps an application error to its HTTP status and the
// message safe to return to the client. Unrecognized errors map to 500
// with a generic message so internal details never leak.
func StatusOf(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest, err.Error()
	case apperr.KindPrecondition:
		return http.StatusConflict, err.Error()
	case apperr.KindNotFound:
		return http.StatusNotFound, err.Error()
	case apperr.KindConflict:
		return http.StatusConflict, err.Error()
	case apperr.KindTransient:
		return http.StatusBadGateway, err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

// Error maps an application error to an HTTP status and writes the
// error envelope. Internal details are logged, not leaked.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status, msg := StatusOf(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("internal error", zap.Error(err))
	}
	Respond(w, status, errorBody{Error: msg})
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	Respond(w, http.StatusBadRequest, errorBody{Error: msg})
}
