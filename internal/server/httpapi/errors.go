package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
)

// errMalformedBody is returned when a request body is not the JSON we expect.
var errMalformedBody = errors.New("malformed body")

const internalMessage = "Internal Server Error"

// messages are the stable strings clients match on.
var messages = []struct {
	err error
	msg string
}{
	{common.ErrMissingEmail, "Missing email"},
	{common.ErrMissingPassword, "Missing password"},
	{common.ErrAlreadyExists, "Already exist"},
	{common.ErrMissingName, "Missing name"},
	{common.ErrMissingType, "Missing type"},
	{common.ErrParentNotFound, "Parent not found"},
	{common.ErrParentNotAFolder, "Parent is not a folder"},
	{common.ErrMissingData, "Missing data"},
	{common.ErrInvalidData, "Invalid data"},
	{common.ErrInvalidCredentials, "Unauthorized"},
	{common.ErrorUnauthorized, "Unauthorized"},
	{common.ErrorNotFound, "Not found"},
}

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps err to an HTTP status and the message shown to the client.
// Anything unrecognized, storage faults included, is a 500 whose details stay
// in the server log.
func statusFor(err error) (int, string) {
	if errors.Is(err, errMalformedBody) {
		return http.StatusBadRequest, "Malformed JSON body"
	}

	var status int
	switch common.KindOf(err) {
	case common.KindValidation, common.KindConflict:
		status = http.StatusBadRequest
	case common.KindAuth:
		status = http.StatusUnauthorized
	case common.KindNotFound:
		status = http.StatusNotFound
	default:
		return http.StatusInternalServerError, internalMessage
	}

	for _, m := range messages {
		if errors.Is(err, m.err) {
			return status, m.msg
		}
	}
	return http.StatusInternalServerError, internalMessage
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as {"error": "..."} and logs server-side faults.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error(r.Context(), "request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: msg})
}
