/*
Package req provides helpers for parsing HTTP request bodies.

It wraps the strict JSON decoding used by every write endpoint: unknown
fields, malformed JSON and trailing content are all rejected before the
payload reaches business logic.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"alegarazh/internal/pkg/errs"
)

// MaxBodySize limits a JSON request body to 64 KB. Profile statuses and chat
// messages are the largest fields and stay far below this.
const MaxBodySize int64 = 64 << 10

// BindJSON decodes the JSON request body into dst.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.Error {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.New(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.New(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.New(errs.ErrExtraContentInBody)
	}

	return nil
}
