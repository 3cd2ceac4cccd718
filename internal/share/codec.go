// Package share encodes a calendar's course selection into a compact
// URL-safe token and reconciles incoming tokens against the local
// catalog. Tokens carry identifiers only; full course data is resolved
// from the recipient's own catalog at import time.
package share

import (
	"bytes"
	"compress/flate"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/mr-tron/base58"

	"coursecal/internal/model"
)

// QueryParam is the single fixed query parameter carrying the token.
const QueryParam = "s"

// recordVersion tags the share record schema.
const recordVersion = 1

// maxDecodedSize bounds decompression so a hostile token cannot balloon.
const maxDecodedSize = 1 << 20

// ErrInvalidToken marks a structurally undecodable token: bad encoding,
// bad compression, bad JSON or missing required fields.
var ErrInvalidToken = errors.New("invalid share token")

// Record is the versioned, minimal projection of a calendar used for the
// share token.
type Record struct {
	Version int            `json:"v"`
	Name    string         `json:"n"`
	Term    model.Term     `json:"t"`
	Courses []RecordCourse `json:"c"`
}

// RecordCourse is one shared course selection.
type RecordCourse struct {
	CourseID string `json:"id"`
	Section  string `json:"s,omitempty"`
	Hidden   bool   `json:"h,omitempty"`
}

// EncodeToken serializes a calendar's selection into a token. The second
// return is false when the calendar has no courses and there is nothing
// to share.
func EncodeToken(cal *model.Calendar) (string, bool) {
	if cal == nil || len(cal.Courses) == 0 {
		return "", false
	}

	rec := Record{
		Version: recordVersion,
		Name:    cal.Name,
		Term:    cal.Term,
	}
	for _, sel := range cal.Courses {
		rec.Courses = append(rec.Courses, RecordCourse{
			CourseID: sel.CourseID,
			Section:  sel.Section,
			Hidden:   cal.IsHidden(sel.CourseID),
		})
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return "", false
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", false
	}
	if _, err := w.Write(payload); err != nil {
		return "", false
	}
	if err := w.Close(); err != nil {
		return "", false
	}

	return base58.Encode(buf.Bytes()), true
}

// Link builds the full shareable URL for a token on the given origin.
func Link(origin, token string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" {
		u = &url.URL{Scheme: "https", Host: origin}
	}
	q := u.Query()
	q.Set(QueryParam, token)
	u.RawQuery = q.Encode()
	return u.String()
}

// DecodeToken reverses EncodeToken. Every structural failure is reported
// as ErrInvalidToken; nothing panics out.
func DecodeToken(token string) (*Record, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	compressed, err := base58.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	payload, err := io.ReadAll(io.LimitReader(r, maxDecodedSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if rec.Version < 1 || len(rec.Courses) == 0 {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidToken)
	}
	return &rec, nil
}

// TokenFromURL extracts the share token from a pasted link. The second
// return is false when the URL carries no token. A bare token string is
// passed through unchanged.
func TokenFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw, raw != ""
	}
	token := u.Query().Get(QueryParam)
	if token == "" {
		return "", false
	}
	return token, true
}
