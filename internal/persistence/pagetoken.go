// Package persistence contains helpers shared by repository implementations.
package persistence

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"example.com/ftracker/internal/domain"
)

// ErrInvalidPageToken is returned when a list page token cannot be decoded.
var ErrInvalidPageToken = errors.New("invalid page token")

// summaryPageToken is the keyset position (recorded_at, summary_id) of the
// last summary on a page. Summaries are listed newest first, so the next page
// starts strictly below it.
type summaryPageToken struct {
	RecordedAt int64  `json:"r"`
	SummaryID  string `json:"s"`
}

// EncodePageToken renders the keyset position as an opaque URL-safe token.
// A nil cursor means there is no further page and yields "".
func EncodePageToken(c *domain.Cursor) string {
	if c == nil {
		return ""
	}
	body, err := json.Marshal(summaryPageToken{RecordedAt: c.RecordedAt.UnixNano(), SummaryID: c.ID})
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(body)
}

// DecodePageToken parses a token produced by EncodePageToken. An empty token
// selects the first page and yields a nil cursor.
func DecodePageToken(token string) (*domain.Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	body, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var pt summaryPageToken
	if err := dec.Decode(&pt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	if pt.RecordedAt <= 0 || pt.SummaryID == "" {
		return nil, fmt.Errorf("%w: incomplete keyset position", ErrInvalidPageToken)
	}

	return &domain.Cursor{RecordedAt: time.Unix(0, pt.RecordedAt).UTC(), ID: pt.SummaryID}, nil
}
