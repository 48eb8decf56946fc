package runtime

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/goccy/go-json"
)

// DateTime is the Go type of the DateTime scalar. It is read from either a
// number of milliseconds since epoch or an RFC 3339 string, and always
// written as milliseconds since epoch.
type DateTime struct {
	time.Time
}

// NewDateTime returns t as a DateTime.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// DateTimeFromMillis returns the DateTime ms milliseconds after epoch, in UTC.
func DateTimeFromMillis(ms int64) DateTime {
	return DateTime{Time: time.UnixMilli(ms).UTC()}
}

// MarshalGQL implements graphql.Marshaler interface.
func (d DateTime) MarshalGQL(w io.Writer) {
	graphql.MarshalInt64(d.UnixMilli()).MarshalGQL(w)
}

// UnmarshalGQL implements graphql.Unmarshaler interface.
func (d *DateTime) UnmarshalGQL(v any) error {
	if s, ok := v.(string); ok {
		t, err := graphql.UnmarshalTime(s)
		if err != nil {
			return fmt.Errorf("DateTime %q is not an ISO-8601 string: %w", s, err)
		}
		d.Time = t
		return nil
	}
	ms, err := graphql.UnmarshalInt64(v)
	if err != nil {
		return fmt.Errorf("DateTime must be milliseconds or an ISO-8601 string: %w", err)
	}
	*d = DateTimeFromMillis(ms)
	return nil
}

// MarshalJSON writes the number of milliseconds since epoch.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, d.UnixMilli(), 10), nil
}

// UnmarshalJSON reads milliseconds since epoch or an ISO-8601 string.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return d.UnmarshalGQL(v)
}
