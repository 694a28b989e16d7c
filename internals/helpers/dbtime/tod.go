// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTime = errors.New("invalid time of day, expected HH:MM")

// Tod is a wall-clock lab start time with minute precision. The zero value
// means "not set" and is stored as NULL; midnight is a valid, set Tod.
type Tod struct {
	Hour   int
	Minute int
	set    bool
}

func NewTod(hour, minute int) (Tod, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Tod{}, ErrInvalidTime
	}
	return Tod{Hour: hour, Minute: minute, set: true}, nil
}

// TodOf keeps the clock reading of t; seconds are dropped.
func TodOf(t time.Time) Tod {
	return Tod{Hour: t.Hour(), Minute: t.Minute(), set: true}
}

// Parse accepts "HH:MM" or "HH:MM:SS" (seconds must be 00..59 and are dropped).
func Parse(s string) (Tod, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return Tod{}, ErrInvalidTime
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 {
			return Tod{}, ErrInvalidTime
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Tod{}, ErrInvalidTime
		}
		nums[i] = n
	}
	if len(nums) == 3 && (nums[2] < 0 || nums[2] > 59) {
		return Tod{}, ErrInvalidTime
	}
	return NewTod(nums[0], nums[1])
}

func (t Tod) IsZero() bool { return !t.set }

func (t Tod) String() string {
	if !t.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// HHMM renders "1630" for 16:30, "" when unset; used in lab codes.
func (t Tod) HHMM() string {
	if !t.set {
		return ""
	}
	return fmt.Sprintf("%02d%02d", t.Hour, t.Minute)
}

func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		*t = Tod{}
		return nil
	case time.Time:
		*t = TodOf(x)
		return nil
	case []byte:
		return t.scanText(string(x))
	case string:
		return t.scanText(x)
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

func (t *Tod) scanText(s string) error {
	// sqlite hands TIME back as a full timestamp
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexAny(s, ".+Z"); i >= 0 {
		s = s[:i]
	}
	v, err := Parse(s)
	if err != nil {
		return fmt.Errorf("tod: scan %q: %w", s, err)
	}
	*t = v
	return nil
}

// Value sends "HH:MM:00" so a Postgres TIME column accepts it, NULL when unset.
func (t Tod) Value() (driver.Value, error) {
	if !t.set {
		return nil, nil
	}
	return t.String() + ":00", nil
}

func (t Tod) MarshalJSON() ([]byte, error) {
	if !t.set {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Tod{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
