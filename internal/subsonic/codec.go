package subsonic

import (
	"fmt"
	"time"
)

// Wire timestamp layouts. The server sends ISO-8601-like timestamps with a
// microsecond fraction and a numeric zone offset. Parsing tolerates shorter
// fractions; encoding always emits the full six digits so that sub-second
// precision survives a decode/encode round trip byte for byte.
const (
	wireTimeParseLayout  = "2006-01-02T15:04:05.999999-0700"
	wireTimeEncodeLayout = "2006-01-02T15:04:05.000000-0700"
)

// decodeInstant parses a wire timestamp. Absent timestamps are common and
// meaningful, so an empty string decodes to nil rather than an error.
func decodeInstant(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(wireTimeParseLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timestamp %q", ErrTypeMismatch, raw)
	}
	return &t, nil
}

// encodeInstant is the exact inverse of decodeInstant.
func encodeInstant(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(wireTimeEncodeLayout)
}

// decodeSeconds converts a wire duration, given in seconds.
func decodeSeconds(raw float64) time.Duration {
	return time.Duration(raw * float64(time.Second))
}

// encodeSeconds is the exact inverse of decodeSeconds. Whole-second values
// encode as integers, matching what a real server sends.
func encodeSeconds(d time.Duration) any {
	if d%time.Second == 0 {
		return int64(d / time.Second)
	}
	return d.Seconds()
}

// decodeMillis converts a wire duration given in milliseconds. The play-queue
// position is the one field the protocol reports in milliseconds.
func decodeMillis(raw float64) time.Duration {
	return time.Duration(raw * float64(time.Millisecond))
}

// encodeMillis is the exact inverse of decodeMillis.
func encodeMillis(d time.Duration) any {
	if d%time.Millisecond == 0 {
		return int64(d / time.Millisecond)
	}
	return float64(d) / float64(time.Millisecond)
}
