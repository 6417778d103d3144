package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errUnparseableTime = errors.New("unparseable airing time")

// isoLayouts are tried in order for string airing times that are not
// plain integers. Values without an offset are read as UTC.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseAiringTime collapses the accepted airing-time representations
// (integer epoch seconds, numeric string, ISO-8601 string) into epoch
// seconds. Null, missing values and non-scalar shapes are errors;
// callers log and skip the owning entry rather than fail the batch.
func ParseAiringTime(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, errUnparseableTime
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("decode airing time: %w", err)
	}

	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, errUnparseableTime
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		for _, layout := range isoLayouts {
			if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return ts.Unix(), nil
			}
		}
		return 0, fmt.Errorf("%w: %q", errUnparseableTime, s)
	default:
		// null, objects, arrays, booleans
		return 0, errUnparseableTime
	}
}
