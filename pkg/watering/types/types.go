package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// CropAddedRequest is the body of POST /onCropAdded. CropID is the key of the
// planted user crop record; Data.CropID references the crop definition.
type CropAddedRequest struct {
	CropID string        `json:"cropId"`
	Data   CropAddedData `json:"data"`
}

type CropAddedData struct {
	PlantedTimestamp *Timestamp `json:"plantedTimestamp"`
	CropID           string     `json:"cropId"`
	UserID           string     `json:"userId"`
}

type CropAddedResponse struct {
	Success               bool      `json:"success"`
	NextWateringTimestamp Timestamp `json:"nextWateringTimestamp"`
}

// Timestamp decodes epoch milliseconds, RFC 3339 strings and the
// {"_seconds","_nanoseconds"} / {"seconds","nanos"} objects mobile SDKs send.
// It encodes as RFC 3339 in UTC with millisecond precision.
type Timestamp struct{ time.Time }

const layout = "2006-01-02T15:04:05.000Z07:00"

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(layout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.Time = time.UnixMilli(ms).UTC()
			return nil
		}
		v, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", s, err)
		}
		t.Time = v.UTC()
	case '{':
		var obj struct {
			Seconds     *int64 `json:"_seconds"`
			Nanoseconds int64  `json:"_nanoseconds"`
			Sec         *int64 `json:"seconds"`
			Nanos       int64  `json:"nanos"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		switch {
		case obj.Seconds != nil:
			t.Time = time.Unix(*obj.Seconds, obj.Nanoseconds).UTC()
		case obj.Sec != nil:
			t.Time = time.Unix(*obj.Sec, obj.Nanos).UTC()
		default:
			return fmt.Errorf("timestamp object without seconds: %s", b)
		}
	default:
		var ms json.Number
		if err := json.Unmarshal(b, &ms); err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		if n, err := ms.Int64(); err == nil {
			t.Time = time.UnixMilli(n).UTC()
			return nil
		}
		// fractional or exponent form
		f, err := ms.Float64()
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return fmt.Errorf("timestamp %s out of range", ms)
		}
		t.Time = time.UnixMilli(int64(f)).UTC()
	}
	return nil
}
