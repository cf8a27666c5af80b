package interval

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		millis int64
		ok     bool
	}{
		{in: "2 days", millis: 172800000, ok: true},
		{in: "1 day", millis: 86400000, ok: true},
		{in: "1 week", millis: 604800000, ok: true},
		{in: "2 weeks", millis: 1209600000, ok: true},
		{in: "3 HOURS", millis: 10800000, ok: true},
		{in: "1 hour", millis: 3600000, ok: true},
		{in: "1 month", millis: 2592000000, ok: true},
		{in: "6 Months", millis: 6 * 2592000000, ok: true},
		{in: "0 days", millis: 0, ok: true},
		{in: "12hours", millis: 43200000, ok: true},
		{in: "  4 days  ", millis: 345600000, ok: true},
		{in: "banana"},
		{in: ""},
		{in: "days"},
		{in: "two days"},
		{in: "2 fortnights"},
		{in: "-1 day"},
		{in: "1.5 days"},
		{in: "every 2 days"},
		{in: "99999999999999999999 days"},
		{in: "9223372036854775807 months"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := Parse(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.millis, Millis(got))
			} else {
				assert.Zero(t, got)
			}
		})
	}
}

func TestParseUnitConstants(t *testing.T) {
	t.Parallel()

	units := map[string]time.Duration{"days": Day, "WEEKS": Week, "Hours": Hour, "months": Month}
	for n := int64(0); n < 50; n++ {
		for word, unit := range units {
			got, ok := Parse(strconv.FormatInt(n, 10) + " " + word)
			assert.True(t, ok)
			assert.Equal(t, time.Duration(n)*unit, got)
		}
	}
}
