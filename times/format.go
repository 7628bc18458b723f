package times

import (
	"strconv"
	"strings"
)

// FormatDisplacement renders seconds in the canonical token form the
// quantity grammar accepts, e.g. 93784 -> "1d 2h 3m 4s".
func FormatDisplacement(seconds int64) string {
	if seconds == 0 {
		return "0s"
	}

	var b strings.Builder
	if seconds < 0 {
		b.WriteByte('-')
		seconds = -seconds
	}

	units := []struct {
		suffix string
		size   int64
	}{
		{"w", 604800},
		{"d", 86400},
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	}

	first := true
	for _, u := range units {
		if v := seconds / u.size; v > 0 {
			if !first {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatInt(v, 10))
			b.WriteString(u.suffix)
			seconds -= v * u.size
			first = false
		}
	}
	return b.String()
}
