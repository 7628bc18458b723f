package bot

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// confirmTimeout bounds the wait for a follow-up confirmation reply.
const confirmTimeout = 60 * time.Second

var (
	digitsTokenRe = regexp.MustCompile(`\d+`)
	wordRe        = regexp.MustCompile(`[a-z]+`)
)

func atoiSafe(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func itoa(v int) string { return strconv.Itoa(v) }

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
