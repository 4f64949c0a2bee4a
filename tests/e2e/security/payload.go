package security

import (
	"regexp"
	"strconv"
	"strings"
)

// Payloads may be literal strings or a compact repeat descriptor
// REPEAT_<pattern>_<count>. The pattern may carry \uXXXX unicode escapes and
// %XX percent-encoded bytes; escapes are decoded first, then the decoded
// pattern is repeated count times. This keeps multi-kilobyte overflow probes
// out of the fixture file.
var (
	repeatRe  = regexp.MustCompile(`^REPEAT_(.+)_([0-9]+)$`)
	unicodeRe = regexp.MustCompile(`\\u[0-9a-fA-F]{4}`)
	percentRe = regexp.MustCompile(`%[0-9a-fA-F]{2}`)
)

// ExpandPayload expands a repeat descriptor into its literal form. Payloads
// that do not match the grammar pass through unchanged.
func ExpandPayload(payload string) string {
	m := repeatRe.FindStringSubmatch(payload)
	if m == nil {
		return payload
	}

	pattern := decodeEscapes(m[1])
	count, err := strconv.Atoi(m[2])
	if err != nil || count < 1 {
		return payload
	}
	return strings.Repeat(pattern, count)
}

func decodeEscapes(pattern string) string {
	out := unicodeRe.ReplaceAllStringFunc(pattern, func(esc string) string {
		code, err := strconv.ParseUint(esc[2:], 16, 32)
		if err != nil {
			return esc
		}
		return string(rune(code))
	})
	out = percentRe.ReplaceAllStringFunc(out, func(esc string) string {
		b, err := strconv.ParseUint(esc[1:], 16, 8)
		if err != nil {
			return esc
		}
		return string(byte(b))
	})
	return out
}

// Truncate shortens a payload for diagnostics so an expanded overflow probe
// does not flood the failure message.
func Truncate(payload string, max int) string {
	if len(payload) <= max {
		return payload
	}
	return payload[:max] + "... (" + strconv.Itoa(len(payload)) + " bytes total)"
}
