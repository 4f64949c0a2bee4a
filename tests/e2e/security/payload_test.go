package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPayloadRepeats(t *testing.T) {
	out := ExpandPayload("REPEAT_A_10000")
	assert.Len(t, out, 10000)
	assert.Equal(t, "AAAA", out[:4])
}

func TestExpandPayloadMultiCharPattern(t *testing.T) {
	out := ExpandPayload("REPEAT_ab_3")
	assert.Equal(t, "ababab", out)
}

func TestExpandPayloadPatternMayContainUnderscores(t *testing.T) {
	// Greedy pattern match: the trailing _<count> is the only separator that
	// counts.
	out := ExpandPayload("REPEAT_a_b_2")
	assert.Equal(t, "a_ba_b", out)
}

func TestExpandPayloadUnicodeEscapes(t *testing.T) {
	out := ExpandPayload("REPEAT_\\u00e9_3")
	assert.Equal(t, "ééé", out)

	out = ExpandPayload("REPEAT_\\u4e16\\u754c_2")
	assert.Equal(t, "世界世界", out)

	out = ExpandPayload("REPEAT_\\u0000_4")
	assert.Equal(t, strings.Repeat("\x00", 4), out)
}

func TestExpandPayloadPercentEscapes(t *testing.T) {
	out := ExpandPayload("REPEAT_%41%42_3")
	assert.Equal(t, "ABABAB", out)
}

func TestExpandPayloadPassThrough(t *testing.T) {
	for _, p := range []string{
		"' OR '1'='1",
		"<script>alert('xss')</script>",
		"REPEAT_A_",  // missing count
		"REPEAT__5",  // empty pattern
		"repeat_a_5", // grammar is case-sensitive
		"%2e%2e%2f",  // escapes outside the grammar stay literal
		"REPEAT_A_0", // zero count is not a valid descriptor
	} {
		assert.Equal(t, p, ExpandPayload(p), "payload %q should pass through", p)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 80))

	long := strings.Repeat("A", 200)
	got := Truncate(long, 80)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("A", 80)))
	assert.Contains(t, got, "200 bytes total")
}
