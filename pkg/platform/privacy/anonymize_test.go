package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ipv4 address", input: "192.168.1.47", expected: "192.168.1.0"},
		{name: "ipv4 with port", input: "10.1.2.3:5123", expected: "10.1.2.0"},
		{name: "ipv6 address", input: "2001:db8:85a3::8a2e:370:7334", expected: "2001:0db8:85a3::"},
		{name: "empty", input: "", expected: "unknown"},
		{name: "garbage", input: "not-an-ip", expected: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnonymizeIP(tt.input))
		})
	}
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "", MaskValue(""))
	assert.Equal(t, "**", MaskValue("ab"))
	assert.Equal(t, "jo********", MaskValue("john.smith"))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("trap@example.net")
	assert.Len(t, a, 16)
	assert.Equal(t, a, Fingerprint("trap@example.net"), "fingerprint must be stable")
	assert.NotEqual(t, a, Fingerprint("other@example.net"))
	assert.Equal(t, "", Fingerprint(""))
}
