// Package privacy keeps raw identifiers and trap values out of logs and traces.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
)

// AnonymizeIP truncates an IP address to its network prefix.
//
// IPv4 addresses keep the /24 ("192.168.1.47" -> "192.168.1.0"); IPv6 addresses
// keep the /48 prefix. Returns "unknown" for empty input and "invalid" when the
// value cannot be parsed.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}
	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}
	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}

// MaskValue hides all but the first two characters of a trap value.
// Trap values are admin-only secrets and must never reach logs in clear text.
func MaskValue(v string) string {
	if v == "" {
		return ""
	}
	runes := []rune(v)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-2)
}

// Fingerprint returns a short, stable SHA-256 prefix for correlating values
// across log lines without exposing them.
func Fingerprint(v string) string {
	if v == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:8])
}
