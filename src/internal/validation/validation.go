package validation

import (
	"net"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Shared format rules used across the service. Every caller goes through
// this package instead of keeping its own copy of the patterns.

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	alnumPattern     = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	base64urlPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)
)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsIPAddress reports whether s is a valid IPv4 or IPv6 address.
func IsIPAddress(s string) bool {
	return net.ParseIP(s) != nil
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsSessionID accepts either a UUID or an alphanumeric identifier of at
// least 32 characters. Both formats are in circulation and neither may be
// rejected in favor of the other.
func IsSessionID(s string) bool {
	if IsUUID(s) {
		return true
	}
	return len(s) >= 32 && alnumPattern.MatchString(s)
}

// IsBearerCredential checks the structural shape of a signed credential:
// three non-empty dot-separated base64url segments. Signature validity is
// the token verifier's job, not this check's.
func IsBearerCredential(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" || !base64urlPattern.MatchString(part) {
			return false
		}
	}
	return true
}
