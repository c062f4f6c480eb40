package twofactor

import (
	"fmt"

	"sentra-identity-svc/src/internal/models"
)

// FormatError reports that a submitted code does not match its declared
// method's format rule. It is distinct from a verification failure: a
// well-formed-but-wrong code never produces a FormatError.
type FormatError struct {
	CodeType string
	Rule     string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s code format: %s", e.CodeType, e.Rule)
}

// ValidateFormat checks a submitted two-factor code against the format
// rule for its declared method. It is a pure function and runs before any
// downstream verification.
//
// Rules per method:
//
//	totp            exactly 6 digits
//	sms             4-8 digits
//	email           exactly 6 digits
//	backup_code     exactly 8 alphanumeric characters
//	hardware_token  6-8 digits
//	anything else   at least 4 digits
func ValidateFormat(code, codeType string) error {
	switch codeType {
	case models.CodeTypeTOTP:
		if !isDigits(code) || len(code) != 6 {
			return &FormatError{CodeType: codeType, Rule: "code must be 6 digits"}
		}
	case models.CodeTypeSMS:
		if !isDigits(code) || len(code) < 4 || len(code) > 8 {
			return &FormatError{CodeType: codeType, Rule: "code must be 4-8 digits"}
		}
	case models.CodeTypeEmail:
		if !isDigits(code) || len(code) != 6 {
			return &FormatError{CodeType: codeType, Rule: "code must be 6 digits"}
		}
	case models.CodeTypeBackupCode:
		if !isAlphanumeric(code) || len(code) != 8 {
			return &FormatError{CodeType: codeType, Rule: "code must be 8 alphanumeric characters"}
		}
	case models.CodeTypeHardwareToken:
		if !isDigits(code) || len(code) < 6 || len(code) > 8 {
			return &FormatError{CodeType: codeType, Rule: "code must be 6-8 digits"}
		}
	default:
		if !isDigits(code) || len(code) < 4 {
			return &FormatError{CodeType: codeType, Rule: "code must be at least 4 digits"}
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
