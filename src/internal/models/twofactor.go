package models

// Two-factor code type constants
const (
	CodeTypeTOTP          = "totp"
	CodeTypeSMS           = "sms"
	CodeTypeEmail         = "email"
	CodeTypeBackupCode    = "backup_code"
	CodeTypeHardwareToken = "hardware_token"
)

// TwoFactorCode is a transient code submission. It is validated against
// its declared method's format rule and never persisted.
type TwoFactorCode struct {
	Code     string `json:"code"`
	CodeType string `json:"codeType"`
}
