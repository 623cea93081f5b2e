package checkout

import (
	"regexp"
	"strings"
)

var (
	phonePattern  = regexp.MustCompile(`^[0-9]{10,11}$`)
	postalPattern = regexp.MustCompile(`^\d{3}-\d{4}$`)
)

const (
	msgPhoneRequired  = "電話番号を入力してください。"
	msgPhoneFormat    = "電話番号は10〜11桁の数字で入力してください。"
	msgPostalRequired = "郵便番号を入力してください。"
	msgPostalFormat   = "郵便番号は「000-0000」の形式で入力してください。"
)

// Address line labels, used in the required-field message.
const (
	LabelAddressLine1 = "住所１"
	LabelAddressLine2 = "住所２"
)

// ValidatePhone returns "" when the phone number is acceptable.
func ValidatePhone(v string) string {
	if strings.TrimSpace(v) == "" {
		return msgPhoneRequired
	}
	if !phonePattern.MatchString(SanitizePhone(v)) {
		return msgPhoneFormat
	}
	return ""
}

func ValidatePostalCode(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return msgPostalRequired
	}
	if !postalPattern.MatchString(trimmed) {
		return msgPostalFormat
	}
	return ""
}

func ValidateAddressLine(v, label string) string {
	if strings.TrimSpace(v) == "" {
		return label + "を入力してください。"
	}
	return ""
}
