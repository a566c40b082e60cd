package logger

import "strings"

// MaskEmail keeps the first letter of the local part: taro@example.jp -> t***@example.jp
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if local == "" {
		return "***@" + domain
	}
	return local[:1] + "***@" + domain
}

// MaskPhone keeps the last four digits and the separators: 090-1234-5678 -> ***-****-5678
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return strings.Repeat("*", len(phone))
	}
	var b strings.Builder
	b.Grow(len(phone))
	for i, r := range phone {
		if i < len(phone)-4 && r != '-' {
			b.WriteByte('*')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
