package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Field validators for user-supplied values. Each returns the normalized
// value or an error carrying the user-facing field message; ordinary bad
// input never panics.

var (
	uuidRegex    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	youtubeRegex = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/(watch\?v=|embed/)|youtu\.be/)[\w-]+(&.*)?$`)
	schemeRegex  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
)

// ValidateLength trims the value and checks the rune count against [min, max].
func ValidateLength(value string, min, max int, field string) (string, error) {
	trimmed := strings.TrimSpace(value)

	if len([]rune(trimmed)) < min {
		return "", fmt.Errorf("%sは%d文字以上で入力してください", field, min)
	}
	if len([]rune(trimmed)) > max {
		return "", fmt.Errorf("%sは%d文字以内で入力してください", field, max)
	}

	return trimmed, nil
}

func ValidateRequired(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%sは必須です", field)
	}
	return trimmed, nil
}

// ValidateUUID accepts the canonical hyphenated form only, with the version
// (1-5) and RFC 4122 variant bits checked.
func ValidateUUID(value, field string) (string, error) {
	if !uuidRegex.MatchString(value) {
		return "", fmt.Errorf("%sの形式が不正です", field)
	}
	return value, nil
}

func ValidateEnum(value string, allowed []string, field string) (string, error) {
	for _, candidate := range allowed {
		if value == candidate {
			return value, nil
		}
	}
	return "", fmt.Errorf("%sの値が不正です", field)
}

// ValidateURL requires an https URL. When allowedHosts is non-empty the host
// must match an entry exactly or be a subdomain of one.
func ValidateURL(value, field string, allowedHosts ...string) (string, error) {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%sのURL形式が不正です", field)
	}

	if parsed.Scheme != "https" {
		return "", fmt.Errorf("%sはHTTPSのURLを指定してください", field)
	}

	if len(allowedHosts) > 0 {
		allowed := false
		for _, host := range allowedHosts {
			if parsed.Hostname() == host || strings.HasSuffix(parsed.Hostname(), "."+host) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("%sは許可されていないURLです", field)
		}
	}

	return value, nil
}

func ValidateYouTubeURL(value, field string) (string, error) {
	if !youtubeRegex.MatchString(value) {
		return "", fmt.Errorf("%sは有効なYouTube URLを指定してください", field)
	}
	return value, nil
}

// ValidateEmail normalizes the address to lower case.
func ValidateEmail(value, field string) (string, error) {
	if !emailRegex.MatchString(value) {
		return "", fmt.Errorf("%sのメールアドレス形式が不正です", field)
	}
	return strings.ToLower(value), nil
}

func ValidateNumberRange(value, min, max int, field string) (int, error) {
	if value < min || value > max {
		return 0, fmt.Errorf("%sは%dから%dの範囲で入力してください", field, min, max)
	}
	return value, nil
}
