package utils

import (
	"regexp"
	"strings"
)

// Sanitizers strip unsafe content from free-text fields before persistence.
// They never reject input; unacceptable values come back empty.

var (
	scriptBlockRegex  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	scriptTagRegex    = regexp.MustCompile(`(?i)</?script\b[^>]*>`)
	eventAttrDQRegex  = regexp.MustCompile(`(?i)\s+on\w+\s*=\s*"[^"]*"`)
	eventAttrSQRegex  = regexp.MustCompile(`(?i)\s+on\w+\s*=\s*'[^']*'`)
	eventAttrRegex    = regexp.MustCompile(`(?i)\s+on\w+\s*=\s*[^\s>]*`)
	javascriptRegex   = regexp.MustCompile(`(?i)javascript:`)
	dataSchemeRegex   = regexp.MustCompile(`(?i)data:(image/)?`)
	whitespaceRegex   = regexp.MustCompile(`\s+`)
	filenameCharRegex = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	filenameEdgeRegex = regexp.MustCompile(`^[.\s]+|[.\s]+$`)
)

var dangerousSchemes = []string{"javascript:", "data:", "vbscript:", "file:", "about:"}

var safeSchemes = []string{"http:", "https:", "mailto:", "tel:"}

// RemoveControlCharacters drops control characters except tab, LF and CR.
func RemoveControlCharacters(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20 || (r >= 0x7F && r <= 0x9F):
			return -1
		default:
			return r
		}
	}, s)
}

// NormalizeString strips control characters, trims, and collapses
// whitespace runs to single spaces.
func NormalizeString(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(RemoveControlCharacters(s)), " ")
}

// SanitizeText is the sanitizer for plain text inputs.
func SanitizeText(s string) string {
	return NormalizeString(s)
}

// SanitizeMarkdown preserves markup but removes script tags, inline event
// handler attributes, javascript: URLs and non-image data: URLs.
func SanitizeMarkdown(s string) string {
	sanitized := RemoveControlCharacters(s)

	sanitized = scriptBlockRegex.ReplaceAllString(sanitized, "")
	sanitized = scriptTagRegex.ReplaceAllString(sanitized, "")

	sanitized = eventAttrDQRegex.ReplaceAllString(sanitized, "")
	sanitized = eventAttrSQRegex.ReplaceAllString(sanitized, "")
	sanitized = eventAttrRegex.ReplaceAllString(sanitized, "")

	sanitized = javascriptRegex.ReplaceAllString(sanitized, "")

	// data: URLs are allowed for images only.
	sanitized = dataSchemeRegex.ReplaceAllStringFunc(sanitized, func(match string) string {
		if strings.HasSuffix(strings.ToLower(match), "image/") {
			return match
		}
		return ""
	})

	return strings.TrimSpace(sanitized)
}

// SanitizeURL rejects dangerous schemes outright (returns empty) and allows
// only http, https, mailto and tel when a scheme is present; anything
// without a scheme is treated as a relative URL.
func SanitizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}

	lower := strings.ToLower(trimmed)
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	if schemeRegex.MatchString(trimmed) {
		safe := false
		for _, scheme := range safeSchemes {
			if strings.HasPrefix(lower, scheme) {
				safe = true
				break
			}
		}
		if !safe {
			return ""
		}
	}

	return trimmed
}

// SanitizeFilename guards against path traversal and unsafe characters.
func SanitizeFilename(filename string) string {
	sanitized := strings.ReplaceAll(filename, "..", "")
	sanitized = filenameCharRegex.ReplaceAllString(sanitized, "")
	sanitized = filenameEdgeRegex.ReplaceAllString(sanitized, "")

	if sanitized == "" {
		return "unnamed"
	}
	return sanitized
}

// SanitizeForLog makes untrusted strings safe to echo into log lines:
// control characters stripped, newlines escaped, truncated to 1000 runes.
func SanitizeForLog(s string) string {
	sanitized := RemoveControlCharacters(s)
	sanitized = strings.ReplaceAll(sanitized, "\n", "\\n")
	sanitized = strings.ReplaceAll(sanitized, "\r", "\\r")

	runes := []rune(sanitized)
	if len(runes) > 1000 {
		return string(runes[:1000])
	}
	return sanitized
}
