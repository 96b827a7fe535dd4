package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxSearchLen  = 100
	maxBarcodeLen = 64
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)
	rePhone    = regexp.MustCompile(`^[0-9 ()+.-]{7,20}$`)
	reTag      = regexp.MustCompile(`</?[A-Za-z][^<>]*>`)
)

// Search trims a free text query, drops markup tags and caps its length.
func Search(s string) string {
	s = reTag.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	if utf8.RuneCountInString(s) > maxSearchLen {
		s = string([]rune(s)[:maxSearchLen])
	}
	return strings.TrimSpace(s)
}

// ID parses a positive numeric identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Phone is optional; an empty value is valid.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, rePhone.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > max {
		return "", false
	}
	return s, true
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

// Barcode trims a scanned or imported code. Any printable text up to 64
// characters is kept as is so lookups match what was stored.
func Barcode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n == 0 || n > maxBarcodeLen {
		return s, false
	}
	return s, !strings.ContainsFunc(s, unicode.IsControl)
}

// Password enforces a length window and mixed character classes.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// Qty clamps a quantity into 1..50.
func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}
