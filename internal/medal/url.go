package medal

import (
	"errors"
	"regexp"
)

// ErrInvalidURL is returned when a string is not a Medal clip link
var ErrInvalidURL = errors.New("not a medal clip url")

var (
	clipURLPattern   = regexp.MustCompile(`^https://medal\.tv/games/[^/]+/clips/[^/]+(\?[^/]+)?$`)
	contentIDPattern = regexp.MustCompile(`^https://medal\.tv/games/[^/]+/clips/([^/?]+)`)
)

// IsValidURL reports whether s is a clip link of the form
// https://medal.tv/games/<game>/clips/<id>[?query].
func IsValidURL(s string) bool {
	return clipURLPattern.MatchString(s)
}

// ExtractContentID returns the clip identifier: everything after /clips/ up
// to the next '/' or '?' or the end of the string. Validate with IsValidURL
// first; a link that does not match yields ErrInvalidURL.
func ExtractContentID(s string) (string, error) {
	m := contentIDPattern.FindStringSubmatch(s)
	if m == nil {
		return "", ErrInvalidURL
	}
	return m[1], nil
}
