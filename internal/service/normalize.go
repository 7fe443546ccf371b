package service

import "strings"

// Normalize turns a handwritten name into display form: hyphens and
// underscores become spaces, anything other than ASCII letters and spaces is
// dropped, and each remaining word is capitalized. Names with no surviving
// words are rejected with ErrEmptyName.
func Normalize(s string) (string, error) {
	if s == "" {
		return "", ErrEmptyName
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '-' || c == '_' || c == ' ':
			b.WriteByte(' ')
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			b.WriteByte(c)
		}
	}

	words := strings.Fields(b.String())
	if len(words) == 0 {
		return "", ErrEmptyName
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " "), nil
}
