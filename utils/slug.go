package utils

import "strings"

// turkishReplacer maps the Turkish letters that survive lowercasing to their
// ASCII equivalents, so "Oyun Laptopları" becomes "oyun-laptoplari" rather
// than "oyun-laptoplar-".
var turkishReplacer = strings.NewReplacer(
	"ğ", "g",
	"ü", "u",
	"ş", "s",
	"ı", "i",
	"ö", "o",
	"ç", "c",
)

// Slugify derives a URL-safe identifier from a display name: lowercase,
// transliterate Turkish letters, replace everything outside [a-z0-9] with
// a dash, collapse dash runs and trim the ends. Idempotent; returns "" when
// the name contains no usable characters, which callers must reject.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = turkishReplacer.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	lastDash := true // suppress a leading dash
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
