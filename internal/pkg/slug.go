package pkg

import "strings"

var turkishReplacer = strings.NewReplacer(
	"ğ", "g",
	"ü", "u",
	"ş", "s",
	"ı", "i",
	"ö", "o",
	"ç", "c",
)

// GenerateSlug derives a URL-safe slug from a topic title: lowercase,
// transliterate the Turkish letters, collapse every run of other
// characters to a single hyphen, trim edge hyphens.
func GenerateSlug(title string) string {
	s := strings.ToLower(title)
	s = turkishReplacer.Replace(s)

	var b strings.Builder
	prevHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevHyphen = false
		} else if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
