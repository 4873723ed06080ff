package present

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when the environment names no usable locale.
var DefaultLocale = language.AmericanEnglish

// Locale returns the user's locale from LC_ALL, LC_MESSAGES or LANG.
func Locale() language.Tag {
	return LocaleFrom(os.LookupEnv)
}

// LocaleFrom resolves the locale using lookup for the environment.
func LocaleFrom(lookup func(string) (string, bool)) language.Tag {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			return ParseLocale(v)
		}
	}
	return DefaultLocale
}

// ParseLocale parses a POSIX ("en_GB.UTF-8") or BCP 47 ("en-GB") locale.
// Unknown values and the C locale give DefaultLocale.
func ParseLocale(s string) language.Tag {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	switch s {
	case "", "C", "POSIX":
		return DefaultLocale
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return DefaultLocale
	}
	return tag
}
