package stringutil

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

var TemplateFuncs = map[string]any{
	"lower":   strings.ToLower,
	"upper":   strings.ToUpper,
	"initial": Initial,
}

func FirstNonEmpty(strings ...string) string {
	for _, s := range strings {
		if s != "" {
			return s
		}
	}
	return ""
}

func RandomAlphanumericString(max int) string {
	const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	var bytes = make([]byte, max)

	for i := 0; i < max; i++ {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		bytes[i] = letters[num.Int64()]
	}

	return string(bytes)
}

func StripSpaces(str string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, str)
}

// Initial returns the first letter of str in upper case or an empty string.
func Initial(str string) string {
	for _, r := range str {
		if unicode.IsLetter(r) {
			return string(unicode.ToUpper(r))
		}
		return ""
	}
	return ""
}

func Alphabet() []string {
	return strings.Split("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "")
}
