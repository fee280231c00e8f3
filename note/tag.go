package note

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum     = regexp.MustCompile(`[^a-z0-9]+`)
	badFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)
)

const maxFilenameLength = 100

// NormalizeTag turns free text into a hashtag body: diacritics removed,
// lowercased, every run of other characters collapsed to a single '-'.
// The result may be empty.
func NormalizeTag(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	tag := nonAlnum.ReplaceAllString(strings.ToLower(stripped), "-")

	return strings.Trim(tag, "-")
}

// CleanFilename removes characters that are invalid in file names on common
// filesystems and caps the length.
func CleanFilename(title string) string {
	cleaned := []rune(badFileChars.ReplaceAllString(title, ""))
	if len(cleaned) > maxFilenameLength {
		cleaned = cleaned[:maxFilenameLength]
	}

	return strings.TrimSpace(string(cleaned))
}
