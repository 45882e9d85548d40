package utils

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Control characters and runs of whitespace collapse to one space
	whitespaceRuns = regexp.MustCompile(`[\s\x00-\x1f]+`)
)

const maxFilenameLength = 200

// SanitizeFilename strips characters that are unsafe in filenames or
// quoted header values and limits the result to 200 bytes.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceRuns.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	if len(filename) > maxFilenameLength {
		filename = strings.TrimSpace(truncateUTF8(filename, maxFilenameLength))
	}

	if filename == "" {
		filename = "Untitled"
	}
	return filename
}

// CoverFilename names a downloaded cover after its book, e.g. "Dune - Frank Herbert.png".
func CoverFilename(title, author, contentType string) string {
	name := strings.TrimSpace(title)
	if a := strings.TrimSpace(author); a != "" {
		name += " - " + a
	}
	return SanitizeFilename(name) + coverExtension(contentType)
}

func coverExtension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	return ""
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
