package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Dune", "Dune"},
		{"invalid chars", `Who: "Me"? / You*`, "Who Me You"},
		{"newlines and tabs", "Line\none\tand\r\ntwo", "Line one and two"},
		{"collapses spaces", "  A    B  ", "A B"},
		{"empty", "", "Untitled"},
		{"only invalid", `<>:"|?*`, "Untitled"},
		{"unicode kept", "Война и мир", "Война и мир"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSanitizeFilename_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("я", 150) // 300 bytes
	got := SanitizeFilename(long)

	assert.LessOrEqual(t, len(got), maxFilenameLength)
	assert.True(t, utf8.ValidString(got))
}

func TestCoverFilename(t *testing.T) {
	assert.Equal(t, "Dune - Frank Herbert.png", CoverFilename("Dune", "Frank Herbert", "image/png"))
	assert.Equal(t, "Dune.jpg", CoverFilename("Dune", "  ", "image/jpeg"))
	assert.Equal(t, "Who Me.jpg", CoverFilename(`Who: "Me"?`, "", "image/jpeg"))
	assert.Equal(t, "Dune - Frank Herbert", CoverFilename("Dune", "Frank Herbert", "application/octet-stream"))
}
