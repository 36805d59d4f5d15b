package upload

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// AllowedExtensions are the accepted media types, compared case-insensitively
var AllowedExtensions = map[string]bool{
	"mp3": true,
	"mp4": true,
	"wav": true,
	"m4a": true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Extension returns the lowercased text after the last '.', or "" if there is none
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// Allowed reports whether filename carries one of AllowedExtensions
func Allowed(filename string) bool {
	if !strings.Contains(filename, ".") {
		return false
	}
	return AllowedExtensions[Extension(filename)]
}

// SecureFilename reduces filename to a safe ASCII name for the upload directory.
// It follows werkzeug's secure_filename: NFKD, drop non-ASCII, '/' becomes a space,
// whitespace runs become '_', anything outside [A-Za-z0-9_.-] is removed and
// leading or trailing '.' and '_' are stripped. The result may be empty.
func SecureFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)

	var b strings.Builder
	for _, r := range decomposed {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}

	name := strings.ReplaceAll(b.String(), "/", " ")
	name = strings.Join(strings.FieldsFunc(name, isSpace), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// isSpace matches the ASCII characters Python's str.split treats as whitespace
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x1c, 0x1d, 0x1e, 0x1f:
		return true
	}
	return false
}

// StoredName returns the name an upload is saved under.
// When sanitizing leaves nothing, a generated name keeps the original extension.
func StoredName(filename string) string {
	if name := SecureFilename(filename); name != "" {
		return name
	}
	name := "upload-" + uuid.NewString()
	if ext := SecureFilename(Extension(filename)); ext != "" {
		name = fmt.Sprintf("%s.%s", name, ext)
	}
	return name
}
