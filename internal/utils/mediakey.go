package utils

import (
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify lowercases s and collapses everything that is not a letter or
// digit into single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // trim leading hyphens
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// MediaKey builds the storage key for an uploaded image. Keys take the
// form uploads/profiles/<slug(username)>-<uuid><ext> so collisions are
// impossible even when a user re-uploads the same file name.
func MediaKey(username, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("uploads/profiles", Slugify(username)+"-"+uuid.NewString()+ext)
}
