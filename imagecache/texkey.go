package imagecache

import (
	"crypto/sha1" // #nosec G505 -- content addressing, not security
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TexPrefix marks a text label as TeX source rendered to an image.
const TexPrefix = "TEX:"

// Hasher maps TeX source to the content hash naming its image.
type Hasher func(tex string) string

// SHA1Hasher returns the hex SHA-1 of the NFC form of tex. Composed and
// decomposed spellings of the same label share an image.
func SHA1Hasher(tex string) string {
	sum := sha1.Sum([]byte(norm.NFC.String(tex))) // #nosec G401
	return hex.EncodeToString(sum[:])
}

// TexKey returns the cache key of the image for TeX source tex:
// "text/<hash>.png".
func TexKey(tex string) string {
	return TexKeyWith(SHA1Hasher, tex)
}

// TexKeyWith is TexKey with a custom hasher. A nil hasher uses SHA1Hasher.
func TexKeyWith(h Hasher, tex string) string {
	if h == nil {
		h = SHA1Hasher
	}
	return "text/" + h(tex) + ".png"
}

// IsTex reports whether label is TeX source and returns the source
// without the prefix.
func IsTex(label string) (string, bool) {
	return strings.CutPrefix(label, TexPrefix)
}
