// Package util provides content hashing, naming helpers and front matter parsing.
package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/inkhorn/inkhorn/internal/model"
)

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}

// Fingerprint hashes the canonical JSON encoding of a document tree.
// Two structurally identical trees always produce the same fingerprint.
func Fingerprint(doc *model.Node) string {
	if doc == nil {
		return ""
	}
	data, err := doc.MarshalCanonical()
	if err != nil {
		return ""
	}
	return ContentHash(data)
}

// Hashtag renders a tag as "#tag" with internal whitespace stripped.
func Hashtag(tag string) string {
	return "#" + strings.Join(strings.Fields(tag), "")
}

// Slugify lowercases a name and replaces runs of non-alphanumeric runes
// with single dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SafeFilename derives a download filename from a title, falling back to
// "untitled". Path separators and control characters are replaced so the
// result is safe to hand to a save-as dialog.
func SafeFilename(title, ext string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "untitled"
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return name + "." + ext
}

// FrontMatter is the optional TOML block at the top of an imported
// markdown file, delimited by "+++" lines.
type FrontMatter struct {
	Title  string   `toml:"title"`
	Tags   []string `toml:"tags"`
	Series string   `toml:"series"`

	// Consumed is the byte offset where the document body starts.
	Consumed int `toml:"-"`
}

var frontMatterDelimiter = []byte("+++")

// GetFrontMatter parses a leading TOML front matter block. A nil result with
// a nil error means the document has no front matter.
func GetFrontMatter(md []byte) (*FrontMatter, error) {
	trimmed := bytes.TrimLeft(md, "\n \t\r")
	offset := len(md) - len(trimmed)

	if !bytes.HasPrefix(trimmed, frontMatterDelimiter) {
		return nil, nil
	}

	rest := trimmed[len(frontMatterDelimiter):]
	end := bytes.Index(rest, frontMatterDelimiter)
	if end == -1 {
		return nil, fmt.Errorf("unterminated front matter block")
	}

	fm := &FrontMatter{}
	if _, err := toml.Decode(string(rest[:end]), fm); err != nil {
		return nil, fmt.Errorf("failed to decode front matter: %w", err)
	}

	fm.Consumed = offset + 2*len(frontMatterDelimiter) + end
	return fm, nil
}
