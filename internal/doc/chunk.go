package doc

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidChunkSize reports a Chunk call with a non-positive maximum
// length. This is a caller error and is never silently coerced.
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// Chunk splits text into segments of at most maxLength characters, honoring
// paragraph (blank line) and word boundaries. Words are accumulated greedily;
// when the next word no longer fits, the buffer is flushed and the word seeds
// a new buffer. A single word longer than maxLength is hard-split so no
// content is ever dropped. After each paragraph a blank-line marker is kept
// in the buffer so the following paragraph starts a fresh visual block
// inside the eventually flushed chunk.
func Chunk(text string, maxLength int) ([]string, error) {
	if maxLength <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, maxLength)
	}

	chunks := []string{}
	var buf string

	flush := func() {
		if trimmed := strings.TrimSpace(buf); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		buf = ""
	}

	for _, para := range strings.Split(text, "\n\n") {
		words := strings.Fields(para)
		for _, word := range words {
			for word != "" {
				sep := " "
				if buf == "" || strings.HasSuffix(buf, "\n\n") {
					sep = ""
				}
				if len(buf)+len(sep)+len(word) <= maxLength {
					buf += sep + word
					break
				}
				if strings.TrimSpace(buf) == "" {
					// Oversized single word: hard-split at the budget
					// and seed the next buffer with the remainder. The
					// cut backs off to a rune boundary so multibyte text
					// never splits mid-character.
					buf = ""
					cut := maxLength
					for cut > 0 && !utf8.RuneStart(word[cut]) {
						cut--
					}
					if cut == 0 {
						// The first rune alone exceeds the budget; emit
						// it whole so the loop always makes progress.
						_, cut = utf8.DecodeRuneInString(word)
					}
					chunks = append(chunks, word[:cut])
					word = word[cut:]
					continue
				}
				flush()
			}
		}
		if len(words) > 0 && buf != "" {
			buf += "\n\n"
		}
	}

	flush()
	return chunks, nil
}
