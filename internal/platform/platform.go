// Package platform converts an article snapshot into platform-specific post
// sets: chunked threads, long-form Markdown and length-capped captions.
package platform

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/inkhorn/inkhorn/internal/doc"
	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/util"
)

// ID identifies a publishing target.
type ID string

const (
	X         ID = "x"
	Mastodon  ID = "mastodon"
	Devto     ID = "devto"
	Instagram ID = "instagram"
)

// Content is the converted result for one platform. Posts holds one or more
// independently-postable text blocks.
type Content struct {
	Platform  ID       `json:"platform"`
	Title     string   `json:"title"`
	Posts     []string `json:"content"`
	CharCount int      `json:"charCount"`
	Hashtags  []string `json:"hashtags"`
}

// threadSpec describes a chunked thread-style platform. ChunkBudget is the
// per-post character budget handed to the chunker; it sits below the
// platform's hard limit to leave room for the "n/total" index prefix.
type threadSpec struct {
	id          ID
	chunkBudget int
	maxHashtags int
	leadMarker  string
	closeMarker string
}

var threadSpecs = map[ID]threadSpec{
	X: {
		id:          X,
		chunkBudget: 260,
		maxHashtags: 3,
		leadMarker:  "A thread 🧵👇",
		closeMarker: "That's a wrap! Follow for more.",
	},
	Mastodon: {
		id:          Mastodon,
		chunkBudget: 430,
		maxHashtags: 5,
		leadMarker:  "A thread 🧵👇",
		closeMarker: "End of thread. Boosts appreciated!",
	},
}

const (
	instagramCaptionLimit = 2200
	instagramSeeMore      = "… (see more on the blog)"
	instagramDivider      = "·························"
	instagramPrompt       = "💬 What do you think? Tell me in the comments!"
)

// Hashtags maps tags to "#tag" form with internal whitespace stripped.
func Hashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		out = append(out, util.Hashtag(tag))
	}
	return out
}

// Convert transforms a snapshot for a single platform.
func Convert(id ID, snap model.Snapshot) (Content, error) {
	switch id {
	case X, Mastodon:
		return convertThread(threadSpecs[id], snap)
	case Devto:
		return convertLongform(snap), nil
	case Instagram:
		return convertCaption(snap), nil
	default:
		return Content{}, fmt.Errorf("unknown platform: %s", id)
	}
}

// ConvertAll runs every configured platform transform against the same
// snapshot. Each branch is independent; no state is shared between them.
func ConvertAll(snap model.Snapshot) (map[ID]Content, error) {
	out := make(map[ID]Content, 4)
	for _, id := range []ID{X, Mastodon, Devto, Instagram} {
		converted, err := Convert(id, snap)
		if err != nil {
			return nil, err
		}
		out[id] = converted
	}
	return out, nil
}

func convertThread(spec threadSpec, snap model.Snapshot) (Content, error) {
	text := doc.ToPlainText(snap.Content)
	chunks, err := doc.Chunk(text, spec.chunkBudget)
	if err != nil {
		return Content{}, fmt.Errorf("chunking for %s: %w", spec.id, err)
	}

	hashtags := Hashtags(snap.Tags)
	subset := hashtags
	if len(subset) > spec.maxHashtags {
		subset = subset[:spec.maxHashtags]
	}

	posts := make([]string, 0, len(chunks)+2)

	lead := snap.Title
	if len(subset) > 0 {
		lead += "\n\n" + strings.Join(subset, " ")
	}
	lead += "\n\n" + spec.leadMarker
	posts = append(posts, lead)

	total := len(chunks)
	for i, chunk := range chunks {
		posts = append(posts, fmt.Sprintf("%d/%d %s", i+1, total, chunk))
	}

	closing := spec.closeMarker
	if len(subset) > 0 {
		closing += "\n\n" + strings.Join(subset, " ")
	}
	posts = append(posts, closing)

	return Content{
		Platform:  spec.id,
		Title:     snap.Title,
		Posts:     posts,
		CharCount: charCount(posts),
		Hashtags:  hashtags,
	}, nil
}

func convertLongform(snap model.Snapshot) Content {
	hashtags := Hashtags(snap.Tags)

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(snap.Title)
	b.WriteString("\n\n")
	if len(hashtags) > 0 {
		b.WriteString(strings.Join(hashtags, " "))
		b.WriteString("\n\n")
	}
	b.WriteString(doc.ToMarkdown(snap.Content))

	posts := []string{b.String()}
	return Content{
		Platform:  Devto,
		Title:     snap.Title,
		Posts:     posts,
		CharCount: charCount(posts),
		Hashtags:  hashtags,
	}
}

func convertCaption(snap model.Snapshot) Content {
	hashtags := Hashtags(snap.Tags)
	body := doc.ToPlainText(snap.Content)

	banner := "✨ " + snap.Title + " ✨\n" + instagramDivider + "\n\n"
	footer := "\n\n" + instagramPrompt
	if len(hashtags) > 0 {
		footer += "\n\n" + strings.Join(hashtags, " ")
	}

	overhead := len(banner) + len(footer)
	if overhead+len(body) > instagramCaptionLimit {
		avail := instagramCaptionLimit - overhead - len(instagramSeeMore)
		if avail < 0 {
			avail = 0
		}
		// Back off to a rune boundary so the cut never splits a character.
		for avail > 0 && avail < len(body) && !utf8.RuneStart(body[avail]) {
			avail--
		}
		body = strings.TrimSpace(body[:avail]) + instagramSeeMore
	}

	posts := []string{banner + body + footer}
	return Content{
		Platform:  Instagram,
		Title:     snap.Title,
		Posts:     posts,
		CharCount: charCount(posts),
		Hashtags:  hashtags,
	}
}

func charCount(posts []string) int {
	total := 0
	for _, p := range posts {
		total += len(p)
	}
	return total
}
