// Package render produces the editor preview HTML: the document tree is
// serialized to Markdown and rendered with syntax-highlighted code fences.
package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rs/zerolog"

	"github.com/inkhorn/inkhorn/internal/cache"
	"github.com/inkhorn/inkhorn/internal/doc"
	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/util"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

// Preview renders a document tree to preview HTML.
func Preview(docNode *model.Node, highlightTheme string) []byte {
	md := doc.ToMarkdown(docNode)
	return renderMarkdown([]byte(md), highlightTheme)
}

// Mutex to protect the check-render-set operation in PreviewCached
var previewCacheMutex sync.Mutex

// PreviewCached serves repeated renders of an unchanged document from the
// preview cache, keyed by document fingerprint and highlight theme.
func PreviewCached(docNode *model.Node, highlightTheme string) []byte {
	fingerprint := util.Fingerprint(docNode)
	if fingerprint == "" {
		renderLogger.Warn().Msg("Empty fingerprint, skipping cache check")
		return Preview(docNode, highlightTheme)
	}

	if cached, found := cache.GetPreview(fingerprint, highlightTheme); found {
		renderLogger.Debug().Str("fingerprint", fingerprint).Str("theme", highlightTheme).Msg("Preview cache hit")
		return cached
	}

	renderLogger.Debug().Str("fingerprint", fingerprint).Str("theme", highlightTheme).Msg("Preview cache miss")
	previewCacheMutex.Lock()
	defer previewCacheMutex.Unlock()

	html := Preview(docNode, highlightTheme)
	cache.SetPreview(fingerprint, highlightTheme, html)

	return html
}

func renderMarkdown(md []byte, highlightTheme string) []byte {
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.HrefTargetBlank,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if code, ok := node.(*ast.CodeBlock); ok && entering {
				var lang string
				if info := code.Info; info != nil {
					lang = string(info)
				}
				highlighted := HighlightCode(string(code.Literal), lang, highlightTheme)
				fmt.Fprintf(w, "<div class=\"highlight\">%s</div>", highlighted)
				return ast.GoToNext, true
			}
			return ast.GoToNext, false
		},
	}

	p := parser.NewWithExtensions(
		parser.CommonExtensions | parser.Strikethrough | parser.SuperSubscript | parser.Footnotes,
	)
	return markdown.Render(p.Parse(markdown.NormalizeNewlines(md)), md_html.NewRenderer(opts))
}
