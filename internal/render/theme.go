package render

import (
	"slices"

	"github.com/alecthomas/chroma/v2/styles"
)

const DefaultSyntaxTheme = "gruvbox"

func SyntaxThemes() []string {
	styleNames := styles.Names()
	slices.Sort(styleNames)
	return styleNames
}

func IsSyntaxTheme(name string) bool {
	return slices.Contains(styles.Names(), name)
}
