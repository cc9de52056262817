// Package routes defines HTTP route constants for the application.
package routes

// API Routes
const (
	// Articles
	Articles       = "/api/articles"
	Article        = "/api/articles/{id}"
	ArticleRestore = "/api/articles/{id}/restore"
	ArticlePurge   = "/api/articles/{id}/purge"
	ArticlePublish = "/api/articles/{id}/publish"
	Trash          = "/api/trash"

	// Export and conversion
	ArticleExport  = "/api/articles/{id}/export/{format}"
	ArticleConvert = "/api/articles/{id}/convert"
	ArticlePreview = "/api/articles/{id}/preview"
	ArticleCopy    = "/api/articles/{id}/copy"

	// Stats
	ArticleView  = "/api/articles/{id}/view"
	ArticleRead  = "/api/articles/{id}/read"
	ArticleStats = "/api/articles/{id}/stats"

	// Editing sessions
	Sessions      = "/api/sessions"
	Session       = "/api/sessions/{id}"
	SessionUpdate = "/api/sessions/{id}/update"
	SessionSave   = "/api/sessions/{id}/save"
	SessionStatus = "/api/sessions/{id}/status"

	// Insights and series
	Insights       = "/api/insights"
	InsightTriage  = "/api/insights/{id}/triage"
	InsightDraft   = "/api/insights/{id}/draft"
	Series         = "/api/series"
	SeriesArticles = "/api/series/{id}/articles"

	// Misc
	Spellcheck = "/api/spellcheck"
	Images     = "/api/images"
	Themes     = "/api/themes"
	SSEPath    = "/sse"
	Health     = "/healthz"
)
