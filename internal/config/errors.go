package config

const (
	// Database errors
	ErrInitializeDatabaseFmt = "Failed to initialize database: %v"

	// Article errors
	ErrArticleNotFound   = "Article not found"
	ErrArticleNotTrashed = "Article is not in the trash"

	// Session errors
	ErrSessionNotFound = "Editing session not found"

	// Insight errors
	ErrInsightNotFound = "Insight not found"

	// AI errors
	ErrAIDisabled = "AI draft generation is not configured"
)
