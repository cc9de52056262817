package config

const (
	HCType              = "Content-Type"
	HETag               = "ETag"
	HCacheControl       = "Cache-Control"
	HContentDisposition = "Content-Disposition"

	CTypeCSS      = "text/css"
	CTypeHTML     = "text/html"
	CTypeJSON     = "application/json"
	CTypeMarkdown = "text/markdown"
	CTypeText     = "text/plain"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
)
