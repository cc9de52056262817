package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/inkhorn/inkhorn/internal/ai"
	"github.com/inkhorn/inkhorn/internal/autosave"
	"github.com/inkhorn/inkhorn/internal/clipboard"
	"github.com/inkhorn/inkhorn/internal/config"
	"github.com/inkhorn/inkhorn/internal/db"
	"github.com/inkhorn/inkhorn/internal/doc"
	"github.com/inkhorn/inkhorn/internal/export"
	"github.com/inkhorn/inkhorn/internal/importer"
	"github.com/inkhorn/inkhorn/internal/logger"
	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/platform"
	"github.com/inkhorn/inkhorn/internal/render"
	"github.com/inkhorn/inkhorn/internal/repository"
	"github.com/inkhorn/inkhorn/internal/routes"
	"github.com/inkhorn/inkhorn/internal/session"
	"github.com/inkhorn/inkhorn/internal/spellcheck"
	"github.com/inkhorn/inkhorn/internal/sse"
	"github.com/inkhorn/inkhorn/internal/storage"
)

// articleStore is everything the handlers need from the article layer.
// Both the database-backed and the in-memory repositories satisfy it.
type articleStore interface {
	repository.ArticleRepository
	repository.StatsRepository
}

var (
	appDB db.DB

	articles articleStore
	insights *repository.DBInsightRepository

	imageStore storage.Store
	generator  ai.Generator

	checker  = spellcheck.NewChecker()
	clients  = sse.NewClients()
	sessions = session.NewRegistry()

	mainLogger zerolog.Logger
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file loaded")
	}

	configPath := os.Getenv("INKHORN_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := config.LoadConfig(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.AppConfig

	mainLogger = logger.New(cfg.Logging.Level)
	config.SetLogger(mainLogger)
	db.SetLogger(mainLogger)
	repository.SetLogger(mainLogger)
	render.SetLogger(mainLogger)
	autosave.SetLogger(mainLogger)
	ai.SetLogger(mainLogger)
	storage.SetLogger(mainLogger)

	appDB = db.NewSQLite(cfg.Database.Path)
	if err := appDB.InitDB(); err != nil {
		mainLogger.Fatal().Err(err).Msgf(config.ErrInitializeDatabaseFmt, err)
	}
	defer appDB.Close()

	articles = repository.NewDBArticleRepository(appDB)
	insights = repository.NewDBInsightRepository(appDB)

	switch cfg.Storage.Backend {
	case "s3":
		imageStore = storage.NewS3Store(
			os.Getenv("S3_ACCESS_KEY_ID"),
			os.Getenv("S3_SECRET_ACCESS_KEY"),
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.Bucket,
			cfg.Storage.S3.PublicURL,
		)
	default:
		imageStore = storage.NewFSStore(cfg.Storage.Dir, cfg.Storage.BaseURL)
	}

	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" && cfg.AI.Enabled {
		generator = ai.NewAnthropicGenerator(apiKey, cfg.AI.Model, int64(cfg.AI.MaxTokens))
	} else {
		mainLogger.Warn().Msg("AI draft generation disabled (no API key or disabled in config)")
	}

	defer sessions.CloseAll()

	mux := http.NewServeMux()

	mux.HandleFunc("POST "+routes.Articles, serveCreateArticle)
	mux.HandleFunc("GET "+routes.Articles, serveListArticles)
	mux.HandleFunc("GET "+routes.Article, serveGetArticle)
	mux.HandleFunc("PUT "+routes.Article, serveSaveArticle)
	mux.HandleFunc("DELETE "+routes.Article, serveTrashArticle)
	mux.HandleFunc("POST "+routes.ArticleRestore, serveRestoreArticle)
	mux.HandleFunc("DELETE "+routes.ArticlePurge, servePurgeArticle)
	mux.HandleFunc("GET "+routes.Trash, serveListTrash)
	mux.HandleFunc("POST "+routes.ArticlePublish, servePublishArticle)

	mux.HandleFunc("GET "+routes.ArticleExport, serveExportArticle)
	mux.HandleFunc("GET "+routes.ArticleConvert, serveConvertArticle)
	mux.HandleFunc("GET "+routes.ArticlePreview, servePreviewArticle)
	mux.HandleFunc("POST "+routes.ArticleCopy, serveCopyArticle)

	mux.HandleFunc("POST "+routes.ArticleView, serveRecordView)
	mux.HandleFunc("POST "+routes.ArticleRead, serveRecordRead)
	mux.HandleFunc("GET "+routes.ArticleStats, serveArticleStats)

	mux.HandleFunc("POST "+routes.Sessions, serveOpenSession)
	mux.HandleFunc("POST "+routes.SessionUpdate, serveSessionUpdate)
	mux.HandleFunc("POST "+routes.SessionSave, serveSessionSave)
	mux.HandleFunc("GET "+routes.SessionStatus, serveSessionStatus)
	mux.HandleFunc("DELETE "+routes.Session, serveCloseSession)

	mux.HandleFunc("POST "+routes.Insights, serveCaptureInsight)
	mux.HandleFunc("GET "+routes.Insights, serveListInsights)
	mux.HandleFunc("POST "+routes.InsightTriage, serveTriageInsight)
	mux.HandleFunc("POST "+routes.InsightDraft, serveDraftFromInsight)

	mux.HandleFunc("POST "+routes.Series, serveCreateSeries)
	mux.HandleFunc("GET "+routes.Series, serveListSeries)
	mux.HandleFunc("GET "+routes.SeriesArticles, serveSeriesArticles)

	mux.HandleFunc("POST "+routes.Spellcheck, serveSpellcheck)
	mux.HandleFunc("POST "+routes.Images, serveUploadImage)
	mux.HandleFunc("GET "+routes.Themes, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, render.SyntaxThemes())
	})
	mux.HandleFunc("GET "+routes.SSEPath, eventsHandler)

	mux.HandleFunc("GET "+routes.Health, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if cfg.Storage.Backend == "fs" {
		prefix := strings.TrimSuffix(cfg.Storage.BaseURL, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Storage.Dir))))
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	mainLogger.Info().Str("addr", addr).Msg("Listening")
	mainLogger.Fatal().Err(http.ListenAndServe(addr, secureHeaders(mux.ServeHTTP))).Msg("Server stopped")
}

func secureHeaders(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		h(w, r)
	}
}

// JSON helpers

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		mainLogger.Error().Err(err).Msg("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// Articles

type articleRequest struct {
	Title       string      `json:"title"`
	Content     *model.Node `json:"content"`
	ContentText string      `json:"content_text"`
	Tags        []string    `json:"tags"`
	SeriesID    string      `json:"series_id"`
	SeriesPos   int         `json:"series_pos"`
}

func (a articleRequest) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Title, validation.Length(0, 300)),
		validation.Field(&a.SeriesPos, validation.Min(0)),
	)
}

func (a *articleRequest) apply(article *model.Article) {
	article.Title = a.Title
	if a.Content != nil {
		article.Content = a.Content
	}
	article.ContentText = a.ContentText
	if article.ContentText == "" && article.Content != nil {
		article.ContentText = doc.ToPlainText(article.Content)
	}
	article.Tags = a.Tags
	article.SeriesID = model.SeriesID(a.SeriesID)
	article.SeriesPos = a.SeriesPos
}

func serveCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	article := articles.NewArticle()
	req.apply(article)

	if err := articles.Create(article); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

func serveListArticles(w http.ResponseWriter, r *http.Request) {
	list, err := articles.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func getArticle(w http.ResponseWriter, r *http.Request) *model.Article {
	article, err := articles.Get(model.ArticleID(r.PathValue("id")))
	if err != nil {
		writeError(w, http.StatusNotFound, config.ErrArticleNotFound)
		return nil
	}
	return article
}

func serveGetArticle(w http.ResponseWriter, r *http.Request) {
	if article := getArticle(w, r); article != nil {
		writeJSON(w, http.StatusOK, article)
	}
}

func serveSaveArticle(w http.ResponseWriter, r *http.Request) {
	article := getArticle(w, r)
	if article == nil {
		return
	}

	var req articleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.apply(article)
	if err := articles.Save(article); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func serveTrashArticle(w http.ResponseWriter, r *http.Request) {
	if err := articles.Trash(model.ArticleID(r.PathValue("id"))); err != nil {
		writeError(w, http.StatusNotFound, config.ErrArticleNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func serveRestoreArticle(w http.ResponseWriter, r *http.Request) {
	if err := articles.Restore(model.ArticleID(r.PathValue("id"))); err != nil {
		writeError(w, http.StatusConflict, config.ErrArticleNotTrashed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func servePurgeArticle(w http.ResponseWriter, r *http.Request) {
	if err := articles.Purge(model.ArticleID(r.PathValue("id"))); err != nil {
		writeError(w, http.StatusConflict, config.ErrArticleNotTrashed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func serveListTrash(w http.ResponseWriter, r *http.Request) {
	list, err := articles.ListTrash()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func servePublishArticle(w http.ResponseWriter, r *http.Request) {
	if err := articles.Publish(model.ArticleID(r.PathValue("id")), time.Now().UTC()); err != nil {
		writeError(w, http.StatusNotFound, config.ErrArticleNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export and conversion

func serveExportArticle(w http.ResponseWriter, r *http.Request) {
	article := getArticle(w, r)
	if article == nil {
		return
	}

	var payload export.FilePayload
	var err error
	switch r.PathValue("format") {
	case "json":
		payload, err = export.AsJSON(article.Snapshot(), time.Now().UTC())
	case "md", "markdown":
		payload = export.AsMarkdown(article.Snapshot())
	case "html":
		payload = export.AsHTML(article.Snapshot())
	default:
		writeError(w, http.StatusBadRequest, "unknown export format")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set(config.HCType, payload.MIME)
	w.Header().Set(config.HContentDisposition, fmt.Sprintf("attachment; filename=%q", payload.Name))
	w.WriteHeader(http.StatusOK)
	w.Write(payload.Data)
}

func serveConvertArticle(w http.ResponseWriter, r *http.Request) {
	article := getArticle(w, r)
	if article == nil {
		return
	}

	target := r.URL.Query().Get("platform")
	if target == "" || target == "all" {
		converted, err := platform.ConvertAll(article.Snapshot())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, converted)
		return
	}

	converted, err := platform.Convert(platform.ID(target), article.Snapshot())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, converted)
}

func servePreviewArticle(w http.ResponseWriter, r *http.Request) {
	article := getArticle(w, r)
	if article == nil {
		return
	}

	theme := r.URL.Query().Get("theme")
	if theme == "" || !render.IsSyntaxTheme(theme) {
		theme = render.DefaultSyntaxTheme
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write(render.PreviewCached(article.Content, theme))
}

func serveCopyArticle(w http.ResponseWriter, r *http.Request) {
	article := getArticle(w, r)
	if article == nil {
		return
	}

	html := doc.ToHTML(article.Content)
	plain := doc.ToPlainText(article.Content)
	if err := clipboard.WriteRich(html, plain); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats

func serveRecordView(w http.ResponseWriter, r *http.Request) {
	if err := articles.RecordView(model.ArticleID(r.PathValue("id")), time.Now().UTC()); err != nil {
		writeError(w, http.StatusNotFound, config.ErrArticleNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func serveRecordRead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seconds int64 `json:"seconds"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := articles.RecordRead(model.ArticleID(r.PathValue("id")), req.Seconds); err != nil {
		writeError(w, http.StatusNotFound, config.ErrArticleNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func serveArticleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := articles.GetStats(model.ArticleID(r.PathValue("id")))
	if err != nil {
		writeError(w, http.StatusNotFound, config.ErrArticleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Editing sessions

type openSessionRequest struct {
	ArticleID string `json:"article_id"`
}

func (o openSessionRequest) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ArticleID, validation.Required),
	)
}

func serveOpenSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	articleID := model.ArticleID(req.ArticleID)
	article, err := articles.Get(articleID)
	if err != nil {
		writeError(w, http.StatusNotFound, config.ErrArticleNotFound)
		return
	}

	save := func(saveReq autosave.SaveRequest) bool {
		current, err := articles.Get(articleID)
		if err != nil {
			mainLogger.Error().Err(err).Str("article_id", string(articleID)).Msg("Autosave: article vanished")
			return false
		}
		current.Title = saveReq.Title
		current.Content = saveReq.Content
		current.ContentText = saveReq.ContentText
		if err := articles.Save(current); err != nil {
			mainLogger.Error().Err(err).Str("article_id", string(articleID)).Msg("Autosave failed")
			return false
		}
		return true
	}

	interval := time.Duration(config.AppConfig.Autosave.IntervalSeconds) * time.Second
	sess := sessions.Open(articleID, save, interval)
	sess.Coordinator.SetEnabled(config.AppConfig.Autosave.Enabled)
	sess.Coordinator.SetOnStateChange(func(status autosave.Status) {
		clients.BroadcastStatus(articleID, status)
	})
	sess.Coordinator.InitializeSavedState(article.Title, article.Content)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": sess.ID,
		"article_id": sess.ArticleID,
		"status":     sess.Coordinator.Status(),
	})
}

func getSession(w http.ResponseWriter, r *http.Request) *session.Session {
	sess, err := sessions.Get(session.ID(r.PathValue("id")))
	if err != nil {
		writeError(w, http.StatusNotFound, config.ErrSessionNotFound)
		return nil
	}
	return sess
}

func serveSessionUpdate(w http.ResponseWriter, r *http.Request) {
	sess := getSession(w, r)
	if sess == nil {
		return
	}

	var req articleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	contentText := req.ContentText
	if contentText == "" && req.Content != nil {
		contentText = doc.ToPlainText(req.Content)
	}
	sess.Coordinator.Update(req.Title, req.Content, contentText)
	writeJSON(w, http.StatusOK, sess.Coordinator.Status())
}

func serveSessionSave(w http.ResponseWriter, r *http.Request) {
	sess := getSession(w, r)
	if sess == nil {
		return
	}

	saved := sess.Coordinator.AttemptSave()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"saved":  saved,
		"status": sess.Coordinator.Status(),
	})
}

func serveSessionStatus(w http.ResponseWriter, r *http.Request) {
	if sess := getSession(w, r); sess != nil {
		writeJSON(w, http.StatusOK, sess.Coordinator.Status())
	}
}

func serveCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := sessions.Close(session.ID(r.PathValue("id"))); err != nil {
		writeError(w, http.StatusNotFound, config.ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Insights

type insightRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

func (i insightRequest) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Text, validation.Required, validation.Length(1, 2000)),
		validation.Field(&i.Source, validation.Length(0, 200)),
	)
}

func serveCaptureInsight(w http.ResponseWriter, r *http.Request) {
	var req insightRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	insight, err := insights.Capture(req.Text, req.Source)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, insight)
}

func serveListInsights(w http.ResponseWriter, r *http.Request) {
	list, err := insights.ListInsights(model.InsightStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func serveTriageInsight(w http.ResponseWriter, r *http.Request) {
	if err := insights.Triage(model.InsightID(r.PathValue("id"))); err != nil {
		writeError(w, http.StatusNotFound, config.ErrInsightNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type draftRequest struct {
	Summary    string `json:"summary"`
	ActionType string `json:"action_type"`
}

// serveDraftFromInsight runs the insight through the AI generator, imports
// the returned Markdown into the document model and creates a draft article.
func serveDraftFromInsight(w http.ResponseWriter, r *http.Request) {
	if generator == nil {
		writeError(w, http.StatusServiceUnavailable, config.ErrAIDisabled)
		return
	}

	insight, err := insights.GetInsight(model.InsightID(r.PathValue("id")))
	if err != nil {
		writeError(w, http.StatusNotFound, config.ErrInsightNotFound)
		return
	}

	var req draftRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	draft, err := generator.Generate(r.Context(), insight.Text, req.Summary, req.ActionType)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	content, fm, err := importer.FromMarkdown([]byte(draft.Markdown))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	article := articles.NewArticle()
	article.Title = draft.Title
	article.Tags = draft.Tags
	if fm != nil {
		if article.Title == "" {
			article.Title = fm.Title
		}
		if len(article.Tags) == 0 {
			article.Tags = fm.Tags
		}
	}
	article.Content = content
	article.ContentText = doc.ToPlainText(content)

	if err := articles.Create(article); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := insights.MarkDrafted(insight.ID, article.ID); err != nil {
		mainLogger.Error().Err(err).Str("insight_id", string(insight.ID)).Msg("Error marking insight drafted")
	}

	writeJSON(w, http.StatusCreated, article)
}

// Series

type seriesRequest struct {
	Name string `json:"name"`
}

func (s seriesRequest) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 200)),
	)
}

func serveCreateSeries(w http.ResponseWriter, r *http.Request) {
	var req seriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	series, err := insights.CreateSeries(req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, series)
}

func serveListSeries(w http.ResponseWriter, r *http.Request) {
	list, err := insights.ListSeries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func serveSeriesArticles(w http.ResponseWriter, r *http.Request) {
	list, err := articles.ListBySeries(model.SeriesID(r.PathValue("id")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Spellcheck

func serveSpellcheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, checker.Check(req.Text))
}

// Images

func serveUploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	url, err := imageStore.Put(r.Context(), header.Filename, data, header.Header.Get(config.HCType))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// SSE

func eventsHandler(w http.ResponseWriter, r *http.Request) {
	articleID := r.URL.Query().Get("article")
	if articleID == "" {
		http.Error(w, "article parameter required", http.StatusBadRequest)
		return
	}

	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Del("X-Content-Type-Options")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
	flusher.Flush()

	client := &sse.Client{
		Msg:       make(chan string),
		ArticleID: model.ArticleID(articleID),
	}

	clients.Add(client)
	mainLogger.Debug().Str("article_id", articleID).Msg("SSE client connected")

	defer func() {
		clients.Delete(client)
		mainLogger.Debug().Str("article_id", articleID).Msg("SSE client disconnected")
	}()

	notify := r.Context().Done()
	for {
		select {
		case msg := <-client.Msg:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-notify:
			return
		}
	}
}
