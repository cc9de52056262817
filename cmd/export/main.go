package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/inkhorn/inkhorn/internal/db"
	"github.com/inkhorn/inkhorn/internal/export"
	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/repository"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func fatal(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf(format, args...)))
	os.Exit(1)
}

func main() {
	dbPath := flag.String("db", "./inkhorn.db", "path to the article database")
	articleID := flag.String("id", "", "article to export (empty lists all articles)")
	format := flag.String("format", "md", "export format: json, md or html")
	outDir := flag.String("out", ".", "directory to write the exported file into")
	flag.Parse()

	database := db.NewSQLite(*dbPath)
	if err := database.InitDB(); err != nil {
		fatal("Error opening database: %v", err)
	}
	defer database.Close()

	articles := repository.NewDBArticleRepository(database)

	if *articleID == "" {
		list, err := articles.List()
		if err != nil {
			fatal("Error listing articles: %v", err)
		}
		for _, a := range list {
			fmt.Printf("%s  %s\n", labelStyle.Render(string(a.ID)), valueStyle.Render(a.Title))
		}
		return
	}

	article, err := articles.Get(model.ArticleID(*articleID))
	if err != nil {
		fatal("Error loading article %s: %v", *articleID, err)
	}

	var payload export.FilePayload
	switch *format {
	case "json":
		payload, err = export.AsJSON(article.Snapshot(), time.Now().UTC())
		if err != nil {
			fatal("Error building JSON export: %v", err)
		}
	case "md", "markdown":
		payload = export.AsMarkdown(article.Snapshot())
	case "html":
		payload = export.AsHTML(article.Snapshot())
	default:
		fatal("Unknown format %q (want json, md or html)", *format)
	}

	target := filepath.Join(*outDir, payload.Name)
	if err := os.WriteFile(target, payload.Data, 0644); err != nil {
		fatal("Error writing %s: %v", target, err)
	}

	fmt.Println(labelStyle.Render("Exported: ") + valueStyle.Render(target))
}
