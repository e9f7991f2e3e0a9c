package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed "templates"
var templateFS embed.FS

type Exporter struct {
	OutputDir string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{OutputDir: outputDir}
}

// jsonEntry is the flat row shape written by ExportJSON, the contract
// downstream tooling reads.
type jsonEntry struct {
	Rank        int     `json:"rank"`
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName,omitempty"`
	Email       string  `json:"email,omitempty"`
	Commits     int     `json:"commits"`
	PRsCreated  int     `json:"prsCreated"`
	PRsMerged   int     `json:"prsMerged"`
	PRsReviewed int     `json:"prsReviewed"`
	WorkItems   int     `json:"workItems"`
	Score       float64 `json:"score"`
}

func (e *Exporter) ExportJSON(s Summary, filename string) error {
	rows := make([]jsonEntry, 0, len(s.Entries))
	for _, entry := range s.Entries {
		acc := entry.Contributor
		rows = append(rows, jsonEntry{
			Rank:        entry.Rank,
			Key:         acc.Key,
			DisplayName: acc.DisplayName,
			Email:       acc.Email,
			Commits:     acc.Commits,
			PRsCreated:  acc.PRsCreated,
			PRsMerged:   acc.PRsMerged,
			PRsReviewed: acc.PRsReviewed,
			WorkItems:   acc.WorkItems,
			Score:       entry.Score,
		})
	}

	data, err := json.MarshalIndent(rows, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.OutputDir, filename), data, 0644)
}

func (e *Exporter) ExportMarkdown(s Summary, filename string) error {
	f, err := os.Create(filepath.Join(e.OutputDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create Markdown file: %w", err)
	}
	defer f.Close()
	return RenderMarkdown(f, s)
}

func (e *Exporter) ExportHTML(s Summary, filename string) error {
	funcMap := template.FuncMap{
		"title":  cases.Title(language.English).String,
		"score":  roundScore,
		"name":   displayName,
		"fmtDay": func(t time.Time) string { return t.Format("2006-01-02") },
	}
	tmpl, err := template.New("report.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/report.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	f, err := os.Create(filepath.Join(e.OutputDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, s); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}
