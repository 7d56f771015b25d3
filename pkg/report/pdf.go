package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Section is one titled block in a structured report.
type Section struct {
	Title string
	Body  string
}

// Generator renders session reports as PDF files under OutDir.
type Generator struct {
	OutDir string
}

func NewGenerator(outDir string) (*Generator, error) {
	if outDir == "" {
		outDir = "reports"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &Generator{OutDir: outDir}, nil
}

// Generate renders a flat-text report. Returns the file path, or an empty
// path with the error on failure.
func (g *Generator) Generate(title, body string) (string, error) {
	return g.GenerateSections(title, []Section{{Body: body}}, nil)
}

// GenerateSections renders a titled-sections report with an optional
// metadata table under the heading.
func (g *Generator) GenerateSections(title string, sections []Section, metadata map[string]string) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, title, "", "C", false)
	pdf.Ln(4)

	if len(metadata) > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		for _, key := range sortedKeys(metadata) {
			pdf.MultiCell(0, 5, fmt.Sprintf("%s: %s", key, metadata[key]), "", "L", false)
		}
		pdf.Ln(4)
	}

	for _, section := range sections {
		if section.Title != "" {
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 8, section.Title, "", "L", false)
			pdf.Ln(1)
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, section.Body, "", "L", false)
		pdf.Ln(4)
	}

	path := filepath.Join(g.OutDir, fmt.Sprintf("%s_%s.pdf", slugify(title), time.Now().Format("20060102_150405")))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = slugRe.ReplaceAllString(strings.ToLower(s), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		s = "report"
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
