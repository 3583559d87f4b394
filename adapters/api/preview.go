package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/patilv/papaja/app"
	"github.com/patilv/papaja/internal/errors"
)

// handlePreview renders a batch and returns an HTML page built from a
// markdown report of the produced fragments, for eyeballing output
// before it goes into a manuscript.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var items []app.RenderItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeError(w, errors.InvalidInput("malformed request body: "+err.Error()))
		return
	}

	outcomes, err := s.service.RenderBatch(r.Context(), items)
	if err != nil {
		writeError(w, err)
		return
	}

	doc := buildMarkdownReport(outcomes)
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	page := markdown.ToHTML([]byte(doc), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

// buildMarkdownReport lays the rendered clauses out as a markdown
// document, one section per record.
func buildMarkdownReport(outcomes []app.RenderOutcome) string {
	var b strings.Builder
	b.WriteString("# Rendered results\n\n")
	for i, oc := range outcomes {
		label := oc.Source
		if label == "" {
			label = fmt.Sprintf("record %d", i+1)
		}
		fmt.Fprintf(&b, "## %s\n\n", label)
		if oc.Err != nil {
			fmt.Fprintf(&b, "**error** (%s): %s\n\n", errors.GetCode(oc.Err), oc.Err.Error())
			continue
		}
		fmt.Fprintf(&b, "- statistic: `%s`\n", oc.Output.Statistic)
		if oc.Output.Estimate != "" {
			fmt.Fprintf(&b, "- estimate: `%s`\n", oc.Output.Estimate)
			fmt.Fprintf(&b, "- full result: `%s`\n", oc.Output.FullResult)
		}
		b.WriteString("\n")
	}
	return b.String()
}
