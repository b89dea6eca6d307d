package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/tirecycle/feasibility/internal/domain"
)

// HTMLFormatter renders the markdown report to a standalone HTML page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"barWidth": func(spread decimal.Decimal) int64 {
		return spread.Mul(decimal.NewFromInt(10)).Round(0).IntPart()
	},
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func (h HTMLFormatter) Format(report *domain.FeasibilityReport) ([]byte, error) {
	var md, body bytes.Buffer
	writeMarkdown(&md, report)
	if err := markdown.Convert(md.Bytes(), &body); err != nil {
		return nil, err
	}

	data := struct {
		Title      string
		Viable     bool
		Body       template.HTML
		Tornado    []domain.TornadoBar
		Projection []domain.ScenarioResult
	}{
		Title:      report.Title,
		Viable:     Assess(report).Viable,
		Body:       template.HTML(body.String()),
		Tornado:    report.Sensitivity.Tornado,
		Projection: report.Scenarios.Scenarios,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
