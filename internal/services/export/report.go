package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"smarttag/internal/models"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<title>SmartTag Report</title>
<style>
body { font-family: Arial, sans-serif; padding: 20px; }
h1 { color: #4361ee; }
.stats { display: grid; grid-template-columns: repeat(3, 1fr); gap: 20px; margin: 20px 0; }
.stat { background: #f8f9fa; padding: 20px; border-radius: 10px; }
.stat h3 { margin: 0 0 10px; }
.fraud { color: #f94144; }
</style>
</head>
<body onload="window.print()">
<h1>SmartTag Detection Report</h1>
<p>Generated: {{.Generated}}</p>
<div class="stats">
<div class="stat"><h3>Vehicles</h3><p>{{.Vehicles}}</p></div>
<div class="stat"><h3>Plates</h3><p>{{.Plates}}</p></div>
<div class="stat"><h3>Frauds</h3><p>{{.Frauds}}</p></div>
</div>
<h2>Detection History</h2>
<ul>
{{- range .History}}
<li>{{.Timestamp.Format "15:04:05"}}: {{.Title}}</li>
{{- end}}
</ul>
</body>
</html>
`

var report = template.Must(template.New("report").Parse(reportTemplate))

type reportData struct {
	Generated string
	Vehicles  string
	Plates    string
	Frauds    string
	History   []models.HistoryRecord
}

// Report renders the printable detection report.
func (s *Service) Report(w io.Writer) error {
	snap := s.state.Snapshot()
	c := snap.View.Counters.Display()

	data := reportData{
		Generated: s.now().Format(time.DateTime),
		Vehicles:  c.Vehicles,
		Plates:    c.Plates,
		Frauds:    c.Frauds,
		History:   snap.History,
	}
	if err := report.Execute(w, data); err != nil {
		return fmt.Errorf("export.Report: %w", err)
	}
	return nil
}
