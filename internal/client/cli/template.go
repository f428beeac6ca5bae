package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"
)

var funcs = template.FuncMap{
	"join": strings.Join,
	"ms": func(ms int64) string {
		if ms == 0 {
			return "never"
		}
		return time.UnixMilli(ms).Format(time.RFC3339)
	},
	"duration": func(ms int64) string {
		return (time.Duration(ms) * time.Millisecond).String()
	},
}

const statusTemplate = `
Sync:       {{.Label}}
{{- if .Message }}
Message:    {{.Message}}
{{- end}}
Pending:    {{.Pending}}
In flight:  {{.InFlight}}
Failed:     {{.Failed}}
Conflicts:  {{.Conflicts}}
Last push:  {{ms .LastSyncAt}}
`

const noteTemplate = `
=== {{.Note.Title}} ===

ID:      {{.Note.ID}}
Type:    {{.Note.Type}}
{{- if .Note.FolderID }}
Folder:  {{.Note.FolderID}}
{{- end}}
{{- if .Note.Tags }}
Tags:    {{join .Note.Tags ", "}}
{{- end}}
{{- if .Files }}

Files:
{{- range .Files }}
  {{.ID}}  {{.FileName}} ({{.FileSize}} bytes{{if .TotalPages}}, {{.TotalPages}} pages{{end}})
{{- end}}
{{- end}}
{{- if .Pages }}

Pages:
{{- range .Pages }}
  page {{.PageID}}: {{len .Blocks}} block(s)
{{- end}}
{{- end}}
{{- if .Recordings }}

Recordings:
{{- range .Recordings }}
  {{.ID}}  {{.Title}} ({{duration .DurationMs}})
{{- end}}
{{- end}}
`

const queueTemplate = `
{{- range . }}
{{.ID}}
  {{.Operation}} {{.EntityType}} {{.EntityID}}
  state: {{.State}}, attempts: {{.Attempts}}, queued: {{ms .EnqueuedAt}}
{{- if .LastError }}
  last error: {{.LastError}}
{{- end}}
{{- end}}
`

func render(w io.Writer, text string, v any) error {
	tmpl, err := template.New("view").Funcs(funcs).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := tmpl.Execute(w, v); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	return nil
}
