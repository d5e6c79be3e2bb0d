package inspector

import (
	"bytes"
	"html/template"

	"github.com/m-mizutani/goerr/v2"
)

// Static icons for the panel header. Stroke inherits from CSS color.
const (
	iconChevronDown  = `<svg class="icon" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><polyline points="6 9 12 15 18 9"/></svg>`
	iconChevronRight = `<svg class="icon" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><polyline points="9 18 15 12 9 6"/></svg>`
	iconCopy         = `<svg class="icon" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><rect x="9" y="9" width="13" height="13" rx="2"/><path d="M5 15H4a2 2 0 0 1-2-2V4a2 2 0 0 1 2-2h9a2 2 0 0 1 2 2v1"/></svg>`
	iconCheck        = `<svg class="icon" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><polyline points="20 6 9 17 4 12"/></svg>`
)

var panelTmpl = template.Must(template.New("inspector").Parse(`<div class="inspector" data-inspector-id="{{.ID}}">
  <div class="inspector-header">
    <button type="button" class="inspector-toggle" data-action="toggle">{{.ToggleIcon}}<span>Raw JSON</span></button>
    <button type="button" class="inspector-copy{{if .Copied}} copied{{end}}" data-action="copy">{{.CopyIcon}}</button>
  </div>
{{- if .Expanded}}
  <pre class="inspector-body" style="max-height: {{.MaxHeight}}px">{{.Text}}</pre>
{{- end}}
</div>
`))

type panelData struct {
	ID         string
	Expanded   bool
	Copied     bool
	MaxHeight  int
	Text       string
	ToggleIcon template.HTML
	CopyIcon   template.HTML
}

// RenderHTML renders the panel fragment: a bordered panel with a
// header row (chevron toggle labeled "Raw JSON", copy button that shows
// a checkmark while copied) and, when expanded, the serialized value in
// a scrollable monospace region capped at MaxHeight.
func (x *Inspector) RenderHTML() (string, error) {
	text, err := Serialize(x.value)
	if err != nil {
		return "", err
	}

	x.mu.Lock()
	data := panelData{
		ID:        x.id.String(),
		Expanded:  x.expanded,
		Copied:    x.copied,
		MaxHeight: x.maxHeight,
		Text:      text,
	}
	x.mu.Unlock()

	data.ToggleIcon = template.HTML(iconChevronRight)
	if data.Expanded {
		data.ToggleIcon = template.HTML(iconChevronDown)
	}
	data.CopyIcon = template.HTML(iconCopy)
	if data.Copied {
		data.CopyIcon = template.HTML(iconCheck)
	}

	var buf bytes.Buffer
	if err := panelTmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render inspector panel",
			goerr.V("inspector", x.id))
	}
	return buf.String(), nil
}
