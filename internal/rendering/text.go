package rendering

import (
	"github.com/flosch/pongo2/v6"
)

var textPage = pongo2.Must(pongo2.FromString(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { margin: 2cm; }
  body { font-family: Georgia, "Times New Roman", serif; font-size: 11pt; line-height: 1.45; }
  pre { font-family: inherit; white-space: pre-wrap; margin: 0; }
</style>
</head>
<body><pre>{{ body }}</pre></body>
</html>
`))

// TextToHTML wraps a plain-text document in a minimal HTML page with its
// line breaks preserved, so it can be handed to an HTML-to-PDF converter.
func TextToHTML(text string) (string, error) {
	out, err := textPage.Execute(pongo2.Context{"body": text})
	if err != nil {
		return "", &RenderError{Message: "failed to wrap text document", Cause: err}
	}
	return out, nil
}
