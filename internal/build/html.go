package build

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
	"git.home.luguber.info/inful/previewbuilder/internal/workspace"
)

// HTMLOutputName is the entry document published for every component.
const HTMLOutputName = "index.html"

// htmlShell is the static document template. It embeds the root mount
// element, the compiled stylesheet link, and the module-script reference.
const htmlShell = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Rendered Component</title>
    <link rel="stylesheet" href="./%s" />
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="./%s"></script>
  </body>
</html>
`

// HTMLComposer synthesizes the static HTML shell into dist. Pure in-memory
// text generation; the only failure mode is the final write.
type HTMLComposer struct{}

// NewHTMLComposer creates a composer.
func NewHTMLComposer() *HTMLComposer { return &HTMLComposer{} }

// Compose writes dist/index.html referencing the compiled script and stylesheet.
func (c *HTMLComposer) Compose(ws *workspace.Manager) error {
	doc := fmt.Sprintf(htmlShell, StylesheetOutputName, ScriptOutputName)
	path := filepath.Join(ws.DistDir(), HTMLOutputName)
	if err := os.WriteFile(path, []byte(doc), 0o640); err != nil {
		return errors.WrapWorkspace(err, "failed to write HTML shell")
	}
	return nil
}
