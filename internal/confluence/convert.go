package confluence

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		ghtml.WithXHTML(),
		renderer.WithNodeRenderers(util.Prioritized(&codeMacroRenderer{}, 100)),
	),
)

// * ToStorageFormat converts markdown into Confluence storage format (XHTML plus macros)
func ToStorageFormat(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// * codeMacroRenderer renders code blocks as the Confluence code macro
type codeMacroRenderer struct{}

func (r *codeMacroRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderCode)
	reg.Register(ast.KindCodeBlock, r.renderCode)
}

func (r *codeMacroRenderer) renderCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	language := "text"
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		if lang := fenced.Language(source); len(lang) > 0 {
			language = string(lang)
		}
	}

	var code strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	fmt.Fprintf(w, `<ac:structured-macro ac:name="code" ac:schema-version="1">`+
		`<ac:parameter ac:name="language">%s</ac:parameter>`+
		`<ac:plain-text-body><![CDATA[%s]]></ac:plain-text-body>`+
		"</ac:structured-macro>\n",
		html.EscapeString(language), escapeCDATA(strings.TrimRight(code.String(), "\n")))

	return ast.WalkSkipChildren, nil
}

// * "]]>" cannot appear inside a CDATA section, so it is split across two
func escapeCDATA(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}
