package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Tool is named in the "Code generated" header.
	Tool string
	// Unformatted skips go/format, which helps when debugging a template.
	Unformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Tool: "beanmorph-gen",
	}
}

// GeneratedFile is one rendered Go source file.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

// Generator renders resolved plans into Go source.
type Generator struct {
	config GeneratorConfig
}

func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

type templateData struct {
	Tool string
	*Plan
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by {{.Tool}}. DO NOT EDIT.
{{- if .Origin}}
// source: {{.Origin}}
{{- end}}

package {{.Package}}
{{range .Mappers}}
// {{.Name}} maps {{.Source}} to {{.Target}}.
type {{.Name}} struct{}

// Map propagates a nil source as a nil target.
func ({{.Name}}) Map(src *{{.Source}}) (*{{.Target}}, error) {
	return {{.Func}}(src), nil
}

// {{.Func}} copies {{.Source}} into a new {{.Target}}.
func {{.Func}}(src *{{.Source}}) *{{.Target}} {
	if src == nil {
		return nil
	}
	return &{{.Target}}{
{{- range .Assignments}}
		{{.Target}}: src.{{.Source}},
{{- end}}
	}
}
{{end}}`))

// Generate renders p into a single file named after p.Output.
func (g *Generator) Generate(p *Plan) ([]GeneratedFile, error) {
	if p.Output == "" {
		return nil, fmt.Errorf("plan for package %s has no output file", p.Package)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, templateData{Tool: g.config.Tool, Plan: p}); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", p.Output, err)
	}

	content := buf.Bytes()
	if !g.config.Unformatted {
		formatted, err := format.Source(content)
		if err != nil {
			return nil, fmt.Errorf("formatting %s: %w\n%s", p.Output, err, content)
		}
		content = formatted
	}

	return []GeneratedFile{{Filename: p.Output, Content: content}}, nil
}
