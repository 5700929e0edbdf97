package binding

import (
	"text/template"
)

const header = "// Code generated by nativeobjgen. DO NOT EDIT."

var fileTemplate = template.Must(template.New("file").Parse(header + `
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

package {{.Package}}

import (
	"sync"
	"unsafe"

	{{printf "%q" .Runtime}}
)
{{range .Sections}}
{{.}}
{{end}}`))

type fileData struct {
	Package  string
	Source   string
	Runtime  string
	Sections []string
}
