package binding

import (
	"bytes"
	"go/token"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"github.com/wippyai/nativeobjects/codegen"
	"github.com/wippyai/nativeobjects/contract"
	"github.com/wippyai/nativeobjects/errors"
	"github.com/wippyai/nativeobjects/layout"
)

// Artifact is the generated binding of one contract.
type Artifact struct {
	Name       string
	Package    string
	Flattened  *contract.FlattenedList
	Layout     *layout.Layout
	Signatures []codegen.Signature
	Exports    *codegen.Exports
	Invoker    *codegen.Invoker
	// Source is the formatted Go file.
	Source []byte
}

// Filename returns the conventional file name for the artifact.
func (a *Artifact) Filename() string {
	return strings.ToLower(a.Name) + ".g.go"
}

// Generate produces the binding of c.
func Generate(c *contract.Contract, opts Options) (*Artifact, error) {
	if c == nil {
		return nil, errors.InvalidInput(errors.PhaseEmit, "nil contract")
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if !token.IsIdentifier(c.Name) || !token.IsExported(c.Name) {
		return nil, errors.InvalidData(errors.PhaseEmit, []string{c.Name}, "contract name must be an exported Go identifier")
	}

	list, err := contract.Flatten(c, contract.FlattenOptions{SkipUnsupported: opts.Lenient})
	if err != nil {
		return nil, err
	}
	// Generated code addresses slots with the host's pointer width, so the
	// plan must use it too.
	l, err := layout.Plan(list, layout.Options{})
	if err != nil {
		return nil, err
	}
	sigs, err := codegen.Signatures(l)
	if err != nil {
		return nil, err
	}

	a := &Artifact{
		Name:       c.Name,
		Package:    opts.Namespace,
		Flattened:  list,
		Layout:     l,
		Signatures: sigs,
		Exports:    codegen.EmitExports(l, sigs),
		Invoker:    codegen.EmitInvoker(l, sigs),
	}

	sections := []string{codegen.EmitDecls(l, sigs)}
	if !opts.omitRecords && len(l.Records) > 0 {
		records, err := codegen.EmitRecords(l.Records)
		if err != nil {
			return nil, err
		}
		sections = append(sections, records)
	}
	sections = append(sections, a.Exports.Source, a.Invoker.Source)

	a.Source, err = render(a.Filename(), fileData{
		Package:  opts.Namespace,
		Source:   "contract " + c.Name,
		Runtime:  opts.RuntimeImport,
		Sections: sections,
	})
	if err != nil {
		return nil, err
	}

	Logger().Debug("generated binding",
		zap.String("contract", c.Name),
		zap.String("package", opts.Namespace),
		zap.Int("slots", l.VTable.Slots),
		zap.Int("records", len(l.Records)),
		zap.Int("bytes", len(a.Source)))
	return a, nil
}

func render(filename string, data fileData) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.PhaseEmit, errors.KindInvalidData, err, "render "+filename)
	}
	src, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, errors.New(errors.PhaseEmit, errors.KindInvalidData).
			Path(filename).
			Cause(err).
			Value(buf.String()).
			Detail("generated source does not format").
			Build()
	}
	return src, nil
}
