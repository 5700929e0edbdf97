package binding

import (
	"context"
	stderrors "errors"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/nativeobjects/codegen"
	"github.com/wippyai/nativeobjects/contract"
	"github.com/wippyai/nativeobjects/errors"
	"github.com/wippyai/nativeobjects/layout"
)

// RecordsFilename is the file holding record types shared by a Set.
const RecordsFilename = "records.g.go"

// Set is the generated bindings of a whole registry.
type Set struct {
	Package   string
	Contracts []*Artifact
	// Records is the formatted file declaring every record type once, nil when
	// no contract uses records.
	Records []byte
}

// File is one generated file.
type File struct {
	Name   string
	Source []byte
}

// Files returns every file of the set, contracts in registry order, records last.
func (s *Set) Files() []File {
	files := make([]File, 0, len(s.Contracts)+1)
	for _, a := range s.Contracts {
		files = append(files, File{Name: a.Filename(), Source: a.Source})
	}
	if s.Records != nil {
		files = append(files, File{Name: RecordsFilename, Source: s.Records})
	}
	return files
}

// GenerateAll generates every contract in reg concurrently. Contracts are
// independent, so all of them are attempted and every failure is reported
// in an errors.List.
func GenerateAll(ctx context.Context, reg *contract.Registry, opts Options) (*Set, error) {
	if reg == nil {
		return nil, errors.InvalidInput(errors.PhaseEmit, "nil registry")
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.omitRecords = true

	contracts := reg.Contracts()
	artifacts := make([]*Artifact, len(contracts))
	failures := make([]error, len(contracts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range contracts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			artifacts[i], failures[i] = Generate(c, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var list errors.List
	for i, err := range failures {
		if err == nil {
			continue
		}
		var e *errors.Error
		if !stderrors.As(err, &e) {
			e = errors.Wrap(errors.PhaseEmit, errors.KindInvalidData, err, contracts[i].Name)
		}
		list = append(list, e)
	}
	if len(list) > 0 {
		Logger().Warn("binding generation failed",
			zap.Int("contracts", len(contracts)),
			zap.Int("failed", len(list)))
		return nil, list
	}

	set := &Set{Package: opts.Namespace, Contracts: artifacts}
	records, err := sharedRecords(artifacts)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		src, err := codegen.EmitRecords(records)
		if err != nil {
			return nil, err
		}
		set.Records, err = render(RecordsFilename, fileData{
			Package:  opts.Namespace,
			Runtime:  opts.RuntimeImport,
			Sections: []string{src},
		})
		if err != nil {
			return nil, err
		}
	}

	Logger().Info("generated bindings",
		zap.String("package", opts.Namespace),
		zap.Int("contracts", len(artifacts)),
		zap.Int("records", len(records)))
	return set, nil
}

// sharedRecords merges the record layouts of all artifacts, keeping the
// dependency order each layout already has.
func sharedRecords(artifacts []*Artifact) ([]layout.RecordLayout, error) {
	var out []layout.RecordLayout
	byName := make(map[string]*contract.Record)
	for _, a := range artifacts {
		for _, r := range a.Layout.Records {
			prev, ok := byName[r.Record.Name]
			if ok && prev == r.Record {
				continue
			}
			if ok {
				return nil, errors.New(errors.PhaseEmit, errors.KindInvalidData).
					Path(a.Name).
					ABIType(r.Record.Name).
					Detail("two different records named %q", r.Record.Name).
					Build()
			}
			byName[r.Record.Name] = r.Record
			out = append(out, r)
		}
	}
	return out, nil
}
