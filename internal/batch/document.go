// Package batch parses documents holding multiple named RPN expressions and
// renders each entry through its own pipeline run.
package batch

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/karupanerura/rpn2tex/internal/rpn"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"
)

type documentDef struct {
	Expressions []any `json:"expressions"`
}

type entryDef struct {
	Name string `json:"name" mapstructure:"name"`
	Expr string `json:"expr" mapstructure:"expr"`
}

type Entry struct {
	Name   string
	Source string
}

type Document []Entry

type Result struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	LaTeX  string `json:"latex"`
}

func ParseDocumentYAML(r io.Reader) (Document, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	var def documentDef
	if err := json.Unmarshal(jsonBytes, &def); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	return def.compile()
}

func ParseDocumentJSON(r io.Reader) (Document, error) {
	var def documentDef
	if err := json.NewDecoder(r).Decode(&def); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}
	return def.compile()
}

func (d documentDef) compile() (Document, error) {
	if len(d.Expressions) == 0 {
		return nil, fmt.Errorf("expressions: at least one entry is required")
	}

	doc := make(Document, len(d.Expressions))
	seen := make(map[string]struct{}, len(d.Expressions))
	for i, raw := range d.Expressions {
		v, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expressions[%d]: invalid type: %T", i, raw)
		}

		var def entryDef
		if err := mapstructure.Decode(v, &def); err != nil {
			return nil, fmt.Errorf("expressions[%d]: %w", i, err)
		}
		if def.Name == "" {
			return nil, fmt.Errorf("expressions[%d]: name: required", i)
		}
		if def.Expr == "" {
			return nil, fmt.Errorf("expressions[%d]: expr: required", i)
		}
		if _, duplicated := seen[def.Name]; duplicated {
			return nil, fmt.Errorf("expressions[%d]: duplicated name: %s", i, def.Name)
		}
		seen[def.Name] = struct{}{}

		doc[i] = Entry{Name: def.Name, Source: def.Expr}
	}
	return doc, nil
}

// RenderAll converts every entry concurrently, each through an independent
// pipeline run. Results keep document order. The first failure wins and is
// annotated with its entry name.
func (d Document) RenderAll() ([]Result, error) {
	results := make([]Result, len(d))

	eg := errgroup.Group{}
	for i, entry := range d {
		i := i
		entry := entry
		eg.Go(func() error {
			latex, err := rpn.Convert(entry.Source)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.Name, err)
			}
			results[i] = Result{Name: entry.Name, Source: entry.Source, LaTeX: latex}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
