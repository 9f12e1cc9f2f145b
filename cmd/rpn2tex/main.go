package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/rpn2tex/internal/batch"
	"github.com/karupanerura/rpn2tex/internal/report"
	"github.com/karupanerura/rpn2tex/internal/rpn"
	"github.com/karupanerura/rpn2tex/internal/server"
	"github.com/karupanerura/rpn2tex/internal/types"
	"github.com/mattn/go-isatty"
)

type Option struct {
	Expr   string `short:"e" long:"expr" description:"[OPTIONAL] RPN expression to convert" required:"false"`
	File   string `short:"f" long:"file" description:"[OPTIONAL] Input file, \"-\" for stdin (.yaml/.yml/.json selects batch mode)" required:"false"`
	Output string `short:"o" long:"output" description:"[OPTIONAL] Output file (default: stdout)" required:"false"`
	JSON   bool   `long:"json" description:"[OPTIONAL] Emit machine-readable JSON" required:"false"`
	Listen string `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the conversion API" required:"false"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(os.Stdout)
			return 1
		}
	}

	modes := 0
	for _, selected := range []bool{opt.Expr != "", opt.File != "", opt.Listen != ""} {
		if selected {
			modes++
		}
	}
	if modes != 1 {
		parser.WriteHelp(os.Stdout)
		return 1
	}

	// server mode
	if opt.Listen != "" {
		if err := serveConversions(opt.Listen); err != nil {
			log.Printf("failed to serve conversion API: %v", err)
			return 1
		}
		return 0
	}

	if opt.File != "" {
		switch filepath.Ext(opt.File) {
		case ".yaml", ".yml", ".json":
			return runBatch(&opt)
		}
	}
	return runSingle(&opt)
}

func runSingle(opt *Option) int {
	source := opt.Expr
	if opt.File != "" {
		b, err := readInput(opt.File)
		if err != nil {
			log.Printf("failed to read input: %v", err)
			return 1
		}
		source = string(b)
	}

	latex, err := rpn.Convert(source)
	if err != nil {
		var syntaxErr *types.SyntaxError
		if !errors.As(err, &syntaxErr) {
			log.Printf("failed to convert expression: %v", err)
			return 1
		}
		if opt.JSON {
			if err := dumpJSON(os.Stderr, syntaxErr.Detail()); err != nil {
				log.Printf("failed to dump error as JSON: %v", err)
			}
			return 1
		}
		ctx := report.NewSourceContext(source, 1)
		fmt.Fprint(os.Stderr, ctx.Format(syntaxErr))
		return 1
	}

	if opt.JSON {
		if err := dumpJSON(os.Stdout, map[string]string{"latex": latex}); err != nil {
			log.Printf("failed to dump result as JSON: %v", err)
			return 1
		}
		return 0
	}
	if err := writeOutput(opt.Output, latex); err != nil {
		log.Printf("failed to write output: %v", err)
		return 1
	}
	return 0
}

func runBatch(opt *Option) int {
	doc, err := loadDocument(opt.File)
	if err != nil {
		log.Printf("failed to load document: %v", err)
		return 1
	}

	results, err := doc.RenderAll()
	if err != nil {
		log.Printf("failed to render document: %v", err)
		return 1
	}

	if opt.Output != "" {
		b, err := json.MarshalIndent(map[string][]batch.Result{"results": results}, "", "  ")
		if err != nil {
			log.Printf("failed to marshal results: %v", err)
			return 1
		}
		if err := writeOutput(opt.Output, string(b)); err != nil {
			log.Printf("failed to write output: %v", err)
			return 1
		}
		return 0
	}

	if err := dumpJSON(os.Stdout, map[string][]batch.Result{"results": results}); err != nil {
		log.Printf("failed to dump results as JSON: %v", err)
		return 1
	}
	return 0
}

func loadDocument(filePath string) (batch.Document, error) {
	var parseDocument func(io.Reader) (batch.Document, error)
	switch filepath.Ext(filePath) {
	case ".yaml", ".yml":
		parseDocument = batch.ParseDocumentYAML
	case ".json":
		parseDocument = batch.ParseDocumentJSON
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	doc, err := parseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("batch.ParseDocument: %w", err)
	}
	return doc, nil
}

func readInput(filePath string) ([]byte, error) {
	if filePath == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("io.ReadAll(stdin): %w", err)
		}
		return b, nil
	}

	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%q): %w", filePath, err)
	}
	return b, nil
}

func writeOutput(filePath, content string) error {
	if filePath == "" {
		fmt.Println(content)
		return nil
	}

	if err := os.WriteFile(filePath, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%q): %w", filePath, err)
	}
	log.Printf("Generated: %s", filePath)
	return nil
}

func serveConversions(listen string) error {
	srv := http.Server{
		Handler: server.NewHTTPHandler(),
		Addr:    listen,
	}

	log.Printf("Listen HTTP on %s", listen)
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
