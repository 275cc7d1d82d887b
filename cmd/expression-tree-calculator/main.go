package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/expression-tree-calculator/internal/batch"
	"github.com/karupanerura/expression-tree-calculator/internal/expression"
	"github.com/karupanerura/expression-tree-calculator/internal/server"
	"github.com/karupanerura/expression-tree-calculator/internal/types"
	"github.com/mattn/go-isatty"
)

type Option struct {
	Expr        string `short:"e" long:"expr" description:"[OPTIONAL] Infix expression (read a line from stdin if omitted)" required:"false"`
	File        string `short:"f" long:"file" description:"[OPTIONAL] Batch file of expressions (.yaml, .yml or .json)" required:"false"`
	Listen      string `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the evaluation API" required:"false"`
	Parallelism int    `short:"p" long:"parallelism" description:"[OPTIONAL] Max expressions evaluated at once in batch mode" default:"4"`
	Strict      bool   `long:"strict" description:"[OPTIONAL] Report unbalanced parentheses as an error"`
	JSON        bool   `long:"json" description:"[OPTIONAL] Print the result as JSON"`
	Debug       bool   `long:"debug" description:"[OPTIONAL] Dump tokens and the expression tree"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(stdout)
			return 1
		}
	}
	if countNonEmpty(opt.Expr, opt.File, opt.Listen) > 1 {
		parser.WriteHelp(stdout)
		return 1
	}

	// server mode
	if opt.Listen != "" {
		if err = serve(opt.Listen, opt.Debug); err != nil {
			log.Printf("failed to serve: %v", err)
			return 1
		}
		return 0
	}

	calc := expression.Calculator{Strict: opt.Strict, Debug: opt.Debug}

	// batch mode
	if opt.File != "" {
		return runBatch(opt.File, calc, opt.Parallelism, stdout)
	}

	source := opt.Expr
	if source == "" {
		interactive := isTerminal(stdin)
		if interactive {
			fmt.Fprintln(stdout, "--- Expression Tree Calculator ---")
			fmt.Fprint(stdout, "Enter Infix expression: ")
		}
		source, err = readLine(stdin)
		if err != nil {
			log.Printf("failed to read expression: %v", err)
			return 1
		}
	}

	ret, err := calculate(&calc, source)
	if opt.JSON {
		return printJSON(stdout, ret, err)
	}
	return printText(stdout, ret, err)
}

func countNonEmpty(values ...string) (n int) {
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if errors.Is(err, io.EOF) {
		// ok: the last line may lack a newline
	} else if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// calculate runs the pipeline and turns a runtime panic into an error.
func calculate(calc *expression.Calculator, source string) (ret *expression.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = types.NewSystemError(r)
		}
	}()
	return calc.Calculate(source)
}

func printText(w io.Writer, ret *expression.Result, err error) int {
	if ret != nil && ret.Postfix != nil {
		fmt.Fprintf(w, "postfix: %s\n", ret.PostfixString())
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "result: %s\n", ret.Value)
	return 0
}

func printJSON(w io.Writer, ret *expression.Result, err error) int {
	out := map[string]any{}
	if ret != nil {
		out["expression"] = ret.Source
		out["tokens"] = expression.TokenStrings(ret.Tokens)
		out["postfix"] = ret.PostfixString()
	}

	status := 0
	if err != nil {
		out["error"] = types.ExceptionOf(err)
		status = 1
	} else {
		out["result"] = ret.Value
		out["tree"] = ret.Tree.String()
	}

	if err := dumpJSON(w, out); err != nil {
		log.Printf("failed to dump result as JSON: %v", err)
		return 1
	}
	return status
}

func runBatch(filePath string, calc expression.Calculator, parallelism int, w io.Writer) int {
	b, err := loadBatch(filePath)
	if err != nil {
		log.Printf("failed to load batch: %v", err)
		return 1
	}

	outcomes, err := b.Run(context.Background(), calc, parallelism)
	if err != nil {
		log.Printf("failed to run batch: %v", err)
		return 1
	}

	status := 0
	for _, o := range outcomes {
		if o.Failed() {
			status = 1
		}
	}
	if err = dumpJSON(w, map[string]any{"outcomes": outcomes}); err != nil {
		log.Printf("failed to dump batch outcomes: %v", err)
		return 1
	}
	return status
}

func loadBatch(filePath string) (*batch.Batch, error) {
	var parseBatch func(io.Reader) (*batch.Batch, error)
	switch filepath.Ext(filePath) {
	case ".json":
		parseBatch = batch.ParseBatchJSON
	case ".yaml", ".yml":
		parseBatch = batch.ParseBatchYAML
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	b, err := parseBatch(f)
	if err != nil {
		return nil, fmt.Errorf("batch.ParseBatch: %w", err)
	}
	return b, nil
}

func serve(listen string, debug bool) error {
	srv := http.Server{
		Handler: server.NewHTTPHandler(debug),
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

func isTerminal(v any) bool {
	if f, ok := v.(interface{ Fd() uintptr }); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if isTerminal(w) {
		opts = append(opts, json.Colorize(json.DefaultColorScheme))
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
