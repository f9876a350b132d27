// Command tripcheck assembles trip documents from a file and prints what the
// service would make of them: the resulting state, recovered problems, cost
// rollups and rejections. It can also push the documents to a running
// deployment, either as snapshots over Redis or straight into Postgres.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"gopkg.in/yaml.v3"
)

type options struct {
	in        string
	format    string
	redisAddr string
	seedDB    string
}

func main() {
	// The report goes to stdout; keep assembler logging out of it.
	if os.Getenv("LOG_LEVEL") == "" {
		_ = os.Setenv("LOG_LEVEL", "error")
	}
	logger.InitLogger()
	defer func() { _ = logger.Close() }()

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tripcheck: %v\n", err)
		_ = logger.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("tripcheck", flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.in, "in", "-", "JSON file holding one trip document or an array of them; - reads stdin")
	fs.StringVar(&opts.format, "format", "yaml", "report format: yaml or json")
	fs.StringVar(&opts.redisAddr, "publish", "", "Redis address to publish each document to as a snapshot")
	fs.StringVar(&opts.seedDB, "seed", "", "Postgres URL to write each document into trip_documents")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.format != "yaml" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	raw, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}
	in, err := decodeDocuments(raw)
	if err != nil {
		return err
	}
	docs := in.docs

	batch := trips.NewAssembler().AssembleBatch(docs)
	if err := writeReport(stdout, opts.format, buildReport(in, batch)); err != nil {
		return err
	}

	if opts.redisAddr != "" {
		if err := publishSnapshots(ctx, opts.redisAddr, docs); err != nil {
			return err
		}
	}
	if opts.seedDB != "" {
		if err := seedDocuments(ctx, opts.seedDB, docs); err != nil {
			return err
		}
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

// input is the decoded command input. positions maps each entry of docs back
// to its place in the input array; malformed lists array elements that were
// not objects.
type input struct {
	total     int
	docs      []document.Fragment
	positions []int
	malformed []int
}

// decodeDocuments accepts a single object or an array. Array elements that
// are not objects are reported, not fatal.
func decodeDocuments(raw []byte) (*input, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("no input")
	}
	if trimmed[0] != '[' {
		doc, err := document.Decode(trimmed)
		if err != nil {
			return nil, err
		}
		return &input{total: 1, docs: []document.Fragment{doc}, positions: []int{0}}, nil
	}

	docs, skipped, err := document.DecodeList(trimmed)
	if err != nil {
		return nil, err
	}
	in := &input{
		total:     len(docs) + len(skipped),
		docs:      docs,
		positions: make([]int, 0, len(docs)),
		malformed: skipped,
	}
	next := 0
	for i := 0; i < in.total; i++ {
		if next < len(skipped) && skipped[next] == i {
			next++
			continue
		}
		in.positions = append(in.positions, i)
	}
	return in, nil
}

func writeReport(w io.Writer, format string, rep Report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}
