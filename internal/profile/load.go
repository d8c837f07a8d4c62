package profile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/profgrid/internal/logging"
)

// Format is a dataset file format.
type Format string

// Supported dataset formats.
const (
	FormatJSON    Format = "json"
	FormatNDJSON  Format = "ndjson"
	FormatYAML    Format = "yaml"
	FormatParquet Format = "parquet"
)

// maxLineSize bounds a single NDJSON record.
const maxLineSize = 4 << 20

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// envelopeKeys are the object keys searched for a record array when a JSON or
// YAML document is an object rather than an array.
var envelopeKeys = []string{"profiles", "results", "data", "records"} //nolint:gochecknoglobals // Read-only lookup list.

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".ndjson", ".jsonl":
		return FormatNDJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads every path concurrently and concatenates the records in the
// order the paths were given.
func Load(ctx context.Context, paths ...string) (*Dataset, error) {
	if len(paths) == 0 {
		return NewDataset(nil), nil
	}

	logger := logging.FromContext(ctx)
	parts := make([][]Record, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			records, err := LoadFile(gctx, path)
			if err != nil {
				return err
			}
			parts[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	records := make([]Record, 0, total)
	for _, p := range parts {
		records = append(records, p...)
	}

	ds := NewDataset(records, paths...)
	logger.Debug().
		Str("dataset_id", ds.ID.String()).
		Int("files", len(paths)).
		Int("records", ds.Len()).
		Msg("dataset loaded")
	return ds, nil
}

// LoadFile reads one dataset file.
func LoadFile(ctx context.Context, path string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	if format == FormatParquet {
		records, perr := loadParquet(ctx, path)
		if perr != nil {
			return nil, fmt.Errorf("loading %s: %w", path, perr)
		}
		return records, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// Decode reads records in format from r. Parquet needs random access and is
// only supported through LoadFile.
func Decode(r io.Reader, format Format) ([]Record, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatNDJSON:
		return decodeNDJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeJSON(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return recordsFromDocument(doc)
}

func decodeNDJSON(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []Record
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decoding NDJSON line %d: %w", line, err)
		}
		records = append(records, Record(rec))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading NDJSON: %w", err)
	}
	return records, nil
}

func decodeYAML(r io.Reader) ([]Record, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	return recordsFromDocument(doc)
}

// recordsFromDocument accepts either an array of objects or an object holding
// such an array under one of envelopeKeys.
func recordsFromDocument(doc any) ([]Record, error) {
	switch t := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return recordsFromArray(t)
	case map[string]any:
		for _, key := range envelopeKeys {
			if arr, ok := t[key].([]any); ok {
				return recordsFromArray(arr)
			}
		}
		return nil, fmt.Errorf("object has none of the record keys %v", envelopeKeys)
	default:
		return nil, fmt.Errorf("expected an array of records, got %T", doc)
	}
}

func recordsFromArray(arr []any) ([]Record, error) {
	records := make([]Record, 0, len(arr))
	for i, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", i, item)
		}
		records = append(records, Record(obj))
	}
	return records, nil
}
