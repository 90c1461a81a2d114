package task

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/buger/jsonparser"

	"github.com/saad2128/jsonl-task-processor/internal/logging"
)

var errNotObject = errors.New("line is not a JSON object")

// ReadFile parses the JSONL file at path. Lines that are not valid JSON
// objects are logged and skipped; only failures to open or read the file
// are returned as errors.
func ReadFile(path string, logger *slog.Logger) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(f, logger)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", path, err)
	}
	return ds, nil
}

// Read parses JSONL records from r.
func Read(r io.Reader, logger *slog.Logger) (*Dataset, error) {
	logger = logging.OrDiscard(logger)

	ds := &Dataset{}
	known := make(map[string]bool)
	br := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		line, readErr := br.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, readErr
		}

		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			t, keys, err := parseLine(line)
			if err != nil {
				logger.Warn("skipping malformed line", "line", lineNo, "error", err)
				ds.Skipped++
			} else {
				t.Line = lineNo
				for _, k := range keys {
					if !known[k] {
						known[k] = true
						ds.Columns = append(ds.Columns, k)
					}
				}
				ds.Tasks = append(ds.Tasks, t)
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	logger.Debug("input parsed", "records", len(ds.Tasks), "skipped", ds.Skipped, "columns", len(ds.Columns))
	return ds, nil
}

// parseLine decodes one JSON object, keeping its keys in document order.
func parseLine(line []byte) (Task, []string, error) {
	if !json.Valid(line) {
		return Task{}, nil, errors.New("invalid JSON")
	}
	if line[0] != '{' {
		return Task{}, nil, errNotObject
	}

	t := Task{Fields: make(map[string]string)}
	var keys []string

	err := jsonparser.ObjectEach(line, func(rawKey, value []byte, dataType jsonparser.ValueType, _ int) error {
		key := string(rawKey)
		text, err := textValue(value, dataType)
		if err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}

		if _, dup := t.Fields[key]; !dup {
			keys = append(keys, key)
		}
		t.Fields[key] = text

		if key == RepoField {
			t.Repo = text
			t.HasRepo = dataType != jsonparser.Null
		}
		return nil
	})
	if err != nil {
		return Task{}, nil, err
	}
	return t, keys, nil
}

// textValue renders a JSON value the way it appears in a CSV cell: strings
// unquoted, null as empty, everything else as its JSON text.
func textValue(value []byte, dataType jsonparser.ValueType) (string, error) {
	switch dataType {
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Null:
		return "", nil
	default:
		return string(value), nil
	}
}
