package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/dynlist/internal/logging"
)

// Format names accepted by Parse.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Load reads records from path.
func Load(path string) ([]Record, error) {
	return LoadWithContext(context.Background(), path)
}

// LoadWithContext reads records from path using the logger carried by ctx.
func LoadWithContext(ctx context.Context, path string) ([]Record, error) {
	log := logging.FromContext(ctx)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().
			Str("component", "ingest").
			Str("operation", "load").
			Err(err).
			Str("path", path).
			Msg("failed to read records file")
		return nil, fmt.Errorf("reading records file: %w", err)
	}
	records, err := Parse(ctx, data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	log.Debug().
		Str("component", "ingest").
		Str("path", path).
		Int("records", len(records)).
		Msg("records loaded")
	return records, nil
}

// Parse decodes data in the given format. Duplicate ids keep their first
// occurrence.
func Parse(ctx context.Context, data []byte, format string) ([]Record, error) {
	var (
		records []Record
		err     error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	case FormatJSON:
		err = json.Unmarshal(data, &records)
	case FormatText:
		records, err = parseText(data)
	default:
		return nil, fmt.Errorf("unknown record format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if format != FormatText {
		for i, r := range records {
			if r.ID == "" {
				return nil, fmt.Errorf("record %d: %w", i, ErrEmptyID)
			}
		}
	}
	return dedupe(ctx, records, format), nil
}

// parseText yields one record per non-empty line, numbered by source line.
func parseText(data []byte) ([]Record, error) {
	var records []Record
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		records = append(records, Record{ID: fmt.Sprintf("line-%d", line), Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
