package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/Faultbox/procfairings/internal/config"
	"github.com/Faultbox/procfairings/internal/payload"
)

func cmdSchema(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	kind := fs.String("kind", "config", "Document kind: config or payload")
	outPath := fs.String("out", "", "Write the schema to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	schema, err := buildSchema(*kind)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	data = append(data, '\n')

	if *outPath == "" {
		_, err = out.Write(data)
		return err
	}
	return writeSchema(*outPath, data)
}

func buildSchema(kind string) (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	var schema *jsonschema.Schema
	switch kind {
	case "config":
		schema = reflector.Reflect(new(config.Config))
		schema.Title = "Procedural fairing config"
		schema.Description = "Part settings used by fairingtool"
	case "payload":
		schema = reflector.Reflect(new(payload.Document))
		schema.Title = "Procedural fairing payload"
		schema.Description = "Objects enclosed by the fairing and shielding candidates"
	default:
		return nil, fmt.Errorf("%w: unknown schema kind %q", errUsage, kind)
	}
	return schema, nil
}

func writeSchema(outPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
