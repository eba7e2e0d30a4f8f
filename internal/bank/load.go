package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a question bank. Files ending in .yml, .yaml or .json are read
// as structured documents; anything else uses the delimited line format.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MissingResourceError{Path: path, Err: err}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		doc, err := parseYAMLDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return FromDocument(doc, path)
	case ".json":
		doc, err := parseJSONDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return FromDocument(doc, path)
	default:
		return Parse(bytes.NewReader(data), path)
	}
}

func parseJSONDocument(data []byte) (Document, error) {
	var doc Document
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Document{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

func parseYAMLDocument(data []byte) (Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&yaml.Node{}); err != io.EOF {
		if err == nil {
			return Document{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	return doc, nil
}
