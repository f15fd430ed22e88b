package annotate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DecodeDocument reads one JSON document in the annotation wire format.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// ReadDocument reads a pre-annotated document from a JSON file.
func ReadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
