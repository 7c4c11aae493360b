package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/tierank/internal/domain/document"
)

// readDocuments decodes a JSON array of documents, or a single object, from
// path. "-" reads stdin.
func readDocuments(path string, stdin io.Reader) ([]document.Fields, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("read documents: %s is empty", path)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if data[0] == '{' {
		var one document.Fields
		if err := dec.Decode(&one); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		return []document.Fields{one}, nil
	}
	var docs []document.Fields
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return docs, nil
}

// displayTitle picks the human label of a document of any kind.
func displayTitle(f document.Fields) string {
	return f.String(document.FieldSearchTitle, document.FieldTitle, document.FieldName)
}
