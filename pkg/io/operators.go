package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	perrors "github.com/matzehuels/pauliflow/pkg/errors"
)

type operatorDoc struct {
	Operators []string `json:"operators"`
}

// ReadOperators decodes an operator list in text or JSON form and validates
// it. It does not close r.
func ReadOperators(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read operators")
	}

	var ops []string
	switch trimmed := bytes.TrimSpace(data); {
	case len(trimmed) == 0:
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "no operators")
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &ops); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode operator array")
		}
	case trimmed[0] == '{':
		var doc operatorDoc
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode operator object")
		}
		ops = doc.Operators
	default:
		if ops, err = readLines(trimmed); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidPauli, err, "read operator lines")
		}
	}

	if len(ops) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "no operators")
	}
	if err := perrors.ValidateOperators(ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func readLines(data []byte) ([]string, error) {
	var ops []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), perrors.MaxQubits+1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ops = append(ops, line)
	}
	return ops, sc.Err()
}

// ImportOperators reads an operator file. The path "-" reads stdin.
func ImportOperators(path string) ([]string, error) {
	if path == "-" {
		return ReadOperators(os.Stdin)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "operator file %s", path)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadOperators(f)
}
