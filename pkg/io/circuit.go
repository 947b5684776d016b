package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/pauliflow/pkg/circuit"
	perrors "github.com/matzehuels/pauliflow/pkg/errors"
)

// ReadCircuit decodes and validates a JSON circuit. It does not close r.
func ReadCircuit(r io.Reader) (*circuit.Circuit, error) {
	var c circuit.Circuit
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode circuit")
	}
	if err := c.Validate(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidCircuit, err, "invalid circuit")
	}
	return &c, nil
}

// ImportCircuit reads a JSON circuit file.
func ImportCircuit(path string) (*circuit.Circuit, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "circuit file %s", path)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadCircuit(f)
}

// WriteCircuit encodes c as indented JSON.
// The output can be re-read with [ReadCircuit].
func WriteCircuit(c *circuit.Circuit, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "encode circuit")
	}
	return nil
}

// ExportCircuit writes c to a JSON file at path.
func ExportCircuit(c *circuit.Circuit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := WriteCircuit(c, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
