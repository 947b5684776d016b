package errors

import (
	"strings"
)

// MaxQubits bounds the width of user-supplied operators.
const MaxQubits = 4096

// ValidatePauliString validates a single operator string.
//
// Validation rules:
//   - Operator cannot be empty
//   - Maximum length of [MaxQubits] letters
//   - Only the letters I, X, Y and Z are accepted
func ValidatePauliString(op string) error {
	if op == "" {
		return New(ErrCodeInvalidPauli, "operator cannot be empty")
	}

	if len(op) > MaxQubits {
		return New(ErrCodeInvalidPauli, "operator too long (max %d qubits)", MaxQubits)
	}

	if i := strings.IndexFunc(op, func(r rune) bool {
		return r != 'I' && r != 'X' && r != 'Y' && r != 'Z'
	}); i >= 0 {
		return New(ErrCodeInvalidPauli, "operator %q: invalid letter %q at qubit %d", op, op[i], i)
	}

	return nil
}

// ValidateOperators validates a batch of operators that must share one
// qubit count. An empty batch is valid.
func ValidateOperators(ops []string) error {
	for i, op := range ops {
		if err := ValidatePauliString(op); err != nil {
			return New(ErrCodeInvalidPauli, "operator %d: %s", i, UserMessage(err))
		}
		if len(op) != len(ops[0]) {
			return New(ErrCodeQubitMismatch, "operator %d has %d qubits, operator 0 has %d", i, len(op), len(ops[0]))
		}
	}
	return nil
}

// ValidateMetric validates a synthesis metric name.
func ValidateMetric(name string) error {
	switch name {
	case "count", "depth":
		return nil
	case "":
		return New(ErrCodeInvalidMetric, "metric cannot be empty")
	}
	return New(ErrCodeInvalidMetric, "unknown metric %q (want count or depth)", name)
}
