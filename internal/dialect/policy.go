package dialect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// policyFile is the YAML schema for a dialect policy override.
//
// Example:
//
//	dialects:
//	  - name: NT1
//	    expect_supported: false
//	  - name: SMB3_11
//	    expect_supported: true
type policyFile struct {
	Dialects []policyEntry `yaml:"dialects"`
}

// policyEntry is one row of the policy file.
type policyEntry struct {
	Name            string `yaml:"name"`
	ExpectSupported bool   `yaml:"expect_supported"`
}

// LoadPolicy reads a dialect policy matrix from a YAML file.
// The resulting matrix fully replaces DefaultMatrix; dialects absent
// from the file are not probed. Returns ErrPolicyNotFound when the file
// does not exist, and a validation error when the file is empty, names
// an unknown dialect, or lists a dialect twice.
func LoadPolicy(path string) (Matrix, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided policy path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPolicyNotFound, path)
		}
		return nil, err
	}

	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", path, err)
	}

	if len(pf.Dialects) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPolicy, path)
	}

	seen := make(map[Dialect]bool, len(pf.Dialects))
	matrix := make(Matrix, 0, len(pf.Dialects))
	for _, e := range pf.Dialects {
		d, err := Parse(e.Name)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDialect, d)
		}
		seen[d] = true
		matrix = append(matrix, Entry{Dialect: d, ExpectSupported: e.ExpectSupported})
	}

	return matrix, nil
}
