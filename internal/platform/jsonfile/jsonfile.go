package jsonfile

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Load reads a JSON array file into dst. A missing file is not an error; dst
// is left untouched so the caller starts with an empty collection.
func Load(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read %s", path)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

// Save rewrites the whole file with the pretty-printed collection. Every
// mutation persists the full collection before it is reported as durable.
func Save(path string, src interface{}) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode collection")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
