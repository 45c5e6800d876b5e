package extreader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// decodeYAML reads a YAML file from fsys and decodes it into v.
func decodeYAML(fsys fs.FS, filePath string, v any, knownFields bool) error {
	f, err := fsys.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if knownFields {
		dec.KnownFields(true)
	}

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decoding %s: %w", filePath, err)
	}
	return nil
}

// decodeOptionalYAML decodes a YAML file that may be absent. A missing file
// leaves v untouched and returns (false, nil).
func decodeOptionalYAML(fsys fs.FS, filePath string, v any, knownFields bool) (bool, error) {
	err := decodeYAML(fsys, filePath, v, knownFields)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
