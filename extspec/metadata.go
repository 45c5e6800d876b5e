package extspec

import "strconv"

// FileMetadata records where a manifest record was declared. It is embedded
// in model types so validation and generation errors can cite the source
// position. The fields are unexported to keep them out of YAML/JSON
// round-trips; AnnotateFileMetadata populates the file path after decoding,
// and UnmarshalYAML implementations populate line and column.
type FileMetadata struct {
	file   string
	line   int
	column int
}

// Path returns the manifest file the record was decoded from, or "" if
// unknown.
func (m FileMetadata) Path() string { return m.file }

// Line returns the 1-based source line of the record, or 0 if unknown.
func (m FileMetadata) Line() int { return m.line }

// Column returns the 1-based source column of the record, or 0 if unknown.
func (m FileMetadata) Column() int { return m.column }

// Pos returns a "file:line" position string for error messages. Missing
// components are omitted; an entirely unknown position returns "".
func (m FileMetadata) Pos() string {
	switch {
	case m.file == "":
		return ""
	case m.line == 0:
		return m.file
	default:
		return m.file + ":" + strconv.Itoa(m.line)
	}
}
