package extspec

import (
	"path"
	"reflect"
)

// AnnotateFileMetadata sets the source file path on all embedded
// FileMetadata values found within v. It recursively walks v using
// reflection, so a single call after decoding a manifest file annotates
// every record the file produced.
func AnnotateFileMetadata(file string, v any) {
	fileSetter{file: file}.walk(reflect.ValueOf(v))
}

// PrefixFileMetadata prepends the given prefix to the file path of all
// embedded FileMetadata values found within v, joining with [path.Join].
// Values with an empty file path are skipped. This is useful when a manifest
// directory is analyzed within a larger repository and error positions
// should be repo-relative.
func PrefixFileMetadata(prefix string, v any) {
	filePrefixer{prefix: prefix}.walk(reflect.ValueOf(v))
}

type fileSetter struct {
	file string
}

func (s fileSetter) walk(val reflect.Value) {
	if m, ok := metadataAt(val); ok {
		m.file = s.file
		return
	}
	walkChildren(val, s.walk)
}

type filePrefixer struct {
	prefix string
}

func (p filePrefixer) walk(val reflect.Value) {
	if m, ok := metadataAt(val); ok {
		if m.file != "" {
			m.file = path.Join(p.prefix, m.file)
		}
		return
	}
	walkChildren(val, p.walk)
}

// metadataAt returns the addressable *FileMetadata at val, if any.
func metadataAt(val reflect.Value) (*FileMetadata, bool) {
	if val.CanAddr() && val.CanSet() {
		if m, ok := val.Addr().Interface().(*FileMetadata); ok {
			return m, true
		}
	}
	return nil, false
}

func walkChildren(val reflect.Value, visit func(reflect.Value)) {
	switch val.Kind() {
	case reflect.Pointer:
		if !val.IsNil() {
			visit(val.Elem())
		}
	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			visit(val.Field(i))
		}
	case reflect.Slice:
		for i := 0; i < val.Len(); i++ {
			visit(val.Index(i))
		}
	case reflect.Map:
		itr := val.MapRange()
		for itr.Next() {
			visit(itr.Value())
		}
	}
}
