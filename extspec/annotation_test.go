package extspec

import "testing"

func TestAnnotateFileMetadata(t *testing.T) {
	funcs := []Function{
		{Name: "spi_insert_title"},
		{Name: "spi_query_random_id"},
	}

	AnnotateFileMetadata("functions.yml", &funcs)

	for _, f := range funcs {
		if f.Path() != "functions.yml" {
			t.Errorf("function %s: Path() = %q, want functions.yml", f.Name, f.Path())
		}
	}
}

func TestAnnotateFileMetadataNested(t *testing.T) {
	ext := &Extension{
		Name:   "spi",
		Tables: []Table{{Name: "foo"}},
		Seeds:  []Seed{{Table: "spi_example"}},
	}

	AnnotateFileMetadata("extension.yml", ext)

	if ext.Path() != "extension.yml" {
		t.Errorf("extension Path() = %q", ext.Path())
	}
	if ext.Tables[0].Path() != "extension.yml" {
		t.Errorf("table Path() = %q", ext.Tables[0].Path())
	}
	if ext.Seeds[0].Path() != "extension.yml" {
		t.Errorf("seed Path() = %q", ext.Seeds[0].Path())
	}
}

func TestPrefixFileMetadata(t *testing.T) {
	funcs := []Function{{Name: "spi_insert_title"}}
	AnnotateFileMetadata("functions.yml", &funcs)
	PrefixFileMetadata("extensions/spi", &funcs)

	if got := funcs[0].Path(); got != "extensions/spi/functions.yml" {
		t.Errorf("Path() = %q, want extensions/spi/functions.yml", got)
	}
}

func TestPrefixFileMetadataSkipsEmpty(t *testing.T) {
	funcs := []Function{{Name: "spi_insert_title"}}
	PrefixFileMetadata("extensions/spi", &funcs)

	if got := funcs[0].Path(); got != "" {
		t.Errorf("Path() = %q, want empty", got)
	}
}

func TestPosFormatting(t *testing.T) {
	tests := []struct {
		name string
		m    FileMetadata
		want string
	}{
		{"empty", FileMetadata{}, ""},
		{"file only", FileMetadata{file: "tables.yml"}, "tables.yml"},
		{"file and line", FileMetadata{file: "tables.yml", line: 12}, "tables.yml:12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Pos(); got != tt.want {
				t.Errorf("Pos() = %q, want %q", got, tt.want)
			}
		})
	}
}
