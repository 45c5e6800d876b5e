package extsql

import (
	"fmt"
	"strings"

	"github.com/pgext/go-extension-spec/extspec"
)

// ControlFile renders the extension control file the host engine reads
// before running the installation script. Only fields the manifest sets
// are emitted, plus default_version which is always required.
func ControlFile(ext *extspec.Extension) string {
	var b strings.Builder

	if ext.Comment != "" {
		fmt.Fprintf(&b, "comment = %s\n", controlString(ext.Comment))
	}
	fmt.Fprintf(&b, "default_version = %s\n", controlString(ext.Version))
	if ext.ModulePathname != "" {
		fmt.Fprintf(&b, "module_pathname = %s\n", controlString(ext.ModulePathname))
	} else {
		fmt.Fprintf(&b, "module_pathname = %s\n", controlString("$libdir/"+ext.Name))
	}
	if ext.Schema != "" {
		fmt.Fprintf(&b, "schema = %s\n", controlString(ext.Schema))
	}
	fmt.Fprintf(&b, "relocatable = %t\n", ext.Relocatable)
	if ext.Superuser {
		b.WriteString("superuser = true\n")
	}
	if len(ext.Requires) > 0 {
		fmt.Fprintf(&b, "requires = %s\n", controlString(strings.Join(ext.Requires, ", ")))
	}

	return b.String()
}

// ControlFileName returns the control file name, e.g. "spi.control".
func ControlFileName(ext *extspec.Extension) string {
	return ext.Name + ".control"
}

// controlString quotes a control-file value with single quotes doubled.
func controlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
