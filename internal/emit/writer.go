// Package emit assembles generated Go source text. It transforms a structured
// description built line by line into a complete, gofmt-formatted file.
package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
)

// Header marks every file the tool writes.
const Header = "// Code generated by fractory. DO NOT EDIT."

// Writer builds generated source with indentation and import tracking.
type Writer struct {
	buf     bytes.Buffer
	indent  int
	imports map[string]string // path -> alias, "" for none
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{imports: make(map[string]string)}
}

// Import registers an import path for the assembled file.
func (w *Writer) Import(path string) {
	w.ImportAs("", path)
}

// ImportAs registers an aliased import path.
func (w *Writer) ImportAs(alias, path string) {
	w.imports[path] = alias
}

// In increases the indentation level.
func (w *Writer) In() { w.indent++ }

// Out decreases the indentation level.
func (w *Writer) Out() { w.indent-- }

// Line writes one formatted line at the current indentation. An empty format
// emits a blank line.
func (w *Writer) Line(format string, args ...any) {
	if format == "" {
		w.buf.WriteString("\n")
		return
	}

	for i := 0; i < w.indent; i++ {
		w.buf.WriteString("\t")
	}
	if len(args) > 0 {
		fmt.Fprintf(&w.buf, format, args...)
	} else {
		w.buf.WriteString(format)
	}
	w.buf.WriteString("\n")
}

// File assembles the complete generated file: header, package clause, sorted
// imports, then the accumulated body, run through gofmt.
func (w *Writer) File(pkgName string) ([]byte, error) {
	var out bytes.Buffer
	out.WriteString(Header + "\n\n")
	fmt.Fprintf(&out, "package %s\n\n", pkgName)

	if len(w.imports) > 0 {
		w.writeImports(&out)
		out.WriteString("\n")
	}

	out.Write(w.buf.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated source does not parse: %w", err)
	}
	return src, nil
}

// writeImports writes the import block, stdlib paths first, then external.
func (w *Writer) writeImports(out *bytes.Buffer) {
	var stdlib []string
	var external []string
	for path := range w.imports {
		if strings.Contains(path, ".") {
			external = append(external, path)
		} else {
			stdlib = append(stdlib, path)
		}
	}
	sort.Strings(stdlib)
	sort.Strings(external)

	out.WriteString("import (\n")
	for _, path := range stdlib {
		w.writeImport(out, path)
	}
	if len(stdlib) > 0 && len(external) > 0 {
		out.WriteString("\n")
	}
	for _, path := range external {
		w.writeImport(out, path)
	}
	out.WriteString(")\n")
}

func (w *Writer) writeImport(out *bytes.Buffer, path string) {
	if alias := w.imports[path]; alias != "" {
		fmt.Fprintf(out, "\t%s %q\n", alias, path)
	} else {
		fmt.Fprintf(out, "\t%q\n", path)
	}
}
