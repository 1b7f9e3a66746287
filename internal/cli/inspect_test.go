package cli

import (
	"strings"
	"testing"
)

func resetInspectFlags() {
	inspectJSON = false
	inspectDelimiter = ""
}

const semicolonListings = `nombre;url;formato;logo;estado;categoria
Canal Uno;http://example.com/uno;HD;uno.png;1;Noticias
Canal Dos;http://example.com/dos;SD;;0;Deportes
`

func TestRunInspect_GoodFile(t *testing.T) {
	resetInspectFlags()
	path := writeListingsFile(t, cleanListings)

	if err := runInspect(inspectCmd, []string{path}); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}
}

func TestRunInspect_JSONOutput(t *testing.T) {
	resetInspectFlags()
	inspectJSON = true
	defer resetInspectFlags()

	path := writeListingsFile(t, cleanListings)

	if err := runInspect(inspectCmd, []string{path}); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}
}

func TestRunInspect_NonexistentFile(t *testing.T) {
	resetInspectFlags()

	err := runInspect(inspectCmd, []string{"/nonexistent/path/channels.csv"})
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestRunInspect_MalformedRowsNotFatal(t *testing.T) {
	resetInspectFlags()

	content := `nombre,url,formato,logo,estado,categoria
Canal Uno,http://example.com/uno,HD,uno.png,1,Noticias
only,two
Canal Dos,http://example.com/dos,SD,,0,Deportes
`
	path := writeListingsFile(t, content)

	if err := runInspect(inspectCmd, []string{path}); err != nil {
		t.Fatalf("runInspect() should tolerate malformed rows, got error = %v", err)
	}
}

func TestRunInspect_CustomDelimiter(t *testing.T) {
	resetInspectFlags()
	inspectDelimiter = ";"
	defer resetInspectFlags()

	path := writeListingsFile(t, semicolonListings)

	if err := runInspect(inspectCmd, []string{path}); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}
}

func TestRunInspect_WrongDelimiter(t *testing.T) {
	resetInspectFlags()

	// Comma parsing of a semicolon-delimited file yields a single
	// unrecognized header column.
	path := writeListingsFile(t, semicolonListings)

	err := runInspect(inspectCmd, []string{path})
	if err == nil {
		t.Fatal("expected header error for wrong delimiter, got nil")
	}
	if !strings.Contains(err.Error(), "header") && !strings.Contains(err.Error(), "column") {
		t.Errorf("error = %v, want header column complaint", err)
	}
}
