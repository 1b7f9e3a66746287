package fixtures

import (
	"os"
	"strings"
	"testing"
)

func TestListingsBuilder_Content(t *testing.T) {
	content := NewListingsBuilder().
		AddChannel("ESPN", "Sports").
		AddChannelDetail("La 2", "http://example.test/la2", "mp4", "", "0", "Cultura").
		AddRaw("broken,row").
		Content()

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != Header {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ESPN,http://example.test/espn,") {
		t.Errorf("Unexpected derived row: %q", lines[1])
	}
	if lines[2] != "La 2,http://example.test/la2,mp4,,0,Cultura" {
		t.Errorf("Unexpected detailed row: %q", lines[2])
	}
	if lines[3] != "broken,row" {
		t.Errorf("Raw rows must pass through untouched: %q", lines[3])
	}
}

func TestListingsBuilder_WithDelimiter(t *testing.T) {
	content := NewListingsBuilder().
		WithDelimiter(';').
		AddChannel("Canal 24h", "Noticias").
		Content()

	if !strings.HasPrefix(content, "nombre;url;formato;logo;estado;categoria\n") {
		t.Errorf("Header must use the new delimiter: %q", content)
	}
	if !strings.Contains(content, "Canal 24h;http://example.test/canal-24h;") {
		t.Errorf("Rows must use the new delimiter: %q", content)
	}
}

func TestListingsBuilder_Write(t *testing.T) {
	path := NewListingsBuilder().AddChannel("ESPN", "Sports").Write(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading fixture: %v", err)
	}
	if !strings.HasPrefix(string(data), Header) {
		t.Errorf("Unexpected fixture content: %q", data)
	}
}

func TestListingsBuilder_Channels(t *testing.T) {
	content := NewListingsBuilder().Channels(5, "A", "B").Content()

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("Expected header + 5 rows, got %d", len(lines))
	}

	categoryA := 0
	for _, line := range lines[1:] {
		if strings.HasSuffix(line, ",A") {
			categoryA++
		}
	}
	if categoryA != 3 {
		t.Errorf("Expected 3 rows in category A, got %d", categoryA)
	}
}
