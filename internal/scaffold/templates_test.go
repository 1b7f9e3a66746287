package scaffold

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tvload/internal/checksum"
	"github.com/vvka-141/tvload/internal/config"
	"github.com/vvka-141/tvload/internal/source"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// TestTemplateStructure validates every embedded template without
// scaffolding it to disk first: the config must parse, and every
// listing must get through the same reader the loader uses.
func TestTemplateStructure(t *testing.T) {
	templates := []string{"basic", "advanced"}

	for _, templateName := range templates {
		t.Run(templateName, func(t *testing.T) {
			testTemplateStructure(t, "templates/"+templateName)
		})
	}
}

func testTemplateStructure(t *testing.T, templateRoot string) {
	t.Helper()

	t.Run("tvload.yaml parses", func(t *testing.T) {
		raw, err := templatesFS.ReadFile(templateRoot + "/tvload.yaml")
		require.NoError(t, err, "tvload.yaml should exist in template")
		require.NotEmpty(t, raw)

		var cfg config.ProjectConfig
		require.NoError(t, yaml.Unmarshal(raw, &cfg), "template tvload.yaml should be valid YAML")
		require.NotEmpty(t, cfg.Connection.Host, "template config should carry a host")
		require.NotZero(t, cfg.Connection.Port)
		_, err = cfg.Load.DelimiterRune()
		require.NoError(t, err, "template delimiter should be a single character")
	})

	t.Run("README exists", func(t *testing.T) {
		readme, err := templatesFS.ReadFile(templateRoot + "/README.md")
		require.NoError(t, err, "README.md should exist in template")
		require.NotEmpty(t, readme)
		require.Contains(t, string(readme), "{{PROJECT_NAME}}",
			"README should pick up the project name on init")
	})

	t.Run("env example exists", func(t *testing.T) {
		env, err := templatesFS.ReadFile(templateRoot + "/.env.example")
		require.NoError(t, err, ".env.example should exist in template")
		require.Contains(t, string(env), "PGPASSWORD",
			".env.example should show where the password goes")
	})

	t.Run("listings parse", func(t *testing.T) {
		delim := templateDelimiter(t, templateRoot)
		listings := templateListings(t, templateRoot)
		require.NotEmpty(t, listings, "template should contain at least one listing file")

		for _, name := range listings {
			raw, err := templatesFS.ReadFile(name)
			require.NoError(t, err)
			require.NotContains(t, string(raw), "{{",
				"listing %s must not carry placeholders", name)

			rows := parseListing(t, raw, delim)
			require.GreaterOrEqual(t, len(rows), 3, "listing %s should hold sample rows", name)

			var sawEmptyLogo bool
			for _, row := range rows {
				require.NotEmpty(t, row.Name, "listing %s has a row without nombre", name)
				require.NotEmpty(t, row.URL, "listing %s has a row without url", name)
				require.NotEmpty(t, row.Format, "listing %s has a row without formato", name)
				require.NotEmpty(t, row.Status, "listing %s has a row without estado", name)
				require.NotEmpty(t, row.Category, "listing %s has a row without categoria", name)
				if row.Logo == "" {
					sawEmptyLogo = true
				}
			}
			require.True(t, sawEmptyLogo,
				"listing %s should demonstrate a channel without a logo", name)
		}
	})

	t.Run("no unexpected files", func(t *testing.T) {
		err := fs.WalkDir(templatesFS, templateRoot, func(path string, d fs.DirEntry, err error) error {
			require.NoError(t, err)
			if d.IsDir() {
				return nil
			}
			filename := filepath.Base(path)
			require.NotEqual(t, ".DS_Store", filename, "Template should not contain .DS_Store")
			require.NotEqual(t, "Thumbs.db", filename, "Template should not contain Thumbs.db")
			require.NotContains(t, filename, "~", "Template should not contain backup files")
			return nil
		})
		require.NoError(t, err)
	})
}

// TestAdvancedTemplateExercisesFallback pins the advanced template to
// the settings its README promises: semicolon listings and a status
// fallback covering the deliberately non-numeric estado row.
func TestAdvancedTemplateExercisesFallback(t *testing.T) {
	raw, err := templatesFS.ReadFile("templates/advanced/tvload.yaml")
	require.NoError(t, err)

	var cfg config.ProjectConfig
	require.NoError(t, yaml.Unmarshal(raw, &cfg))
	require.Equal(t, ";", cfg.Load.Delimiter)
	require.NotNil(t, cfg.Load.StatusFallback, "advanced template should set status_fallback")

	listing, err := templatesFS.ReadFile("templates/advanced/listings/channels.csv")
	require.NoError(t, err)

	var sawNonNumericStatus bool
	for _, row := range parseListing(t, listing, ';') {
		if strings.TrimSpace(row.Status) == "activo" {
			sawNonNumericStatus = true
		}
	}
	require.True(t, sawNonNumericStatus,
		"advanced listing should carry a non-numeric estado to demonstrate the fallback")
}

func templateDelimiter(t *testing.T, templateRoot string) rune {
	t.Helper()

	raw, err := templatesFS.ReadFile(templateRoot + "/tvload.yaml")
	require.NoError(t, err)

	var cfg config.ProjectConfig
	require.NoError(t, yaml.Unmarshal(raw, &cfg))

	delim, err := cfg.Load.DelimiterRune()
	require.NoError(t, err)
	if delim == 0 {
		delim = ','
	}
	return delim
}

func templateListings(t *testing.T, templateRoot string) []string {
	t.Helper()

	var listings []string
	err := fs.WalkDir(templatesFS, templateRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".csv") {
			listings = append(listings, path)
		}
		return nil
	})
	require.NoError(t, err)
	return listings
}

// parseListing runs embedded listing bytes through the reader the
// loader uses.
func parseListing(t *testing.T, raw []byte, delim rune) []tvload.Record {
	t.Helper()

	path := filepath.Join(t.TempDir(), "listing.csv")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	src, err := source.NewCSVSource(path, delim, checksum.New())
	require.NoError(t, err, "listing header should be valid")
	defer src.Close()

	var rows []tvload.Record
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err, "listing row should parse")
		rows = append(rows, rec)
	}
	return rows
}
