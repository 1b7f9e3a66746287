package scaffold_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vvka-141/tvload/internal/config"
	"github.com/vvka-141/tvload/internal/scaffold"
	testhelpers "github.com/vvka-141/tvload/internal/testing"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// TestTemplateLoad scaffolds each template and loads its listings into
// a real database, the way a user would right after "tvload init".
func TestTemplateLoad(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)

	t.Run("basic", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "basicproj")
		scaffolder := scaffold.NewScaffolder(testing.Verbose())
		if err := scaffolder.CreateProject("basicproj", "basic", dir); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}

		testDB := "tvload_test_tpl_basic"
		cleanup := testhelpers.CreateTestDB(t, connString, testDB)
		defer cleanup()

		summary := loadProjectListing(t, connString, testDB, dir, "channels.csv")

		if summary.ChannelsInserted != 8 {
			t.Errorf("ChannelsInserted = %d, want 8", summary.ChannelsInserted)
		}
		if summary.CategoriesCreated != 7 {
			t.Errorf("CategoriesCreated = %d, want 7", summary.CategoriesCreated)
		}
		if summary.RowsFailed != 0 {
			t.Errorf("RowsFailed = %d, want 0", summary.RowsFailed)
		}
	})

	t.Run("advanced", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "advproj")
		scaffolder := scaffold.NewScaffolder(testing.Verbose())
		if err := scaffolder.CreateProject("advproj", "advanced", dir); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}

		testDB := "tvload_test_tpl_advanced"
		cleanup := testhelpers.CreateTestDB(t, connString, testDB)
		defer cleanup()

		first := loadProjectListing(t, connString, testDB, dir,
			filepath.Join("listings", "channels.csv"))
		if first.ChannelsInserted != 5 {
			t.Errorf("first run ChannelsInserted = %d, want 5 (fallback keeps the activo row)",
				first.ChannelsInserted)
		}
		if first.CategoriesCreated != 3 {
			t.Errorf("first run CategoriesCreated = %d, want 3", first.CategoriesCreated)
		}
		if first.RowsFailed != 0 {
			t.Errorf("first run RowsFailed = %d, want 0", first.RowsFailed)
		}

		// Premium listing appends; its categories are all new, the
		// shared ones would be reused.
		second := loadProjectListing(t, connString, testDB, dir,
			filepath.Join("listings", "premium.csv"))
		if second.ChannelsInserted != 3 {
			t.Errorf("second run ChannelsInserted = %d, want 3", second.ChannelsInserted)
		}
		if second.CategoriesCreated != 3 {
			t.Errorf("second run CategoriesCreated = %d, want 3", second.CategoriesCreated)
		}

		// The non-numeric estado row was stored with the configured fallback.
		pool := testhelpers.GetTestPool(t, connString, testDB)
		var estado int
		err := pool.QueryRow(context.Background(),
			`SELECT estado FROM canales WHERE nombre = 'Fútbol Total'`).Scan(&estado)
		if err != nil {
			t.Fatalf("querying fallback row: %v", err)
		}
		if estado != 0 {
			t.Errorf("estado = %d, want the configured fallback 0", estado)
		}
	})
}

// loadProjectListing loads one listing from a scaffolded project,
// honoring the project's tvload.yaml the way the CLI does.
func loadProjectListing(t *testing.T, connString, dbName, projectDir, listing string) tvload.Summary {
	t.Helper()

	projectCfg, err := config.Load(projectDir)
	if err != nil {
		t.Fatalf("loading scaffolded tvload.yaml: %v", err)
	}

	loadCfg := testhelpers.NewLoadConfig(t, connString, dbName,
		filepath.Join(projectDir, listing))
	delim, err := projectCfg.Load.DelimiterRune()
	if err != nil {
		t.Fatalf("scaffolded delimiter invalid: %v", err)
	}
	loadCfg.Delimiter = delim
	loadCfg.StatusFallback = projectCfg.Load.StatusFallback

	loader := testhelpers.NewTestLoader(t)
	summary, err := loader.Run(context.Background(), loadCfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return summary
}
