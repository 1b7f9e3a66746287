package wizards

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/tvload/internal/config"
	"github.com/vvka-141/tvload/pkg/tvload"
)

func localConnConfig() tvload.ConnectionConfig {
	return tvload.ConnectionConfig{
		Host:       "localhost",
		Port:       5432,
		Database:   "tvdb",
		Username:   "postgres",
		SSLMode:    "prefer",
		AuthMethod: tvload.AuthMethodStandard,
	}
}

func asConfigWizard(t *testing.T, m tea.Model) ConfigWizard {
	t.Helper()
	w, ok := m.(ConfigWizard)
	if !ok {
		t.Fatalf("model is %T, want ConfigWizard", m)
	}
	return w
}

func TestNewConfigWizard(t *testing.T) {
	w := NewConfigWizard(localConnConfig())

	if w.step != stepLoadSettings {
		t.Errorf("step = %d, want stepLoadSettings", w.step)
	}
	if len(w.fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(w.fields))
	}
	if got := w.fields[fieldDelimiter].Value(); got != "," {
		t.Errorf("delimiter prefill = %q, want comma", got)
	}
	if got := w.fields[fieldStatusFallback].Value(); got != "" {
		t.Errorf("status fallback prefill = %q, want empty", got)
	}
	if got := w.fields[fieldTimeout].Value(); got != "3m" {
		t.Errorf("timeout prefill = %q, want 3m", got)
	}
}

func TestConfigWizard_DefaultsFlow(t *testing.T) {
	var m tea.Model = NewConfigWizard(localConnConfig())
	_ = m.Init()

	m = update(t, m, keyMsg("enter")) // delimiter -> fallback
	m = update(t, m, keyMsg("enter")) // fallback -> timeout
	m = update(t, m, keyMsg("enter")) // submit -> review

	w := asConfigWizard(t, m)
	if w.step != stepReview {
		t.Fatalf("step = %d, want stepReview", w.step)
	}
	if !strings.Contains(w.preview, "host: localhost") {
		t.Errorf("preview missing connection details:\n%s", w.preview)
	}
	if !strings.Contains(w.preview, "timeout: 3m") {
		t.Errorf("preview missing timeout:\n%s", w.preview)
	}

	m, cmd := m.Update(keyMsg("enter"))
	if !isQuitCmd(cmd) {
		t.Fatal("enter on review did not quit")
	}

	result := asConfigWizard(t, m).Result()
	if result.Cancelled {
		t.Error("Cancelled = true")
	}
	if result.Config.Connection.Host != "localhost" {
		t.Errorf("Connection.Host = %q", result.Config.Connection.Host)
	}
	if result.Config.Connection.AuthMethod != "" {
		t.Errorf("AuthMethod = %q, want empty for standard auth", result.Config.Connection.AuthMethod)
	}
	if result.Config.Load.Delimiter != "," {
		t.Errorf("Load.Delimiter = %q, want comma", result.Config.Load.Delimiter)
	}
	if result.Config.Load.StatusFallback != nil {
		t.Errorf("Load.StatusFallback = %v, want nil", *result.Config.Load.StatusFallback)
	}
	if result.Config.Timeout != "3m" {
		t.Errorf("Timeout = %q, want 3m", result.Config.Timeout)
	}
}

func TestConfigWizard_StatusFallback(t *testing.T) {
	var m tea.Model = NewConfigWizard(localConnConfig())
	_ = m.Init()

	m = update(t, m, keyMsg("enter")) // -> fallback
	m = typeString(t, m, "0")
	m = update(t, m, keyMsg("enter")) // -> timeout
	m = update(t, m, keyMsg("enter")) // -> review
	m, _ = m.Update(keyMsg("enter"))  // save

	result := asConfigWizard(t, m).Result()
	if result.Config.Load.StatusFallback == nil {
		t.Fatal("StatusFallback = nil, want 0")
	}
	if *result.Config.Load.StatusFallback != 0 {
		t.Errorf("StatusFallback = %d, want 0", *result.Config.Load.StatusFallback)
	}
}

func TestConfigWizard_InvalidDelimiterBlocksSubmit(t *testing.T) {
	var m tea.Model = NewConfigWizard(localConnConfig())
	_ = m.Init()

	m = typeString(t, m, ";") // now ",;"
	m = update(t, m, keyMsg("enter"))
	m = update(t, m, keyMsg("enter"))
	m = update(t, m, keyMsg("enter")) // submit blocked by field 0

	w := asConfigWizard(t, m)
	if w.step != stepLoadSettings {
		t.Fatalf("step = %d, want stepLoadSettings", w.step)
	}
	if w.focusIndex != fieldDelimiter {
		t.Errorf("focusIndex = %d, want the delimiter field", w.focusIndex)
	}
	if w.fields[fieldDelimiter].Error() == nil {
		t.Error("delimiter field has no validation error")
	}
}

func TestConfigWizard_InvalidTimeoutBlocksSubmit(t *testing.T) {
	var m tea.Model = NewConfigWizard(localConnConfig())
	_ = m.Init()

	m = update(t, m, keyMsg("enter"))
	m = update(t, m, keyMsg("enter"))
	m = typeString(t, m, "x") // now "3mx"
	m = update(t, m, keyMsg("enter"))

	w := asConfigWizard(t, m)
	if w.step != stepLoadSettings {
		t.Fatalf("step = %d, want stepLoadSettings", w.step)
	}
	if w.focusIndex != fieldTimeout {
		t.Errorf("focusIndex = %d, want the timeout field", w.focusIndex)
	}
}

func TestConfigWizard_SpaceDelimiterAccepted(t *testing.T) {
	var m tea.Model = NewConfigWizard(localConnConfig())
	_ = m.Init()

	m = update(t, m, keyMsg("backspace")) // clear the comma
	m = typeString(t, m, " ")
	m = update(t, m, keyMsg("enter"))
	m = update(t, m, keyMsg("enter"))
	m = update(t, m, keyMsg("enter"))

	w := asConfigWizard(t, m)
	if w.step != stepReview {
		t.Fatalf("step = %d, want stepReview (delimiter err: %v)", w.step, w.fields[fieldDelimiter].Error())
	}
	if w.result.Config.Load.Delimiter != " " {
		t.Errorf("Delimiter = %q, want a single space", w.result.Config.Load.Delimiter)
	}
}

func TestConfigWizard_CancelOnEsc(t *testing.T) {
	var m tea.Model = NewConfigWizard(localConnConfig())

	m, cmd := m.Update(keyMsg("esc"))

	if !asConfigWizard(t, m).Result().Cancelled {
		t.Error("Cancelled = false after esc")
	}
	if !isQuitCmd(cmd) {
		t.Error("esc did not quit")
	}
}

func TestConfigWizard_ReviewBackToEdit(t *testing.T) {
	var m tea.Model = NewConfigWizard(localConnConfig())
	_ = m.Init()

	m = update(t, m, keyMsg("enter"))
	m = update(t, m, keyMsg("enter"))
	m = update(t, m, keyMsg("enter"))
	if w := asConfigWizard(t, m); w.step != stepReview {
		t.Fatalf("step = %d, want stepReview", w.step)
	}

	m = update(t, m, keyMsg("esc"))
	if w := asConfigWizard(t, m); w.step != stepLoadSettings {
		t.Errorf("step = %d after esc, want stepLoadSettings", w.step)
	}
}

func TestConfigWizard_CloudAuthCarriesTokens(t *testing.T) {
	w := NewConfigWizard(tvload.ConnectionConfig{
		Host:          "guide.postgres.database.azure.com",
		Port:          5432,
		Database:      "tvdb",
		Username:      "loader@guide",
		SSLMode:       "require",
		AuthMethod:    tvload.AuthMethodAzureEntraID,
		AzureTenantID: "tenant-1",
		AzureClientID: "client-1",
	})

	cfg := w.buildConfig()

	if cfg.Connection.AuthMethod != "azure-entra-id" {
		t.Errorf("AuthMethod token = %q, want azure-entra-id", cfg.Connection.AuthMethod)
	}
	if cfg.Connection.AzureTenantID != "tenant-1" {
		t.Errorf("AzureTenantID = %q", cfg.Connection.AzureTenantID)
	}
	if cfg.Connection.AzureClientID != "client-1" {
		t.Errorf("AzureClientID = %q", cfg.Connection.AzureClientID)
	}
}

func TestConfigWizard_GoogleInstanceCarried(t *testing.T) {
	w := NewConfigWizard(tvload.ConnectionConfig{
		GoogleInstance: "acme:us-central1:listings",
		Database:       "tvdb",
		Username:       "loader@acme.iam",
		AuthMethod:     tvload.AuthMethodGoogleIAM,
	})

	cfg := w.buildConfig()

	if cfg.Connection.AuthMethod != "google-iam" {
		t.Errorf("AuthMethod token = %q, want google-iam", cfg.Connection.AuthMethod)
	}
	if cfg.Connection.GoogleInstance != "acme:us-central1:listings" {
		t.Errorf("GoogleInstance = %q", cfg.Connection.GoogleInstance)
	}
}

func TestConfigResult_SaveConfig(t *testing.T) {
	res := ConfigResult{Config: config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host:     "listings.example.com",
			Port:     5432,
			Username: "loader",
			Database: "tvdb",
			SSLMode:  "require",
		},
		Load:    config.LoadSettings{Delimiter: ";"},
		Timeout: "90s",
	}}
	dir := t.TempDir()

	if err := res.SaveConfig(dir); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if !strings.HasPrefix(string(raw), "# tvload project configuration") {
		t.Error("saved config missing the generated header")
	}
	if strings.Contains(strings.ToLower(string(raw)), "password") {
		t.Error("saved config must not carry credentials")
	}

	// Round-trip through the loader the CLI actually uses.
	loaded, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Connection.Host != "listings.example.com" {
		t.Errorf("Host = %q", loaded.Connection.Host)
	}
	if loaded.Load.Delimiter != ";" {
		t.Errorf("Delimiter = %q, want semicolon", loaded.Load.Delimiter)
	}
	if loaded.Timeout != "90s" {
		t.Errorf("Timeout = %q, want 90s", loaded.Timeout)
	}
}
