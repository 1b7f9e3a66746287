package wizards

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tvload/internal/config"
	"github.com/vvka-141/tvload/internal/db"
	"github.com/vvka-141/tvload/internal/tui"
	"github.com/vvka-141/tvload/internal/tui/components"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// ConfigResult holds the result of the config wizard.
type ConfigResult struct {
	Cancelled bool
	Config    config.ProjectConfig
}

// SaveConfig writes the configuration to tvload.yaml in the given
// directory. The password from the connection wizard is deliberately
// absent from ProjectConfig: secrets stay in the environment or
// ~/.pgpass, never in the project file.
func (r ConfigResult) SaveConfig(dir string) error {
	data, err := yaml.Marshal(&r.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# tvload project configuration\n# Generated by: tvload config init\n\n")
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.ConfigFileName, err)
	}
	return nil
}

type configStep int

const (
	stepLoadSettings configStep = iota
	stepReview
	stepConfigDone
)

// Field indexes into ConfigWizard.fields.
const (
	fieldDelimiter = iota
	fieldStatusFallback
	fieldTimeout
)

// ConfigWizard collects the load settings that go into tvload.yaml:
// the listing delimiter, the estado fallback, and the run timeout.
// Connection details come in from the connection wizard.
type ConfigWizard struct {
	step       configStep
	fields     []components.TextField
	focusIndex int
	connConfig tvload.ConnectionConfig
	preview    string
	result     ConfigResult
	keys       tui.KeyMap
}

// NewConfigWizard creates a config wizard seeded with connection
// details from the connection wizard.
func NewConfigWizard(connConfig tvload.ConnectionConfig) ConfigWizard {
	delimiter := components.NewTextField("Field delimiter:", ",").
		WithValue(",").
		WithWidth(10).
		WithValidator(validateDelimiter)

	fallback := components.NewTextField("Status fallback:", "reject malformed rows").
		WithWidth(24).
		WithValidator(validateStatusFallback)

	timeout := components.NewTextField("Run timeout:", "3m").
		WithValue("3m").
		WithWidth(16).
		WithValidator(validateTimeout)

	return ConfigWizard{
		step:       stepLoadSettings,
		fields:     []components.TextField{delimiter, fallback, timeout},
		connConfig: connConfig,
		keys:       tui.DefaultKeyMap(),
	}
}

// validateDelimiter accepts a single character that does not collide
// with CSV quoting. Empty means the built-in default.
func validateDelimiter(s string) error {
	ls := config.LoadSettings{Delimiter: s}
	r, err := ls.DelimiterRune()
	if err != nil {
		return err
	}
	switch r {
	case '"', '\n', '\r':
		return fmt.Errorf("delimiter %q conflicts with field quoting", s)
	}
	return nil
}

func validateStatusFallback(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("status fallback must be an integer")
	}
	return nil
}

func validateTimeout(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("timeout must be a duration like 3m or 90s")
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Init implements tea.Model.
func (w ConfigWizard) Init() tea.Cmd {
	if len(w.fields) > 0 {
		return w.fields[0].Focus()
	}
	return nil
}

// Update implements tea.Model.
func (w ConfigWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			w.result.Cancelled = true
			return w, tea.Quit
		}

		switch w.step {
		case stepLoadSettings:
			return w.updateSettings(msg)
		case stepReview:
			return w.updateReview(msg)
		}

	default:
		if w.step == stepLoadSettings && w.focusIndex < len(w.fields) {
			var cmd tea.Cmd
			w.fields[w.focusIndex], cmd = w.fields[w.focusIndex].Update(msg)
			return w, cmd
		}
	}
	return w, nil
}

func (w ConfigWizard) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Tab), msg.String() == "down":
		return w.focusField(w.focusIndex + 1)
	case msg.String() == "shift+tab", msg.String() == "up":
		return w.focusField(w.focusIndex - 1)
	case key.Matches(msg, w.keys.Select):
		// Enter on non-last field advances to next field
		if w.focusIndex < len(w.fields)-1 {
			return w.focusField(w.focusIndex + 1)
		}
		// Enter on last field validates everything and moves to review
		for i := range w.fields {
			if err := w.fields[i].Validate(); err != nil {
				return w.focusField(i)
			}
		}
		w.result.Config = w.buildConfig()
		if preview, err := yaml.Marshal(&w.result.Config); err == nil {
			w.preview = string(preview)
		}
		w.step = stepReview
		return w, nil
	case key.Matches(msg, w.keys.Back):
		w.result.Cancelled = true
		return w, tea.Quit
	default:
		var cmd tea.Cmd
		w.fields[w.focusIndex], cmd = w.fields[w.focusIndex].Update(msg)
		return w, cmd
	}
}

func (w ConfigWizard) focusField(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(w.fields) {
		return w, nil
	}
	w.fields[w.focusIndex].Blur()
	w.focusIndex = idx
	return w, w.fields[w.focusIndex].Focus()
}

func (w ConfigWizard) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		w.step = stepConfigDone
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back):
		w.step = stepLoadSettings
		return w, w.fields[w.focusIndex].Focus()
	case key.Matches(msg, w.keys.Quit):
		w.result.Cancelled = true
		return w, tea.Quit
	}
	return w, nil
}

func (w ConfigWizard) buildConfig() config.ProjectConfig {
	conn := config.ConnectionConfig{
		Host:        w.connConfig.Host,
		Port:        w.connConfig.Port,
		Username:    w.connConfig.Username,
		Database:    w.connConfig.Database,
		SSLMode:     w.connConfig.SSLMode,
		SSLCert:     w.connConfig.AdditionalParams["sslcert"],
		SSLKey:      w.connConfig.AdditionalParams["sslkey"],
		SSLRootCert: w.connConfig.AdditionalParams["sslrootcert"],
	}
	if w.connConfig.AuthMethod != tvload.AuthMethodStandard {
		conn.AuthMethod = db.AuthMethodToken(w.connConfig.AuthMethod)
		conn.AzureTenantID = w.connConfig.AzureTenantID
		conn.AzureClientID = w.connConfig.AzureClientID
		conn.AWSRegion = w.connConfig.AWSRegion
		conn.GoogleInstance = w.connConfig.GoogleInstance
	}

	var load config.LoadSettings
	// Raw value, not trimmed: a space is a valid delimiter.
	if v := w.fields[fieldDelimiter].Value(); v != "" {
		load.Delimiter = v
	}
	if v := strings.TrimSpace(w.fields[fieldStatusFallback].Value()); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			load.StatusFallback = &n
		}
	}

	return config.ProjectConfig{
		Connection: conn,
		Load:       load,
		Timeout:    strings.TrimSpace(w.fields[fieldTimeout].Value()),
	}
}

// View implements tea.Model.
func (w ConfigWizard) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("tvload - Project Configuration"))
	b.WriteString("\n")

	switch w.step {
	case stepLoadSettings:
		b.WriteString(w.viewSettings())
	case stepReview:
		b.WriteString(w.viewReview())
	}

	return b.String()
}

func (w ConfigWizard) viewSettings() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render("Load Settings"))
	b.WriteString("\n\n")

	for i := range w.fields {
		b.WriteString(w.fields[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(tui.DescriptionStyle.Render("The status fallback is stored for rows whose estado is not an integer."))
	b.WriteString("\n")
	b.WriteString(tui.DescriptionStyle.Render("Leave it blank to reject those rows instead."))
	b.WriteString("\n\n")

	b.WriteString(tui.HelpStyle.Render(w.keys.InputHelpText()))

	return b.String()
}

func (w ConfigWizard) viewReview() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render("Review Configuration"))
	b.WriteString("\n\n")

	b.WriteString(tui.BoxStyle.Render(strings.TrimRight(w.preview, "\n")))
	b.WriteString("\n\n")

	b.WriteString(tui.DescriptionStyle.Render("This will be written to " + config.ConfigFileName + " in the current directory."))
	b.WriteString("\n\n")

	b.WriteString(tui.HelpStyle.Render("enter save • esc edit • q cancel"))

	return b.String()
}

// Result returns the wizard result.
func (w ConfigWizard) Result() ConfigResult {
	return w.result
}

// RunConfigWizard executes the config wizard and returns the result.
func RunConfigWizard(connConfig tvload.ConnectionConfig) (ConfigResult, error) {
	wizard := NewConfigWizard(connConfig)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return ConfigResult{Cancelled: true}, err
	}

	return model.(ConfigWizard).Result(), nil
}
