package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tvload/internal/config"
	"github.com/vvka-141/tvload/internal/db"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// connectionFlags holds the common connection-related flag values.
type connectionFlags struct {
	connection     string
	host           string
	port           int
	username       string
	database       string
	sslMode        string
	azure          bool
	azureTenantID  string
	azureClientID  string
	aws            bool
	awsRegion      string
	google         bool
	googleInstance string
	sslCert        string
	sslKey         string
	sslRootCert    string
}

// resolvedConnection holds the resolved connection configuration.
type resolvedConnection struct {
	ConnConfig *tvload.ConnectionConfig
	ConnStr    string
}

// resolveConnectionFromFlags resolves connection configuration from flags and project config.
func resolveConnectionFromFlags(
	flags connectionFlags,
	projectCfg *config.ProjectConfig,
	verbose bool,
) (*resolvedConnection, error) {
	granularFlags := &db.GranularConnFlags{
		Host:     flags.host,
		Port:     flags.port,
		Username: flags.username,
		Database: flags.database,
		SSLMode:  flags.sslMode,
	}

	azureFlags := &db.AzureFlags{
		Enabled:  flags.azure,
		TenantID: flags.azureTenantID,
		ClientID: flags.azureClientID,
	}

	awsFlags := &db.AWSFlags{
		Enabled: flags.aws,
		Region:  flags.awsRegion,
	}

	googleFlags := &db.GoogleFlags{
		Enabled:  flags.google,
		Instance: flags.googleInstance,
	}

	certFlags := &db.CertFlags{
		SSLCert:     flags.sslCert,
		SSLKey:      flags.sslKey,
		SSLRootCert: flags.sslRootCert,
	}

	connConfig, err := resolveConnection(flags.connection, granularFlags, azureFlags, awsFlags, googleFlags, certFlags, projectCfg, verbose)
	if err != nil {
		return nil, err
	}

	return &resolvedConnection{
		ConnConfig: connConfig,
		ConnStr:    db.BuildConnectionString(connConfig),
	}, nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring tvload.yaml if flag wasn't set.
func resolveEffectiveTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, err := time.ParseDuration(projectCfg.Timeout)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout in tvload.yaml: %w", err)
		}
		return parsed, nil
	}
	return flagTimeout, nil
}

// resolveDelimiter returns the field delimiter for listings files.
// Priority: --delimiter flag > tvload.yaml load.delimiter. Returns 0 when
// neither is set so callers can apply the built-in default.
func resolveDelimiter(flagValue string, projectCfg *config.ProjectConfig) (rune, error) {
	if flagValue != "" {
		return parseDelimiter(flagValue)
	}
	if projectCfg != nil {
		return projectCfg.Load.DelimiterRune()
	}
	return 0, nil
}

// parseDelimiter converts a flag value to a delimiter rune. The literal
// two-character sequence \t is accepted because typing a real tab is
// awkward in most shells.
func parseDelimiter(value string) (rune, error) {
	if value == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || size != len(value) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", value)
	}
	return r, nil
}

// resolveStatusFallback returns the estado value to store for rows whose
// estado field does not parse. Priority: --status-fallback flag >
// tvload.yaml load.status_fallback. Returns nil when neither is set,
// which means such rows are rejected.
func resolveStatusFallback(flagValue string, projectCfg *config.ProjectConfig) (*int, error) {
	if flagValue != "" {
		n, err := strconv.Atoi(flagValue)
		if err != nil {
			return nil, fmt.Errorf("invalid --status-fallback %q: must be an integer", flagValue)
		}
		return &n, nil
	}
	if projectCfg != nil {
		return projectCfg.Load.StatusFallback, nil
	}
	return nil, nil
}

// loadProjectConfig loads godotenv and project configuration.
// Returns nil config if tvload.yaml does not exist (not an error).
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("failed to load tvload.yaml: %w", err)
	}
	return projectCfg, nil
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(connConfig *tvload.ConnectionConfig) {
	fmt.Fprintf(os.Stderr, "[VERBOSE] Connection resolved:\n")
	fmt.Fprintf(os.Stderr, "  Host: %s\n", connConfig.Host)
	fmt.Fprintf(os.Stderr, "  Port: %d\n", connConfig.Port)
	fmt.Fprintf(os.Stderr, "  User: %s\n", connConfig.Username)
	fmt.Fprintf(os.Stderr, "  Target Database: %s\n", connConfig.Database)
	fmt.Fprintf(os.Stderr, "  SSL Mode: %s\n", connConfig.SSLMode)
	if cert := connConfig.AdditionalParams["sslcert"]; cert != "" {
		fmt.Fprintf(os.Stderr, "  SSL Cert: %s\n", cert)
	}
	if key := connConfig.AdditionalParams["sslkey"]; key != "" {
		fmt.Fprintf(os.Stderr, "  SSL Key: %s\n", key)
	}
	if root := connConfig.AdditionalParams["sslrootcert"]; root != "" {
		fmt.Fprintf(os.Stderr, "  SSL Root Cert: %s\n", root)
	}
	fmt.Fprintf(os.Stderr, "  Auth Method: %s\n", connConfig.AuthMethod)
}

// saveConnectionToConfig saves connection config to tvload.yaml, merging with
// any existing config. Load settings and timeout are preserved; passwords are
// never written.
func saveConnectionToConfig(dir string, connConfig *tvload.ConnectionConfig) error {
	configPath := filepath.Join(dir, config.ConfigFileName)

	cfg, err := config.Load(dir)
	if err != nil {
		cfg = &config.ProjectConfig{}
	}

	connection := config.ConnectionConfig{
		Host:     connConfig.Host,
		Port:     connConfig.Port,
		Username: connConfig.Username,
		Database: connConfig.Database,
		SSLMode:  connConfig.SSLMode,
	}
	if connConfig.AuthMethod != tvload.AuthMethodStandard {
		connection.AuthMethod = db.AuthMethodToken(connConfig.AuthMethod)
	}
	switch connConfig.AuthMethod {
	case tvload.AuthMethodCertificate:
		connection.SSLCert = connConfig.AdditionalParams["sslcert"]
		connection.SSLKey = connConfig.AdditionalParams["sslkey"]
		connection.SSLRootCert = connConfig.AdditionalParams["sslrootcert"]
	case tvload.AuthMethodAzureEntraID:
		connection.AzureTenantID = connConfig.AzureTenantID
		connection.AzureClientID = connConfig.AzureClientID
	case tvload.AuthMethodAWSIAM:
		connection.AWSRegion = connConfig.AWSRegion
	case tvload.AuthMethodGoogleIAM:
		connection.GoogleInstance = connConfig.GoogleInstance
	}
	cfg.Connection = connection

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
