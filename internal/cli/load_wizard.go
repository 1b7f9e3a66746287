package cli

import (
	"fmt"
	"os"

	"github.com/vvka-141/tvload/internal/config"
	"github.com/vvka-141/tvload/internal/tui"
	"github.com/vvka-141/tvload/internal/tui/wizards"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// needsConnectionWizard reports whether no flag, environment variable or
// tvload.yaml entry provides enough connection info to reach a database,
// meaning an interactive run should open the connection wizard.
func needsConnectionWizard(projectCfg *config.ProjectConfig) bool {
	if loadFlags.connection != "" || loadFlags.host != "" || loadFlags.database != "" {
		return false
	}
	if hasEnvConnectionSource() {
		return false
	}
	if projectCfg != nil && projectCfg.Connection.Host != "" && projectCfg.Connection.Database != "" {
		return false
	}
	return true
}

// maybeRunConnectionWizard opens the connection wizard when an interactive
// run has no connection source, feeding the result back into the load flags
// so normal resolution picks it up. The collected password is returned
// separately because it never travels through flags.
func maybeRunConnectionWizard() (string, error) {
	if !tui.IsInteractive() {
		return "", nil
	}

	projectCfg, err := loadProjectConfig(".")
	if err != nil {
		// A malformed tvload.yaml is reported during config resolution.
		return "", nil
	}
	if !needsConnectionWizard(projectCfg) {
		return "", nil
	}

	fmt.Fprintln(os.Stderr, "No connection configured. Starting connection setup...")
	fmt.Fprintln(os.Stderr, "")

	result, err := wizards.RunConnectionWizard()
	if err != nil {
		return "", fmt.Errorf("connection wizard failed: %w", err)
	}
	if result.Cancelled {
		return "", fmt.Errorf("connection setup cancelled")
	}

	applyWizardConnection(result.Config)
	offerSaveConnection(&result.Config)

	return result.Config.Password, nil
}

// applyWizardConnection copies the wizard's connection choices onto the load
// flags, where the usual precedence rules treat them like explicit flags.
func applyWizardConnection(cfg tvload.ConnectionConfig) {
	loadFlags.host = cfg.Host
	loadFlags.port = cfg.Port
	loadFlags.username = cfg.Username
	loadFlags.database = cfg.Database
	loadFlags.sslMode = cfg.SSLMode

	switch cfg.AuthMethod {
	case tvload.AuthMethodCertificate:
		loadFlags.sslCert = cfg.AdditionalParams["sslcert"]
		loadFlags.sslKey = cfg.AdditionalParams["sslkey"]
		loadFlags.sslRootCert = cfg.AdditionalParams["sslrootcert"]
	case tvload.AuthMethodAzureEntraID:
		loadFlags.azure = true
		loadFlags.azureTenantID = cfg.AzureTenantID
		loadFlags.azureClientID = cfg.AzureClientID
	case tvload.AuthMethodAWSIAM:
		loadFlags.aws = true
		loadFlags.awsRegion = cfg.AWSRegion
	case tvload.AuthMethodGoogleIAM:
		loadFlags.google = true
		loadFlags.googleInstance = cfg.GoogleInstance
	}
}

// offerSaveConnection prompts to persist the wizard's connection in
// tvload.yaml and, when a password was entered, in .pgpass.
func offerSaveConnection(cfg *tvload.ConnectionConfig) {
	fmt.Fprintln(os.Stderr, "")
	if tui.PromptContinue("Save connection to tvload.yaml for future runs?") {
		if err := saveConnectionToConfig(".", cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save %s: %v\n", config.ConfigFileName, err)
		} else {
			fmt.Fprintf(os.Stderr, "✓ Connection saved to %s\n", config.ConfigFileName)
		}
	}
	offerSavePgpass(cfg)
}
