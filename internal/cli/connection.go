package cli

import (
	"fmt"
	"os"

	"github.com/vvka-141/tvload/internal/config"
	"github.com/vvka-141/tvload/internal/db"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// connectionStringFromEnv returns the first non-empty connection string from
// TVLOAD_CONNECTION_STRING or DATABASE_URL environment variables.
func connectionStringFromEnv() string {
	if s := os.Getenv("TVLOAD_CONNECTION_STRING"); s != "" {
		return s
	}
	return os.Getenv("DATABASE_URL")
}

// hasEnvConnectionSource returns true if environment variables provide enough
// connection info to skip the interactive wizard.
func hasEnvConnectionSource() bool {
	if connectionStringFromEnv() != "" {
		return true
	}
	return os.Getenv("PGHOST") != "" && os.Getenv("PGDATABASE") != ""
}

// resolveConnection consolidates connection resolution logic for the load command.
// It handles connection string flags, granular flags, Azure/AWS/Google flags, and
// environment variables.
func resolveConnection(
	connStringFlag string,
	granularFlags *db.GranularConnFlags,
	azureFlags *db.AzureFlags,
	awsFlags *db.AWSFlags,
	googleFlags *db.GoogleFlags,
	certFlags *db.CertFlags,
	projectConfig *config.ProjectConfig,
	verbose bool,
) (*tvload.ConnectionConfig, error) {
	connString := connStringFlag
	if connString == "" {
		connString = connectionStringFromEnv()
	}

	envVars := db.LoadFromEnvironment()

	connConfig, err := db.ResolveConnectionParams(
		connString,
		granularFlags,
		azureFlags,
		awsFlags,
		googleFlags,
		certFlags,
		envVars,
		projectConfig,
	)
	if err != nil {
		return nil, err
	}

	return connConfig, nil
}

// resolveTargetDatabase consolidates database precedence logic.
// The -d/--database flag always takes precedence over the connection string database.
func resolveTargetDatabase(
	flagDatabase string,
	connConfigDatabase string,
	requireDatabase bool,
	commandName string,
	verbose bool,
) (string, error) {
	targetDB := flagDatabase

	if targetDB != "" {
		// User explicitly provided -d flag, use it (overrides connection string)
		if verbose && connConfigDatabase != "" && targetDB != connConfigDatabase {
			fmt.Fprintf(os.Stderr, "[VERBOSE] Using --database flag (%s) instead of connection string database (%s)\n",
				targetDB, connConfigDatabase)
		}
	} else {
		// No -d flag, use database from connection string
		targetDB = connConfigDatabase
	}

	if requireDatabase && targetDB == "" {
		return "", fmt.Errorf("database name is required\n"+
			"Provide via:\n"+
			"  1. --database/-d flag: tvload %s ./channels.csv -d tvdb\n"+
			"  2. Connection string: tvload %s --connection \"postgresql://user@host/tvdb\"\n"+
			"  3. Environment variable: export PGDATABASE=tvdb",
			commandName, commandName)
	}

	return targetDB, nil
}
