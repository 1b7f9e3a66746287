package db

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vvka-141/tvload/internal/config"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// AuthMethodTokens lists the canonical auth_method values accepted in
// tvload.yaml, in the order shell completion offers them.
var AuthMethodTokens = []string{"standard", "certificate", "aws-iam", "google-iam", "azure-entra-id"}

// ParseAuthMethod maps an auth_method token from tvload.yaml to its
// AuthMethod value. Tokens are case-insensitive; the cloud methods also
// accept their short provider names.
func ParseAuthMethod(s string) (tvload.AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return tvload.AuthMethodStandard, nil
	case "certificate", "cert":
		return tvload.AuthMethodCertificate, nil
	case "aws-iam", "aws":
		return tvload.AuthMethodAWSIAM, nil
	case "google-iam", "google":
		return tvload.AuthMethodGoogleIAM, nil
	case "azure-entra-id", "azure":
		return tvload.AuthMethodAzureEntraID, nil
	default:
		return 0, fmt.Errorf("unknown auth_method %q (valid: %s)", s, strings.Join(AuthMethodTokens, ", "))
	}
}

// AuthMethodToken returns the canonical token for m, the inverse of
// ParseAuthMethod.
func AuthMethodToken(m tvload.AuthMethod) string {
	switch m {
	case tvload.AuthMethodCertificate:
		return "certificate"
	case tvload.AuthMethodAWSIAM:
		return "aws-iam"
	case tvload.AuthMethodGoogleIAM:
		return "google-iam"
	case tvload.AuthMethodAzureEntraID:
		return "azure-entra-id"
	default:
		return "standard"
	}
}

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-h, -p, -U, -d).
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $PGPASSWORD environment variable
//  2. .pgpass file (PostgreSQL standard)
//  3. Connection string with embedded password
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no connection-related granular flags were provided.
// Database is excluded from this check because -d can also be used to
// override the database named in a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g == nil || (g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == "")
}

// AzureFlags represents Azure Entra ID CLI flags.
// These override the corresponding AZURE_* environment variables.
// Note: Client secret is NOT included as a CLI flag for security reasons.
// Use AZURE_CLIENT_SECRET environment variable instead.
type AzureFlags struct {
	Enabled  bool   // --azure
	TenantID string // Overrides AZURE_TENANT_ID
	ClientID string // Overrides AZURE_CLIENT_ID
}

// IsEmpty returns true if no Azure flags were provided.
func (a *AzureFlags) IsEmpty() bool {
	return a == nil || (!a.Enabled && a.TenantID == "" && a.ClientID == "")
}

// AWSFlags represents AWS RDS IAM CLI flags.
type AWSFlags struct {
	Enabled bool   // --aws
	Region  string // Overrides AWS_REGION
}

// IsEmpty returns true if AWS IAM auth was not requested.
func (a *AWSFlags) IsEmpty() bool {
	return a == nil || !a.Enabled
}

// GoogleFlags represents Google Cloud SQL IAM CLI flags.
type GoogleFlags struct {
	Enabled  bool   // --google
	Instance string // project:region:instance
}

// IsEmpty returns true if Google Cloud SQL IAM auth was not requested.
func (g *GoogleFlags) IsEmpty() bool {
	return g == nil || (!g.Enabled && g.Instance == "")
}

// CertFlags represents client certificate CLI flags for mTLS.
type CertFlags struct {
	SSLCert     string // Client certificate file
	SSLKey      string // Client private key file
	SSLRootCert string // CA certificate file
}

// IsEmpty returns true if no certificate flags were provided.
func (c *CertFlags) IsEmpty() bool {
	return c == nil || (c.SSLCert == "" && c.SSLKey == "" && c.SSLRootCert == "")
}

// EnvVars represents PostgreSQL standard environment variables.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGHOST       string // PostgreSQL server host
	PGPORT       string // PostgreSQL server port
	PGUSER       string // PostgreSQL username
	PGPASSWORD   string // PostgreSQL password (discouraged, use .pgpass instead)
	PGDATABASE   string // Default database name
	PGSSLMODE    string // SSL mode
	DATABASE_URL string // Full connection string (Heroku/Rails convention)

	// Azure Entra ID environment variables (Azure SDK standard names)
	AZURE_TENANT_ID     string // Azure AD tenant/directory ID
	AZURE_CLIENT_ID     string // Azure AD application/client ID
	AZURE_CLIENT_SECRET string // Azure AD client secret (for Service Principal auth)

	// AWS_REGION is the AWS SDK standard region variable, used as the
	// fallback when --aws-region is not given.
	AWS_REGION string
}

// LoadFromEnvironment loads PostgreSQL and cloud provider environment variables.
// This follows standard PostgreSQL client behavior and cloud SDK conventions.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:              os.Getenv("PGHOST"),
		PGPORT:              os.Getenv("PGPORT"),
		PGUSER:              os.Getenv("PGUSER"),
		PGPASSWORD:          os.Getenv("PGPASSWORD"),
		PGDATABASE:          os.Getenv("PGDATABASE"),
		PGSSLMODE:           os.Getenv("PGSSLMODE"),
		DATABASE_URL:        os.Getenv("DATABASE_URL"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
		AWS_REGION:          os.Getenv("AWS_REGION"),
	}
}

// HasAzureCredentials returns true if Azure Entra ID environment variables are set.
func (e *EnvVars) HasAzureCredentials() bool {
	return e.AZURE_TENANT_ID != "" || e.AZURE_CLIENT_ID != ""
}

// ResolveConnectionParams resolves connection parameters using
// PostgreSQL-standard precedence:
//
//  1. Connection string flag (--connection) - if provided, parse and use directly
//  2. Granular flags (-h, -p, -U, -d) - if any provided, build config from flags
//  3. Environment variables (PGHOST, PGPORT, etc.) - fallback if no flags
//  4. DATABASE_URL environment variable - fallback if no granular params
//  5. tvload.yaml connection section
//  6. Defaults (localhost:5432, prefer SSL)
//
// Cloud authentication:
// --aws, --google and --azure are mutually exclusive. Azure is also
// switched on implicitly when AZURE_* environment variables are present,
// matching the Azure SDK convention. Certificate flags merge into the
// connection parameters regardless of auth method; on their own they
// select certificate auth.
//
// Conflict detection:
// Returns an error if BOTH --connection and granular flags are provided.
// This prevents ambiguity and ensures clear user intent.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	azureFlags *AzureFlags,
	awsFlags *AWSFlags,
	googleFlags *GoogleFlags,
	certFlags *CertFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*tvload.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if azureFlags == nil {
		azureFlags = &AzureFlags{}
	}
	if awsFlags == nil {
		awsFlags = &AWSFlags{}
	}
	if googleFlags == nil {
		googleFlags = &GoogleFlags{}
	}
	if certFlags == nil {
		certFlags = &CertFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	// Connection string XOR granular flags
	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U)\n" +
				"Choose one approach:\n" +
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/tvdb\"\n" +
				"  2. Granular flags: -h localhost -p 5432 -U loader -d tvdb\n" +
				"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=loader",
		)
	}

	requested := 0
	if azureFlags.Enabled {
		requested++
	}
	if !awsFlags.IsEmpty() {
		requested++
	}
	if !googleFlags.IsEmpty() {
		requested++
	}
	if requested > 1 {
		return nil, fmt.Errorf("--aws, --google and --azure are mutually exclusive; choose one cloud authentication method")
	}

	var cfg *tvload.ConnectionConfig
	var err error

	switch {
	case connStringFlag != "":
		cfg, err = resolveFromConnectionString(connStringFlag, envVars, projectConfig)
	case granularFlags.IsEmpty() && envVars.DATABASE_URL != "":
		cfg, err = resolveFromConnectionString(envVars.DATABASE_URL, envVars, projectConfig)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, projectConfig)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case !awsFlags.IsEmpty():
		applyAWSAuth(cfg, awsFlags, envVars)
	case !googleFlags.IsEmpty():
		applyGoogleAuth(cfg, googleFlags)
	default:
		applyAzureAuth(cfg, azureFlags, envVars)
	}

	if cfg.AuthMethod == tvload.AuthMethodStandard && projectConfig != nil {
		if err := applyProjectAuth(cfg, &projectConfig.Connection, envVars); err != nil {
			return nil, err
		}
	}

	applyCertParams(cfg, certFlags)

	return cfg, nil
}

// applyProjectAuth applies the tvload.yaml auth settings when neither
// flags nor environment variables selected an authentication method.
// Secrets never come from the file: the Azure client secret stays
// sourced from $AZURE_CLIENT_SECRET only.
func applyProjectAuth(cfg *tvload.ConnectionConfig, pc *config.ConnectionConfig, env *EnvVars) error {
	method, err := ParseAuthMethod(pc.AuthMethod)
	if err != nil {
		return fmt.Errorf("tvload.yaml: %w", err)
	}

	switch method {
	case tvload.AuthMethodAzureEntraID:
		cfg.AuthMethod = method
		cfg.AzureTenantID = pc.AzureTenantID
		cfg.AzureClientID = pc.AzureClientID
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	case tvload.AuthMethodAWSIAM:
		cfg.AuthMethod = method
		cfg.AWSRegion = pc.AWSRegion
		if cfg.AWSRegion == "" {
			cfg.AWSRegion = env.AWS_REGION
		}
	case tvload.AuthMethodGoogleIAM:
		cfg.AuthMethod = method
		cfg.GoogleInstance = pc.GoogleInstance
	case tvload.AuthMethodCertificate:
		cfg.AuthMethod = method
	}

	// Certificate paths from the file merge in under flag values; like
	// cert flags they select certificate auth when nothing else did.
	applyCertParams(cfg, &CertFlags{
		SSLCert:     pc.SSLCert,
		SSLKey:      pc.SSLKey,
		SSLRootCert: pc.SSLRootCert,
	})

	return nil
}

// applyAzureAuth sets Azure Entra ID authentication on the config if the
// --azure flag was given or credentials are present in flags/environment.
// CLI flags take precedence over environment variables.
func applyAzureAuth(cfg *tvload.ConnectionConfig, flags *AzureFlags, env *EnvVars) {
	tenantID := flags.TenantID
	if tenantID == "" {
		tenantID = env.AZURE_TENANT_ID
	}

	clientID := flags.ClientID
	if clientID == "" {
		clientID = env.AZURE_CLIENT_ID
	}

	// Client secret only comes from env var (no flag for security)
	clientSecret := env.AZURE_CLIENT_SECRET

	if flags.Enabled || tenantID != "" || clientID != "" {
		cfg.AuthMethod = tvload.AuthMethodAzureEntraID
		cfg.AzureTenantID = tenantID
		cfg.AzureClientID = clientID
		cfg.AzureClientSecret = clientSecret
	}
}

// applyAWSAuth switches the config to AWS RDS IAM authentication.
// Region precedence: --aws-region flag > $AWS_REGION.
func applyAWSAuth(cfg *tvload.ConnectionConfig, flags *AWSFlags, env *EnvVars) {
	cfg.AuthMethod = tvload.AuthMethodAWSIAM
	region := flags.Region
	if region == "" {
		region = env.AWS_REGION
	}
	cfg.AWSRegion = region
}

// applyGoogleAuth switches the config to Google Cloud SQL IAM authentication.
func applyGoogleAuth(cfg *tvload.ConnectionConfig, flags *GoogleFlags) {
	cfg.AuthMethod = tvload.AuthMethodGoogleIAM
	cfg.GoogleInstance = flags.Instance
}

// applyCertParams merges client certificate paths into the connection
// parameters. pgx reads sslcert/sslkey/sslrootcert from the connection
// string, so cert flags work with any auth method; on their own they
// select certificate auth.
func applyCertParams(cfg *tvload.ConnectionConfig, flags *CertFlags) {
	if flags.IsEmpty() {
		return
	}
	if flags.SSLCert != "" {
		cfg.AdditionalParams["sslcert"] = flags.SSLCert
	}
	if flags.SSLKey != "" {
		cfg.AdditionalParams["sslkey"] = flags.SSLKey
	}
	if flags.SSLRootCert != "" {
		cfg.AdditionalParams["sslrootcert"] = flags.SSLRootCert
	}
	if cfg.AuthMethod == tvload.AuthMethodStandard {
		cfg.AuthMethod = tvload.AuthMethodCertificate
	}
}

// resolveFromConnectionString parses a connection string and applies
// environment and project-config fallbacks for parameters the string
// does not set, following libpq behavior.
//
// Unlike granular resolution, values inside the string always win; only
// gaps are filled. A string with no database component stays empty here
// so the CLI can demand an explicit target instead of loading into a
// guessed database.
func resolveFromConnectionString(connStr string, envVars *EnvVars, projectConfig *config.ProjectConfig) (*tvload.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	if cfg.Database == "" {
		cfg.Database = envVars.PGDATABASE
	}
	if cfg.Database == "" {
		cfg.Database = pc.Database
	}

	if cfg.SSLMode == "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}

	return cfg, nil
}

// resolveFromGranularParams builds a ConnectionConfig from granular flags,
// environment variables and tvload.yaml.
//
// Precedence for each parameter (following PostgreSQL standards):
//  1. CLI flag (highest priority)
//  2. Environment variable
//  3. tvload.yaml connection section
//  4. Default value (lowest priority)
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*tvload.ConnectionConfig, error) {
	cfg := &tvload.ConnectionConfig{
		AuthMethod:       tvload.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	// Host: flag > PGHOST > tvload.yaml > default
	cfg.Host = flags.Host
	if cfg.Host == "" {
		cfg.Host = envVars.PGHOST
	}
	if cfg.Host == "" {
		cfg.Host = pc.Host
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}

	// Port: flag > PGPORT > tvload.yaml > default
	if flags.Port != 0 {
		cfg.Port = flags.Port
	} else if envVars.PGPORT != "" {
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value '%s': must be an integer", envVars.PGPORT)
		}
		cfg.Port = port
	} else if pc.Port != 0 {
		cfg.Port = pc.Port
	} else {
		cfg.Port = 5432
	}

	// Username: flag > PGUSER > tvload.yaml > current OS user
	cfg.Username = flags.Username
	if cfg.Username == "" {
		cfg.Username = envVars.PGUSER
	}
	if cfg.Username == "" {
		cfg.Username = pc.Username
	}
	if cfg.Username == "" {
		if currentUser := os.Getenv("USER"); currentUser != "" {
			cfg.Username = currentUser
		} else if currentUser := os.Getenv("USERNAME"); currentUser != "" {
			cfg.Username = currentUser
		}
	}

	cfg.Password = envVars.PGPASSWORD

	// Database: flag > PGDATABASE > tvload.yaml
	cfg.Database = flags.Database
	if cfg.Database == "" {
		cfg.Database = envVars.PGDATABASE
	}
	if cfg.Database == "" {
		cfg.Database = pc.Database
	}

	// SSLMode: flag > PGSSLMODE > tvload.yaml > default
	cfg.SSLMode = flags.SSLMode
	if cfg.SSLMode == "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = pc.SSLMode
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}

	return cfg, nil
}
