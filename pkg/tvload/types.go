package tvload

import (
	"errors"
	"fmt"
	"time"
)

// LoadConfig contains all parameters needed for a load run.
type LoadConfig struct {
	// SourcePath is the listings file to load
	SourcePath string

	// Delimiter is the field separator in the listings file.
	// Zero means DefaultDelimiter.
	Delimiter rune

	// StatusFallback, when non-nil, is stored for rows whose estado field
	// does not parse as an integer. When nil such rows are rejected.
	StatusFallback *int

	// Force skips the interactive append confirmation when the target
	// channel table already contains rows
	Force bool

	// Timeout is the global timeout for the entire run (0 = no timeout)
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool

	// Connection holds the resolved connection parameters for the target store
	Connection ConnectionConfig
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if c.Delimiter == '"' || c.Delimiter == '\n' || c.Delimiter == '\r' {
		errs = append(errs, fmt.Errorf("delimiter %q cannot be a quote or newline: %w", c.Delimiter, ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if !c.Connection.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("unknown auth method %d: %w", c.Connection.AuthMethod, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ValidateConfig contains all parameters needed for a parse-only dry run.
type ValidateConfig struct {
	// SourcePath is the listings file to validate
	SourcePath string

	// Delimiter is the field separator in the listings file.
	// Zero means DefaultDelimiter.
	Delimiter rune

	// StatusFallback mirrors the load-time estado policy so validation
	// reports exactly what a load with the same settings would do
	StatusFallback *int

	// Strict makes any invalid row fail the command instead of only
	// being reported
	Strict bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the ValidateConfig has all required fields and valid values.
func (c *ValidateConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if c.Delimiter == '"' || c.Delimiter == '\n' || c.Delimiter == '\r' {
		errs = append(errs, fmt.Errorf("delimiter %q cannot be a quote or newline: %w", c.Delimiter, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is the RDS region (used when AuthMethod is AuthMethodAWSIAM)
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name in
	// project:region:instance format (used when AuthMethod is AuthMethodGoogleIAM)
	GoogleInstance string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodCertificate                    // mTLS
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodCertificate:
		return "Certificate"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
