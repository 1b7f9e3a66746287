package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRequireListingsPath(t *testing.T) {
	cmd := &cobra.Command{
		Use: "load <listings_file>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireListingsPath(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <listings_file>") {
			t.Errorf("expected error to contain 'missing required argument: <listings_file>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		err := RequireListingsPath(cmd, []string{"./channels.csv"})
		if err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireListingsPath(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("expected error to contain 'accepts 1 arg', got: %s", err.Error())
		}
	})
}

func TestRequireTemplateName(t *testing.T) {
	cmd := &cobra.Command{
		Use: "describe <template_name>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireTemplateName(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <template_name>") {
			t.Errorf("expected error to contain 'missing required argument: <template_name>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "tvload templates list") {
			t.Errorf("expected error to contain 'tvload templates list', got: %s", err.Error())
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		err := RequireTemplateName(cmd, []string{"basic"})
		if err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireTemplateName(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("expected error to contain 'accepts 1 arg', got: %s", err.Error())
		}
	})
}
