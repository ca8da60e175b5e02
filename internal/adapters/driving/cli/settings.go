package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sab110/Sharepoint-RAG/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the configuration file.

Every key can also be supplied through the environment: sharepoint.client_secret
is read from SPRAG_SHAREPOINT_CLIENT_SECRET, and the environment wins.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the configuration file.

When the value is omitted it is read from standard input; on a terminal
the input is not echoed, which suits secrets such as sharepoint.client_secret.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if app == nil || app.Config == nil {
		return errors.New("settings service not configured")
	}
	s := app.Settings

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config file: %s\n", app.Config.Path())
	cmd.Println()

	cmd.Println("[Source]")
	cmd.Printf("  Type: %s\n", s.SourceType)
	cmd.Printf("  Data dir: %s\n", s.DataDir)
	cmd.Println()

	cmd.Println("[Sync]")
	cmd.Printf("  Workers: %d\n", s.Sync.Workers)
	cmd.Printf("  Document timeout: %s\n", s.Sync.DocumentTimeout)
	cmd.Printf("  Cooldown margin: %s\n", s.Sync.CooldownMargin)
	cmd.Printf("  Interval: %s\n", s.Sync.Interval)
	cmd.Printf("  Chunk size / overlap: %d / %d\n", s.Chunker.Size, s.Chunker.Overlap)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", s.Server.Addr)
	cmd.Printf("  Client state: %s\n", maskSecret(s.Server.ClientState))
	cmd.Println()

	cmd.Println("[Embedding]")
	if s.Embedding.APIKey == "" {
		cmd.Println("  Status: not configured (chunks are stored without vectors)")
	} else {
		cmd.Printf("  API Key: %s\n", maskAPIKey(s.Embedding.APIKey))
		cmd.Printf("  Model: %s\n", valueOr(s.Embedding.Model, "(default)"))
		cmd.Printf("  Base URL: %s\n", valueOr(s.Embedding.BaseURL, "(default)"))
	}
	cmd.Println()

	switch s.SourceType {
	case "sharepoint":
		cmd.Println("[SharePoint]")
		cmd.Printf("  Tenant: %s\n", valueOr(s.SharePoint.TenantID, "(not set)"))
		cmd.Printf("  Client ID: %s\n", valueOr(s.SharePoint.ClientID, "(not set)"))
		cmd.Printf("  Client secret: %s\n", maskSecret(s.SharePoint.ClientSecret))
		cmd.Printf("  Site: %s\n", valueOr(s.SharePoint.SiteURL, "(not set)"))
		cmd.Printf("  Notification URL: %s\n", valueOr(s.SharePoint.NotificationURL, "(not set)"))
	case "filesystem":
		cmd.Println("[Filesystem]")
		cmd.Printf("  Root: %s\n", valueOr(s.Filesystem.Root, "(not set)"))
		cmd.Printf("  Watch: %t\n", s.Filesystem.Watch)
	case "github":
		cmd.Println("[GitHub]")
		cmd.Printf("  Repository: %s/%s\n", s.GitHub.Owner, s.GitHub.Repo)
		cmd.Printf("  Branch: %s\n", valueOr(s.GitHub.Branch, "(default)"))
		cmd.Printf("  Patterns: %s\n", valueOr(s.GitHub.FilePatterns, "(all)"))
		cmd.Printf("  Token: %s\n", maskSecret(s.GitHub.Token))
	case "gdrive":
		cmd.Println("[Google Drive]")
		cmd.Printf("  Credentials: %s\n", valueOr(s.Drive.CredentialsFile, "(not set)"))
		cmd.Printf("  Folder: %s\n", valueOr(s.Drive.FolderID, "(whole drive)"))
	}

	if app.SetupErr != nil {
		cmd.Println()
		cmd.Printf("Problem: %v\n", app.SetupErr)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if app == nil || app.Config == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	if !slices.Contains(services.SettingKeys(), key) {
		return fmt.Errorf("unknown setting %q; known settings: %s", key, strings.Join(services.SettingKeys(), ", "))
	}

	var raw string
	if len(args) == 2 {
		raw = args[1]
	} else {
		cmd.Printf("%s: ", key)
		raw = readPassword()
		cmd.Println()
	}

	if err := app.Config.Set(key, parseValue(raw)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	shown := raw
	if services.IsSecretKey(key) {
		shown = maskSecret(raw)
	}
	cmd.Printf("%s = %s\n", key, shown)
	return nil
}

// parseValue stores integers and booleans with their TOML types.
func parseValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	return raw
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	return maskAPIKey(s)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
