package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/verity/internal/core/domain"
)

const notSet = "(not set)"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the search provider, pacing, scoring policy and
score write-back.

Credentials can also be supplied through VERITY_SEARCH_API_KEY,
VERITY_SEARCH_ENGINE_ID and VERITY_RECORDER_TOKEN, or a .env file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a single setting",
	Long: `Change a single setting by its config key, for example:

  verity settings set search.max_results 8
  verity settings set search.pacing rate_limited

Run 'verity settings keys' to list the accepted keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure search credentials, pacing and write-back.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	overrides := envOverrides(os.LookupEnv)
	fromEnv := func(name string) string {
		for _, o := range overrides {
			if o == name {
				return " (from " + name + ")"
			}
		}
		return ""
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config: %s\n", settingsService.Location())
	cmd.Println()

	search := settings.Search
	cmd.Println("[Search]")
	cmd.Printf("  API Key: %s%s\n", maskOrNotSet(search.APIKey), fromEnv(EnvSearchAPIKey))
	cmd.Printf("  Engine ID: %s%s\n", valueOrNotSet(search.EngineID), fromEnv(EnvSearchEngineID))
	if search.Endpoint != "" {
		cmd.Printf("  Endpoint: %s\n", search.Endpoint)
	}
	cmd.Printf("  Max Results: %d\n", search.MaxResults)
	cmd.Printf("  Pacing: %s\n", search.Pacing.Description())
	if search.Pacing == domain.PacingRateLimited {
		cmd.Printf("  Requests/Minute: %g\n", search.RequestsPerMinute)
	} else {
		cmd.Printf("  Delay: %s\n", search.Delay)
	}
	cmd.Println()

	cmd.Println("[Chunker]")
	cmd.Printf("  Sentences per chunk: %d-%d\n", settings.Chunker.MinSize, settings.Chunker.MaxSize)
	cmd.Println()

	cmd.Println("[Scoring]")
	cmd.Printf("  Threshold: %g%%\n", settings.Scoring.ThresholdPercent)
	cmd.Printf("  Min Originality: %d\n", settings.Scoring.MinOriginality)
	cmd.Println()

	cmd.Println("[Normaliser]")
	cmd.Printf("  Remove Stopwords: %s\n", yesNo(settings.Normaliser.RemoveStopwords))
	cmd.Println()

	cmd.Println("[Recorder]")
	if settings.Recorder.IsConfigured() {
		cmd.Printf("  Base URL: %s\n", settings.Recorder.BaseURL)
	} else {
		cmd.Println("  Base URL: (local history only)")
	}
	cmd.Printf("  Token: %s%s\n", maskOrNotSet(settings.Recorder.Token), fromEnv(EnvRecorderToken))
	cmd.Println()

	switch err := settings.Validate(); {
	case err != nil:
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'verity settings wizard' to fix configuration issues.")
	case !search.IsConfigured():
		cmd.Println("Warning: search credentials are not set; every chunk will be reported as not searched.")
		cmd.Println("Run 'verity settings wizard' to configure them.")
	default:
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w\nvalid keys: %s", err, strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if isSecretKey(key) {
		value = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	stored, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings := *stored

	cmd.Println("Verity Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)

	// Step 1: Search credentials
	cmd.Println("Step 1: Search Provider")
	cmd.Println("-----------------------")
	cmd.Printf("Enter API key [%s]: ", maskOrNotSet(settings.Search.APIKey))
	if key := readPassword(in, reader); key != "" {
		settings.Search.APIKey = key
	}
	cmd.Println()
	cmd.Printf("Enter search engine ID [%s]: ", valueOrNotSet(settings.Search.EngineID))
	if id := readLine(reader); id != "" {
		settings.Search.EngineID = id
	}
	cmd.Println()

	// Step 2: Pacing
	cmd.Println("Step 2: Request Pacing")
	cmd.Println("----------------------")
	modes := domain.AllPacingModes()
	current := 1
	for i, mode := range modes {
		if mode == settings.Search.Pacing {
			current = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Search.Pacing = modes[parseChoice(readLine(reader), len(modes), current)-1]

	if settings.Search.Pacing == domain.PacingRateLimited {
		cmd.Printf("Requests per minute [%g]: ", settings.Search.RequestsPerMinute)
		if v, err := strconv.ParseFloat(readLine(reader), 64); err == nil && v > 0 {
			settings.Search.RequestsPerMinute = v
		}
	} else {
		cmd.Printf("Delay between requests in ms [%d]: ", settings.Search.Delay.Milliseconds())
		if v, err := strconv.Atoi(readLine(reader)); err == nil && v >= 0 {
			settings.Search.Delay = time.Duration(v) * time.Millisecond
		}
	}
	cmd.Println()

	// Step 3: Write-back
	cmd.Println("Step 3: Score Write-back (optional)")
	cmd.Println("-----------------------------------")
	cmd.Printf("Document API base URL [%s]: ", valueOrNotSet(settings.Recorder.BaseURL))
	if url := readLine(reader); url != "" {
		settings.Recorder.BaseURL = url
	}
	if settings.Recorder.IsConfigured() {
		cmd.Printf("Default token [%s]: ", maskOrNotSet(settings.Recorder.Token))
		if token := readPassword(in, reader); token != "" {
			settings.Recorder.Token = token
		}
		cmd.Println()
	}
	cmd.Println()

	if err := settingsService.Save(&settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a secret without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func maskOrNotSet(secret string) string {
	if secret == "" {
		return notSet
	}
	return maskAPIKey(secret)
}

func valueOrNotSet(v string) string {
	if v == "" {
		return notSet
	}
	return v
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key") || strings.HasSuffix(key, "token")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
