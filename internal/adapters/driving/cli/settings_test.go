package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// clearCredentialEnv hides credential variables of the surrounding environment.
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvSearchAPIKey, EnvSearchEngineID, EnvRecorderToken} {
		t.Setenv(name, "")
	}
}

func TestSettingsShowCmd_Defaults(t *testing.T) {
	setupTestServices(t)
	clearCredentialEnv(t)

	out, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Config: :memory:")
	assert.Contains(t, out, "[Search]")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "Max Results: 5")
	assert.Contains(t, out, "Pacing: Fixed delay between requests")
	assert.Contains(t, out, "Delay: 2s")
	assert.Contains(t, out, "Sentences per chunk: 3-5")
	assert.Contains(t, out, "Threshold: 3%")
	assert.Contains(t, out, "Min Originality: 5")
	assert.Contains(t, out, "Remove Stopwords: yes")
	assert.Contains(t, out, "Base URL: (local history only)")
	assert.Contains(t, out, "search credentials are not set")
}

func TestSettingsCmd_DefaultsToShow(t *testing.T) {
	setupTestServices(t)
	clearCredentialEnv(t)

	out, err := executeCommand(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestSettingsShowCmd_Configured(t *testing.T) {
	env := setupTestServices(t)
	clearCredentialEnv(t)
	require.NoError(t, env.Config.Set("search.api_key", "AIzaSyExampleKey123"))
	require.NoError(t, env.Config.Set("search.engine_id", "engine-1"))
	require.NoError(t, env.Config.Set("search.pacing", "rate_limited"))
	require.NoError(t, env.Config.Set("search.requests_per_minute", 60.0))
	require.NoError(t, env.Config.Set("recorder.base_url", "https://docs.example.com/api"))

	out, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "API Key: AIza...e123")
	assert.NotContains(t, out, "AIzaSyExampleKey123")
	assert.Contains(t, out, "Engine ID: engine-1")
	assert.Contains(t, out, "Requests/Minute: 60")
	assert.Contains(t, out, "Base URL: https://docs.example.com/api")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShowCmd_EnvOverride(t *testing.T) {
	setupTestServices(t)
	clearCredentialEnv(t)
	t.Setenv(EnvSearchAPIKey, "env-key-abcdefgh")

	out, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "API Key: env-...efgh (from VERITY_SEARCH_API_KEY)")
}

func TestSettingsShowCmd_InvalidStoredSettings(t *testing.T) {
	env := setupTestServices(t)
	clearCredentialEnv(t)
	require.NoError(t, env.Config.Set("chunker.min_size", 6))

	out, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "verity settings wizard")
}

func TestSettingsSetCmd(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "settings", "set", "search.max_results", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Set search.max_results = 8")

	stored, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Search.MaxResults)
}

func TestSettingsSetCmd_MasksSecrets(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "settings", "set", "recorder.token", "tok-1234567890")

	require.NoError(t, err)
	assert.Contains(t, out, "Set recorder.token = tok-...7890")
	assert.NotContains(t, out, "tok-1234567890")
}

func TestSettingsSetCmd_UnknownKey(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "settings", "set", "search.colour", "blue")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "valid keys:")
	assert.Contains(t, err.Error(), "search.max_results")
}

func TestSettingsSetCmd_InvalidValue(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "settings", "set", "search.max_results", "many")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsKeysCmd(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "search.api_key\n")
	assert.Contains(t, out, "recorder.token\n")
	assert.Contains(t, out, "normaliser.remove_stopwords\n")
}

func TestSettingsWizardCmd_RateLimited(t *testing.T) {
	setupTestServices(t)
	input := "key-1234567890\n" +
		"engine-1\n" +
		"2\n" +
		"60\n" +
		"https://docs.example.com/api\n" +
		"tok-abcdefghijk\n"

	out, err := executeCommand(t, input, "settings", "wizard")
	require.NoError(t, err)
	assert.Contains(t, out, "Step 1: Search Provider")
	assert.Contains(t, out, "Settings saved.")

	stored, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "key-1234567890", stored.Search.APIKey)
	assert.Equal(t, "engine-1", stored.Search.EngineID)
	assert.Equal(t, domain.PacingRateLimited, stored.Search.Pacing)
	assert.InDelta(t, 60.0, stored.Search.RequestsPerMinute, 0.001)
	assert.Equal(t, "https://docs.example.com/api", stored.Recorder.BaseURL)
	assert.Equal(t, "tok-abcdefghijk", stored.Recorder.Token)
}

func TestSettingsWizardCmd_KeepsDefaults(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.Config.Set("search.api_key", "existing-key-123"))

	// Empty answers keep the current values; fixed pacing asks for a delay.
	out, err := executeCommand(t, "\n\n1\n500\n\n", "settings", "wizard")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved.")
	assert.NotContains(t, out, "Default token")

	stored, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "existing-key-123", stored.Search.APIKey)
	assert.Equal(t, domain.PacingFixed, stored.Search.Pacing)
	assert.Equal(t, 500*time.Millisecond, stored.Search.Delay)
	assert.Empty(t, stored.Recorder.BaseURL)
}

func TestIsSecretKey(t *testing.T) {
	assert.True(t, isSecretKey("search.api_key"))
	assert.True(t, isSecretKey("recorder.token"))
	assert.False(t, isSecretKey("search.engine_id"))
	assert.False(t, isSecretKey("recorder.base_url"))
}

func TestValueOrNotSet(t *testing.T) {
	assert.Equal(t, notSet, valueOrNotSet(""))
	assert.Equal(t, "x", valueOrNotSet("x"))
	assert.Equal(t, notSet, maskOrNotSet(""))
	assert.Equal(t, "****", maskOrNotSet("short"))
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}
