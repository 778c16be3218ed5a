package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verity/internal/core/domain"
)

func saveReport(t *testing.T, env *testEnv, id, filename string, score int, created time.Time) {
	t.Helper()
	require.NoError(t, env.Reports.SaveReport(t.Context(), &domain.Report{
		ID:               id,
		Filename:         filename,
		OriginalityScore: score,
		OverlapPercent:   100 - score,
		Sources: []domain.Source{{
			Title:        "Page",
			URL:          "https://example.com/page",
			MatchPercent: 100 - score,
		}},
		CreatedAt: created,
	}))
}

func TestHistoryCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No saved reports.")
}

func TestHistoryCmd_ListsNewestFirst(t *testing.T) {
	env := setupTestServices(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	saveReport(t, env, "report-old", "old.txt", 90, base)
	saveReport(t, env, "report-new", "new.txt", 40, base.Add(time.Hour))

	out, err := executeCommand(t, "", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "DOCUMENT")
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, "90%")
	assert.Less(t, strings.Index(out, "report-new"), strings.Index(out, "report-old"))
}

func TestHistoryCmd_Limit(t *testing.T) {
	env := setupTestServices(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	saveReport(t, env, "report-1", "a.txt", 90, base)
	saveReport(t, env, "report-2", "b.txt", 80, base.Add(time.Minute))
	saveReport(t, env, "report-3", "c.txt", 70, base.Add(2*time.Minute))

	out, err := executeCommand(t, "", "history", "--limit", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "report-3")
	assert.Contains(t, out, "report-2")
	assert.NotContains(t, out, "report-1")
}

func TestHistoryCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	saveReport(t, env, "report-1", "a.txt", 75, time.Now())

	out, err := executeCommand(t, "", "history", "--json")
	require.NoError(t, err)

	var reports []domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports), out)
	require.Len(t, reports, 1)
	assert.Equal(t, "report-1", reports[0].ID)
	assert.Equal(t, 75, reports[0].OriginalityScore)
}

func TestHistoryShowCmd(t *testing.T) {
	env := setupTestServices(t)
	saveReport(t, env, "report-1", "essay.txt", 75, time.Now())

	out, err := executeCommand(t, "", "history", "show", "report-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Document:    essay.txt")
	assert.Contains(t, out, "Originality: 75%")
	assert.Contains(t, out, "[1] Page (25%)")
}

func TestHistoryShowCmd_YAML(t *testing.T) {
	env := setupTestServices(t)
	saveReport(t, env, "report-1", "essay.txt", 75, time.Now())

	out, err := executeCommand(t, "", "history", "show", "-f", "yaml", "report-1")

	require.NoError(t, err)
	assert.Contains(t, out, "id: report-1")
	assert.Contains(t, out, "originality_score: 75")
}

func TestHistoryShowCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "history", "show", "missing")

	require.Error(t, err)
	assert.Equal(t, "no saved report with id missing", err.Error())
}

func TestHistoryShowCmd_BadFormat(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "history", "show", "--format", "csv", "report-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestHistoryCmd_AfterAnalyzeSave(t *testing.T) {
	setupTestServices(t)
	path := writeTempFile(t, "essay.txt", copiedText)

	_, err := executeCommand(t, "", "analyze", "--save", path)
	require.NoError(t, err)

	out, err := executeCommand(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "essay.txt")
	assert.Contains(t, out, "5%")
}

func TestHistoryCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	historyService = nil

	_, err := executeCommand(t, "", "history")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "history service not configured")
}
