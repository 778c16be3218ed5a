package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze tool.
type AnalyzeInput struct {
	Text          string `json:"text" jsonschema:"the document text to score"`
	Filename      string `json:"filename,omitempty" jsonschema:"original file name, stored with the report"`
	KeepStopwords bool   `json:"keep_stopwords,omitempty" jsonschema:"keep stopwords in sentence tokens"`
	DocumentID    string `json:"document_id,omitempty" jsonschema:"record to update with the score"`
	Save          bool   `json:"save,omitempty" jsonschema:"store the report in the local history"`
}

// AnalyzeOutput is the output schema for the analyze tool.
type AnalyzeOutput struct {
	ReportID         string         `json:"report_id"`
	OriginalityScore int            `json:"originality_score"`
	OverlapPercent   int            `json:"overlap_percent"`
	Sources          []SourceOutput `json:"sources"`
	Chunks           int            `json:"chunks"`
	FailedChunks     int            `json:"failed_chunks"`
}

// SourceOutput represents a single matched source.
type SourceOutput struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	MatchPercent int      `json:"match_percent"`
	Segments     []string `json:"segments,omitempty"`
}

// HighlightInput is the input schema for the highlight tool.
type HighlightInput struct {
	Text     string   `json:"text" jsonschema:"the document text to mark up"`
	URL      string   `json:"url,omitempty" jsonschema:"source link recorded on each mark"`
	Segments []string `json:"segments" jsonschema:"matched segments to wrap, as returned by analyze"`
}

// HighlightOutput is the output schema for the highlight tool.
type HighlightOutput struct {
	HTML string `json:"html"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze",
		Description: "Score the originality of a text against web search results",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight",
		Description: "Mark the segments a source matched inside a text",
	}, s.handleHighlight)
}

// handleAnalyze handles the analyze tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	report, err := s.ports.Analysis.Analyze(ctx, domain.AnalysisRequest{
		Text:            input.Text,
		Filename:        input.Filename,
		Document:        domain.DocumentRef{ID: input.DocumentID},
		RemoveStopwords: !input.KeepStopwords,
		Save:            input.Save,
	})
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	output := AnalyzeOutput{
		ReportID:         report.ID,
		OriginalityScore: report.OriginalityScore,
		OverlapPercent:   report.OverlapPercent,
		Sources:          make([]SourceOutput, len(report.Sources)),
		Chunks:           report.Stats.Chunks,
		FailedChunks:     report.Stats.FailedChunks,
	}
	for i := range report.Sources {
		output.Sources[i] = SourceOutput{
			Title:        report.Sources[i].Title,
			URL:          report.Sources[i].URL,
			MatchPercent: report.Sources[i].MatchPercent,
			Segments:     report.Sources[i].SegmentTexts(),
		}
	}

	return nil, output, nil
}

// handleHighlight handles the highlight tool invocation.
func (s *Server) handleHighlight(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input HighlightInput,
) (*mcp.CallToolResult, HighlightOutput, error) {
	source := domain.Source{URL: input.URL}
	for _, seg := range input.Segments {
		source.Segments = append(source.Segments, domain.MatchedSegment{Text: seg})
	}
	return nil, HighlightOutput{HTML: s.ports.Analysis.Highlight(input.Text, source)}, nil
}
