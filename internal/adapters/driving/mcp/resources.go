package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/verity/internal/core/domain"
)

const (
	uriScheme = "verity://"

	// resourceListLimit caps the reports resource.
	resourceListLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reports",
		Name:        "reports",
		Description: "Recently saved originality reports",
		MIMEType:    "application/json",
	}, s.handleReportsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "reports/{reportId}",
		Name:        "report",
		Description: "A saved originality report with its sources",
		MIMEType:    "application/json",
	}, s.handleReportResource)
}

// handleReportsResource returns a summary of saved reports.
func (s *Server) handleReportsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	reports, err := s.ports.History.List(ctx, resourceListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	type reportInfo struct {
		ID               string `json:"id"`
		Filename         string `json:"filename,omitempty"`
		OriginalityScore int    `json:"originality_score"`
		Sources          int    `json:"sources"`
		CreatedAt        string `json:"created_at"`
	}

	infos := make([]reportInfo, len(reports))
	for i := range reports {
		infos[i] = reportInfo{
			ID:               reports[i].ID,
			Filename:         reports[i].Filename,
			OriginalityScore: reports[i].OriginalityScore,
			Sources:          len(reports[i].Sources),
			CreatedAt:        reports[i].CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling reports: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleReportResource returns one saved report.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// verity://reports/{reportId}
	id := extractReportID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	report, err := s.ports.History.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling report: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractReportID extracts the report ID from a URI like verity://reports/{reportId}.
func extractReportID(uri string) string {
	const prefix = uriScheme + "reports/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
