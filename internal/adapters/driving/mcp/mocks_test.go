package mcp

import (
	"context"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	report  *domain.Report
	err     error
	lastReq domain.AnalysisRequest
	marked  domain.Source
}

func (m *mockAnalysisService) Analyze(_ context.Context, req domain.AnalysisRequest) (*domain.Report, error) {
	m.lastReq = req
	return m.report, m.err
}

func (m *mockAnalysisService) Highlight(text string, source domain.Source) string {
	m.marked = source
	return "<p>" + text + "</p>"
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	reports []domain.Report
	report  *domain.Report
	err     error
}

func (m *mockHistoryService) List(_ context.Context, _ int) ([]domain.Report, error) {
	return m.reports, m.err
}

func (m *mockHistoryService) Get(_ context.Context, _ string) (*domain.Report, error) {
	return m.report, m.err
}
