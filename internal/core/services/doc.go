// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// AnalysisService runs the originality pipeline: sentence normalisation,
// chunking, paced web search, similarity scoring and aggregation. The
// search provider, score recorder and report store are injected.
package services
