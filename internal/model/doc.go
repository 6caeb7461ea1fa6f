// Package model defines the data structures exchanged between RiskScan and
// the analysis backend.
//
// This package contains the following main types:
//   - AnalysisRequest: One submission (screenshot, text, or website)
//   - AnalysisResult: The verdict returned for a submission
//   - HistoryEntry / History: The backend's log of past analyses
//   - StatsSnapshot: Verdict counts per risk level
//   - Submission: A locally journaled record of one submission
//
// Design decision: We keep the models in their own package so that the
// backend client, the controller, the report writers, and the journal can
// share them without import cycles.
//
// All backend-facing types carry JSON tags that match the backend's wire
// format exactly; field names such as "riskLevel" and "Low" are part of the
// contract and must not be renamed.
package model
