package store

import (
	"encoding/json"
	"fmt"

	"github.com/kekarehab/intakebot/internal/models"
)

// nilIfEmpty returns nil if s is empty, otherwise returns s.
// Used for nullable database columns.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// marshalMetadata serializes event metadata for storage. Empty metadata maps
// to NULL.
func marshalMetadata(metadata map[string]interface{}) (interface{}, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event metadata: %w", err)
	}
	return string(b), nil
}

// finalizeSummary derives the fields computed from raw counts: conversion
// rate, PHI warnings, back-navigation usage, and per-service percentages.
func finalizeSummary(summary *models.AnalyticsSummary) {
	summary.PHIWarnings = summary.EventCounts[models.EventPHIWarningTriggered]
	summary.BackUsage = summary.EventCounts[models.EventBackButtonUsed]
	started := summary.EventCounts[models.EventIntakeFlowStarted]
	if started > 0 {
		summary.ConversionRate = float64(summary.EventCounts[models.EventIntakeFlowCompleted]) / float64(started)
	}
	if summary.HandoffCount > 0 {
		for i := range summary.ByServiceType {
			summary.ByServiceType[i].Percentage = float64(summary.ByServiceType[i].Count) / float64(summary.HandoffCount) * 100
		}
	}
}
