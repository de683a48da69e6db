package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Component within thresholds
	SymbolFail     = "✗" // Critical reading or failed routine
	SymbolPending  = "○" // Not yet started
	SymbolProgress = "◐" // In progress
	SymbolWarning  = "⚠" // High usage or sensors unavailable
	SymbolSkipped  = "⊘" // Skipped
)
