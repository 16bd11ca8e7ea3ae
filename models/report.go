// Package models defines the shared value types exchanged between the
// analysis packages and the CLI layer.
package models

// Level classifies a single finding produced by a validator.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Finding is one validator observation. Validation outcomes are data, not
// errors: a failing check is reported here, never returned as a Go error.
type Finding struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// CountLevels tallies findings by level.
func CountLevels(findings []Finding) (errors, warnings int) {
	for _, f := range findings {
		switch f.Level {
		case LevelError:
			errors++
		case LevelWarning:
			warnings++
		}
	}
	return errors, warnings
}
