package output

import (
	"encoding/json"

	"github.com/arthaplan/engine/internal/domain"
)

// JSONFormatter serializes the analysis result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.AnalysisResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
