package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
)

// WriteReport writes the run report as indented JSON.
func WriteReport(path string, report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
