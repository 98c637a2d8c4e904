package domain

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"mutscore.dev/pkg/mutscore/internal/adapter"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

const scoreFilePerm = 0o644

// WriteScore persists report as dir/<name>.json. The suffix is appended when
// name lacks it; an existing document with the same name is overwritten.
func WriteScore(fsAdapter adapter.CheckoutFSAdapter, dir m.Path, name string, report m.MutationReport) (m.Path, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}

	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode score: %w", err)
	}

	target := fsAdapter.JoinPath(string(dir), name)
	if err := fsAdapter.WriteFile(target, data, scoreFilePerm); err != nil {
		return "", fmt.Errorf("write score: %w", err)
	}

	slog.Info("written score json", "path", target)

	return target, nil
}

// ScoreFileName is the persisted name of a score computed for label.
func ScoreFileName(label string) string {
	return "mutation_score_" + label
}
