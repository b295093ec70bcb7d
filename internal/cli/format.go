package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todo/pkg/types"
)

// formatTask renders one task for human output.
func formatTask(t types.Task) string {
	status := "○"
	if t.Completed {
		status = "✓"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%d] %s %s", status, t.ID, priorityGlyph(t.Priority), t.Title)
	if t.Category != types.DefaultCategory {
		fmt.Fprintf(&b, " (%s)", t.Category)
	}
	if t.HasDueDate() {
		fmt.Fprintf(&b, " [Due: %s]", t.DueDate)
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n    📝 %s", t.Description)
	}
	return b.String()
}

func priorityGlyph(p types.Priority) string {
	switch p {
	case types.PriorityHigh:
		return "🔴"
	case types.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}

// writeJSON prints v as indented JSON on the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// parseID parses a positional task id.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, userError("invalid task id %q: must be a positive integer", arg)
	}
	return id, nil
}

func notFound(id int) error {
	return userError("task %d not found", id)
}
