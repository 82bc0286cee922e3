// Package deps reports whether the external media tools squeeze drives are
// installed and capable of the configured encoders.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

var (
	lookPath       = exec.LookPath
	commandContext = exec.CommandContext
)

// Requirement names an external binary squeeze needs.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	// Path is the resolved executable when Available.
	Path string
	// Version is the first line of `<command> -version`, when it ran.
	Version string
	Detail  string
}

// CheckBinaries resolves each requirement on PATH and reads its version
// banner.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := lookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		status.Version = versionLine(ctx, resolved)
		results = append(results, status)
	}
	return results
}

func versionLine(ctx context.Context, binary string) string {
	out, err := commandContext(ctx, binary, "-version").Output() //nolint:gosec
	if err != nil {
		return ""
	}
	first, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(first)
}
