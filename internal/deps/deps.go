// Package deps verifies the external tools the pipeline shells out to.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"tonearm/internal/config"
)

// Requirement names one external tool and why it is needed.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Requirements derives the tool list from the active configuration. The
// player is optional because triage works without listening first.
func Requirements(cfg *config.Config) []Requirement {
	player := ""
	if len(cfg.Transfer.PlayerCommand) > 0 {
		player = cfg.Transfer.PlayerCommand[0]
	}
	return []Requirement{
		{
			Name:        "rsync",
			Command:     cfg.Transfer.RsyncBinary,
			Description: "copies albums between pipeline directories",
		},
		{
			Name:        "downloader",
			Command:     cfg.Transfer.DownloaderBinary,
			Description: "fetches albums from the remote catalog",
		},
		{
			Name:        "player",
			Command:     player,
			Description: "plays staged albums during triage",
			Optional:    true,
		},
	}
}

// Check resolves each requirement against PATH, or against the filesystem
// when the configured command is an absolute path.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, check(req))
	}
	return results
}

func check(req Requirement) Status {
	status := Status{Requirement: req}
	command := strings.TrimSpace(req.Command)
	status.Command = command

	if command == "" {
		status.Detail = "not configured"
		return status
	}
	if strings.ContainsRune(command, os.PathSeparator) {
		info, err := os.Stat(command)
		if err != nil || info.IsDir() {
			status.Detail = fmt.Sprintf("%s is not an executable file", command)
			return status
		}
		status.Available = true
		return status
	}
	if _, err := exec.LookPath(command); err != nil {
		status.Detail = fmt.Sprintf("%q not found on PATH", command)
		return status
	}
	status.Available = true
	return status
}

// Healthy reports whether every required tool resolved.
func Healthy(statuses []Status) bool {
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			return false
		}
	}
	return true
}
