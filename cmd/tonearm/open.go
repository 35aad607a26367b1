package main

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"tonearm/internal/services"
)

// runPlayer launches the configured audio player against an album folder
// and waits for it to exit.
func runPlayer(ctx context.Context, playerCommand []string, path string) error {
	if len(playerCommand) == 0 {
		return services.Wrap(services.ErrConfiguration, "", "run player",
			"no player command configured", nil)
	}
	args := append(append([]string(nil), playerCommand[1:]...), path)
	cmd := exec.CommandContext(ctx, playerCommand[0], args...)
	if err := cmd.Run(); err != nil {
		return services.Wrap(services.ErrExternalTool, "", "run player",
			fmt.Sprintf("%s failed", playerCommand[0]), err)
	}
	return nil
}

// openInBrowser hands a URL to the desktop's default handler.
func openInBrowser(ctx context.Context, url string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	if err := exec.CommandContext(ctx, opener, url).Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "", "open url",
			fmt.Sprintf("%s failed", opener), err)
	}
	return nil
}
