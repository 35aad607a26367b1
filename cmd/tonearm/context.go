package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tonearm/internal/config"
	"tonearm/internal/download"
	"tonearm/internal/ignore"
	"tonearm/internal/lastfm"
	"tonearm/internal/logging"
	"tonearm/internal/organizer"
	"tonearm/internal/remote"
	"tonearm/internal/services"
	"tonearm/internal/transfer"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// commandLogger builds the shared logger from the logging section. With a
// log directory configured, records go to an append-mode file so the
// interactive console stays clean. Logger construction failures degrade to
// a no-op logger; command output goes to stdout regardless.
func (c *commandContext) commandLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		c.logger = logging.NewNop()
		cfg := c.configValue()
		if cfg == nil {
			return
		}
		opts := logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		}
		if dir := cfg.Paths.LogDir; dir != "" {
			file, err := logging.OpenLogFile(dir, "tonearm.log")
			if err != nil {
				return
			}
			opts.Writer = file
		}
		logger, err := logging.New(opts)
		if err != nil {
			return
		}
		c.logger = logger
	})
	return c.logger
}

// runContext tags a context with the command name and a correlation id so
// every log line from one invocation can be tied together.
func (c *commandContext) runContext(parent context.Context, command string) context.Context {
	ctx := services.WithCommand(parent, command)
	return services.WithRequestID(ctx, uuid.NewString())
}

func (c *commandContext) ignoreStore() (*ignore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return ignore.Open(cfg.Paths.IgnorePath)
}

func (c *commandContext) remoteClient() (*remote.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return remote.New(cfg.Remote, c.commandLogger())
}

func (c *commandContext) lastfmClient() *lastfm.Client {
	return lastfm.New(c.configValue().LastFM, c.commandLogger())
}

func (c *commandContext) transferer() transfer.Transferer {
	return transfer.NewRsync(c.configValue().Transfer.RsyncBinary, c.commandLogger())
}

func (c *commandContext) organizer(dryRun bool) *organizer.Organizer {
	cfg := c.configValue()
	return organizer.New(cfg.Paths.LibraryDir, cfg.Paths.StagingDir, c.transferer(), c.commandLogger(), dryRun)
}

func (c *commandContext) downloader() download.Downloader {
	cfg := c.configValue()
	return download.NewExec(cfg.Transfer.DownloaderBinary, cfg.Transfer.DownloaderArgs,
		cfg.Paths.DownloadsDir, c.commandLogger())
}
