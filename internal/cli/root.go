// Package cli contains the commands of the pesapots binary.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/config"
	"github.com/pesapots/backend/internal/events"
	"github.com/pesapots/backend/internal/session"
	"github.com/pesapots/backend/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app is the state shared by all commands.
type app struct {
	configPath string
	config     config.Config
}

// NewRootCommand returns the pesapots command with all subcommands. Without
// a subcommand, the API server is started.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "pesapots",
		Short: "Personal finance backend for transactions, budgets, savings pots and bills",
		Long: `pesapots keeps a local session of a personal finance REST backend and serves
it with derived figures like budget usage, savings progress and bill totals.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runServe,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "config.yaml", "path of the YAML configuration file")

	cmd.AddCommand(a.serveCmd())
	cmd.AddCommand(a.exportCmd())
	cmd.AddCommand(a.summaryCmd())

	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.config = c

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(c.Server.GinMode)

	setupLogging(c.Log, cmd.ErrOrStderr())
	return nil
}

// setupLogging configures the global logger.
//
// If the format is not set, it defaults to human readable for development
// and JSON for release.
func setupLogging(c config.Log, out io.Writer) {
	output := out
	if (c.Format == "" && gin.IsDebugging()) || c.Format == "human" {
		output = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if c.Level != "" {
		level, err := zerolog.ParseLevel(c.Level)
		if err != nil {
			log.Warn().Str("level", c.Level).Msg("unknown log level, keeping the default")
		} else {
			zerolog.SetGlobalLevel(level)
		}
	}

	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// openCache opens the sqlite cache, creating its directory if needed.
func (a *app) openCache() (*store.SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(a.config.Cache.Path), os.ModePerm); err != nil {
		return nil, err
	}

	return store.Connect(a.config.Cache.Path)
}

// offlineSession returns a session restored from the cache that never calls
// the backend.
func (a *app) offlineSession(cmd *cobra.Command) (*session.Service, func(), error) {
	cache, err := a.openCache()
	if err != nil {
		return nil, nil, err
	}

	svc := session.New(session.Options{
		Store:     cache,
		Publisher: events.Noop{},
		CacheKey:  a.config.Cache.Key,
	})

	if err := svc.Load(cmd.Context()); err != nil {
		cache.Close()
		return nil, nil, err
	}

	return svc, func() { cache.Close() }, nil
}
