package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"moviehub-cli/cache"
	"moviehub-cli/config"
	"moviehub-cli/service"
	"moviehub-cli/telemetry"
)

const appName = "moviehub"

type buildInfo struct {
	version string
	commit  string
}

// runtimeEnv is what every subcommand needs once flags are parsed.
type runtimeEnv struct {
	cfg     config.Config
	baseURL string
}

func NewRootCmd(version string, commit string) *cobra.Command {
	info := buildInfo{version: version, commit: commit}
	env := &runtimeEnv{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "MovieHub booking client",
		Long:          `Pick seats, pay and manage MovieHub bookings from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if env.baseURL != "" {
				cfg.API.BaseURL = env.baseURL
			}
			env.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBook(cmd, env, 0)
		},
	}
	root.PersistentFlags().StringVar(&env.baseURL, "base-url", "", "MovieHub site URL (overrides MOVIEHUB_BASE_URL)")

	root.AddCommand(
		newBookCmd(env),
		newAdminCmd(env),
		newReviewCmd(env),
		newServeCmd(env),
		newVersionCmd(info),
	)
	return root
}

func Execute(version string, commit string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd(version, commit).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func newVersionCmd(info buildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of the MovieHub CLI",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := fmt.Sprintf("%s %s", appName, info.version)
			if info.commit != "none" && info.commit != "" {
				out += fmt.Sprintf(" (%s)", info.commit)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		},
	}
}

// stderrLogger is the logger for non-interactive commands.
func stderrLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return telemetry.NewLogger(cfg.Log, w)
}

// newClient builds the API client with the configured response cache. An
// unreachable Redis falls back to the in-process cache.
func newClient(ctx context.Context, cfg config.Config, logger *slog.Logger) (*service.Client, func()) {
	var store cache.Store = cache.NewMemoryStore()
	closeFn := func() {}
	if addr := strings.TrimSpace(cfg.Cache.RedisAddr); addr != "" {
		redisStore, err := cache.Dial(ctx, addr, cfg.Cache.Prefix)
		if err != nil {
			logger.Warn("redis cache unavailable, using memory cache", "addr", addr, "error", err)
		} else {
			store = redisStore
			closeFn = func() { _ = redisStore.Close() }
		}
	}
	return service.NewClientFromConfig(cfg.API, store, logger), closeFn
}
