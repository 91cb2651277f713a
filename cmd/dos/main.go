//go:generate go tool swag init --dir ../../ --generalInfo cmd/dos/main.go --output ../../internal/docs --outputTypes go --parseInternal

// @title			Dos GREEN-API proxy
// @version		0.2
// @description	Pass-through JSON API for the GREEN-API WhatsApp REST API.
// @BasePath		/
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	_ "golang.org/x/crypto/x509roots/fallback" // root certificates for scratch images, needed to reach GREEN-API over https

	"github.com/AidosNurbergen/Dos/internal/config"
	"github.com/AidosNurbergen/Dos/internal/console"
	"github.com/AidosNurbergen/Dos/internal/greenapi"
	"github.com/AidosNurbergen/Dos/internal/logger"
	"github.com/AidosNurbergen/Dos/internal/server"
	"github.com/AidosNurbergen/Dos/internal/version"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// actionFlags are shared by the commands that call GREEN-API directly
type actionFlags struct {
	idInstance string
	apiToken   string
	apiURL     string
	timeout    time.Duration
	logLevel   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dos",
		Short:         "GREEN-API WhatsApp console",
		Long:          `Web console, JSON proxy and command line client for the GREEN-API WhatsApp REST API`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := &actionFlags{}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.idInstance, "id-instance", os.Getenv("GREEN_API_ID_INSTANCE"), "instance id (env GREEN_API_ID_INSTANCE)")
	pf.StringVar(&flags.apiToken, "api-token", os.Getenv("GREEN_API_TOKEN"), "instance API token (env GREEN_API_TOKEN)")
	pf.StringVar(&flags.apiURL, "api-url", envOrDefault("GREEN_API_URL", greenapi.DefaultBaseURL), "GREEN-API base URL")
	pf.DurationVar(&flags.timeout, "timeout", greenapi.DefaultTimeout, "request timeout (0 disables)")
	pf.StringVar(&flags.logLevel, "log-level", envOrDefault("LOG_LEVEL", "warn"), "diagnostic log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(),
		newActionCmd(flags, "get-settings", "Show the instance settings", nil,
			func(ctx context.Context, c *console.Console, creds greenapi.Credentials) error {
				return c.GetSettings(ctx, creds)
			}),
		newActionCmd(flags, "get-state-instance", "Show the instance connection state", nil,
			func(ctx context.Context, c *console.Console, creds greenapi.Credentials) error {
				return c.GetStateInstance(ctx, creds)
			}),
		newSendMessageCmd(flags),
		newSendFileCmd(flags),
	)

	return cmd
}

func newServeCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web console and JSON API",
		Long: `Run the HTTP server. Configuration is read from environment variables (see internal/config).
--mode selects what is served: all (default), ui or api.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "" {
				if !config.ValidServiceModes[mode] {
					return fmt.Errorf("invalid mode %q: use all, ui or api", mode)
				}
				if err := os.Setenv("SERVICE_MODE", mode); err != nil {
					return err
				}
			}
			return runServer()
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "service mode: all, ui or api (overrides SERVICE_MODE)")
	return cmd
}

func runServer() error {
	cfg, corsConfigs, err := config.NewConfig()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		return err
	}

	serverLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	slog.SetDefault(serverLogger)

	serverLogger.Info("Starting server", slog.String("version", version.Get().Version), slog.String("environment", cfg.Environment))

	s, err := server.NewServer(cfg, corsConfigs, serverLogger)
	if err != nil {
		serverLogger.Error("Failed to create server", slog.String("error", err.Error()))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Start(ctx); err != nil {
		serverLogger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	serverLogger.Info("server shutdown complete")
	return nil
}

type runAction func(ctx context.Context, c *console.Console, creds greenapi.Credentials) error

// newActionCmd builds a command that runs one console action and prints the output log.
// The command fails (non-zero exit) when the action failed; the log still shows both error entries.
func newActionCmd(flags *actionFlags, use, short string, addFlags func(*cobra.Command), run runAction) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			diag := logger.NewTextLogger(cmd.ErrOrStderr(), logger.ParseLogLevel(flags.logLevel))
			out := console.NewLog()
			c := console.New(greenapi.NewClient(flags.apiURL, flags.timeout), out, diag)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := run(ctx, c, greenapi.Credentials{
				IDInstance:       flags.idInstance,
				APITokenInstance: flags.apiToken,
			})

			if _, werr := io.WriteString(cmd.OutOrStdout(), out.String()); werr != nil {
				return werr
			}
			if err != nil {
				return fmt.Errorf("%s failed: %w", use, err)
			}
			return nil
		},
	}

	if addFlags != nil {
		addFlags(cmd)
	}
	return cmd
}

func newSendMessageCmd(flags *actionFlags) *cobra.Command {
	var phone, text string

	return newActionCmd(flags, "send-message", "Send a text message",
		func(cmd *cobra.Command) {
			cmd.Flags().StringVar(&phone, "phone", "", "recipient phone number")
			cmd.Flags().StringVar(&text, "text", "", "message text")
		},
		func(ctx context.Context, c *console.Console, creds greenapi.Credentials) error {
			return c.SendMessage(ctx, creds, phone, text)
		})
}

func newSendFileCmd(flags *actionFlags) *cobra.Command {
	var phone, fileURL string

	return newActionCmd(flags, "send-file", "Send a file by URL",
		func(cmd *cobra.Command) {
			cmd.Flags().StringVar(&phone, "phone", "", "recipient phone number")
			cmd.Flags().StringVar(&fileURL, "url", "", "URL of the file to send")
		},
		func(ctx context.Context, c *console.Console, creds greenapi.Credentials) error {
			return c.SendFileByURL(ctx, creds, phone, fileURL)
		})
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
