package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/superhero/locator/internal/app"
)

// NewRootCommand builds the locator command. Output is written to outW so
// tests can capture it.
func NewRootCommand(outW io.Writer) *cobra.Command {
	var (
		baseDir    string
		configFile string
		logFormat  string
		logLevel   string
		statusPort int
	)

	root := &cobra.Command{
		Use:   "locator MANIFEST",
		Short: "Resolve, register and tear down services declared in a manifest",
		Long: `locator eager loads the services declared in a YAML manifest, honoring
declared dependency order and wildcard path declarations, reports the
resulting registry and destroys it again in reverse dependency order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A .env file is optional; only a malformed one is an error.
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}

			logFormat = strings.ToLower(logFormat)
			if logFormat != "text" && logFormat != "json" {
				return errors.New("invalid log-format: must be 'text' or 'json'")
			}
			switch strings.ToLower(logLevel) {
			case "debug", "info", "warn", "error":
			default:
				return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			appConfig, err := app.NewConfig(app.Config{
				ManifestPath: args[0],
				BaseDir:      baseDir,
				ConfigFile:   configFile,
				LogFormat:    logFormat,
				LogLevel:     logLevel,
				StatusPort:   statusPort,
			})
			if err != nil {
				return err
			}

			// The app panics on critical startup errors; surface those as a
			// clean error instead of a crash.
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("application startup panicked: %v", r)
				}
			}()

			application := app.NewApp(outW, appConfig, nil)
			return application.Run(cmd.Context())
		},
	}

	root.Flags().StringVar(&baseDir, "base-dir", ".", "base directory for relative service paths")
	root.Flags().StringVar(&configFile, "config", "", "locator configuration file (destroy gates, path overrides)")
	root.Flags().StringVar(&logFormat, "log-format", "text", "log output format: 'text' or 'json'")
	root.Flags().StringVar(&logLevel, "log-level", "info", "logging level: 'debug', 'info', 'warn' or 'error'")
	root.Flags().IntVar(&statusPort, "status-port", 0, "port for the HTTP status server, 0 disables it")

	return root
}
