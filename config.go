package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/robalobadob/hangman/internal/store"
)

const envPrefix = "HANGMAN"

type Config struct {
	bind          string
	port          int
	store         string
	db            string
	sessionSecret string
	clientOrigin  string
	secureCookies bool
	logLevel      string
	pretty        bool

	// export only
	session string
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	switch c.store {
	case store.KindMemory:
	case store.KindSQLite:
		if c.db == "" {
			return errors.New("--db is required with --store sqlite")
		}
	default:
		return fmt.Errorf("invalid store %q (must be %s or %s)", c.store, store.KindMemory, store.KindSQLite)
	}
	return nil
}

func (c *Config) addr() string {
	return fmt.Sprintf("%s:%d", c.bind, c.port)
}

// bindEnv lets HANGMAN_<FLAG> environment variables (and .env entries)
// fill in any flag not given on the command line.
func bindEnv(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "hangman",
		Short: "Host a hangman helper: a phrase revealed as symbols are tried, with clues and an export document.",
		Args:  cobra.ExactArgs(0),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindEnv(v, cmd.Flags())
			if err := cfg.validate(); err != nil {
				return err
			}
			return setupLogging(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
		Version: releaseVersion,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&cfg.store, "store", store.KindMemory, "save storage: memory or sqlite (env: HANGMAN_STORE)")
	fs.StringVar(&cfg.db, "db", "./data/hangman.db", "sqlite database path (env: HANGMAN_DB)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: trace, debug, info, warn, error (env: HANGMAN_LOG_LEVEL)")
	fs.BoolVar(&cfg.pretty, "pretty", false, "human-readable console logs instead of JSON (env: HANGMAN_PRETTY)")

	local := cmd.Flags()
	local.IntVarP(&cfg.port, "port", "p", 5175, "port to listen on (env: HANGMAN_PORT)")
	local.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: HANGMAN_BIND)")
	local.StringVar(&cfg.sessionSecret, "session-secret", "", "secret session cookies are signed with (env: HANGMAN_SESSION_SECRET)")
	local.StringVar(&cfg.clientOrigin, "client-origin", "http://localhost:5173", "origin allowed to call the API with credentials (env: HANGMAN_CLIENT_ORIGIN)")
	local.BoolVar(&cfg.secureCookies, "secure-cookies", false, "mark cookies Secure; required when served over https to another origin (env: HANGMAN_SECURE_COOKIES)")

	cmd.AddCommand(newExportCmd(cfg), newAlphabetCmd())
	cmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("hangman v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func newExportCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a session's export document",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&cfg.session, "session", "", "session id whose save to export; empty for the unscoped save (env: HANGMAN_SESSION)")
	return cmd
}

func newAlphabetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alphabet",
		Short: "Print the canonical symbol set",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printAlphabet(cmd.OutOrStdout())
		},
	}
}
