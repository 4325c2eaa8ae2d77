package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind        string
	maxPlayers  int
	maxRounds   int
	port        int
	prefix      string
	profile     bool
	roomTimeout time.Duration
	roundDelay  time.Duration
	tlsCert     string
	tlsKey      string
	verbose     bool
	version     bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.maxPlayers < 2 {
		return fmt.Errorf("invalid max-players (must be at least 2): %d", c.maxPlayers)
	}
	if c.maxRounds < 1 {
		return fmt.Errorf("invalid max-rounds (must be at least 1): %d", c.maxRounds)
	}
	if c.roundDelay <= 0 {
		return fmt.Errorf("invalid round-delay (must be positive): %s", c.roundDelay)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("EMOJIPARTY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "emojiparty",
		Short:         "A real-time multiplayer emoji puzzle guessing game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			if cfg.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: EMOJIPARTY_BIND)")
	fs.IntVar(&cfg.maxPlayers, "max-players", 15, "maximum players per room (env: EMOJIPARTY_MAX_PLAYERS)")
	fs.IntVar(&cfg.maxRounds, "max-rounds", 10, "rounds per game (env: EMOJIPARTY_MAX_ROUNDS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: EMOJIPARTY_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: EMOJIPARTY_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: EMOJIPARTY_PROFILE)")
	fs.DurationVar(&cfg.roomTimeout, "room-timeout", 60*time.Minute, "time before idle rooms are ended (env: EMOJIPARTY_ROOM_TIMEOUT)")
	fs.DurationVar(&cfg.roundDelay, "round-delay", 3*time.Second, "pause between a correct guess and the next round (env: EMOJIPARTY_ROUND_DELAY)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: EMOJIPARTY_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: EMOJIPARTY_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: EMOJIPARTY_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: EMOJIPARTY_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("emojiparty v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
