// Package cli implements the weatherctl command line.
package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/output"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/session"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/store"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather/providers"
)

// sessionKey names the single ledger the CLI keeps between runs.
const sessionKey = "weatherctl"

var version = "dev"

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree with its own configuration.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "weatherctl",
		Short: "Current weather and a 5-day forecast in the terminal",
		Long: `weatherctl looks up current conditions and a daily forecast from
OpenWeatherMap and remembers the cities you searched.

Example usage:
  weatherctl city Paris              # Current weather and forecast for Paris
  weatherctl city "New York" -f      # Show today's temperature in Fahrenheit
  weatherctl coords 48.85 2.35       # Look up by latitude and longitude
  weatherctl recents                 # List recent searches`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
	}

	pf := root.PersistentFlags()
	pf.String("api-key", "", "OpenWeatherMap API key (env OPENWEATHER_API_KEY)")
	pf.String("base-url", providers.DefaultOpenWeatherBaseURL, "OpenWeatherMap API root")
	pf.String("redis-url", "", "keep recent searches in Redis instead of a local file")
	pf.String("data-dir", "", "directory for recent searches (default: user config dir)")
	pf.String("color", "auto", "color output: auto, always, never")
	pf.Duration("timeout", 10*time.Second, "timeout for each upstream request")
	pf.Bool("json", false, "output as JSON")

	_ = v.BindPFlag("api_key", pf.Lookup("api-key"))
	_ = v.BindPFlag("base_url", pf.Lookup("base-url"))
	_ = v.BindPFlag("redis_url", pf.Lookup("redis-url"))
	_ = v.BindPFlag("data_dir", pf.Lookup("data-dir"))
	_ = v.BindPFlag("color", pf.Lookup("color"))
	_ = v.BindPFlag("timeout", pf.Lookup("timeout"))
	_ = v.BindPFlag("json", pf.Lookup("json"))

	root.AddCommand(newCityCmd(v), newCoordsCmd(v), newRecentsCmd(v))
	return root
}

// initConfig layers flags over WEATHER_* env vars over .weatherctl.yaml.
func initConfig(v *viper.Viper) error {
	_ = godotenv.Load()

	v.SetEnvPrefix("WEATHER")
	v.AutomaticEnv()
	_ = v.BindEnv("api_key", "WEATHER_API_KEY", "OPENWEATHER_API_KEY")
	_ = v.BindEnv("redis_url", "WEATHER_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("geocoder_api_key", "WEATHER_GEOCODER_API_KEY", "GEOCODER_API_KEY")

	v.SetConfigName(".weatherctl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	return nil
}

// env is what a command needs to run a lookup.
type env struct {
	printer  *output.Printer
	service  *weather.Service
	sessions *session.Manager
	jsonOut  bool
	close    func()
}

func newEnv(cmd *cobra.Command, v *viper.Viper, days int) (*env, error) {
	mode, err := output.ParseColorMode(v.GetString("color"))
	if err != nil {
		return nil, err
	}
	printer := output.NewPrinterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors(mode))

	recents, closeStore, err := openStore(v)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: v.GetDuration("timeout")}
	owm := providers.NewOpenWeatherProvider(client, v.GetString("api_key"), v.GetString("base_url"), rate.NewLimiter(rate.Limit(5), 5))

	var namer weather.PlaceNamer
	if g := providers.NewGoogleGeocoder(v.GetString("geocoder_api_key")); g != nil {
		namer = g
	}

	return &env{
		printer:  printer,
		service:  weather.NewService(owm, namer, days),
		sessions: session.NewManager(recents, session.Options{}),
		jsonOut:  v.GetBool("json"),
		close:    closeStore,
	}, nil
}

func openStore(v *viper.Viper) (weather.RecentsStore, func(), error) {
	if url := v.GetString("redis_url"); url != "" {
		rs, err := store.NewRedisStore(url, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return rs, func() { _ = rs.Close() }, nil
	}

	dir := v.GetString("data_dir")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, nil, fmt.Errorf("no data dir: %w", err)
		}
		dir = filepath.Join(base, "weatherctl")
	}
	fs, err := store.NewFileStore(dir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}
