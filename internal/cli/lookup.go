package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/output"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/session"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

var validate = validator.New()

type lookupFlags struct {
	fahrenheit bool
	days       int
}

func (f *lookupFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.fahrenheit, "fahrenheit", "f", false, "show today's temperature in °F")
	cmd.Flags().IntVar(&f.days, "days", weather.ForecastDays, "number of forecast days")
}

func newCityCmd(v *viper.Viper) *cobra.Command {
	var flags lookupFlags
	cmd := &cobra.Command{
		Use:   "city <name>",
		Short: "Look up weather by city name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := args[0]
			return runLookup(cmd, v, flags, "Fetching weather for "+city+"...",
				func(ctx context.Context, svc *weather.Service) (weather.Report, error) {
					return svc.LookupByCity(ctx, city)
				})
		},
	}
	flags.register(cmd)
	return cmd
}

func newCoordsCmd(v *viper.Viper) *cobra.Command {
	var flags lookupFlags
	cmd := &cobra.Command{
		Use:   "coords <lat> <lon>",
		Short: "Look up weather by latitude and longitude",
		Long: `Look up weather by latitude and longitude.

Put negative values after "--" so they are not read as flags:
  weatherctl coords -- -33.87 151.21`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := parseCoords(args[0], args[1])
			if err != nil {
				return err
			}
			return runLookup(cmd, v, flags, "Fetching weather for your location...",
				func(ctx context.Context, svc *weather.Service) (weather.Report, error) {
					return svc.LookupByCoords(ctx, coord)
				})
		},
	}
	flags.register(cmd)
	return cmd
}

func newRecentsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "recents",
		Short: "List recent searches, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, v, weather.ForecastDays)
			if err != nil {
				return err
			}
			defer e.close()

			sess, err := e.sessions.Open(cmd.Context(), sessionKey)
			if err != nil {
				return err
			}
			recents := sess.Recents()
			if e.jsonOut {
				return writeJSON(cmd, map[string][]string{"recents": recents})
			}
			output.RenderRecents(e.printer, recents)
			return nil
		},
	}
}

func runLookup(cmd *cobra.Command, v *viper.Viper, flags lookupFlags, pending string,
	lookup func(context.Context, *weather.Service) (weather.Report, error)) error {
	if flags.days < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", flags.days)
	}

	e, err := newEnv(cmd, v, flags.days)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sess, err := e.sessions.Open(ctx, sessionKey)
	if err != nil {
		return err
	}

	if !e.jsonOut {
		e.printer.Info("%s", pending)
	}
	view, err := sess.Run(ctx, pending, func(ctx context.Context) (weather.Report, error) {
		return lookup(ctx, e.service)
	})
	if err != nil {
		if e.jsonOut {
			_ = writeJSON(cmd, view)
		}
		return errors.New(weather.UserMessage(err))
	}

	if flags.fahrenheit {
		if _, err := sess.Toggle(); err != nil && !errors.Is(err, session.ErrNothingDisplayed) {
			return err
		}
		view = sess.View()
	}

	if e.jsonOut {
		return writeJSON(cmd, view)
	}
	output.RenderView(e.printer, view)
	return nil
}

func parseCoords(latArg, lonArg string) (weather.Coordinates, error) {
	if err := validate.Var(latArg, "latitude"); err != nil {
		return weather.Coordinates{}, fmt.Errorf("invalid latitude %q", latArg)
	}
	if err := validate.Var(lonArg, "longitude"); err != nil {
		return weather.Coordinates{}, fmt.Errorf("invalid longitude %q", lonArg)
	}
	lat, _ := strconv.ParseFloat(latArg, 64)
	lon, _ := strconv.ParseFloat(lonArg, 64)
	return weather.Coordinates{Lat: lat, Lon: lon}, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
