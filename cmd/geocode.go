package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/places-cli/pkg/geodesy"
)

var geocodeFlags struct {
	placeID   string
	northeast string
	southwest string
	coordOnly bool
}

var geocodeCmd = &cobra.Command{
	Use:   "geocode [address]",
	Short: "Geocode an address or place id",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initClient(ctx, cfg, "query")
		if err != nil {
			return err
		}
		defer env.Close()

		address := strings.Join(args, " ")
		out := cmd.OutOrStdout()

		switch {
		case geocodeFlags.placeID != "":
			resp, err := env.Client.GeocodePlaceID(ctx, geocodeFlags.placeID)
			if err != nil {
				return err
			}
			return writeOutput(out, outputFormat, resp)
		case geocodeFlags.coordOnly:
			at, err := env.Client.CoordinatesFromAddress(ctx, address)
			if err != nil {
				return err
			}
			return writeOutput(out, outputFormat, at)
		case geocodeFlags.northeast != "" || geocodeFlags.southwest != "":
			ne, err := geodesy.ParseCoordinate(geocodeFlags.northeast)
			if err != nil {
				return err
			}
			sw, err := geodesy.ParseCoordinate(geocodeFlags.southwest)
			if err != nil {
				return err
			}
			resp, err := env.Client.SearchAddressInBounds(ctx, address, geodesy.Viewport{Northeast: ne, Southwest: sw})
			if err != nil {
				return err
			}
			return writeOutput(out, outputFormat, resp)
		default:
			resp, err := env.Client.SearchAddress(ctx, address)
			if err != nil {
				return err
			}
			return writeOutput(out, outputFormat, resp)
		}
	},
}

var reverseAt string

var reverseCmd = &cobra.Command{
	Use:   "reverse",
	Short: "Reverse geocode a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := geodesy.ParseCoordinate(reverseAt)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		env, err := initClient(ctx, cfg, "query")
		if err != nil {
			return err
		}
		defer env.Close()

		resp, err := env.Client.ReverseGeocode(ctx, at)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, resp)
	},
}

var cityAt string

var cityCmd = &cobra.Command{
	Use:   "city",
	Short: "City, state and country at a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := geodesy.ParseCoordinate(cityAt)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		env, err := initClient(ctx, cfg, "query")
		if err != nil {
			return err
		}
		defer env.Close()

		loc, err := env.Client.CityFromCoordinates(ctx, at)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, loc)
	},
}

func init() {
	f := geocodeCmd.Flags()
	f.StringVar(&geocodeFlags.placeID, "place-id", "", "geocode a place id instead of an address")
	f.StringVar(&geocodeFlags.northeast, "ne", "", "bounds northeast corner as lat,lng")
	f.StringVar(&geocodeFlags.southwest, "sw", "", "bounds southwest corner as lat,lng")
	f.BoolVar(&geocodeFlags.coordOnly, "coords", false, "print only the first result's coordinate")

	reverseCmd.Flags().StringVar(&reverseAt, "at", "", "coordinate as lat,lng")
	cityCmd.Flags().StringVar(&cityAt, "at", "", "coordinate as lat,lng")

	rootCmd.AddCommand(geocodeCmd, reverseCmd, cityCmd)
}
