package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/places-cli/pkg/geodesy"
)

// distanceResult is the output of the distance command and endpoint.
type distanceResult struct {
	From     geodesy.Coordinate `json:"from" yaml:"from"`
	To       geodesy.Coordinate `json:"to" yaml:"to"`
	Distance float64            `json:"distance" yaml:"distance"`
	Unit     string             `json:"unit" yaml:"unit"`
	Midpoint geodesy.Coordinate `json:"midpoint" yaml:"midpoint"`
}

func measure(from, to geodesy.Coordinate, unit geodesy.Unit) distanceResult {
	return distanceResult{
		From:     from,
		To:       to,
		Distance: geodesy.Distance(from, to, unit),
		Unit:     unit.String(),
		Midpoint: geodesy.Midpoint(from, to),
	}
}

var distanceUnit string

var distanceCmd = &cobra.Command{
	Use:   "distance <lat,lng> <lat,lng>",
	Short: "Great-circle distance and midpoint between two coordinates",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("offline"); err != nil {
			return err
		}
		from, err := geodesy.ParseCoordinate(args[0])
		if err != nil {
			return err
		}
		to, err := geodesy.ParseCoordinate(args[1])
		if err != nil {
			return err
		}
		unit, err := geodesy.ParseUnit(distanceUnit)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, measure(from, to, unit))
	},
}

var destinationFlags struct {
	bearing float64
	km      float64
}

var destinationCmd = &cobra.Command{
	Use:   "destination <lat,lng>",
	Short: "Point reached from a coordinate along a bearing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := geodesy.ParseCoordinate(args[0])
		if err != nil {
			return err
		}
		dest := geodesy.Destination(origin, destinationFlags.bearing, destinationFlags.km)
		return writeOutput(cmd.OutOrStdout(), outputFormat, &dest)
	},
}

func init() {
	distanceCmd.Flags().StringVar(&distanceUnit, "unit", "km", "km, mi, nmi or m")

	destinationCmd.Flags().Float64Var(&destinationFlags.bearing, "bearing", 0, "bearing in degrees clockwise from north")
	destinationCmd.Flags().Float64Var(&destinationFlags.km, "km", 0, "distance in kilometers")

	rootCmd.AddCommand(distanceCmd, destinationCmd)
}
