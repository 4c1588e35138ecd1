package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/places-cli/pkg/geodesy"
	"github.com/sells-group/places-cli/pkg/google"
)

// parseOptionalCoordinate parses s unless it is empty.
func parseOptionalCoordinate(s string) (*geodesy.Coordinate, error) {
	if s == "" {
		return nil, nil
	}
	c, err := geodesy.ParseCoordinate(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var searchFlags struct {
	near      string
	radius    int
	region    string
	placeType string
	language  string
	pageToken string
	pages     int
	addresses bool
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Text search for businesses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initClient(ctx, cfg, "query")
		if err != nil {
			return err
		}
		defer env.Close()

		near, err := parseOptionalCoordinate(searchFlags.near)
		if err != nil {
			return err
		}

		q := google.BusinessQuery{
			Query:     strings.Join(args, " "),
			Location:  near,
			Radius:    searchFlags.radius,
			Region:    searchFlags.region,
			Language:  searchFlags.language,
			Type:      google.PlaceType(searchFlags.placeType),
			PageToken: searchFlags.pageToken,
		}

		var resp *google.Response[google.Place]
		if searchFlags.addresses {
			resp, err = env.Client.FindBusinessAddresses(ctx, q)
		} else {
			resp, err = env.Client.FindBusiness(ctx, q)
		}
		if err != nil {
			return err
		}

		if searchFlags.pages > 1 {
			places, err := env.Client.CollectPages(ctx, resp, searchFlags.pages)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outputFormat, places)
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, resp)
	},
}

var nearbyFlags struct {
	at           string
	radius       int
	placeType    string
	keyword      string
	name         string
	rankBy       string
	language     string
	pageToken    string
	pages        int
	addresses    bool
	firstAddress bool
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Search places around a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initClient(ctx, cfg, "query")
		if err != nil {
			return err
		}
		defer env.Close()

		if nearbyFlags.pageToken != "" {
			resp, err := env.Client.NextNearbyPage(ctx, google.PageToken{
				Family: google.FamilyNearby,
				Value:  nearbyFlags.pageToken,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outputFormat, resp)
		}

		at, err := geodesy.ParseCoordinate(nearbyFlags.at)
		if err != nil {
			return err
		}

		q := google.NearbyQuery{
			Location: at,
			Radius:   nearbyFlags.radius,
			Language: nearbyFlags.language,
			Type:     google.PlaceType(nearbyFlags.placeType),
			Keyword:  nearbyFlags.keyword,
			RankBy:   google.RankBy(nearbyFlags.rankBy),
		}
		if nearbyFlags.name != "" {
			q.Extra = map[string][]string{"name": {nearbyFlags.name}}
		}

		var resp *google.Response[google.Place]
		switch {
		case nearbyFlags.firstAddress:
			resp, err = env.Client.SearchNearbyAddress(ctx, q)
		case nearbyFlags.addresses:
			resp, err = env.Client.SearchNearbyAddresses(ctx, q)
		default:
			resp, err = env.Client.SearchNearby(ctx, q)
		}
		if err != nil {
			return err
		}

		if nearbyFlags.pages > 1 {
			places, err := env.Client.CollectPages(ctx, resp, nearbyFlags.pages)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outputFormat, places)
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, resp)
	},
}

var findFields []string

var findCmd = &cobra.Command{
	Use:   "find <input>",
	Short: "Find a place from free text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initClient(ctx, cfg, "query")
		if err != nil {
			return err
		}
		defer env.Close()

		resp, err := env.Client.FindPlaces(ctx, strings.Join(args, " "), findFields)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, resp)
	},
}

var detailsFlags struct {
	fields   []string
	session  string
	language string
}

var detailsCmd = &cobra.Command{
	Use:   "details <place_id>",
	Short: "Fetch details for a place id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initClient(ctx, cfg, "query")
		if err != nil {
			return err
		}
		defer env.Close()

		resp, err := env.Client.PlaceDetails(ctx, args[0], google.DetailsOptions{
			Fields:       detailsFlags.fields,
			SessionToken: detailsFlags.session,
			Language:     detailsFlags.language,
		})
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, resp)
	},
}

var exactFlags struct {
	at      string
	address string
}

var exactCmd = &cobra.Command{
	Use:   "exact",
	Short: "Find the place at a coordinate or address",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (exactFlags.at == "") == (exactFlags.address == "") {
			return eris.New("exact: set exactly one of --at or --address")
		}

		ctx := cmd.Context()
		env, err := initClient(ctx, cfg, "query")
		if err != nil {
			return err
		}
		defer env.Close()

		var place *google.Place
		if exactFlags.address != "" {
			place, err = env.Client.ExactPlaceByAddress(ctx, exactFlags.address)
		} else {
			at, perr := geodesy.ParseCoordinate(exactFlags.at)
			if perr != nil {
				return perr
			}
			place, err = env.Client.ExactPlaceByLocation(ctx, at)
		}
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, place)
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.near, "near", "", "bias results toward lat,lng")
	f.IntVar(&searchFlags.radius, "radius", 0, "bias radius in meters (default 50000)")
	f.StringVar(&searchFlags.region, "region", "", "ccTLD region code")
	f.StringVar(&searchFlags.placeType, "type", "", "restrict to a place type")
	f.StringVar(&searchFlags.language, "language", "", "result language")
	f.StringVar(&searchFlags.pageToken, "page-token", "", "continue an earlier search")
	f.IntVar(&searchFlags.pages, "pages", 1, "follow page tokens up to this many pages")
	f.BoolVar(&searchFlags.addresses, "addresses", false, "attach geocoded addresses to each result")

	f = nearbyCmd.Flags()
	f.StringVar(&nearbyFlags.at, "at", "", "search center as lat,lng")
	f.IntVar(&nearbyFlags.radius, "radius", 0, "radius in meters")
	f.StringVar(&nearbyFlags.placeType, "type", "", "restrict to a place type")
	f.StringVar(&nearbyFlags.keyword, "keyword", "", "keyword filter")
	f.StringVar(&nearbyFlags.name, "name", "", "name filter")
	f.StringVar(&nearbyFlags.rankBy, "rankby", "", "prominence or distance")
	f.StringVar(&nearbyFlags.language, "language", "", "result language")
	f.StringVar(&nearbyFlags.pageToken, "page-token", "", "continue an earlier nearby search")
	f.IntVar(&nearbyFlags.pages, "pages", 1, "follow page tokens up to this many pages")
	f.BoolVar(&nearbyFlags.addresses, "addresses", false, "attach every address geocoded from each place id")
	f.BoolVar(&nearbyFlags.firstAddress, "first-address", false, "attach only the first geocoded address")

	findCmd.Flags().StringSliceVar(&findFields, "fields", nil, "fields to return")

	f = detailsCmd.Flags()
	f.StringSliceVar(&detailsFlags.fields, "fields", nil, "fields to return (default: all basic, contact and atmosphere fields)")
	f.StringVar(&detailsFlags.session, "session", "", "autocomplete session token")
	f.StringVar(&detailsFlags.language, "language", "", "result language")

	exactCmd.Flags().StringVar(&exactFlags.at, "at", "", "coordinate as lat,lng")
	exactCmd.Flags().StringVar(&exactFlags.address, "address", "", "street address")

	rootCmd.AddCommand(searchCmd, nearbyCmd, findCmd, detailsCmd, exactCmd)
}
