package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tixmarket/internal/catalog"
	"tixmarket/internal/events"
	"tixmarket/internal/listings"
	"tixmarket/internal/settings"
	"tixmarket/pkg/clock"
	"tixmarket/pkg/randsrc"
)

type options struct {
	seed         int64
	now          string
	configPath   string
	scenario     string
	scenariosDir string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Inspect generated ticket catalogs",
		SilenceUsage: true,
	}
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 1, "random seed for catalog generation")
	root.PersistentFlags().StringVar(&opts.now, "now", "", "generation time as RFC 3339 (default: current time)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration document to apply")
	root.PersistentFlags().StringVar(&opts.scenario, "scenario", "", "scenario preset to apply")
	root.PersistentFlags().StringVar(&opts.scenariosDir, "scenarios-dir", "config/scenarios", "directory of scenario presets")

	root.AddCommand(eventsCmd(opts))
	root.AddCommand(listingsCmd(opts))
	root.AddCommand(listingCmd(opts))
	root.AddCommand(scenariosCmd(opts))
	root.AddCommand(validateCmd())
	return root
}

func eventsCmd(opts *options) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print every event, or those matching --query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := opts.build(ctx)
			if err != nil {
				return err
			}
			if query != "" {
				result, err := svc.SearchEvents(ctx, query)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			}
			result, err := svc.ListEvents(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "search title, artist, venue and category")
	return cmd
}

func listingsCmd(opts *options) *cobra.Command {
	var (
		filters            listings.Filters
		minPrice, maxPrice float64
	)
	cmd := &cobra.Command{
		Use:   "listings EVENT_ID",
		Short: "Print the listings of one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			if cmd.Flags().Changed("min-price") {
				filters.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				filters.MaxPrice = &maxPrice
			}

			ctx := cmd.Context()
			svc, err := opts.build(ctx)
			if err != nil {
				return err
			}
			result, err := svc.EventListings(ctx, eventID, filters)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "lowest price per ticket")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "highest price per ticket")
	cmd.Flags().StringVar(&filters.Section, "section", "", "section substring")
	cmd.Flags().StringVar(&filters.DeliveryMethod, "delivery", "", "exact delivery method")
	cmd.Flags().StringVar(&filters.Sort, "sort", listings.SortPriceAsc, "price_asc, price_desc, section or quantity")
	return cmd
}

func listingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "listing LISTING_ID",
		Short: "Print one listing with its event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid listing id %q", args[0])
			}
			ctx := cmd.Context()
			svc, err := opts.build(ctx)
			if err != nil {
				return err
			}
			result, err := svc.GetListing(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func scenariosCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List scenario presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := settings.NewScenarioCatalog(opts.scenariosDir).List(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range list {
				fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Description)
			}
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a configuration document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			cfg, err := settings.Replace(settings.Defaults(), data)
			if err != nil {
				return err
			}
			if err := settings.Validate(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

// build generates the catalog and applies the selected configuration.
func (o *options) build(ctx context.Context) (catalog.Service, error) {
	clk := clock.NewSystem()
	if o.now != "" {
		at, err := time.Parse(time.RFC3339, o.now)
		if err != nil {
			return nil, fmt.Errorf("invalid --now: %w", err)
		}
		clk = clock.NewFixed(at)
	}

	settingsService := settings.NewService(settings.NewMemoryStore(), settings.NewScenarioCatalog(o.scenariosDir))
	if o.scenario != "" {
		if _, err := settingsService.LoadScenario(ctx, o.scenario); err != nil {
			return nil, err
		}
	}
	if o.configPath != "" {
		data, err := os.ReadFile(o.configPath)
		if err != nil {
			return nil, err
		}
		if _, err := settingsService.Replace(ctx, data); err != nil {
			return nil, err
		}
	}

	generator := listings.NewGenerator(randsrc.New(o.seed), clk)
	listingService := listings.NewService(listings.NewRepository(), generator)
	svc := catalog.NewService(events.NewService(events.NewRepository()), listingService, settingsService, nil)
	if err := svc.Bootstrap(ctx, events.DefaultSeeds()); err != nil {
		return nil, err
	}
	return svc, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
