// Command consolectl runs console operations against the order-delivery API
// from a terminal, with the gateway's configuration and reconciliation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/bootstrap"
	"github.com/erp/console/internal/domain/report"
	"github.com/erp/console/internal/infrastructure/config"
	"github.com/erp/console/internal/infrastructure/logger"
	"github.com/erp/console/internal/interfaces/http/dto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command
type options struct {
	configPath string
	upstream   string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "consolectl",
		Short:         "Order console operations from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (TOML)")
	cmd.PersistentFlags().StringVar(&opts.upstream, "upstream", "", "order-delivery API base URL, overrides upstream.base_url")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		fetchCmd(opts),
		summaryCmd(opts),
		stockCmd(opts),
		exportCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "consolectl %s\n", version)
			},
		},
	)
	return cmd
}

func (o *options) services(ctx context.Context) (*bootstrap.Services, error) {
	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.upstream != "" {
		cfg.Upstream.BaseURL = o.upstream
	}

	log, err := logger.New(&logger.Config{Level: o.logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, log.With(zap.String("cmd", "consolectl")), nil)
}

// collection reads one reconciled collection
type collection func(ctx context.Context, s *bootstrap.Services) (any, int, snapshot.Meta)

func view[T any](snap snapshot.Snapshot[T]) (any, int, snapshot.Meta) {
	return snap.Records, len(snap.Records), snap.Meta
}

var collections = map[string]collection{
	"product": func(ctx context.Context, s *bootstrap.Services) (any, int, snapshot.Meta) {
		return view(s.Inventory.Products(ctx))
	},
	"supplier": func(ctx context.Context, s *bootstrap.Services) (any, int, snapshot.Meta) {
		return view(s.Suppliers.Suppliers(ctx))
	},
	"order": func(ctx context.Context, s *bootstrap.Services) (any, int, snapshot.Meta) {
		return view(s.Orders.Orders(ctx))
	},
	"payment": func(ctx context.Context, s *bootstrap.Services) (any, int, snapshot.Meta) {
		return view(s.Payments.Payments(ctx))
	},
	"delivery": func(ctx context.Context, s *bootstrap.Services) (any, int, snapshot.Meta) {
		return view(s.Deliveries.Deliveries(ctx))
	},
	"carrier": func(ctx context.Context, s *bootstrap.Services) (any, int, snapshot.Meta) {
		return view(s.Deliveries.Carriers(ctx))
	},
}

func collectionNames() []string {
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// output is what every command prints
type output struct {
	Data any       `json:"data"`
	Meta *dto.Meta `json:"meta,omitempty"`
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "fetch <kind>",
		Short:     "Print a reconciled collection and whether it is live or fallback data",
		Long:      "Kinds: " + strings.Join(collectionNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: collectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			load, ok := collections[args[0]]
			if !ok {
				return fmt.Errorf("unknown kind %q (want one of %s)", args[0], strings.Join(collectionNames(), ", "))
			}
			svc, err := opts.services(cmd.Context())
			if err != nil {
				return err
			}
			records, total, meta := load(cmd.Context(), svc)
			return printJSON(cmd, output{Data: records, Meta: dto.NewMeta(meta, total)})
		},
	}
}

// summaryOutput is the inventory and payment summary
type summaryOutput struct {
	Inventory report.InventorySummary `json:"inventory"`
	Payments  report.PaymentStats     `json:"payments"`
	Sources   map[string]string       `json:"sources"`
}

func summaryCmd(opts *options) *cobra.Command {
	var threshold int64

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the inventory summary and payment stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if threshold < 0 {
				return fmt.Errorf("threshold must not be negative")
			}
			svc, err := opts.services(cmd.Context())
			if err != nil {
				return err
			}
			inventory := svc.Inventory.Summary(cmd.Context(), threshold)
			payments := svc.Payments.Stats(cmd.Context())
			return printJSON(cmd, output{Data: summaryOutput{
				Inventory: inventory.Summary,
				Payments:  payments.Stats,
				Sources: map[string]string{
					"products": string(inventory.Meta.Source),
					"payments": string(payments.Meta.Source),
				},
			}})
		},
	}
	cmd.Flags().Int64Var(&threshold, "threshold", 0, "low stock threshold (default: inventory.low_stock_threshold)")
	return cmd
}

func stockCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stock <product-id> <quantity>",
		Short: "Set the stock of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			stock, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			svc, err := opts.services(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := svc.Inventory.UpdateStock(cmd.Context(), productID, stock)
			if err != nil {
				return err
			}
			if !resp.Persisted {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: the API did not confirm the update; the value shown is local only")
			}
			return printJSON(cmd, output{Data: resp})
		},
	}
}

func exportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <kind>",
		Short: "Export a reconciled collection as CSV to the configured storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.services(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := svc.Exports.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, output{Data: resp, Meta: dto.NewMeta(resp.Meta, resp.Rows)})
		},
	}
}
