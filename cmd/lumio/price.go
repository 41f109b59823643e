package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-lumio/internal/prompt"
	"github.com/goliatone/go-lumio/pkg/pricing"
)

type quoteView struct {
	Package       string `json:"package"`
	Users         int    `json:"users"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount,omitempty"`
	Display       string `json:"display"`
	VariantID     string `json:"variantId,omitempty"`
	UsingFallback bool   `json:"usingFallback"`
}

func newQuoteView(quote pricing.Quote) quoteView {
	view := quoteView{
		Package:       quote.Package.ID,
		Users:         quote.Users,
		Kind:          string(quote.Result.Kind),
		Display:       "contact us for a custom quote",
		UsingFallback: quote.UsingFallback,
	}
	if quote.Result.Kind == pricing.ResultAmount {
		view.Amount = quote.Result.Amount.String()
		view.Display = quote.Result.Amount.Display()
	}
	if quote.Variant != nil {
		view.VariantID = quote.Variant.ID
	}
	return view
}

type priceFlags struct {
	users       int
	catalog     string
	asJSON      bool
	list        bool
	interactive bool
}

func newPriceCmd(global *globalFlags) *cobra.Command {
	flags := &priceFlags{}
	cmd := &cobra.Command{
		Use:   "price [package]",
		Short: "Quote a signature package for a number of users",
		Long: `Quotes a package against the configured catalog. When the catalog cannot
be loaded the built-in fallback catalog is used and the output says so.

Examples:
  lumio price premium --users 12
  lumio price --list --catalog https://shop.example.com/products.json
  lumio price --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrice(cmd, global, flags, args, prompt.NewSurveyDriver())
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.users, "users", "u", 1, "number of users")
	f.StringVar(&flags.catalog, "catalog", "", "catalog file or URL (overrides configuration)")
	f.BoolVar(&flags.asJSON, "json", false, "print the quote as JSON")
	f.BoolVar(&flags.list, "list", false, "list packages instead of quoting")
	f.BoolVar(&flags.interactive, "interactive", false, "prompt for package and users")
	return cmd
}

func runPrice(cmd *cobra.Command, global *globalFlags, flags *priceFlags, args []string, driver prompt.Driver) error {
	cfg, err := global.load()
	if err != nil {
		return err
	}
	if flags.catalog != "" {
		cfg.Catalog.Source = flags.catalog
	}

	d, err := deps(cmd, cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	calc := d.Catalog.Resolve(ctx).Calculator(d.Pricing...)

	out := cmd.OutOrStdout()
	if flags.list {
		for _, pkg := range calc.Packages() {
			fmt.Fprintf(out, "%-12s %-12s %s\n", pkg.ID, pkg.BasePrice.Display(), pkg.Name)
		}
		return nil
	}

	packageID := ""
	if len(args) > 0 {
		packageID = strings.TrimSpace(args[0])
	}
	users := flags.users
	if flags.interactive {
		if packageID, users, err = prompt.NewQuoteWizard(driver).Collect(ctx, calc); err != nil {
			return err
		}
	}

	quote, err := calc.Quote(packageID, users)
	if err != nil {
		return err
	}

	if flags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(newQuoteView(quote))
	}

	view := newQuoteView(quote)
	fmt.Fprintf(out, "%s for %d users: %s\n", quote.Package.Name, quote.Users, view.Display)
	if quote.UsingFallback {
		fmt.Fprintln(cmd.ErrOrStderr(), "note: live catalog unavailable, using fallback prices")
	}
	return nil
}
