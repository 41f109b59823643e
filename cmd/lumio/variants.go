package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/renderers/email"
)

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List signature template variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VARIANT\tLAYOUT\tDISCLAIMER\tDESCRIPTION")
			for _, id := range model.AllTemplateIDs() {
				layout, ok := email.LayoutFor(id)
				if !ok {
					continue
				}
				disclaimer := "no"
				if layout.Disclaimer {
					disclaimer = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, layout.Name, disclaimer, layout.Description)
			}
			return w.Flush()
		},
	}
}
