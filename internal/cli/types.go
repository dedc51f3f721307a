package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fenceworks/fencecalc/internal/config"
)

// newTypesCmd creates the types command, which lists the fence catalog:
// every fence type, its offered heights, panel width, and rail stock.
func newTypesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List available fence types and their specifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(cfg.Specs))
			for name := range cfg.Specs {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				spec := cfg.Specs[name]

				heights := make([]string, len(spec.Heights))
				for i, h := range spec.Heights {
					heights[i] = fmt.Sprintf("%g", h)
				}

				fmt.Fprintf(os.Stdout, "%s\n", name)
				fmt.Fprintf(os.Stdout, "  heights (ft):    %s\n", strings.Join(heights, ", "))
				if spec.RollStock {
					fmt.Fprintf(os.Stdout, "  material:        roll stock, posts every %g ft\n", spec.MaxPanelWidth)
				} else {
					fmt.Fprintf(os.Stdout, "  material:        panels up to %g ft, %d rails per panel\n", spec.MaxPanelWidth, spec.RailsPerPanel)
				}
				if len(spec.Stock) > 0 {
					lengths := make([]string, len(spec.Stock))
					for i, s := range spec.Stock {
						lengths[i] = fmt.Sprintf("%g", s.Length)
					}
					fmt.Fprintf(os.Stdout, "  stock (ft):      %s\n", strings.Join(lengths, ", "))
				}
				fmt.Fprintf(os.Stdout, "  single gate max: %g ft\n", spec.GateSingleMax)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "fence catalog config file (TOML)")
	return cmd
}
