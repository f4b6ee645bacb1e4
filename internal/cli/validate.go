package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newValidateCmd(st *state) *cobra.Command {
	var dump, showConfig bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the portfolio document and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if showConfig {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(st.cfg); err != nil {
					return fmt.Errorf("encode config: %w", err)
				}
				if err := enc.Close(); err != nil {
					return err
				}
			}

			p, err := st.portfolio()
			if err != nil {
				return err
			}
			if dump {
				dumpConfig.Fdump(out, p)
			}
			source := st.cfg.Content
			if source == "" {
				source = "built-in"
			}
			_, err = fmt.Fprintf(out, "%s: ok (%d skills, %d experience, %d projects, %d education, %d certifications, %d volunteering)\n",
				source, len(p.Skills), len(p.Experience), len(p.Projects),
				len(p.Education), len(p.Certifications), len(p.Volunteering))
			return err
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the decoded portfolio")
	cmd.Flags().BoolVar(&showConfig, "show-config", false, "print the resolved configuration as YAML")
	return cmd
}
