package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dklassen/beanmorph"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the registered mapping strategies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := beanmorph.NewPersonRegistry()
		if err != nil {
			return err
		}
		for _, s := range reg.Strategies() {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}
