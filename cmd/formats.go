package cmd

import (
	"fmt"

	"scene-manager/core/registry"
	"scene-manager/format"

	"github.com/spf13/cobra"
)

// formatsCmd represents the formats command
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported file formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := registry.New()
		if err := format.RegisterBuiltins(reg); err != nil {
			return err
		}

		fmt.Println("\n--- Supported Formats ---")
		for _, cat := range reg.Categories() {
			tags := make([]string, 0)
			for _, tag := range reg.Tags(cat) {
				tags = append(tags, string(tag))
			}
			fmt.Printf("%-10s%v\n", cat.String()+":", tags)
		}
		fmt.Println("-------------------------")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(formatsCmd)
}
