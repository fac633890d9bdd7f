package app

import "github.com/spf13/cobra"

// NewRootCmd returns the connurl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "connurl",
		Short:         "Build driver connection URLs and check configured backends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newBuildCmd())
	root.AddCommand(newCheckCmd())

	return root
}
