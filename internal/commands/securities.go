package commands

import (
	"github.com/spf13/cobra"

	"github.com/gncexport/gncexport/internal/report"
)

func newSecuritiesCommand() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "securities",
		Short: "Write only the security list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.only = string(report.KindSecurities)
			return runExport(cmd, opts)
		},
	}

	addConfigFlags(cmd, &opts)

	return cmd
}
