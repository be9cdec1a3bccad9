package main

import (
	"github.com/spf13/cobra"
)

func newShowCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <registration>",
		Short: "Show one operator and its expense history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer session.Close()

			st := session.Store()
			st.LoadOperatorDetail(cmd.Context(), args[0])

			snapshot := st.Snapshot()
			if snapshot.DetailStatus.Failed() {
				return statusError(snapshot.DetailStatus)
			}
			return printDetail(opts.io.out, snapshot, opts.output)
		},
	}
	return cmd
}
