package main

import (
	"github.com/spf13/cobra"

	"operadoras/internal/domain"
)

type listArgs struct {
	page   int
	limit  int
	search string
}

func newListCmd(opts *cliOptions) *cobra.Command {
	args := &listArgs{page: domain.DefaultPage}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operators, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer session.Close()

			st := session.Store()
			query := st.Query()
			query.Page = args.page
			query.SearchText = args.search
			if cmd.Flags().Changed("limit") {
				query.PageSize = args.limit
			}
			st.SetQuery(query)

			st.ListOperators(cmd.Context())

			snapshot := st.Snapshot()
			if snapshot.ListStatus.Failed() {
				return statusError(snapshot.ListStatus)
			}
			return printList(opts.io.out, snapshot, opts.output)
		},
	}
	cmd.Flags().IntVar(&args.page, "page", args.page, "page number (1-based)")
	cmd.Flags().IntVar(&args.limit, "limit", 0, "items per page; when unset, list.pageSize from config is used")
	cmd.Flags().StringVar(&args.search, "search", "", "filter by company name or CNPJ")
	return cmd
}

func statusError(status domain.RequestStatus) error {
	return exitError{code: exitOperationFailed, message: formatStatusLine(status)}
}
