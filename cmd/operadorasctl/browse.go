package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"operadoras/internal/app"
	"operadoras/internal/domain"
	"operadoras/internal/store"
)

const browseHelp = `commands:
  next | prev          move one page
  page N               jump to page N
  limit N              set the page size
  search TEXT          filter by name or CNPJ, back to page 1
  clear                drop the search filter
  show ID              show one operator and its expenses
  list                 reload the current page
  help                 print this help
  quit                 leave`

func newBrowseCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through operators interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			serveDone := startObservability(ctx, session, opts.io.err)

			b := &browser{
				store:  session.Store(),
				out:    opts.io.out,
				format: opts.output,
			}
			err = b.run(ctx, opts.io.in)

			cancel()
			if serveDone != nil {
				if serveErr := <-serveDone; serveErr != nil {
					session.Logger().Warn("observability server stopped", zap.Error(serveErr))
				}
			}
			return err
		},
	}
}

func startObservability(ctx context.Context, session *app.Session, errOut io.Writer) <-chan error {
	if !session.ObservabilityEnabled() {
		return nil
	}
	done := make(chan error, 1)
	go func() {
		done <- session.ServeObservability(ctx, func(addr string) {
			fmt.Fprintf(errOut, "metrics on http://%s/metrics\n", addr)
		})
	}()
	return done
}

type browser struct {
	store  *store.OperatorStore
	out    io.Writer
	format string
}

func (b *browser) run(ctx context.Context, in io.Reader) error {
	b.list(ctx)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(b.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		if quit := b.handle(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// handle executes one browse command and reports whether the session ends.
func (b *browser) handle(ctx context.Context, line string) bool {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case "":
		return false
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(b.out, browseHelp)
	case "list":
		b.list(ctx)
	case "next", "n":
		snapshot := b.store.Snapshot()
		if snapshot.Query.Page >= snapshot.TotalPages {
			fmt.Fprintln(b.out, "already on the last page")
			return false
		}
		b.store.SetPage(snapshot.Query.Page + 1)
		b.list(ctx)
	case "prev", "p":
		query := b.store.Query()
		if query.Page <= domain.DefaultPage {
			fmt.Fprintln(b.out, "already on the first page")
			return false
		}
		b.store.SetPage(query.Page - 1)
		b.list(ctx)
	case "page":
		page, ok := b.intArg("page", arg, 1)
		if !ok {
			return false
		}
		b.store.SetPage(page)
		b.list(ctx)
	case "limit":
		limit, ok := b.intArg("limit", arg, 0)
		if !ok {
			return false
		}
		b.store.SetPageSize(limit)
		b.store.SetPage(domain.DefaultPage)
		b.list(ctx)
	case "search":
		if arg == "" {
			fmt.Fprintln(b.out, "usage: search TEXT")
			return false
		}
		b.store.SetSearchText(arg)
		b.store.SetPage(domain.DefaultPage)
		b.list(ctx)
	case "clear":
		b.store.SetSearchText("")
		b.store.SetPage(domain.DefaultPage)
		b.list(ctx)
	case "show":
		if arg == "" {
			fmt.Fprintln(b.out, "usage: show ID")
			return false
		}
		b.show(ctx, arg)
	default:
		fmt.Fprintf(b.out, "unknown command %q, type help\n", command)
	}
	return false
}

func (b *browser) intArg(name, arg string, minValue int) (int, bool) {
	value, err := strconv.Atoi(arg)
	if err != nil || value < minValue {
		fmt.Fprintf(b.out, "usage: %s N (N >= %d)\n", name, minValue)
		return 0, false
	}
	return value, true
}

func (b *browser) list(ctx context.Context) {
	b.store.ListOperators(ctx)
	snapshot := b.store.Snapshot()
	if snapshot.ListStatus.Failed() {
		fmt.Fprintf(b.out, "error: %s\n", formatStatusLine(snapshot.ListStatus))
		return
	}
	if err := printList(b.out, snapshot, b.format); err != nil {
		fmt.Fprintf(b.out, "error: %v\n", err)
	}
}

func (b *browser) show(ctx context.Context, id string) {
	b.store.LoadOperatorDetail(ctx, id)
	snapshot := b.store.Snapshot()
	if snapshot.DetailStatus.Failed() {
		fmt.Fprintf(b.out, "error: %s\n", formatStatusLine(snapshot.DetailStatus))
		return
	}
	if err := printDetail(b.out, snapshot, b.format); err != nil {
		fmt.Fprintf(b.out, "error: %v\n", err)
	}
}
