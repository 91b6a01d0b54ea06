package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/engine"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

type listOptions struct {
	tab   string
	sort  string
	limit int
	json  bool
}

func (c *CLI) listCommand() *cobra.Command {
	opts := listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a tab's catalog without the interactive browser",
		Example: `  marketplace list --tab themes --limit 20
  marketplace list --tab extensions --sort recent --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.tab, "tab", "t", string(domain.TabExtensions), "tab to list (extensions, themes, snippets, installed)")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "sort order: top, recent or best (default: saved preference)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", engine.DefaultQuantity, "maximum entries to print")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print one JSON object per line")

	return cmd
}

func (c *CLI) runList(ctx context.Context, w io.Writer, opts listOptions) error {
	tab, ok := parseTab(opts.tab)
	if !ok {
		return fmt.Errorf("unknown tab %q", opts.tab)
	}
	if opts.limit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	svc, err := c.loadServices(ctx)
	if err != nil {
		return err
	}
	defer logger.Close()

	sort := svc.repo.GetSortBy()
	if opts.sort != "" {
		if sort, ok = domain.ParseSortOrder(opts.sort); !ok {
			return fmt.Errorf("unknown sort order %q", opts.sort)
		}
	}

	p := &printer{w: w, limit: opts.limit, json: opts.json}
	coord := svc.coordinator(ctx, p)
	defer coord.Close()

	c.Logger.Info("loading catalog", "tab", tab, "sort", sort, "limit", opts.limit)
	if _, err := coord.StartNewQueue(tab, sort, opts.limit); err != nil {
		return err
	}
	coord.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if p.err != nil {
		return p.err
	}
	c.Logger.Info("done", "printed", p.printed, "end_of_list", p.ended)
	return nil
}

func parseTab(name string) (domain.Tab, bool) {
	for _, tab := range domain.AllTabs {
		if strings.EqualFold(string(tab), name) {
			return tab, true
		}
	}
	return "", false
}

// printer streams accepted entries as the coordinator publishes them.
type printer struct {
	w     io.Writer
	limit int
	json  bool

	printed int
	ended   bool
	err     error
}

func (p *printer) OnCatalogReset(domain.Tab) {
	p.printed = 0
	p.ended = false
}

func (p *printer) OnEntryAccepted(entry domain.CatalogEntry) {
	if p.printed >= p.limit || p.err != nil {
		return
	}
	p.printed++

	if p.json {
		data, err := json.Marshal(entry)
		if err != nil {
			p.err = err
			return
		}
		_, p.err = fmt.Fprintln(p.w, string(data))
		return
	}
	_, p.err = fmt.Fprintln(p.w, formatEntry(entry))
}

func (p *printer) OnLoadStateChanged(bool) {}

func (p *printer) OnEndOfList() {
	p.ended = true
}

func formatEntry(e domain.CatalogEntry) string {
	var b strings.Builder
	b.WriteString(e.Title)
	if len(e.Authors) > 0 {
		fmt.Fprintf(&b, " by %s", e.Authors[0].Name)
	}
	if url := e.Repository.URL(); url != "" && e.Kind != domain.KindSnippet {
		fmt.Fprintf(&b, "  %s  ★%d", url, e.Stars)
	}
	return b.String()
}
