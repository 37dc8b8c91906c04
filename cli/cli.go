package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"tourscout/config"
	"tourscout/storage"
)

const divider = "-------------------------------------------"

// CLI is the interactive state -> site -> sort-key prompt loop. "exit" quits
// from any level, "back" returns to the previous one, and invalid input
// re-prompts.
type CLI struct {
	cfg   *config.Config
	store storage.Store
	in    *bufio.Scanner
	out   io.Writer
}

func New(cfg *config.Config, store storage.Store, in io.Reader, out io.Writer) *CLI {
	return &CLI{cfg: cfg, store: store, in: bufio.NewScanner(in), out: out}
}

func (c *CLI) Run(ctx context.Context) error {
	for {
		input, ok := c.prompt("Please select a state from the supported tourism states\n(%s)\nor \"exit\"\n: ", c.stateList())
		if !ok || input == "exit" {
			return nil
		}

		state := c.cfg.State(input)
		if state == nil {
			fmt.Fprintln(c.out, "[Error] Please choose one of the supported states")
			continue
		}

		quit, err := c.siteLoop(ctx, state)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// siteLoop prompts for a 1-based site index within a state. Returns true when
// the user asked to exit entirely.
func (c *CLI) siteLoop(ctx context.Context, state *config.StateConfig) (bool, error) {
	sites, err := c.store.SitesByState(ctx, state.ID)
	if err != nil {
		return false, fmt.Errorf("list sites for %s: %w", state.ID, err)
	}
	if len(sites) == 0 {
		fmt.Fprintf(c.out, "No attraction data loaded for %s yet. Run with -scrape first.\n", state.Name)
		return false, nil
	}

	fmt.Fprintln(c.out, divider)
	fmt.Fprintf(c.out, "List of Top Attractions in %s\n", state.Name)
	fmt.Fprintln(c.out, divider)
	for i, site := range sites {
		fmt.Fprintf(c.out, "[%d] %s, %s\n", i+1, site.Name, site.RegionZip)
	}

	for {
		input, ok := c.prompt("Choose a number to search for nearby restaurants or \"exit\" or \"back\"\n: ")
		if !ok || input == "exit" {
			return true, nil
		}
		if input == "back" {
			return false, nil
		}

		index, err := strconv.Atoi(input)
		if err != nil || index < 1 || index > len(sites) {
			fmt.Fprintln(c.out, "[Error] Invalid Input")
			fmt.Fprintln(c.out, divider)
			continue
		}

		site := sites[index-1]
		fmt.Fprintf(c.out, "Great! You have chosen %q as your destination.\n", site.Name)

		quit, err := c.sortLoop(ctx, site.Name)
		if err != nil {
			return false, err
		}
		if quit {
			return true, nil
		}
	}
}

func (c *CLI) sortLoop(ctx context.Context, siteName string) (bool, error) {
	fmt.Fprintln(c.out, "Now please choose how the data would be presented.")
	fmt.Fprintf(c.out, "Choose from (%s)\n", strings.Join(storage.SortKeys(), ", "))

	for {
		input, ok := c.prompt("Type in your request (example: byReviewCount) or \"exit\" or \"back\"\n: ")
		if !ok || input == "exit" {
			return true, nil
		}
		if input == "back" {
			return false, nil
		}

		result, err := c.store.Query(ctx, input, "", siteName)
		if err != nil {
			return false, fmt.Errorf("query %q for %q: %w", input, siteName, err)
		}
		if result == nil {
			fmt.Fprintln(c.out, "Sorry, no data found for your search.")
			continue
		}
		c.renderTable(result)
	}
}

func (c *CLI) renderTable(result *storage.Result) {
	if len(result.Rows) == 0 {
		fmt.Fprintln(c.out, "No restaurants recorded for this attraction.")
		return
	}

	w := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(result.Columns, "\t"))
	for _, row := range result.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func (c *CLI) stateList() string {
	ids := make([]string, 0, len(c.cfg.States))
	for _, s := range c.cfg.States {
		ids = append(ids, s.ID)
	}
	return strings.Join(ids, ", ")
}

// prompt prints the message and reads one trimmed, lowercased line; ok is
// false on EOF.
func (c *CLI) prompt(format string, args ...interface{}) (string, bool) {
	fmt.Fprintf(c.out, format, args...)
	if !c.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(c.in.Text())), true
}
