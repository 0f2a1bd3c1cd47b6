package main

import (
	"errors"

	"github.com/spf13/cobra"

	"legislativelens/internal/congress"
	"legislativelens/internal/core"
	"legislativelens/internal/fixture"
)

var errNoAPIKey = errors.New("LENS_CONGRESS_API_KEY is not set")

func remoteCmd(a *app) *cobra.Command {
	var (
		req congress.PageRequest
		raw bool
	)
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Fetch one page of records from the Congress.gov API",
		Long: `Remote fetches a page from the configured Congress.gov endpoint and runs
it through the same validation as local fixtures. Records are printed in
catalog form unless --raw is given.`,
	}
	cmd.PersistentFlags().IntVar(&req.Congress, "congress", 0, "congress number (0 lists across congresses)")
	cmd.PersistentFlags().IntVar(&req.Offset, "offset", 0, "page offset")
	cmd.PersistentFlags().IntVar(&req.Limit, "limit", congress.DefaultLimit, "page size")
	cmd.PersistentFlags().BoolVar(&raw, "raw", false, "print records as returned by the API")

	client := func() (*congress.Client, error) {
		cfg := a.cfg.Congress.Client()
		if cfg.APIKey == "" {
			return nil, errNoAPIKey
		}
		return congress.NewClient(cfg, congress.WithLogger(a.logger)), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "bills",
		Short: "Fetch bills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			page, err := c.Bills(cmd.Context(), req)
			if err != nil {
				return err
			}
			if raw {
				return a.printPage(page.Pagination, page.Items, page.Quarantined)
			}
			return a.printPage(page.Pagination, transformAll(page.Items, core.TransformBill), page.Quarantined)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "members",
		Short: "Fetch members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			page, err := c.Members(cmd.Context(), req)
			if err != nil {
				return err
			}
			if raw {
				return a.printPage(page.Pagination, page.Items, page.Quarantined)
			}
			return a.printPage(page.Pagination, transformAll(page.Items, core.TransformMember), page.Quarantined)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "committees",
		Short: "Fetch committees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			page, err := c.Committees(cmd.Context(), req)
			if err != nil {
				return err
			}
			if raw {
				return a.printPage(page.Pagination, page.Items, page.Quarantined)
			}
			return a.printPage(page.Pagination, transformAll(page.Items, core.TransformCommittee), page.Quarantined)
		},
	})
	return cmd
}

func transformAll[R any, T any](items []R, transform func(R) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, transform(item))
	}
	return out
}

func (a *app) printPage(p congress.Pagination, items any, quarantined []fixture.Quarantined) error {
	if quarantined == nil {
		quarantined = []fixture.Quarantined{}
	}
	return a.print(map[string]any{
		"pagination":  p,
		"items":       items,
		"quarantined": quarantined,
	})
}
