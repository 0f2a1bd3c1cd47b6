package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"legislativelens/internal/blob"
	"legislativelens/internal/core"
	"legislativelens/internal/fixture"
	"legislativelens/pkg/domain"
)

var errQuarantined = errors.New("fixtures contain quarantined records")

func validateCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load fixtures and report quarantined records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := blob.Open(ctx, a.cfg.Fixtures.Blob())
			if err != nil {
				return fmt.Errorf("open fixtures: %w", err)
			}
			loader := fixture.NewLoader(store, a.cfg.Fixtures.Prefix)
			set, err := loader.Load(ctx)
			if err != nil {
				return err
			}
			files, err := loader.Inventory(ctx)
			if err != nil {
				return err
			}
			quarantined := set.Quarantined
			if quarantined == nil {
				quarantined = []fixture.Quarantined{}
			}
			if err := a.print(map[string]any{
				"source":      set.Source,
				"files":       files,
				"bills":       len(set.Bills),
				"members":     len(set.Members),
				"committees":  len(set.Committees),
				"quarantined": quarantined,
			}); err != nil {
				return err
			}
			if strict && len(set.Quarantined) > 0 {
				return fmt.Errorf("%w: %d", errQuarantined, len(set.Quarantined))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any record is quarantined")
	return cmd
}

func snapshotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Persist or inspect the transformed catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Transform the fixtures and write them to the snapshot store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			set, err := a.loadFixtures(ctx)
			if err != nil {
				return err
			}
			svc := core.NewService(set, core.WithLogger(a.logger))
			store, err := core.OpenSnapshotStore(ctx, a.cfg.Snapshot.Storage())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			meta, err := core.SaveSnapshot(ctx, svc, store)
			if err != nil {
				return err
			}
			return a.print(map[string]any{"meta": meta, "stats": svc.Stats()})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Describe the saved snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := core.OpenSnapshotStore(ctx, a.cfg.Snapshot.Storage())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			snap, ok, err := store.Load(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return errNoSnapshot
			}
			return a.print(map[string]any{
				"meta": snap.Meta,
				"stats": domain.CatalogStats{
					Bills:             len(snap.Bills),
					Members:           len(snap.Members),
					Committees:        len(snap.Committees),
					FallbackCommittee: len(snap.Committees) == 0,
					Quarantined:       snap.Meta.Quarantined,
					Source:            snap.Meta.Source,
					LoadedAt:          snap.Meta.CreatedAt,
				},
			})
		},
	})
	return cmd
}

func publishCmd(a *app) *cobra.Command {
	var (
		from      string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Validate a local fixture directory and upload it to the configured fixture store",
		Long: `Publish reads bills.json, members.json and committees.json from --from,
refuses to upload when any record is quarantined, and writes the three files
to the store selected by LENS_FIXTURE_DRIVER under LENS_FIXTURE_PREFIX.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := blob.NewFilesystem(from)
			if err != nil {
				return err
			}
			set, err := fixture.NewLoader(src, "").Load(ctx)
			if err != nil {
				return err
			}
			if len(set.Quarantined) > 0 {
				for _, q := range set.Quarantined {
					a.logger.Warn("fixture record quarantined", "record", q.String())
				}
				return fmt.Errorf("%w: %d", errQuarantined, len(set.Quarantined))
			}
			dst, err := blob.Open(ctx, a.cfg.Fixtures.Blob())
			if err != nil {
				return fmt.Errorf("open fixture store: %w", err)
			}
			target := fixture.NewLoader(dst, a.cfg.Fixtures.Prefix)
			published := make([]blob.Info, 0, 3)
			for _, name := range []string{fixture.BillsKey, fixture.MembersKey, fixture.CommitteesKey} {
				data, err := blob.ReadAll(ctx, src, name)
				if err != nil {
					return err
				}
				info, err := dst.Put(ctx, target.Key(name), bytes.NewReader(data), blob.PutOptions{
					ContentType: "application/json",
					Overwrite:   overwrite,
				})
				if err != nil {
					return fmt.Errorf("publish %s: %w", name, err)
				}
				a.logger.Info("fixture published", "key", info.Key, "size", info.Size, "driver", string(dst.Driver()))
				published = append(published, info)
			}
			return a.print(map[string]any{"published": published})
		},
	}
	cmd.Flags().StringVar(&from, "from", "./fixtures", "local fixture directory to publish")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing objects")
	return cmd
}
