// Command lens queries the legislative catalog from local fixtures, a saved
// snapshot, or the Congress.gov API, and serves it over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"legislativelens/internal/blob"
	"legislativelens/internal/config"
	"legislativelens/internal/core"
	"legislativelens/internal/fixture"
)

var exitFunc = os.Exit

func main() {
	if err := newRootCmd(newApp(os.Stdout)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}

// app carries the state shared by every subcommand.
type app struct {
	out    io.Writer
	cfg    config.Config
	zap    *zap.Logger
	logger core.Logger

	fixtureRoot  string
	fromSnapshot bool
}

func newApp(out io.Writer) *app {
	return &app{out: out}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lens",
		Short: "Legislative Lens - bills, members and committees at a glance",
		Long: `Lens loads bill, member and committee fixtures, validates them, and
answers catalog queries as JSON. Settings come from LENS_* environment
variables; flags override them for a single invocation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.zap != nil {
				_ = a.zap.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.fixtureRoot, "fixtures", "", "fixture directory (overrides LENS_FIXTURE_ROOT)")
	rootCmd.PersistentFlags().BoolVar(&a.fromSnapshot, "from-snapshot", false, "answer queries from the saved snapshot instead of fixtures")

	rootCmd.AddCommand(billsCmd(a))
	rootCmd.AddCommand(billCmd(a))
	rootCmd.AddCommand(votesCmd(a))
	rootCmd.AddCommand(membersCmd(a))
	rootCmd.AddCommand(memberCmd(a))
	rootCmd.AddCommand(committeesCmd(a))
	rootCmd.AddCommand(committeeCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(validateCmd(a))
	rootCmd.AddCommand(snapshotCmd(a))
	rootCmd.AddCommand(publishCmd(a))
	rootCmd.AddCommand(remoteCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	return rootCmd
}

// setup loads configuration and the logger. A logger injected before setup
// (tests) is kept.
func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.fixtureRoot != "" {
		cfg.Fixtures.Driver = string(blob.DriverFilesystem)
		cfg.Fixtures.FSRoot = a.fixtureRoot
	}
	a.cfg = cfg
	if a.zap == nil {
		if a.zap, err = cfg.Log.NewLogger(); err != nil {
			return err
		}
	}
	a.logger = core.NewZapLogger(a.zap)
	return nil
}

var errNoSnapshot = errors.New("no snapshot saved; run `lens snapshot save` first")

// loadFixtures reads the configured fixture collections.
func (a *app) loadFixtures(ctx context.Context) (fixture.Set, error) {
	store, err := blob.Open(ctx, a.cfg.Fixtures.Blob())
	if err != nil {
		return fixture.Set{}, fmt.Errorf("open fixtures: %w", err)
	}
	return fixture.NewLoader(store, a.cfg.Fixtures.Prefix).Load(ctx)
}

// catalog builds the query service from fixtures or, with --from-snapshot,
// from the snapshot store.
func (a *app) catalog(ctx context.Context, opts ...core.Option) (*core.Service, error) {
	opts = append([]core.Option{core.WithLogger(a.logger)}, opts...)
	if a.fromSnapshot {
		store, err := core.OpenSnapshotStore(ctx, a.cfg.Snapshot.Storage())
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()
		svc, ok, err := core.LoadSnapshotService(ctx, store, opts...)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errNoSnapshot
		}
		return svc, nil
	}
	set, err := a.loadFixtures(ctx)
	if err != nil {
		return nil, err
	}
	return core.NewService(set, opts...), nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
