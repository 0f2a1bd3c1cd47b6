package fixture

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"legislativelens/internal/blob"
)

// Fixture collection keys relative to the loader prefix.
const (
	BillsKey      = "bills.json"
	MembersKey    = "members.json"
	CommitteesKey = "committees.json"
)

// ErrMissingCollection is returned (wrapped) when a collection key is absent
// from the fixture source.
var ErrMissingCollection = errors.New("fixture: missing collection")

// Loader reads the three fixture collections from a blob store.
type Loader struct {
	store  blob.Store
	prefix string
}

// NewLoader constructs a loader reading keys under prefix (may be empty).
func NewLoader(store blob.Store, prefix string) *Loader {
	return &Loader{store: store, prefix: prefix}
}

// Key returns the full blob key of a collection file.
func (l *Loader) Key(name string) string {
	if l.prefix == "" {
		return name
	}
	return path.Join(l.prefix, name)
}

// Load fetches and validates all three collections concurrently. Payload-level
// failures (missing key, non-array document) abort the load; record-level
// failures are reported in Set.Quarantined.
func (l *Loader) Load(ctx context.Context) (Set, error) {
	var (
		set           Set
		billQ, memQ   []Quarantined
		committeeQ    []Quarantined
		billsData     []byte
		membersData   []byte
		committeeData []byte
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		billsData, err = l.read(gctx, BillsKey)
		return err
	})
	g.Go(func() (err error) {
		membersData, err = l.read(gctx, MembersKey)
		return err
	})
	g.Go(func() (err error) {
		committeeData, err = l.read(gctx, CommitteesKey)
		return err
	})
	if err := g.Wait(); err != nil {
		return Set{}, err
	}

	var err error
	if set.Bills, billQ, err = DecodeBills(billsData); err != nil {
		return Set{}, err
	}
	if set.Members, memQ, err = DecodeMembers(membersData); err != nil {
		return Set{}, err
	}
	if set.Committees, committeeQ, err = DecodeCommittees(committeeData); err != nil {
		return Set{}, err
	}
	set.Quarantined = append(append(append(set.Quarantined, billQ...), memQ...), committeeQ...)
	set.Source = fmt.Sprintf("%s:%s", l.store.Driver(), l.Key(""))
	return set, nil
}

func (l *Loader) read(ctx context.Context, name string) ([]byte, error) {
	key := l.Key(name)
	data, err := blob.ReadAll(ctx, l.store, key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrMissingCollection, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Inventory lists the objects stored under the loader prefix, including
// files that are not collections.
func (l *Loader) Inventory(ctx context.Context) ([]blob.Info, error) {
	prefix := l.prefix
	if prefix != "" {
		prefix = strings.TrimSuffix(prefix, "/") + "/"
	}
	infos, err := l.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	if infos == nil {
		infos = []blob.Info{}
	}
	return infos, nil
}
