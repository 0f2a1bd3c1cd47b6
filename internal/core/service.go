package core

import (
	"context"
	"strconv"
	"strings"
	"time"

	"legislativelens/internal/fixture"
	"legislativelens/pkg/domain"
)

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// Option configures optional service dependencies.
type Option func(*Service)

// WithLogger installs a structured logger.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsRecorder installs a query metrics recorder.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer installs a span tracer around queries.
func WithTracer(t Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithClock overrides the clock used for load and snapshot timestamps.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// CatalogStats summarizes what the service loaded.
type CatalogStats = domain.CatalogStats

// Service is the read-only data access layer over the legislative catalog.
// All transforms run once at construction; the collections are immutable
// afterwards, so a Service is safe for concurrent use and every query returns
// copies.
type Service struct {
	bills      []domain.Bill
	members    []domain.Member
	committees []domain.Committee

	billIndex      map[string]int
	memberIndex    map[string]int
	committeeIndex map[string]int

	// fallback is set when committees holds only the sample committee.
	fallback bool

	quarantined     []fixture.Quarantined
	quarantineCount int
	source          string
	loadedAt        time.Time

	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	clock   Clock
}

func newService(opts []Option) *Service {
	s := &Service{
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		clock:   systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewService transforms a decoded fixture set into a ready catalog.
// Quarantined records are logged at warn level and never reach queries.
func NewService(set fixture.Set, opts ...Option) *Service {
	s := newService(opts)
	bills := make([]domain.Bill, 0, len(set.Bills))
	for _, raw := range set.Bills {
		bills = append(bills, TransformBill(raw))
	}
	members := make([]domain.Member, 0, len(set.Members))
	for _, raw := range set.Members {
		members = append(members, TransformMember(raw))
	}
	committees := make([]domain.Committee, 0, len(set.Committees))
	for _, raw := range set.Committees {
		committees = append(committees, TransformCommittee(raw))
	}
	for _, q := range set.Quarantined {
		s.logger.Warn("fixture record quarantined",
			"collection", q.Collection, "index", q.Index, "key", q.Key, "reason", q.Reason)
	}
	s.quarantined = append([]fixture.Quarantined(nil), set.Quarantined...)
	s.quarantineCount = len(set.Quarantined)
	s.source = set.Source
	s.index(bills, members, committees)
	s.logger.Info("catalog loaded",
		"source", s.source, "bills", len(s.bills), "members", len(s.members),
		"committees", len(s.committees), "quarantined", len(s.quarantined))
	return s
}

// NewServiceFromSnapshot hydrates a catalog from an already transformed
// snapshot without re-running the transforms.
func NewServiceFromSnapshot(snap domain.Snapshot, opts ...Option) *Service {
	s := newService(opts)
	s.source = snap.Meta.Source
	bills := make([]domain.Bill, 0, len(snap.Bills))
	for _, b := range snap.Bills {
		bills = append(bills, b.Clone())
	}
	members := make([]domain.Member, 0, len(snap.Members))
	for _, m := range snap.Members {
		members = append(members, m.Clone())
	}
	committees := make([]domain.Committee, 0, len(snap.Committees))
	for _, c := range snap.Committees {
		committees = append(committees, c.Clone())
	}
	s.index(bills, members, committees)
	if snap.Meta.Quarantined > 0 {
		s.logger.Warn("snapshot carries quarantined records", "count", snap.Meta.Quarantined)
		s.quarantineCount = snap.Meta.Quarantined
	}
	s.logger.Info("catalog hydrated from snapshot",
		"source", s.source, "bills", len(s.bills), "members", len(s.members), "committees", len(s.committees))
	return s
}

func (s *Service) index(bills []domain.Bill, members []domain.Member, committees []domain.Committee) {
	if len(committees) == 0 {
		s.logger.Debug("committee collection empty, serving fallback", "committee_id", FallbackCommitteeID)
		committees = []domain.Committee{fallbackCommittee()}
		s.fallback = true
	}
	s.bills, s.members, s.committees = bills, members, committees
	s.billIndex = make(map[string]int, len(bills))
	for i, b := range bills {
		key := billIndexKey(b.ID())
		if _, ok := s.billIndex[key]; !ok {
			s.billIndex[key] = i
		}
	}
	s.memberIndex = make(map[string]int, len(members))
	for i, m := range members {
		if _, ok := s.memberIndex[m.BioguideID]; !ok {
			s.memberIndex[m.BioguideID] = i
		}
	}
	s.committeeIndex = make(map[string]int, len(committees))
	for i, c := range committees {
		if _, ok := s.committeeIndex[c.CommitteeID]; !ok {
			s.committeeIndex[c.CommitteeID] = i
		}
	}
	s.loadedAt = s.clock.Now()
}

// billIndexKey keeps type and number apart so "S870" never resolves through
// type "S8".
func billIndexKey(id domain.BillID) string {
	return strings.ToUpper(id.Type) + "/" + strings.ToUpper(id.Number)
}

// observe wraps a query with the tracer and metrics recorder. found reports
// whether the query produced a result.
func (s *Service) observe(op string) func(found bool) {
	start := s.clock.Now()
	_, span := s.tracer.Start(context.Background(), op)
	return func(found bool) {
		span.End(nil)
		s.metrics.Observe(context.Background(), op, found, s.clock.Now().Sub(start))
	}
}

func (s *Service) filterBills(op string, keep func(domain.Bill) bool) []domain.Bill {
	done := s.observe(op)
	out := make([]domain.Bill, 0)
	for _, b := range s.bills {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	done(len(out) > 0)
	return out
}

func (s *Service) filterMembers(op string, keep func(domain.Member) bool) []domain.Member {
	done := s.observe(op)
	out := make([]domain.Member, 0)
	for _, m := range s.members {
		if keep(m) {
			out = append(out, m.Clone())
		}
	}
	done(len(out) > 0)
	return out
}

func (s *Service) filterCommittees(op string, keep func(domain.Committee) bool) []domain.Committee {
	done := s.observe(op)
	out := make([]domain.Committee, 0)
	for _, c := range s.committees {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	done(len(out) > 0)
	return out
}

func all[T any](T) bool { return true }

// Bills returns every bill in fixture order.
func (s *Service) Bills() []domain.Bill {
	return s.filterBills("bills", all[domain.Bill])
}

// BillByID resolves a display identifier such as "HR1234". The first two
// characters are the bill type and the rest is the number; both must match
// exactly after upper-casing.
func (s *Service) BillByID(id string) (domain.Bill, bool) {
	done := s.observe("bill_by_id")
	parsed, ok := domain.ParseBillID(id)
	if !ok {
		done(false)
		return domain.Bill{}, false
	}
	i, ok := s.billIndex[billIndexKey(parsed)]
	done(ok)
	if !ok {
		return domain.Bill{}, false
	}
	return s.bills[i].Clone(), true
}

// BillsBySponsor returns bills whose sponsor has the given bioguide ID.
func (s *Service) BillsBySponsor(bioguideID string) []domain.Bill {
	return s.filterBills("bills_by_sponsor", func(b domain.Bill) bool {
		return b.Sponsor.BioguideID == bioguideID
	})
}

// BillsByStatus returns bills whose latest action text contains substr.
// The match is case-sensitive.
func (s *Service) BillsByStatus(substr string) []domain.Bill {
	return s.filterBills("bills_by_status", func(b domain.Bill) bool {
		return strings.Contains(b.LatestAction.Text, substr)
	})
}

// BillsByCommittee returns bills whose latest action text mentions the
// committee ID. This is a free-text heuristic; BillsReferredTo uses the
// recorded committee activity instead.
func (s *Service) BillsByCommittee(committeeID string) []domain.Bill {
	return s.filterBills("bills_by_committee", func(b domain.Bill) bool {
		return strings.Contains(b.LatestAction.Text, committeeID)
	})
}

// BillsReferredTo returns bills with recorded activity in the committee.
// Congress.gov system codes carry a two digit suffix ("hsap00"), so a bare
// committee ID matches its full committee code as well.
func (s *Service) BillsReferredTo(committeeID string) []domain.Bill {
	want := strings.ToLower(strings.TrimSpace(committeeID))
	return s.filterBills("bills_referred_to", func(b domain.Bill) bool {
		if want == "" {
			return false
		}
		for _, c := range b.Committees {
			code := strings.ToLower(c.SystemCode)
			if code == want || code == want+"00" {
				return true
			}
		}
		return false
	})
}

// Members returns every member in fixture order.
func (s *Service) Members() []domain.Member {
	return s.filterMembers("members", all[domain.Member])
}

// MemberByID returns the member with the bioguide ID.
func (s *Service) MemberByID(bioguideID string) (domain.Member, bool) {
	done := s.observe("member_by_id")
	i, ok := s.memberIndex[bioguideID]
	done(ok)
	if !ok {
		return domain.Member{}, false
	}
	return s.members[i].Clone(), true
}

// MembersByState returns members currently representing the state or who
// served it in any recorded term. code may be a postal code or a full name.
func (s *Service) MembersByState(code string) []domain.Member {
	return s.filterMembers("members_by_state", func(m domain.Member) bool {
		if m.State == code || m.StateName == code {
			return true
		}
		for _, t := range m.Terms {
			if t.StateCode == code || t.StateName == code {
				return true
			}
		}
		return false
	})
}

// MembersByChamber matches the raw chamber label case-insensitively, so
// "house" finds "House of Representatives".
func (s *Service) MembersByChamber(chamber string) []domain.Member {
	want := strings.ToLower(chamber)
	return s.filterMembers("members_by_chamber", func(m domain.Member) bool {
		return strings.Contains(strings.ToLower(m.ChamberLabel), want)
	})
}

// MembersByParty returns members whose party code equals party.
func (s *Service) MembersByParty(party string) []domain.Member {
	return s.filterMembers("members_by_party", func(m domain.Member) bool {
		return m.Party == party
	})
}

// Committees returns every committee, or the fallback sample when none were
// loaded.
func (s *Service) Committees() []domain.Committee {
	return s.filterCommittees("committees", all[domain.Committee])
}

// CommitteeByID returns the committee with the ID.
func (s *Service) CommitteeByID(id string) (domain.Committee, bool) {
	done := s.observe("committee_by_id")
	i, ok := s.committeeIndex[id]
	done(ok)
	if !ok {
		return domain.Committee{}, false
	}
	return s.committees[i].Clone(), true
}

// CommitteesForMember returns committees that seat the member.
func (s *Service) CommitteesForMember(bioguideID string) []domain.Committee {
	return s.filterCommittees("committees_for_member", func(c domain.Committee) bool {
		for _, m := range c.Members {
			if m.BioguideID == bioguideID {
				return true
			}
		}
		return false
	})
}

// VotesByBill returns the recorded votes of a bill. ok is false when the bill
// is unknown or has no votes.
func (s *Service) VotesByBill(id string) (*domain.BillVotes, bool) {
	bill, ok := s.BillByID(id)
	if !ok || bill.Votes == nil {
		return nil, false
	}
	return bill.Votes, true
}

// Stats reports collection sizes and the quarantine count.
func (s *Service) Stats() CatalogStats {
	return CatalogStats{
		Bills:             len(s.bills),
		Members:           len(s.members),
		Committees:        len(s.loadedCommittees()),
		FallbackCommittee: s.fallback,
		Quarantined:       s.quarantineCount,
		Source:            s.source,
		LoadedAt:          s.loadedAt,
	}
}

// loadedCommittees excludes the fallback sample, which is never persisted.
func (s *Service) loadedCommittees() []domain.Committee {
	if s.fallback {
		return nil
	}
	return s.committees
}

// Quarantined returns the records rejected at load. A service hydrated from a
// snapshot only knows their count and returns none.
func (s *Service) Quarantined() []fixture.Quarantined {
	return append([]fixture.Quarantined(nil), s.quarantined...)
}

// Snapshot captures the transformed catalog for persistence.
func (s *Service) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Bills:      make([]domain.Bill, 0, len(s.bills)),
		Members:    make([]domain.Member, 0, len(s.members)),
		Committees: make([]domain.Committee, 0, len(s.loadedCommittees())),
		Meta: domain.SnapshotMeta{
			Source:      s.source,
			CreatedAt:   s.clock.Now(),
			Quarantined: s.quarantineCount,
		},
	}
	for _, b := range s.bills {
		snap.Bills = append(snap.Bills, b.Clone())
	}
	for _, m := range s.members {
		snap.Members = append(snap.Members, m.Clone())
	}
	for _, c := range s.loadedCommittees() {
		snap.Committees = append(snap.Committees, c.Clone())
	}
	return snap
}

// SearchBills intersects the filters set in q, keeping catalog order.
func (s *Service) SearchBills(q domain.BillQuery) []domain.Bill {
	out := s.Bills()
	for _, f := range []struct {
		value string
		query func(string) []domain.Bill
	}{
		{q.Sponsor, s.BillsBySponsor},
		{q.Status, s.BillsByStatus},
		{q.Committee, s.BillsByCommittee},
		{q.ReferredTo, s.BillsReferredTo},
	} {
		if f.value == "" {
			continue
		}
		out = intersect(out, f.query(f.value), billIndexKeyOf)
	}
	return out
}

// SearchMembers intersects the filters set in q, keeping catalog order.
func (s *Service) SearchMembers(q domain.MemberQuery) []domain.Member {
	out := s.Members()
	for _, f := range []struct {
		value string
		query func(string) []domain.Member
	}{
		{q.State, s.MembersByState},
		{q.Chamber, s.MembersByChamber},
		{q.Party, s.MembersByParty},
	} {
		if f.value == "" {
			continue
		}
		out = intersect(out, f.query(f.value), func(m domain.Member) string { return m.BioguideID })
	}
	return out
}

func billIndexKeyOf(b domain.Bill) string {
	return strconv.Itoa(b.Congress) + "/" + billIndexKey(b.ID())
}

func intersect[T any](base, keep []T, key func(T) string) []T {
	allowed := make(map[string]struct{}, len(keep))
	for _, item := range keep {
		allowed[key(item)] = struct{}{}
	}
	out := make([]T, 0, len(base))
	for _, item := range base {
		if _, ok := allowed[key(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}
