package core

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"legislativelens/internal/fixture"
	"legislativelens/pkg/domain"
)

func memberIDs(ms []domain.Member) []string {
	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.BioguideID)
	}
	sort.Strings(ids)
	return ids
}

func billIDs(bs []domain.Bill) []string {
	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.ID().String())
	}
	return ids
}

func TestBillByIDReconstructsEveryFixtureID(t *testing.T) {
	svc := newFixtureService(t)
	for _, b := range svc.Bills() {
		id := b.ID().String()
		if len(b.BillType) != 2 {
			// Single letter types such as "S" cannot round trip through the
			// two character split.
			if _, ok := svc.BillByID(id); ok {
				t.Fatalf("%s: expected no match for one-letter type", id)
			}
			continue
		}
		got, ok := svc.BillByID(id)
		if !ok {
			t.Fatalf("%s: not found", id)
		}
		if got.BillType+got.BillNumber != id {
			t.Fatalf("%s: reconstructed %s%s", id, got.BillType, got.BillNumber)
		}
	}
}

func TestBillByIDExactMatch(t *testing.T) {
	svc := newFixtureService(t)
	got, ok := svc.BillByID("HR1")
	if !ok || got.BillType != "HR" || got.BillNumber != "1" {
		t.Fatalf("expected HR1, got %+v ok=%v", got.ID(), ok)
	}
	if got, ok := svc.BillByID("hr4366"); !ok || got.BillNumber != "4366" {
		t.Fatalf("expected case-insensitive HR4366, got ok=%v", ok)
	}
	for _, id := range []string{"HR43", "HR", "H", "", "S870", "HR99999"} {
		if _, ok := svc.BillByID(id); ok {
			t.Fatalf("%q: expected no match", id)
		}
	}
}

func TestBillsBySponsor(t *testing.T) {
	svc := newFixtureService(t)
	got := svc.BillsBySponsor("S001184")
	if len(got) != 1 || got[0].BillNumber != "1" {
		t.Fatalf("expected exactly HR1, got %v", billIDs(got))
	}
	if got := svc.BillsBySponsor("C001087"); len(got) != 2 {
		t.Fatalf("expected two Carter bills, got %v", billIDs(got))
	}
	if got := svc.BillsBySponsor("NOBODY"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestBillsByStatusIsCaseSensitive(t *testing.T) {
	svc := newFixtureService(t)
	if got := svc.BillsByStatus("Passed House"); len(got) != 2 {
		t.Fatalf("expected HR1 and HR2, got %v", billIDs(got))
	}
	if got := svc.BillsByStatus("passed house"); len(got) != 0 {
		t.Fatalf("expected no lower-case match, got %v", billIDs(got))
	}
}

func TestBillsByCommitteeAndReferredTo(t *testing.T) {
	svc := newFixtureService(t)
	if got := billIDs(svc.BillsByCommittee("HSSY")); len(got) != 1 || got[0] != "S870" {
		t.Fatalf("expected S870 via action text, got %v", got)
	}
	if got := svc.BillsByCommittee("HSAP"); len(got) != 0 {
		t.Fatalf("HSAP never appears in action text, got %v", billIDs(got))
	}
	if got := billIDs(svc.BillsReferredTo("HSAP")); len(got) != 1 || got[0] != "HR4366" {
		t.Fatalf("expected HR4366 via committee join, got %v", got)
	}
	if got := billIDs(svc.BillsReferredTo("sscm00")); len(got) != 1 || got[0] != "S870" {
		t.Fatalf("expected S870 via full system code, got %v", got)
	}
	if got := svc.BillsReferredTo(""); len(got) != 0 {
		t.Fatalf("empty committee must not match, got %v", billIDs(got))
	}
}

func TestSearchBillsIntersectsFilters(t *testing.T) {
	svc := newFixtureService(t)
	if got := svc.SearchBills(domain.BillQuery{}); len(got) != len(svc.Bills()) {
		t.Fatalf("empty query should return every bill, got %v", billIDs(got))
	}
	got := billIDs(svc.SearchBills(domain.BillQuery{Sponsor: "C001087", Status: "Became Public Law"}))
	if diff := cmp.Diff([]string{"HR4366"}, got); diff != "" {
		t.Fatalf("sponsor+status (-want +got):\n%s", diff)
	}
	if got := svc.SearchBills(domain.BillQuery{Sponsor: "C001087", ReferredTo: "SSCM"}); len(got) != 0 {
		t.Fatalf("disjoint filters should be empty, got %v", billIDs(got))
	}
}

func TestSearchMembersIntersectsFilters(t *testing.T) {
	svc := newFixtureService(t)
	got := memberIDs(svc.SearchMembers(domain.MemberQuery{State: "CA", Chamber: "house"}))
	if diff := cmp.Diff([]string{"R000599"}, got); diff != "" {
		t.Fatalf("CA house members (-want +got):\n%s", diff)
	}
	if got := svc.SearchMembers(domain.MemberQuery{Party: "R", Chamber: "senate", State: "CA"}); len(got) != 0 {
		t.Fatalf("expected no CA republican senators, got %v", memberIDs(got))
	}
}

func TestMembersIsIdempotent(t *testing.T) {
	svc := newFixtureService(t)
	first := svc.Members()
	second := svc.Members()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Members() not idempotent (-first +second):\n%s", diff)
	}
	first[0].Name = "mutated"
	first[0].Terms[0].StateCode = "ZZ"
	if diff := cmp.Diff(second, svc.Members()); diff != "" {
		t.Fatalf("mutating a result leaked into the catalog:\n%s", diff)
	}
}

func TestMembersByStateMatchesCurrentOrHistoricalState(t *testing.T) {
	set := loadRepositoryFixtures(t)
	set.Members = append(set.Members, fixture.RawMember{
		BioguideID: "M000001",
		FirstName:  "Moved",
		LastName:   "West",
		State:      "Ohio",
		Terms: []fixture.RawTerm{
			{Congress: 112, Chamber: "House of Representatives", StateCode: "CA", StateName: "California", District: intPtr(9)},
			{Congress: 118, Chamber: "House of Representatives", StateCode: "OH", StateName: "Ohio", District: intPtr(2)},
		},
	})
	svc := NewService(set)

	var want []string
	for _, m := range svc.Members() {
		match := m.State == "CA"
		for _, term := range m.Terms {
			if term.StateCode == "CA" {
				match = true
			}
		}
		if match {
			want = append(want, m.BioguideID)
		}
	}
	sort.Strings(want)
	got := memberIDs(svc.MembersByState("CA"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MembersByState(CA) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"H001075", "M000001", "R000599"}, got); diff != "" {
		t.Fatalf("unexpected CA members (-want +got):\n%s", diff)
	}
	if got := memberIDs(svc.MembersByState("California")); len(got) != 3 {
		t.Fatalf("expected state name lookup to match, got %v", got)
	}
}

func TestMembersByChamberAndParty(t *testing.T) {
	svc := newFixtureService(t)
	house := memberIDs(svc.MembersByChamber("house"))
	if diff := cmp.Diff([]string{"C001087", "R000599", "S001184"}, house); diff != "" {
		t.Fatalf("house members (-want +got):\n%s", diff)
	}
	senate := memberIDs(svc.MembersByChamber("SENATE"))
	if diff := cmp.Diff([]string{"H001075", "P000595", "S001217"}, senate); diff != "" {
		t.Fatalf("senate members (-want +got):\n%s", diff)
	}
	dems := memberIDs(svc.MembersByParty("D"))
	if diff := cmp.Diff([]string{"H001075", "P000595", "R000599"}, dems); diff != "" {
		t.Fatalf("democrats (-want +got):\n%s", diff)
	}
	if got := svc.MembersByParty("d"); len(got) != 0 {
		t.Fatalf("party match is exact, got %v", memberIDs(got))
	}
}

func TestMemberByID(t *testing.T) {
	svc := newFixtureService(t)
	m, ok := svc.MemberByID("P000595")
	if !ok {
		t.Fatalf("expected Peters")
	}
	if m.Chamber != domain.ChamberSenate || m.State != "MI" || m.Party != "D" || len(m.Terms) != 2 {
		t.Fatalf("unexpected member %+v", m)
	}
	if _, ok := svc.MemberByID("p000595"); ok {
		t.Fatalf("bioguide lookup is exact")
	}
}

func TestCommitteesFallbackWhenEmpty(t *testing.T) {
	svc := NewService(fixture.Set{})
	got := svc.Committees()
	if len(got) != 1 || got[0].CommitteeID != FallbackCommitteeID {
		t.Fatalf("expected single fallback committee, got %+v", got)
	}
	if _, ok := svc.CommitteeByID("HSAP"); !ok {
		t.Fatalf("fallback committee should be addressable")
	}
	if chair, ok := got[0].Chair(); !ok || chair.Role != "Chair" {
		t.Fatalf("fallback committee should carry a chair")
	}
}

func TestFallbackCommitteeIsNotPersisted(t *testing.T) {
	svc := NewService(fixture.Set{})
	if stats := svc.Stats(); stats.Committees != 0 || !stats.FallbackCommittee {
		t.Fatalf("expected no loaded committees and the fallback flag, got %+v", stats)
	}
	snap := svc.Snapshot()
	if len(snap.Committees) != 0 {
		t.Fatalf("fallback committee leaked into snapshot: %+v", snap.Committees)
	}
	hydrated := NewServiceFromSnapshot(snap)
	if stats := hydrated.Stats(); stats.Committees != 0 || !stats.FallbackCommittee {
		t.Fatalf("hydrated service should serve the fallback again, got %+v", stats)
	}
	if _, ok := hydrated.CommitteeByID(FallbackCommitteeID); !ok {
		t.Fatalf("hydrated service lost the fallback committee")
	}
	if stats := newFixtureService(t).Stats(); stats.FallbackCommittee {
		t.Fatalf("loaded committees must not report the fallback")
	}
}

func TestCommitteesFromFixtures(t *testing.T) {
	svc := newFixtureService(t)
	if got := len(svc.Committees()); got != 4 {
		t.Fatalf("expected 4 committees, got %d", got)
	}
	hsap, ok := svc.CommitteeByID("HSAP")
	if !ok {
		t.Fatalf("expected HSAP")
	}
	if chair, ok := hsap.Chair(); !ok || chair.BioguideID != "G000377" {
		t.Fatalf("unexpected chair %+v", chair)
	}
	if ranking, ok := hsap.RankingMember(); !ok || ranking.BioguideID != "D000216" {
		t.Fatalf("unexpected ranking member %+v", ranking)
	}
	if hssy, _ := svc.CommitteeByID("HSSY"); hssy.Type != domain.CommitteeStanding {
		t.Fatalf("lower-case type should normalize, got %q", hssy.Type)
	}
	if _, ok := svc.CommitteeByID("NONE"); ok {
		t.Fatalf("expected miss")
	}
}

func TestCommitteesForMember(t *testing.T) {
	svc := newFixtureService(t)
	var ids []string
	for _, c := range svc.CommitteesForMember("P000595") {
		ids = append(ids, c.CommitteeID)
	}
	if diff := cmp.Diff([]string{"SSCM"}, ids); diff != "" {
		t.Fatalf("committees for Peters (-want +got):\n%s", diff)
	}
	if got := svc.CommitteesForMember("R000599"); len(got) != 0 {
		t.Fatalf("expected none, got %d", len(got))
	}
}

func TestVotesByBill(t *testing.T) {
	svc := newFixtureService(t)
	votes, ok := svc.VotesByBill("HR4366")
	if !ok || votes.Committee == nil || votes.House == nil || votes.Senate == nil {
		t.Fatalf("expected all three tallies, got %+v", votes)
	}
	if votes.Senate.Yeas != 75 || votes.Senate.Nays != 22 {
		t.Fatalf("unexpected senate tally %+v", votes.Senate)
	}
	if _, ok := svc.VotesByBill("HR815"); ok {
		t.Fatalf("HR815 has no recorded votes")
	}
	if _, ok := svc.VotesByBill("XX1"); ok {
		t.Fatalf("unknown bill must miss")
	}
}

func TestQuarantinedRecordsNeverReachQueries(t *testing.T) {
	bills, quarantined, err := fixture.DecodeBills([]byte(`[
		{"congress":118,"billType":"HR","billNumber":"10","title":"ok","sponsor":{"bioguideId":"A1"}},
		{"congress":118,"billType":"H R","billNumber":"11","sponsor":{"bioguideId":"A1"}},
		{"congress":118,"billType":"HR","billNumber":"10","title":"duplicate","sponsor":{"bioguideId":"A1"}}
	]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	log := &captureLogger{}
	svc := NewService(fixture.Set{Bills: bills, Quarantined: quarantined}, WithLogger(log))
	if got := svc.BillsBySponsor("A1"); len(got) != 1 || got[0].Title != "ok" {
		t.Fatalf("expected only the first valid bill, got %+v", got)
	}
	if svc.Stats().Quarantined != 2 || len(svc.Quarantined()) != 2 {
		t.Fatalf("expected two quarantined records, got %+v", svc.Stats())
	}
	var warns int
	for _, c := range log.calls {
		if c == "w:fixture record quarantined" {
			warns++
		}
	}
	if warns != 2 {
		t.Fatalf("expected two quarantine warnings, got %v", log.calls)
	}
}

func TestStatsCountsCollections(t *testing.T) {
	svc := newFixtureService(t)
	stats := svc.Stats()
	if stats.Bills != 5 || stats.Members != 6 || stats.Committees != 4 || stats.Quarantined != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.Source != "fs:" || stats.LoadedAt.IsZero() {
		t.Fatalf("expected source and load time, got %+v", stats)
	}
}

func TestServiceFromSnapshotMatchesOriginal(t *testing.T) {
	orig := newFixtureService(t)
	hydrated := NewServiceFromSnapshot(orig.Snapshot())
	if diff := cmp.Diff(orig.Bills(), hydrated.Bills()); diff != "" {
		t.Fatalf("bills differ:\n%s", diff)
	}
	if diff := cmp.Diff(orig.Members(), hydrated.Members()); diff != "" {
		t.Fatalf("members differ:\n%s", diff)
	}
	if diff := cmp.Diff(orig.Committees(), hydrated.Committees()); diff != "" {
		t.Fatalf("committees differ:\n%s", diff)
	}
	if diff := cmp.Diff(billIDs(orig.BillsBySponsor("C001087")), billIDs(hydrated.BillsBySponsor("C001087"))); diff != "" {
		t.Fatalf("sponsor query differs:\n%s", diff)
	}
}
