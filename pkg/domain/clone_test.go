package domain

import "testing"

func TestBillCloneIsDeep(t *testing.T) {
	district := 12
	orig := Bill{
		BillType:   "HR",
		BillNumber: "1",
		Sponsor:    Sponsor{BioguideID: "S001184", District: &district},
		Committees: []CommitteeActivity{{SystemCode: "hsag00", Activities: []Action{{Date: "2023-01-01", Text: "Referred"}}}},
		Votes:      &BillVotes{House: &VoteTally{Yeas: 1}},
		Timeline:   []TimelineEvent{{Date: "2023-01-01", Kind: EventIntroduced}},
	}
	cp := orig.Clone()
	*cp.Sponsor.District = 99
	cp.Committees[0].Activities[0].Text = "changed"
	cp.Votes.House.Yeas = 42
	cp.Timeline[0].Title = "changed"

	if *orig.Sponsor.District != 12 {
		t.Fatalf("sponsor district aliased")
	}
	if orig.Committees[0].Activities[0].Text != "Referred" {
		t.Fatalf("committee activities aliased")
	}
	if orig.Votes.House.Yeas != 1 {
		t.Fatalf("votes aliased")
	}
	if orig.Timeline[0].Title != "" {
		t.Fatalf("timeline aliased")
	}
}

func TestMemberAndCommitteeClone(t *testing.T) {
	d := 3
	m := Member{BioguideID: "A1", District: &d, Depiction: &Depiction{ImageURL: "x"}, Terms: []Term{{Congress: 118, District: &d}}}
	mc := m.Clone()
	*mc.Terms[0].District = 7
	mc.Depiction.ImageURL = "y"
	if *m.Terms[0].District != 3 || m.Depiction.ImageURL != "x" {
		t.Fatalf("member clone aliased: %+v", m)
	}

	c := Committee{CommitteeID: "HSAP", Members: []CommitteeMember{{Name: "A", Role: "Chair"}}, Jurisdiction: []string{"Budget"}}
	cc := c.Clone()
	cc.Members[0].Role = "Member"
	cc.Jurisdiction[0] = "Other"
	if chair, ok := c.Chair(); !ok || chair.Name != "A" {
		t.Fatalf("expected chair to survive clone mutation")
	}
	if c.Jurisdiction[0] != "Budget" {
		t.Fatalf("jurisdiction aliased")
	}
	if _, ok := c.RankingMember(); ok {
		t.Fatalf("unexpected ranking member")
	}
	if l := c.Leadership(); l.Chair == nil || l.Chair.Name != "A" || l.RankingMember != nil {
		t.Fatalf("unexpected leadership %+v", l)
	}
	var nilVotes *BillVotes
	if nilVotes.Clone() != nil {
		t.Fatalf("nil votes should clone to nil")
	}
}
