package domain

import "slices"

// Clone returns a deep copy of the bill.
func (b Bill) Clone() Bill {
	out := b
	out.Sponsor.District = cloneInt(b.Sponsor.District)
	if b.Committees != nil {
		out.Committees = make([]CommitteeActivity, len(b.Committees))
		for i, c := range b.Committees {
			c.Activities = slices.Clone(c.Activities)
			out.Committees[i] = c
		}
	}
	out.Votes = b.Votes.Clone()
	out.Timeline = slices.Clone(b.Timeline)
	return out
}

// Clone returns a deep copy of the vote set; nil stays nil.
func (v *BillVotes) Clone() *BillVotes {
	if v == nil {
		return nil
	}
	return &BillVotes{
		Committee: cloneTally(v.Committee),
		House:     cloneTally(v.House),
		Senate:    cloneTally(v.Senate),
	}
}

// Clone returns a deep copy of the member.
func (m Member) Clone() Member {
	out := m
	out.District = cloneInt(m.District)
	out.SponsoredCount = cloneInt(m.SponsoredCount)
	out.CosponsoredCount = cloneInt(m.CosponsoredCount)
	if m.Depiction != nil {
		d := *m.Depiction
		out.Depiction = &d
	}
	if m.Terms != nil {
		out.Terms = make([]Term, len(m.Terms))
		for i, t := range m.Terms {
			t.District = cloneInt(t.District)
			out.Terms[i] = t
		}
	}
	return out
}

// Clone returns a deep copy of the committee.
func (c Committee) Clone() Committee {
	out := c
	out.Jurisdiction = slices.Clone(c.Jurisdiction)
	out.Members = slices.Clone(c.Members)
	out.Meetings = slices.Clone(c.Meetings)
	out.RecentActivity = slices.Clone(c.RecentActivity)
	out.Subcommittees = slices.Clone(c.Subcommittees)
	return out
}

func cloneTally(t *VoteTally) *VoteTally {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
