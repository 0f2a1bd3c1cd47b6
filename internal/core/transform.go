package core

import (
	"fmt"
	"sort"
	"strings"

	"legislativelens/internal/fixture"
	"legislativelens/pkg/domain"
)

// NormalizeMemberChamber classifies a raw chamber label. Anything that does
// not contain "house" (case-insensitive) is senate, including an empty label;
// the source data offers no better signal.
func NormalizeMemberChamber(label string) domain.Chamber {
	if strings.Contains(strings.ToLower(label), "house") {
		return domain.ChamberHouse
	}
	return domain.ChamberSenate
}

// NormalizeCommitteeChamber classifies a committee chamber label.
func NormalizeCommitteeChamber(label string) domain.Chamber {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "house"):
		return domain.ChamberHouse
	case strings.Contains(lower, "joint"):
		return domain.ChamberJoint
	default:
		return domain.ChamberSenate
	}
}

// latestTerm picks the term with the highest congress number; the first of
// equal congresses wins. Terms without a congress are placed by startYear.
func latestTerm(terms []fixture.RawTerm) (fixture.RawTerm, bool) {
	if len(terms) == 0 {
		return fixture.RawTerm{}, false
	}
	best := terms[0]
	for _, t := range terms[1:] {
		if termCongress(t) > termCongress(best) {
			best = t
		}
	}
	return best, true
}

func termCongress(t fixture.RawTerm) int {
	if t.Congress > 0 {
		return t.Congress
	}
	return fixture.CongressForYear(t.StartYear)
}

func latestParty(history []fixture.RawPartyAffiliation) (fixture.RawPartyAffiliation, bool) {
	if len(history) == 0 {
		return fixture.RawPartyAffiliation{}, false
	}
	best := history[0]
	for _, p := range history[1:] {
		if p.StartYear > best.StartYear {
			best = p
		}
	}
	return best, true
}

// memberChamberLabel resolves the raw chamber text: an explicit chamber key
// (even when empty), then the latest term, then the district heuristic.
func memberChamberLabel(raw fixture.RawMember, latest fixture.RawTerm, hasTerm bool) string {
	if raw.Chamber != nil {
		return *raw.Chamber
	}
	if hasTerm && latest.Chamber != "" {
		return latest.Chamber
	}
	if raw.District != nil {
		return "House of Representatives"
	}
	return "Senate"
}

// TransformMember maps a validated raw member onto the domain type.
func TransformMember(raw fixture.RawMember) domain.Member {
	latest, hasTerm := latestTerm(raw.Terms)
	label := memberChamberLabel(raw, latest, hasTerm)

	m := domain.Member{
		BioguideID:   strings.TrimSpace(raw.BioguideID),
		Name:         memberDisplayName(raw),
		FirstName:    raw.FirstName,
		MiddleName:   raw.MiddleName,
		LastName:     raw.LastName,
		PartyName:    raw.PartyName,
		State:        raw.State,
		StateName:    raw.State,
		District:     copyInt(raw.District),
		Chamber:      NormalizeMemberChamber(label),
		ChamberLabel: label,
		Terms:        make([]domain.Term, 0, len(raw.Terms)),
	}
	if hasTerm {
		if latest.StateCode != "" {
			m.State = latest.StateCode
		}
		if latest.StateName != "" {
			m.StateName = latest.StateName
		}
		if latest.District != nil {
			m.District = copyInt(latest.District)
		}
	}

	party, hasParty := latestParty(raw.PartyHistory)
	switch {
	case hasParty && party.PartyAbbreviation != "":
		m.Party = party.PartyAbbreviation
	case raw.Party != "":
		m.Party = raw.Party
	case raw.PartyName != "":
		m.Party = strings.ToUpper(raw.PartyName[:1])
	}
	if m.PartyName == "" && hasParty {
		m.PartyName = party.PartyName
	}

	if raw.Depiction != nil && raw.Depiction.ImageURL != "" {
		m.Depiction = &domain.Depiction{ImageURL: raw.Depiction.ImageURL, Attribution: raw.Depiction.Attribution}
	}
	if raw.SponsoredLegislation != nil {
		n := raw.SponsoredLegislation.Count
		m.SponsoredCount = &n
	}
	if raw.CosponsoredLegislation != nil {
		n := raw.CosponsoredLegislation.Count
		m.CosponsoredCount = &n
	}
	for _, t := range raw.Terms {
		m.Terms = append(m.Terms, domain.Term{
			Congress:  t.Congress,
			Chamber:   t.Chamber,
			StateCode: t.StateCode,
			StateName: t.StateName,
			District:  copyInt(t.District),
			StartYear: t.StartYear,
			EndYear:   t.EndYear,
		})
	}
	return m
}

func memberDisplayName(raw fixture.RawMember) string {
	if raw.DirectOrderName != "" {
		return raw.DirectOrderName
	}
	if raw.Name != "" {
		return raw.Name
	}
	return strings.Join(strings.Fields(strings.Join([]string{raw.FirstName, raw.MiddleName, raw.LastName}, " ")), " ")
}

// TransformCommittee maps a validated raw committee onto the domain type.
// Collections are never nil so JSON consumers always see arrays.
func TransformCommittee(raw fixture.RawCommittee) domain.Committee {
	kind, ok := domain.ParseCommitteeType(raw.Type)
	if !ok {
		kind = domain.CommitteeStanding
	}
	c := domain.Committee{
		CommitteeID:    strings.TrimSpace(raw.CommitteeID),
		Chamber:        NormalizeCommitteeChamber(raw.Chamber),
		Name:           raw.Name,
		Type:           kind,
		Jurisdiction:   append([]string{}, raw.Jurisdiction...),
		Members:        make([]domain.CommitteeMember, 0, len(raw.Members)),
		Meetings:       make([]domain.Meeting, 0, len(raw.Meetings)),
		RecentActivity: make([]domain.Activity, 0, len(raw.RecentActivity)),
		Subcommittees:  make([]domain.Subcommittee, 0, len(raw.Subcommittees)),
	}
	for _, m := range raw.Members {
		c.Members = append(c.Members, domain.CommitteeMember(m))
	}
	for _, m := range raw.Meetings {
		c.Meetings = append(c.Meetings, domain.Meeting(m))
	}
	for _, a := range raw.RecentActivity {
		c.RecentActivity = append(c.RecentActivity, domain.Activity(a))
	}
	for _, s := range raw.Subcommittees {
		id := s.CommitteeID
		if id == "" {
			id = s.SystemCode
		}
		c.Subcommittees = append(c.Subcommittees, domain.Subcommittee{CommitteeID: id, Name: s.Name})
	}
	return c
}

// TransformBill maps a validated raw bill onto the domain type and derives
// its timeline and status.
func TransformBill(raw fixture.RawBill) domain.Bill {
	b := domain.Bill{
		Congress:       raw.Congress,
		BillType:       strings.ToUpper(strings.TrimSpace(raw.BillType)),
		BillNumber:     strings.TrimSpace(raw.BillNumber),
		Title:          raw.Title,
		Summary:        raw.Summary,
		IntroducedDate: raw.IntroducedDate,
	}
	if raw.PolicyArea != nil {
		b.PolicyArea = raw.PolicyArea.Name
	}
	if raw.Sponsor != nil {
		b.Sponsor = domain.Sponsor{
			BioguideID: raw.Sponsor.BioguideID,
			FullName:   raw.Sponsor.FullName,
			FirstName:  raw.Sponsor.FirstName,
			LastName:   raw.Sponsor.LastName,
			Party:      raw.Sponsor.Party,
			State:      raw.Sponsor.State,
			District:   copyInt(raw.Sponsor.District),
		}
	}
	if raw.LatestAction != nil {
		b.LatestAction = domain.Action{Date: raw.LatestAction.ActionDate, Text: raw.LatestAction.Text}
	}
	for _, c := range raw.Committees {
		activity := domain.CommitteeActivity{SystemCode: c.SystemCode, Name: c.Name}
		if c.Chamber != "" {
			activity.Chamber = NormalizeCommitteeChamber(c.Chamber)
		}
		for _, a := range c.Activities {
			activity.Activities = append(activity.Activities, domain.Action{Date: a.Date, Text: a.Name})
		}
		b.Committees = append(b.Committees, activity)
	}
	if raw.Votes != nil {
		b.Votes = &domain.BillVotes{
			Committee: tally(raw.Votes.Committee),
			House:     tally(raw.Votes.House),
			Senate:    tally(raw.Votes.Senate),
		}
	}
	b.Timeline = BuildTimeline(b)
	b.Status = DeriveStatus(b.LatestAction.Text)
	return b
}

func tally(v *fixture.RawVoteCount) *domain.VoteTally {
	if v == nil {
		return nil
	}
	t := domain.VoteTally(*v)
	return &t
}

// BuildTimeline orders a bill's milestones by date. Events without a date sort
// last; equal dates keep introduction, committee, vote, action order.
func BuildTimeline(b domain.Bill) []domain.TimelineEvent {
	events := make([]domain.TimelineEvent, 0, 4)
	if b.IntroducedDate != "" {
		events = append(events, domain.TimelineEvent{Date: b.IntroducedDate, Kind: domain.EventIntroduced, Title: "Introduced"})
	}
	for _, c := range b.Committees {
		for _, a := range c.Activities {
			events = append(events, domain.TimelineEvent{
				Date:  a.Date,
				Kind:  domain.EventCommittee,
				Title: strings.TrimSpace(a.Text + " " + c.Name),
			})
		}
	}
	if b.Votes != nil {
		for _, v := range []struct {
			label string
			tally *domain.VoteTally
		}{{"Committee vote", b.Votes.Committee}, {"House vote", b.Votes.House}, {"Senate vote", b.Votes.Senate}} {
			if v.tally == nil {
				continue
			}
			events = append(events, domain.TimelineEvent{
				Date:        v.tally.Date,
				Kind:        domain.EventVote,
				Title:       v.label,
				Description: describeTally(*v.tally),
			})
		}
	}
	if b.LatestAction.Text != "" {
		events = append(events, domain.TimelineEvent{
			Date:        b.LatestAction.Date,
			Kind:        domain.EventAction,
			Title:       "Latest action",
			Description: b.LatestAction.Text,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		di, dj := events[i].Date, events[j].Date
		if di == "" || dj == "" {
			return di != "" && dj == ""
		}
		return di < dj
	})
	return events
}

func describeTally(t domain.VoteTally) string {
	desc := fmt.Sprintf("%d-%d", t.Yeas, t.Nays)
	if t.Result != "" {
		desc = t.Result + " " + desc
	}
	if t.Question != "" {
		desc = t.Question + ": " + desc
	}
	return desc
}

var stageMarkers = []struct {
	marker string
	stage  domain.Stage
}{
	{"became public law", domain.StageBecameLaw},
	{"signed by president", domain.StageBecameLaw},
	{"vetoed", domain.StageVetoed},
	{"failed", domain.StageFailed},
	{"passed senate", domain.StagePassedSenate},
	{"passed/agreed to in senate", domain.StagePassedSenate},
	{"passed house", domain.StagePassedHouse},
	{"passed/agreed to in house", domain.StagePassedHouse},
	{"referred to", domain.StageInCommittee},
}

// DeriveStatus classifies a latest action text. The first matching marker in
// precedence order wins; no marker means the bill is only introduced.
func DeriveStatus(latestActionText string) domain.BillStatus {
	lower := strings.ToLower(latestActionText)
	for _, m := range stageMarkers {
		if strings.Contains(lower, m.marker) {
			return domain.BillStatus{Stage: m.stage, Active: isActiveStage(m.stage)}
		}
	}
	return domain.BillStatus{Stage: domain.StageIntroduced, Active: true}
}

func isActiveStage(s domain.Stage) bool {
	switch s {
	case domain.StageBecameLaw, domain.StageVetoed, domain.StageFailed:
		return false
	default:
		return true
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
