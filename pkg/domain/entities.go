// Package domain defines the validated legislative entities (bills, members,
// committees) and the value types shared by the catalog, its persistence
// snapshots, and the HTTP and CLI surfaces.
package domain

import "strings"

// EntityType identifies a collection in the catalog.
type EntityType string

// Supported entity type identifiers used in quarantine reports and snapshot buckets.
const (
	// EntityBill identifies a bill record.
	EntityBill EntityType = "bill"
	// EntityMember identifies a member of Congress.
	EntityMember EntityType = "member"
	// EntityCommittee identifies a congressional committee.
	EntityCommittee EntityType = "committee"
)

// Chamber is the normalized legislative body.
type Chamber string

// Canonical chambers. Members are only ever house or senate; committees may be joint.
const (
	ChamberHouse  Chamber = "house"
	ChamberSenate Chamber = "senate"
	ChamberJoint  Chamber = "joint"
)

// CommitteeType enumerates committee kinds.
type CommitteeType string

// Canonical committee types.
const (
	CommitteeStanding     CommitteeType = "Standing"
	CommitteeSelect       CommitteeType = "Select"
	CommitteeJoint        CommitteeType = "Joint"
	CommitteeSubcommittee CommitteeType = "Subcommittee"
	CommitteeTaskForce    CommitteeType = "Task Force"
)

// Stage is the derived legislative stage of a bill.
type Stage string

// Bill stages ordered roughly by progress.
const (
	StageIntroduced   Stage = "Introduced"
	StageInCommittee  Stage = "In Committee"
	StagePassedHouse  Stage = "Passed House"
	StagePassedSenate Stage = "Passed Senate"
	StageBecameLaw    Stage = "Became Law"
	StageVetoed       Stage = "Vetoed"
	StageFailed       Stage = "Failed"
)

// EventKind classifies timeline milestones.
type EventKind string

// Timeline event kinds.
const (
	EventIntroduced EventKind = "introduced"
	EventCommittee  EventKind = "committee"
	EventVote       EventKind = "vote"
	EventAction     EventKind = "action"
)

// Sponsor is the denormalized member snippet embedded on a bill.
type Sponsor struct {
	BioguideID string `json:"bioguideId"`
	FullName   string `json:"fullName"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Party      string `json:"party,omitempty"`
	State      string `json:"state,omitempty"`
	District   *int   `json:"district,omitempty"`
}

// Action is a dated legislative action.
type Action struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// CommitteeActivity records a committee's involvement with a bill.
type CommitteeActivity struct {
	SystemCode string   `json:"systemCode"`
	Name       string   `json:"name"`
	Chamber    Chamber  `json:"chamber,omitempty"`
	Activities []Action `json:"activities,omitempty"`
}

// VoteTally is a recorded vote count.
type VoteTally struct {
	Date      string `json:"date,omitempty"`
	Question  string `json:"question,omitempty"`
	Result    string `json:"result,omitempty"`
	Yeas      int    `json:"yeas"`
	Nays      int    `json:"nays"`
	Present   int    `json:"present"`
	NotVoting int    `json:"notVoting"`
}

// BillVotes groups the optional vote counts recorded for a bill.
type BillVotes struct {
	Committee *VoteTally `json:"committee,omitempty"`
	House     *VoteTally `json:"house,omitempty"`
	Senate    *VoteTally `json:"senate,omitempty"`
}

// TimelineEvent is one milestone in a bill's derived history.
type TimelineEvent struct {
	Date        string    `json:"date"`
	Kind        EventKind `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}

// BillStatus is the derived current stage of a bill.
type BillStatus struct {
	Stage  Stage `json:"stage"`
	Active bool  `json:"active"`
}

// Bill is a validated bill keyed by (Congress, BillType, BillNumber).
type Bill struct {
	Congress       int                 `json:"congress"`
	BillType       string              `json:"billType"`
	BillNumber     string              `json:"billNumber"`
	Title          string              `json:"title"`
	Summary        string              `json:"summary,omitempty"`
	IntroducedDate string              `json:"introducedDate,omitempty"`
	PolicyArea     string              `json:"policyArea,omitempty"`
	Sponsor        Sponsor             `json:"sponsor"`
	LatestAction   Action              `json:"latestAction"`
	Committees     []CommitteeActivity `json:"committees,omitempty"`
	Votes          *BillVotes          `json:"votes,omitempty"`
	Timeline       []TimelineEvent     `json:"timeline"`
	Status         BillStatus          `json:"status"`
}

// ID returns the display identifier of the bill.
func (b Bill) ID() BillID {
	return BillID{Type: b.BillType, Number: b.BillNumber}
}

// Depiction is a member portrait reference.
type Depiction struct {
	ImageURL    string `json:"imageUrl"`
	Attribution string `json:"attribution,omitempty"`
}

// Term is one historical service record.
type Term struct {
	Congress  int    `json:"congress"`
	Chamber   string `json:"chamber"`
	StateCode string `json:"stateCode,omitempty"`
	StateName string `json:"stateName,omitempty"`
	District  *int   `json:"district,omitempty"`
	StartYear int    `json:"startYear,omitempty"`
	EndYear   int    `json:"endYear,omitempty"`
}

// Member is a validated member of Congress keyed by bioguide ID.
type Member struct {
	BioguideID       string     `json:"bioguideId"`
	Name             string     `json:"name"`
	FirstName        string     `json:"firstName"`
	MiddleName       string     `json:"middleName,omitempty"`
	LastName         string     `json:"lastName"`
	Party            string     `json:"party"`
	PartyName        string     `json:"partyName,omitempty"`
	State            string     `json:"state"`
	StateName        string     `json:"stateName,omitempty"`
	District         *int       `json:"district,omitempty"`
	Chamber          Chamber    `json:"chamber"`
	ChamberLabel     string     `json:"chamberLabel"`
	Depiction        *Depiction `json:"depiction,omitempty"`
	SponsoredCount   *int       `json:"sponsoredCount,omitempty"`
	CosponsoredCount *int       `json:"cosponsoredCount,omitempty"`
	Terms            []Term     `json:"terms"`
}

// CommitteeMember is a role-tagged committee seat.
type CommitteeMember struct {
	BioguideID string `json:"bioguideId"`
	Name       string `json:"name"`
	Party      string `json:"party,omitempty"`
	State      string `json:"state,omitempty"`
	Role       string `json:"role,omitempty"`
}

// Meeting is a scheduled committee meeting.
type Meeting struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Status   string `json:"status"`
}

// Activity is a typed entry in a committee's activity log.
type Activity struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	BillID      string `json:"billId,omitempty"`
}

// Subcommittee references a child committee.
type Subcommittee struct {
	CommitteeID string `json:"committeeId"`
	Name        string `json:"name"`
}

// Committee is a validated committee keyed by CommitteeID.
type Committee struct {
	CommitteeID    string            `json:"committeeId"`
	Chamber        Chamber           `json:"chamber"`
	Name           string            `json:"name"`
	Type           CommitteeType     `json:"type"`
	Jurisdiction   []string          `json:"jurisdiction"`
	Members        []CommitteeMember `json:"members"`
	Meetings       []Meeting         `json:"meetings"`
	RecentActivity []Activity        `json:"recentActivity"`
	Subcommittees  []Subcommittee    `json:"subcommittees"`
}

// Chair returns the first member tagged "Chair", if any.
func (c Committee) Chair() (CommitteeMember, bool) {
	return c.memberWithRole("Chair")
}

// RankingMember returns the first member tagged "Ranking Member", if any.
func (c Committee) RankingMember() (CommitteeMember, bool) {
	return c.memberWithRole("Ranking Member")
}

// CommitteeLeadership names the chair and ranking member of a committee.
// Either is nil when no seat carries the role.
type CommitteeLeadership struct {
	Chair         *CommitteeMember `json:"chair"`
	RankingMember *CommitteeMember `json:"rankingMember"`
}

// Leadership collects the chair and ranking member.
func (c Committee) Leadership() CommitteeLeadership {
	var l CommitteeLeadership
	if m, ok := c.Chair(); ok {
		l.Chair = &m
	}
	if m, ok := c.RankingMember(); ok {
		l.RankingMember = &m
	}
	return l
}

func (c Committee) memberWithRole(role string) (CommitteeMember, bool) {
	for _, m := range c.Members {
		if m.Role == role {
			return m, true
		}
	}
	return CommitteeMember{}, false
}

// ParseCommitteeType maps a fixture label onto the enum case-insensitively.
// An empty label is Standing. The Congress.gov list codes "Other" and
// "Commission or Caucus" have no enum case of their own and map to Select.
// Unrecognized labels report ok=false.
func ParseCommitteeType(label string) (CommitteeType, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(label), " ")) {
	case "", "standing":
		return CommitteeStanding, true
	case "select", "special", "other", "commission or caucus":
		return CommitteeSelect, true
	case "joint":
		return CommitteeJoint, true
	case "subcommittee":
		return CommitteeSubcommittee, true
	case "task force", "taskforce":
		return CommitteeTaskForce, true
	default:
		return "", false
	}
}
