// Package fixture holds the raw fixture record shapes (bills.json,
// members.json, committees.json) and the parse-and-validate boundary that
// turns untyped JSON into records the catalog may trust.
package fixture

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RawPolicyArea is the nested policy area object on a bill.
type RawPolicyArea struct {
	Name string `json:"name"`
}

// RawSponsor is the member snippet denormalized onto a bill.
type RawSponsor struct {
	BioguideID string `json:"bioguideId"`
	FullName   string `json:"fullName"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Party      string `json:"party"`
	State      string `json:"state"`
	District   *int   `json:"district"`
}

// RawAction is a dated action as it appears in fixtures.
type RawAction struct {
	ActionDate string `json:"actionDate"`
	Text       string `json:"text"`
}

// RawCommitteeEvent is one dated committee activity on a bill.
type RawCommitteeEvent struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// RawBillCommittee is a committee activity record on a bill.
type RawBillCommittee struct {
	SystemCode string              `json:"systemCode"`
	Name       string              `json:"name"`
	Chamber    string              `json:"chamber"`
	Activities []RawCommitteeEvent `json:"activities"`
}

// RawVoteCount is a nested vote count.
type RawVoteCount struct {
	Date      string `json:"date"`
	Question  string `json:"question"`
	Result    string `json:"result"`
	Yeas      int    `json:"yeas"`
	Nays      int    `json:"nays"`
	Present   int    `json:"present"`
	NotVoting int    `json:"notVoting"`
}

// RawVotes groups the optional vote counts on a bill.
type RawVotes struct {
	Committee *RawVoteCount `json:"committee"`
	House     *RawVoteCount `json:"house"`
	Senate    *RawVoteCount `json:"senate"`
}

// RawBill is one entry of bills.json.
type RawBill struct {
	Congress       int                `json:"congress"`
	BillType       string             `json:"billType"`
	BillNumber     string             `json:"billNumber"`
	Title          string             `json:"title"`
	Summary        string             `json:"summary"`
	IntroducedDate string             `json:"introducedDate"`
	PolicyArea     *RawPolicyArea     `json:"policyArea"`
	Sponsor        *RawSponsor        `json:"sponsor"`
	LatestAction   *RawAction         `json:"latestAction"`
	Committees     []RawBillCommittee `json:"committees"`
	Votes          *RawVotes          `json:"votes"`

	// Type and Number carry the identifiers under the names the Congress.gov
	// list endpoint uses.
	Type   string `json:"type,omitempty"`
	Number string `json:"number,omitempty"`
}

func (b *RawBill) normalize() {
	if b.BillType == "" {
		b.BillType = b.Type
	}
	if b.BillNumber == "" {
		b.BillNumber = b.Number
	}
	b.Type, b.Number = "", ""
}

// RawTerm is one historical service record of a member.
type RawTerm struct {
	Congress  int    `json:"congress"`
	Chamber   string `json:"chamber"`
	StateCode string `json:"stateCode"`
	StateName string `json:"stateName"`
	District  *int   `json:"district"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
}

// firstCongressYear is the year the 1st Congress convened. Each Congress
// sits for two years.
const firstCongressYear = 1789

// CongressForYear returns the Congress in session during year, or 0 for
// years before the first.
func CongressForYear(year int) int {
	if year < firstCongressYear {
		return 0
	}
	return (year-firstCongressYear)/2 + 1
}

// normalize fills in the congress of list-shaped terms, which carry only
// startYear.
func (t *RawTerm) normalize() {
	if t.Congress == 0 {
		t.Congress = CongressForYear(t.StartYear)
	}
}

// RawTerms accepts both a bare array and the {"item": [...]} wrapper the
// Congress.gov list endpoints use.
type RawTerms []RawTerm

// UnmarshalJSON implements json.Unmarshaler.
func (t *RawTerms) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Item []RawTerm `json:"item"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		*t = wrapped.Item
	} else {
		var items []RawTerm
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*t = items
	}
	for i := range *t {
		(*t)[i].normalize()
	}
	return nil
}

// RawPartyAffiliation is one partyHistory entry.
type RawPartyAffiliation struct {
	PartyAbbreviation string `json:"partyAbbreviation"`
	PartyName         string `json:"partyName"`
	StartYear         int    `json:"startYear"`
}

// RawDepiction is the member photo reference.
type RawDepiction struct {
	ImageURL    string `json:"imageUrl"`
	Attribution string `json:"attribution"`
}

// RawLegislationCount is a sponsored/cosponsored legislation counter.
type RawLegislationCount struct {
	Count int    `json:"count"`
	URL   string `json:"url"`
}

// RawMember is one entry of members.json. Chamber is a pointer so that an
// explicit empty value can be told apart from an absent key.
type RawMember struct {
	BioguideID             string                `json:"bioguideId"`
	FirstName              string                `json:"firstName"`
	MiddleName             string                `json:"middleName"`
	LastName               string                `json:"lastName"`
	DirectOrderName        string                `json:"directOrderName"`
	Name                   string                `json:"name"`
	Party                  string                `json:"party"`
	PartyName              string                `json:"partyName"`
	State                  string                `json:"state"`
	District               *int                  `json:"district"`
	Chamber                *string               `json:"chamber"`
	Depiction              *RawDepiction         `json:"depiction"`
	SponsoredLegislation   *RawLegislationCount  `json:"sponsoredLegislation"`
	CosponsoredLegislation *RawLegislationCount  `json:"cosponsoredLegislation"`
	Terms                  RawTerms              `json:"terms"`
	PartyHistory           []RawPartyAffiliation `json:"partyHistory"`
}

// RawCommitteeMember is a role-tagged committee seat.
type RawCommitteeMember struct {
	BioguideID string `json:"bioguideId"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	State      string `json:"state"`
	Role       string `json:"role"`
}

// RawMeeting is a committee schedule entry.
type RawMeeting struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// RawActivity is a committee activity log entry.
type RawActivity struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	BillID      string `json:"billId"`
}

// RawSubcommittee references a child committee.
type RawSubcommittee struct {
	CommitteeID string `json:"committeeId"`
	SystemCode  string `json:"systemCode"`
	Name        string `json:"name"`
}

// RawCommittee is one entry of committees.json.
type RawCommittee struct {
	CommitteeID    string               `json:"committeeId"`
	Chamber        string               `json:"chamber"`
	Name           string               `json:"name"`
	Type           string               `json:"type"`
	Jurisdiction   []string             `json:"jurisdiction"`
	Members        []RawCommitteeMember `json:"members"`
	Meetings       []RawMeeting         `json:"meetings"`
	RecentActivity []RawActivity        `json:"recentActivity"`
	Subcommittees  []RawSubcommittee    `json:"subcommittees"`

	// SystemCode and CommitteeTypeCode are the Congress.gov list equivalents
	// of CommitteeID and Type.
	SystemCode        string `json:"systemCode,omitempty"`
	CommitteeTypeCode string `json:"committeeTypeCode,omitempty"`
}

// normalize derives the committee ID from a full-committee system code
// ("hsap00" becomes "HSAP").
func (c *RawCommittee) normalize() {
	if c.CommitteeID == "" && c.SystemCode != "" {
		c.CommitteeID = strings.ToUpper(strings.TrimSuffix(c.SystemCode, "00"))
	}
	if c.Type == "" {
		c.Type = c.CommitteeTypeCode
	}
	c.SystemCode, c.CommitteeTypeCode = "", ""
}
