package core

import "legislativelens/pkg/domain"

// FallbackCommitteeID identifies the sample committee served when the
// committee collection is empty.
const FallbackCommitteeID = "HSAP"

// fallbackCommittee returns a fresh copy of the built-in House Appropriations
// sample.
func fallbackCommittee() domain.Committee {
	return domain.Committee{
		CommitteeID: FallbackCommitteeID,
		Chamber:     domain.ChamberHouse,
		Name:        "Committee on Appropriations",
		Type:        domain.CommitteeStanding,
		Jurisdiction: []string{
			"Appropriation of the revenue for the support of the Government",
			"Rescissions of appropriations contained in appropriation Acts",
			"Transfers of unexpended balances",
		},
		Members: []domain.CommitteeMember{
			{BioguideID: "G000377", Name: "Kay Granger", Party: "R", State: "TX", Role: "Chair"},
			{BioguideID: "D000216", Name: "Rosa L. DeLauro", Party: "D", State: "CT", Role: "Ranking Member"},
		},
		Meetings: []domain.Meeting{},
		RecentActivity: []domain.Activity{
			{Date: "2024-03-22", Type: "markup", Description: "Further Consolidated Appropriations Act, 2024", BillID: "HR2882"},
		},
		Subcommittees: []domain.Subcommittee{
			{CommitteeID: "HSAP01", Name: "Agriculture, Rural Development, Food and Drug Administration, and Related Agencies"},
			{CommitteeID: "HSAP02", Name: "Defense"},
		},
	}
}
