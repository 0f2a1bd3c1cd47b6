package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"legislativelens/pkg/domain"
)

func billsCmd(a *app) *cobra.Command {
	var q domain.BillQuery
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "List bills, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			bills := svc.SearchBills(q)
			return a.print(map[string]any{"bills": bills, "count": len(bills)})
		},
	}
	cmd.Flags().StringVar(&q.Sponsor, "sponsor", "", "sponsor bioguide ID")
	cmd.Flags().StringVar(&q.Status, "status", "", "substring of the latest action (case-sensitive)")
	cmd.Flags().StringVar(&q.Committee, "committee", "", "committee code mentioned in the latest action")
	cmd.Flags().StringVar(&q.ReferredTo, "referred-to", "", "committee the bill was referred to")
	return cmd
}

func billCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bill <id>",
		Short: "Show one bill by display ID, e.g. HR1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			bill, ok := svc.BillByID(args[0])
			if !ok {
				return fmt.Errorf("bill %s not found", args[0])
			}
			return a.print(map[string]any{"bill": bill})
		},
	}
}

func votesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "votes <id>",
		Short: "Show recorded votes for a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if _, ok := svc.BillByID(args[0]); !ok {
				return fmt.Errorf("bill %s not found", args[0])
			}
			votes, ok := svc.VotesByBill(args[0])
			if !ok {
				votes = &domain.BillVotes{}
			}
			return a.print(map[string]any{"votes": votes})
		},
	}
}

func membersCmd(a *app) *cobra.Command {
	var q domain.MemberQuery
	cmd := &cobra.Command{
		Use:   "members",
		Short: "List members, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			members := svc.SearchMembers(q)
			return a.print(map[string]any{"members": members, "count": len(members)})
		},
	}
	cmd.Flags().StringVar(&q.State, "state", "", "state code or name, current or historical")
	cmd.Flags().StringVar(&q.Chamber, "chamber", "", "house or senate")
	cmd.Flags().StringVar(&q.Party, "party", "", "party abbreviation, e.g. D")
	return cmd
}

func memberCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "member <bioguide-id>",
		Short: "Show a member with committee seats and sponsored bills",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			member, ok := svc.MemberByID(args[0])
			if !ok {
				return fmt.Errorf("member %s not found", args[0])
			}
			return a.print(map[string]any{
				"member":     member,
				"committees": svc.CommitteesForMember(member.BioguideID),
				"sponsored":  svc.BillsBySponsor(member.BioguideID),
			})
		},
	}
}

func committeesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "committees",
		Short: "List committees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			committees := svc.Committees()
			return a.print(map[string]any{"committees": committees, "count": len(committees)})
		},
	}
}

func committeeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "committee <id>",
		Short: "Show a committee, its leadership and the bills referred to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			committee, ok := svc.CommitteeByID(args[0])
			if !ok {
				return fmt.Errorf("committee %s not found", args[0])
			}
			return a.print(map[string]any{
				"committee":  committee,
				"leadership": committee.Leadership(),
				"bills":      svc.BillsReferredTo(committee.CommitteeID),
			})
		},
	}
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(map[string]any{"stats": svc.Stats()})
		},
	}
}
