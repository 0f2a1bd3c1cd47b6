// Package legislation serves the catalog as read-only JSON over HTTP.
package legislation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"legislativelens/docs/openapi"
	"legislativelens/pkg/domain"
)

// Catalog is the query surface the handler needs.
type Catalog interface {
	Bills() []domain.Bill
	BillByID(id string) (domain.Bill, bool)
	BillsBySponsor(bioguideID string) []domain.Bill
	BillsByStatus(substr string) []domain.Bill
	BillsByCommittee(committeeID string) []domain.Bill
	BillsReferredTo(committeeID string) []domain.Bill
	VotesByBill(id string) (*domain.BillVotes, bool)
	Members() []domain.Member
	MemberByID(bioguideID string) (domain.Member, bool)
	MembersByState(code string) []domain.Member
	MembersByChamber(chamber string) []domain.Member
	MembersByParty(party string) []domain.Member
	Committees() []domain.Committee
	CommitteeByID(id string) (domain.Committee, bool)
	CommitteesForMember(bioguideID string) []domain.Committee
	SearchBills(q domain.BillQuery) []domain.Bill
	SearchMembers(q domain.MemberQuery) []domain.Member
	Stats() domain.CatalogStats
}

const apiPrefix = "/api/v1/"

// Handler provides HTTP access to bills, members and committees.
type Handler struct {
	Catalog Catalog
	// Metrics, when set, is served at /metrics.
	Metrics http.Handler
}

// NewHandler constructs a legislation HTTP handler.
func NewHandler(c Catalog) *Handler {
	return &Handler{Catalog: c}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/metrics" && h.Metrics != nil {
		h.Metrics.ServeHTTP(w, r)
		return
	}
	if h.Catalog == nil {
		writeError(w, http.StatusInternalServerError, "catalog not configured")
		return
	}
	if !strings.HasPrefix(path, apiPrefix) {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	segments := strings.Split(strings.TrimPrefix(path, apiPrefix), "/")
	switch segments[0] {
	case "bills":
		h.handleBills(w, r, segments[1:])
	case "members":
		h.handleMembers(w, r, segments[1:])
	case "committees":
		h.handleCommittees(w, r, segments[1:])
	case "openapi.yaml":
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(openapi.Spec())
	case "stats":
		if len(segments) != 1 {
			writeError(w, http.StatusNotFound, "endpoint not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stats": h.Catalog.Stats()})
	default:
		writeError(w, http.StatusNotFound, "endpoint not found")
	}
}

func (h *Handler) handleBills(w http.ResponseWriter, r *http.Request, rest []string) {
	switch len(rest) {
	case 0:
		h.handleListBills(w, r)
	case 1:
		bill, ok := h.Catalog.BillByID(rest[0])
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("bill %s not found", rest[0]))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bill": bill})
	case 2:
		if rest[1] != "votes" {
			writeError(w, http.StatusNotFound, "endpoint not found")
			return
		}
		if _, ok := h.Catalog.BillByID(rest[0]); !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("bill %s not found", rest[0]))
			return
		}
		votes, ok := h.Catalog.VotesByBill(rest[0])
		if !ok {
			votes = &domain.BillVotes{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"votes": votes})
	default:
		writeError(w, http.StatusNotFound, "endpoint not found")
	}
}

func (h *Handler) handleListBills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bills := h.Catalog.SearchBills(domain.BillQuery{
		Sponsor:    q.Get("sponsor"),
		Status:     q.Get("status"),
		Committee:  q.Get("committee"),
		ReferredTo: q.Get("referredTo"),
	})
	writeJSON(w, http.StatusOK, map[string]any{"bills": bills, "count": len(bills)})
}

func (h *Handler) handleMembers(w http.ResponseWriter, r *http.Request, rest []string) {
	switch len(rest) {
	case 0:
		q := r.URL.Query()
		members := h.Catalog.SearchMembers(domain.MemberQuery{
			State:   q.Get("state"),
			Chamber: q.Get("chamber"),
			Party:   q.Get("party"),
		})
		writeJSON(w, http.StatusOK, map[string]any{"members": members, "count": len(members)})
	case 1:
		member, ok := h.Catalog.MemberByID(rest[0])
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("member %s not found", rest[0]))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"member":     member,
			"committees": h.Catalog.CommitteesForMember(member.BioguideID),
			"sponsored":  h.Catalog.BillsBySponsor(member.BioguideID),
		})
	default:
		writeError(w, http.StatusNotFound, "endpoint not found")
	}
}

func (h *Handler) handleCommittees(w http.ResponseWriter, _ *http.Request, rest []string) {
	switch len(rest) {
	case 0:
		committees := h.Catalog.Committees()
		writeJSON(w, http.StatusOK, map[string]any{"committees": committees, "count": len(committees)})
	case 1:
		committee, ok := h.Catalog.CommitteeByID(rest[0])
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("committee %s not found", rest[0]))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"committee":  committee,
			"leadership": committee.Leadership(),
			"bills":      h.Catalog.BillsReferredTo(committee.CommitteeID),
		})
	default:
		writeError(w, http.StatusNotFound, "endpoint not found")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
