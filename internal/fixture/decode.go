package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"legislativelens/pkg/domain"
)

// ErrNotArray is returned when a collection payload is not a JSON array.
var ErrNotArray = errors.New("fixture: collection is not a JSON array")

// Quarantined records a fixture entry rejected at load time.
type Quarantined struct {
	Collection domain.EntityType `json:"collection"`
	Index      int               `json:"index"`
	Key        string            `json:"key,omitempty"`
	Reason     string            `json:"reason"`
}

func (q Quarantined) String() string {
	if q.Key != "" {
		return fmt.Sprintf("%s[%d] %s: %s", q.Collection, q.Index, q.Key, q.Reason)
	}
	return fmt.Sprintf("%s[%d]: %s", q.Collection, q.Index, q.Reason)
}

// Set is a validated fixture snapshot: every record decoded, validated and
// unique by key. Records are kept in file order.
type Set struct {
	Bills       []RawBill
	Members     []RawMember
	Committees  []RawCommittee
	Quarantined []Quarantined
	Source      string
}

// DecodeBills validates a bills.json payload.
func DecodeBills(data []byte) ([]RawBill, []Quarantined, error) {
	return decodeCollection(domain.EntityBill, data, BillKey, ValidateBill)
}

// DecodeMembers validates a members.json payload.
func DecodeMembers(data []byte) ([]RawMember, []Quarantined, error) {
	return decodeCollection(domain.EntityMember, data, func(m RawMember) string { return strings.TrimSpace(m.BioguideID) }, ValidateMember)
}

// DecodeCommittees validates a committees.json payload.
func DecodeCommittees(data []byte) ([]RawCommittee, []Quarantined, error) {
	return decodeCollection(domain.EntityCommittee, data, func(c RawCommittee) string { return strings.TrimSpace(c.CommitteeID) }, ValidateCommittee)
}

// BillKey renders the composite (congress, type, number) key.
func BillKey(b RawBill) string {
	return fmt.Sprintf("%d/%s/%s", b.Congress, strings.ToUpper(strings.TrimSpace(b.BillType)), strings.TrimSpace(b.BillNumber))
}

// normalizer is implemented by raw records that accept alternate field names.
type normalizer interface{ normalize() }

// decodeCollection decodes each array element on its own so one bad record
// cannot poison the rest. Duplicate keys keep the first occurrence.
func decodeCollection[T any](collection domain.EntityType, data []byte, key func(T) string, validate func(T) error) ([]T, []Quarantined, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil, fmt.Errorf("decode %s: empty payload", collection)
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil, nil
	}
	if trimmed[0] != '[' {
		return nil, nil, fmt.Errorf("decode %s: %w", collection, ErrNotArray)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	out := make([]T, 0, len(elems))
	var quarantined []Quarantined
	seen := make(map[string]int, len(elems))
	for i, elem := range elems {
		var rec T
		if err := json.Unmarshal(elem, &rec); err != nil {
			quarantined = append(quarantined, Quarantined{Collection: collection, Index: i, Reason: err.Error()})
			continue
		}
		if n, ok := any(&rec).(normalizer); ok {
			n.normalize()
		}
		k := key(rec)
		if err := validate(rec); err != nil {
			quarantined = append(quarantined, Quarantined{Collection: collection, Index: i, Key: k, Reason: err.Error()})
			continue
		}
		if first, dup := seen[k]; dup {
			quarantined = append(quarantined, Quarantined{Collection: collection, Index: i, Key: k, Reason: fmt.Sprintf("duplicate key, first seen at index %d", first)})
			continue
		}
		seen[k] = i
		out = append(out, rec)
	}
	return out, quarantined, nil
}

// ValidateBill checks the fields every bill query relies on.
func ValidateBill(b RawBill) error {
	billType := strings.TrimSpace(b.BillType)
	if billType == "" {
		return errors.New("billType is required")
	}
	for _, r := range billType {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("billType %q must be letters only", b.BillType)
		}
	}
	if strings.TrimSpace(b.BillNumber) == "" {
		return errors.New("billNumber is required")
	}
	if b.Congress < 0 {
		return fmt.Errorf("congress %d must not be negative", b.Congress)
	}
	if b.Votes != nil {
		for name, v := range map[string]*RawVoteCount{"committee": b.Votes.Committee, "house": b.Votes.House, "senate": b.Votes.Senate} {
			if v != nil && (v.Yeas < 0 || v.Nays < 0 || v.Present < 0 || v.NotVoting < 0) {
				return fmt.Errorf("%s vote has negative counts", name)
			}
		}
	}
	return nil
}

// ValidateMember checks identity and term history.
func ValidateMember(m RawMember) error {
	if strings.TrimSpace(m.BioguideID) == "" {
		return errors.New("bioguideId is required")
	}
	for i, t := range m.Terms {
		if t.Congress <= 0 {
			return fmt.Errorf("terms[%d]: congress or startYear is required", i)
		}
	}
	return nil
}

// ValidateCommittee checks identity and the committee type enum.
func ValidateCommittee(c RawCommittee) error {
	if strings.TrimSpace(c.CommitteeID) == "" {
		return errors.New("committeeId is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	if _, ok := domain.ParseCommitteeType(c.Type); !ok {
		return fmt.Errorf("unknown committee type %q", c.Type)
	}
	return nil
}
