// Package persistence holds the bucket layout shared by the snapshot stores.
// A snapshot is written as one JSON payload per bucket into a single
// state(bucket, payload) table or its in-memory equivalent.
package persistence

import (
	"encoding/json"
	"fmt"

	"legislativelens/pkg/domain"
)

// Bucket names of the state table.
const (
	BucketBills      = "bills"
	BucketMembers    = "members"
	BucketCommittees = "committees"
	BucketMeta       = "meta"
)

// Buckets lists every bucket in write order.
var Buckets = []string{BucketBills, BucketMembers, BucketCommittees, BucketMeta}

// EncodeBuckets serializes a snapshot into per-bucket payloads.
func EncodeBuckets(snapshot domain.Snapshot) (map[string][]byte, error) {
	out := make(map[string][]byte, len(Buckets))
	for _, bucket := range Buckets {
		var (
			data []byte
			err  error
		)
		switch bucket {
		case BucketBills:
			data, err = json.Marshal(nonNil(snapshot.Bills))
		case BucketMembers:
			data, err = json.Marshal(nonNil(snapshot.Members))
		case BucketCommittees:
			data, err = json.Marshal(nonNil(snapshot.Committees))
		case BucketMeta:
			data, err = json.Marshal(snapshot.Meta)
		}
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", bucket, err)
		}
		out[bucket] = data
	}
	return out, nil
}

// DecodeBucket unmarshals one payload into its place in snapshot. Unknown
// buckets and empty payloads are ignored.
func DecodeBucket(snapshot *domain.Snapshot, bucket string, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	var target any
	switch bucket {
	case BucketBills:
		target = &snapshot.Bills
	case BucketMembers:
		target = &snapshot.Members
	case BucketCommittees:
		target = &snapshot.Committees
	case BucketMeta:
		target = &snapshot.Meta
	default:
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", bucket, err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
