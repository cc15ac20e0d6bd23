// Package vcode computes vote verification codes.
//
// A verification code is a one-way, deterministic digest of the voter, the
// election and the accepted cast timestamp. It is stamped onto each vote at
// insert time; callers never supply it and cannot forge one without the
// exact triple.
package vcode

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/sha3"
)

// Compute returns the hex-encoded SHA3-256 digest of
// (voterID, electionID, castAt). The timestamp is folded in as UTC
// nanoseconds so equal instants in different zones yield the same code.
func Compute(voterID, electionID uuid.UUID, castAt time.Time) string {
	h := sha3.New256()
	h.Write(voterID.Bytes())
	h.Write(electionID.Bytes())

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(castAt.UTC().UnixNano()))
	h.Write(ts[:])

	return hex.EncodeToString(h.Sum(nil))
}
