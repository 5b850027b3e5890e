/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ranging

import (
	"github.com/uwb-go/dw1000/mac"
)

// MaxDevices is the PeerTable's fixed capacity.
const MaxDevices = 12

// InsertResult reports how PeerTable.Insert handled a new peer.
type InsertResult int

const (
	// Inserted means the peer was appended to a free slot.
	Inserted InsertResult = iota
	// Replaced means the table was full and the peer displaced the
	// lowest-quality entry.
	Replaced
	// AlreadyPresent means a peer with this short address already exists;
	// the table was not modified.
	AlreadyPresent
)

// PeerTable is a bounded, dense-indexed set of known remote devices keyed
// by short address. All operations preserve two invariants: at most
// capacity entries, each with a distinct short address; and indices equal
// to physical slot positions ([0, count)).
type PeerTable struct {
	peers    []*Peer
	capacity int
}

// NewPeerTable returns an empty table that holds at most capacity peers
// (normally Config.MaxDevices, which Config.Validate restricts to
// [1, MaxDevices]). A capacity outside that range is replaced by MaxDevices.
func NewPeerTable(capacity int) *PeerTable {
	if capacity <= 0 || capacity > MaxDevices {
		capacity = MaxDevices
	}
	return &PeerTable{peers: make([]*Peer, 0, capacity), capacity: capacity}
}

// Len returns the current peer count.
func (t *PeerTable) Len() int { return len(t.peers) }

// All returns the live peers in index order. The slice must not be
// retained past the next mutating call.
func (t *PeerTable) All() []*Peer { return t.peers }

// Find performs a linear search for addr; the table is small enough that
// this is cheaper than any indexed structure.
func (t *PeerTable) Find(addr mac.ShortAddress) *Peer {
	for _, p := range t.peers {
		if p.ShortAddr == addr {
			return p
		}
	}
	return nil
}

// Insert adds peer to the table. If a peer with the same short address is
// already present, the table is unchanged and AlreadyPresent is returned.
// If the table has room, peer is appended and Inserted is returned. If the
// table is full, the entry with the lowest Quality is evicted (its slot is
// reused, preserving that slot's index) and Replaced is returned along
// with the evicted peer.
func (t *PeerTable) Insert(peer *Peer) (InsertResult, *Peer) {
	if t.Find(peer.ShortAddr) != nil {
		return AlreadyPresent, nil
	}
	if len(t.peers) < t.capacity {
		peer.index = len(t.peers)
		t.peers = append(t.peers, peer)
		return Inserted, nil
	}

	worst := 0
	for i, p := range t.peers {
		if p.Quality < t.peers[worst].Quality {
			worst = i
		}
	}
	evicted := t.peers[worst]
	peer.index = worst
	t.peers[worst] = peer
	return Replaced, evicted
}

// Remove deletes the peer at index using swap-remove with the last entry,
// reassigning that entry's index, then shrinking the slice.
func (t *PeerTable) Remove(index int) {
	n := len(t.peers)
	if index < 0 || index >= n {
		return
	}
	last := n - 1
	if index != last {
		t.peers[index] = t.peers[last]
		t.peers[index].index = index
	}
	t.peers[last] = nil
	t.peers = t.peers[:last]
}

// RemoveAddr removes the peer with the given short address, if present.
func (t *PeerTable) RemoveAddr(addr mac.ShortAddress) {
	for i, p := range t.peers {
		if p.ShortAddr == addr {
			t.Remove(i)
			return
		}
	}
}

// SweepInactive removes every peer whose last activity is older than
// inactivityMS relative to nowMS, invoking onInactive for each. Indices
// shift under swap-remove, so after each removal this re-examines the same
// slot (now holding the former last entry) rather than collecting indices
// up front, which would go stale after the first removal.
func (t *PeerTable) SweepInactive(nowMS int64, inactivityMS int64, onInactive func(*Peer)) {
	i := 0
	for i < len(t.peers) {
		p := t.peers[i]
		if nowMS-p.LastActivityMS > inactivityMS {
			t.Remove(i)
			if onInactive != nil {
				onInactive(p)
			}
			continue
		}
		i++
	}
}
