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

// Callbacks is the set of application hooks the engine invokes
// synchronously from Poll, per spec.md §6.4. Every field is optional; a
// nil field is simply not called. Callback bodies must not call back
// into the Engine or Coordinator reentrantly.
type Callbacks struct {
	// OnNewRange fires when a fresh distance is computed for peer.
	OnNewRange func(peer *Peer)
	// OnBlinkDevice fires on the anchor the first time a tag is heard.
	OnBlinkDevice func(peer *Peer)
	// OnNewDevice fires on the tag when RANGING_INIT is received, or on
	// the anchor when a POLL arrives from a previously-unknown peer.
	OnNewDevice func(peer *Peer)
	// OnInactiveDevice fires when a peer is evicted by the inactivity
	// sweep.
	OnInactiveDevice func(peer *Peer)
	// OnEvictedOnFull fires when a peer is displaced by quality-based
	// eviction on a full table.
	OnEvictedOnFull func(peer *Peer)
}

func (c *Callbacks) fireNewRange(p *Peer) {
	if c.OnNewRange != nil {
		c.OnNewRange(p)
	}
}

func (c *Callbacks) fireBlinkDevice(p *Peer) {
	if c.OnBlinkDevice != nil {
		c.OnBlinkDevice(p)
	}
}

func (c *Callbacks) fireNewDevice(p *Peer) {
	if c.OnNewDevice != nil {
		c.OnNewDevice(p)
	}
}

func (c *Callbacks) fireInactiveDevice(p *Peer) {
	if c.OnInactiveDevice != nil {
		c.OnInactiveDevice(p)
	}
}

func (c *Callbacks) fireEvictedOnFull(p *Peer) {
	if c.OnEvictedOnFull != nil {
		c.OnEvictedOnFull(p)
	}
}
