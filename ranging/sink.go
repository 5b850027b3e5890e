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

import "github.com/uwb-go/dw1000/mac"

// StatsSink is the counter collaborator the engine reports through; both
// ranging/stats.Stats (JSON/HTTP) and ranging/stats.PrometheusStats
// implement it, so the engine depends on neither concretely.
type StatsSink interface {
	IncFramesSent(t mac.MessageType)
	IncFramesReceived(t mac.MessageType)
	IncRangeComputed()
	IncProtocolFailed()
	IncPeerEvicted()
	IncPeerInactive()
}

// NopStats is a StatsSink that discards everything; used where no
// observability collaborator is wired (e.g. unit tests).
type NopStats struct{}

func (NopStats) IncFramesSent(mac.MessageType)     {}
func (NopStats) IncFramesReceived(mac.MessageType) {}
func (NopStats) IncRangeComputed()                 {}
func (NopStats) IncProtocolFailed()                {}
func (NopStats) IncPeerEvicted()                   {}
func (NopStats) IncPeerInactive()                  {}
