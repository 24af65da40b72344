// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package params provides a synchronous parameter registry with
// subscriptions. Callers register named parameters and subscribe callbacks
// to sets of them; Set invokes matching callbacks in subscription order
// before it returns. The registry does no locking and must be driven from
// a single goroutine.
package params

// Callback is invoked when a subscribed parameter changes. name is the
// parameter that changed and value its new value.
type Callback func(name string, value interface{})

// Registry holds named parameter values and their subscriptions.
type Registry struct {
	values map[string]interface{}
	subs   []*Subscription
	nextID int
}

// Subscription ties a callback to a set of parameter names.
type Subscription struct {
	registry *Registry
	id       int
	names    map[string]bool
	callback Callback
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string]interface{})}
}

// Set stores a parameter value and synchronously invokes every active
// subscription watching name, in the order the subscriptions were made.
// The value is stored before any callback runs, so callbacks observe the
// new state via Get.
func (r *Registry) Set(name string, value interface{}) {
	r.values[name] = value
	// Snapshot so a callback cancelling or subscribing mid-notification
	// does not disturb this round.
	active := make([]*Subscription, len(r.subs))
	copy(active, r.subs)
	for _, sub := range active {
		if sub.registry == nil {
			continue // cancelled during this round
		}
		if sub.names[name] {
			sub.callback(name, value)
		}
	}
}

// Get returns the current value of a parameter.
func (r *Registry) Get(name string) (interface{}, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Subscribe registers a callback for changes to any of the named
// parameters. The callback is not invoked for the current values, only for
// subsequent Set calls.
func (r *Registry) Subscribe(names []string, callback Callback) *Subscription {
	sub := &Subscription{
		registry: r,
		id:       r.nextID,
		names:    make(map[string]bool, len(names)),
		callback: callback,
	}
	r.nextID++
	for _, n := range names {
		sub.names[n] = true
	}
	r.subs = append(r.subs, sub)
	return sub
}

// Cancel removes the subscription. Cancelling twice is a no-op.
func (s *Subscription) Cancel() {
	if s.registry == nil {
		return
	}
	subs := s.registry.subs
	for i, sub := range subs {
		if sub.id == s.id {
			s.registry.subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	s.registry = nil
}
