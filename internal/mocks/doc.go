// Package mocks provides hand-written test doubles for the store and service
// interfaces.
//
// Each mock has a function field per interface method. A nil field falls
// back to a simple default: store mocks keep entities in maps, so a test
// only overrides the calls it cares about.
//
//	cards := mocks.NewMockCardStore()
//	cards.UpdateScheduleFn = func(ctx context.Context, c *domain.Card, v int) error {
//	    return store.ErrConcurrentUpdate
//	}
package mocks
