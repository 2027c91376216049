// Package mocks holds hand-written fakes for the store and auth interfaces,
// shared by the api, middleware and service tests.
//
// Most fakes are plain structs with exported fields for canned results and
// call counters:
//
//	codec := mocks.NewMockTokenCodec()
//	codec.Claims["good-token"] = "ana@example.com"
//	resolver := auth.NewIdentityResolver(mocks.NewMockUserStore(ana), 0)
//	gate, err := middleware.NewGate(codec, resolver, nil, nil)
//
// TestifyMockUserStore is the exception; it embeds testify's mock.Mock for
// tests that need argument matchers.
package mocks
