// Package fault defines the closed set of failure classifications shared by
// provider adapters and resilience primitives.
//
// Every error produced inside this module carries a Kind. Retry policies and
// circuit breakers match on Kind sets rather than inspecting messages, so the
// taxonomy is deliberately closed: adapters map backend responses onto it and
// nothing else extends it.
//
//	resp, err := p.CreateChatCompletion(ctx, req)
//	if fault.Is(err, fault.KindRateLimited) {
//	    // back off
//	}
package fault
