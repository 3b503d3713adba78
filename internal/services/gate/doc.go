// Package gate hosts the access-gated signals service: the public affiliate
// postback endpoint, the admin grant and unlock paths, trader verification,
// and the guarded signals API.
package gate
