// Package event classifies affiliate postback event names into record
// effects. Classification is a pure function so the webhook contract stays
// testable without a store.
package event

import "strings"

// Effects captures the trader record flags a classified event asserts.
// Categories are not exclusive; one event may set both flags.
type Effects struct {
	Registered bool
	FTD        bool
}

// vocabulary maps the event names agreed with the affiliate platform.
// Anything the platform sends outside this table goes through the
// substring heuristics below, which keep legacy postback formats working.
var vocabulary = map[string]Effects{
	"reg":             {Registered: true},
	"registration":    {Registered: true},
	"signup":          {Registered: true},
	"confirm":         {Registered: true},
	"confirmed_email": {Registered: true},
	"email_confirmed": {Registered: true},
	"ftd":             {FTD: true},
	"deposit":         {FTD: true},
	"redeposit":       {FTD: true},
	"repeat_deposit":  {FTD: true},
}

// registrationMarkers flag registration-class and email-confirmation-class
// events; both unlock the registered flag.
var registrationMarkers = []string{"reg", "registration", "signup", "email", "confirm", "confirmed"}

// depositMarkers flag deposit-class events.
var depositMarkers = []string{"ftd", "dep", "deposit", "redep", "re-dep", "repeat"}

// Classify maps a raw postback event name to its record effects. Unknown
// names produce zero effects; the ingestion endpoint still accepts them as
// a bare registration touch.
func Classify(raw string) Effects {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return Effects{}
	}
	if effects, ok := vocabulary[name]; ok {
		return effects
	}

	var effects Effects
	for _, marker := range registrationMarkers {
		if strings.Contains(name, marker) {
			effects.Registered = true
			break
		}
	}
	for _, marker := range depositMarkers {
		if strings.Contains(name, marker) {
			effects.FTD = true
			break
		}
	}
	return effects
}
