//go:build ios || android

package mobile

import "golang.org/x/mobile/app"

// Pump feeds every event of a through t until the event channel closes.
// Events the translator does not consume go to other, which may be nil.
func Pump(a app.App, t *Translator, other func(any)) {
	for e := range a.Events() {
		e = a.Filter(e)
		if !t.HandleNative(e) && other != nil {
			other(e)
		}
	}
}
