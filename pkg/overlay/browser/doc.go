// Package browser implements overlay.Host on a Chrome tab driven over the
// DevTools protocol.
//
// The overlay is a custom <nx-grid-overlay> element appended to the page
// body. Its inline style is replaced on every render, and the settings are
// mirrored as attributes so they can be inspected in DevTools. Window resizes
// are reported back through a runtime binding; see [Host.Resizes].
package browser
