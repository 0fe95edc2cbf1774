// Package pkg holds the libraries behind pixelgrid, a translucent layout grid
// drawn over web pages.
//
// # Overview
//
// A grid is described by [settings.GridSettings]: a baseline, inner and outer
// column widths, a color with an opacity, an offset, a stacking order and a
// visibility flag. The packages turn those settings into the style of a single
// fixed-position overlay element and keep that element in sync with a page.
//
// # Data Flow
//
//	settings.Repository (memory, file, redis, mongo)
//	         ↓
//	    channel (in-process or HTTP message with ack)
//	         ↓
//	    overlay.Controller (mount, re-render, unmount)
//	         ↓
//	    placement + background (viewport → overlay style)
//	         ↓
//	    overlay.Host (in-memory page or Chrome via chromedp)
//
// # Packages
//
//   - [units]: CSS length parsing and the baseline-relative conversion
//   - [geometry]: column width and overall grid width for a viewport
//   - [background]: the four gradient layers and color conversion
//   - [placement]: clipping to the viewport and the overlay style
//   - [settings]: the settings record, validation, codecs and the repository
//   - [storage]: key/value stores for persisted settings
//   - [channel]: delivery of settings messages to the page
//   - [overlay]: the overlay lifecycle against a page host
//   - [errors]: coded errors shared by every package
//   - [httputil]: JSON helpers and retries for the HTTP surfaces
//   - [observability]: hooks for storage, channel and render events
//   - [buildinfo]: version information
//
// # Quick Start
//
// Compute the overlay style for a 1280×800 viewport:
//
//	s := settings.Reset().WithBaseLine("4px")
//	style, ok := placement.Compute(placement.Viewport{Width: 1280, Height: 800}, s)
//	if ok {
//	    fmt.Println(style.Rule("#" + placement.ElementID))
//	}
package pkg
