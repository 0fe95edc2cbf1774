// Package overlay keeps the grid element on a page in sync with settings.
//
// A [Controller] owns the element's lifecycle:
//
//	Unmounted --visible settings--> Mounted
//	Mounted   --visible settings--> Mounted (restyled in place)
//	Mounted   --resize-----------> Mounted (restyled in place)
//	Mounted   --hidden settings---> Unmounted
//
// Every render recomputes the placement from the latest settings and
// viewport; nothing derived is cached between renders. The page itself is
// reached through the [Host] and [Element] interfaces. [MemoryHost] records
// renders in memory; package browser drives a real Chrome page.
package overlay
