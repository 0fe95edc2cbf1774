// Package channel carries settings from the panel to the page.
//
// Every message holds a complete [settings.GridSettings] record, never a
// diff, so the page can always render from the latest message alone. The
// page acknowledges each message with a [Response].
//
// Two transports are provided:
//
//   - [Local]: an in-process queue drained by a single [Local.Serve] loop.
//     Messages are handled in send order.
//   - [HTTPSender] and [NewHandler]: JSON over HTTP, for a panel running in a
//     different process than the page driver. Server errors and network
//     failures are retried with backoff.
//
// [settings.GridSettings]: github.com/matzehuels/pixelgrid/pkg/settings.GridSettings
package channel
