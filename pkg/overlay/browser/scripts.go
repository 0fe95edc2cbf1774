package browser

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/pixelgrid/pkg/placement"
)

// resizeBinding is the page function that reports viewport changes back to Go.
const resizeBinding = "pixelgridResize"

// measureScript reads the viewport size without scrollbars.
const measureScript = `[
  document.documentElement.clientWidth || window.innerWidth,
  document.documentElement.clientHeight || window.innerHeight
]`

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func jsProperties(props []placement.Property) string {
	if props == nil {
		return "[]"
	}
	b, _ := json.Marshal(props)
	return string(b)
}

func stylesheetScript() string {
	return fmt.Sprintf(`(() => {
  if (document.getElementById(%[1]s)) return false;
  const style = document.createElement('style');
  style.id = %[1]s;
  style.textContent = %[2]s;
  (document.head || document.documentElement).appendChild(style);
  return true;
})()`, jsString(placement.StylesheetID), jsString(placement.BaseStylesheet))
}

func mountScript() string {
	return fmt.Sprintf(`(() => {
  let el = document.getElementById(%[1]s);
  if (!el) {
    el = document.createElement(%[1]s);
    el.id = %[1]s;
    document.body.appendChild(el);
  }
  return true;
})()`, jsString(placement.ElementID))
}

func unmountScript() string {
	return fmt.Sprintf(`(() => {
  const el = document.getElementById(%s);
  if (!el) return false;
  el.remove();
  return true;
})()`, jsString(placement.ElementID))
}

func applyScript(style placement.Style) string {
	return fmt.Sprintf(`(() => {
  const el = document.getElementById(%s);
  if (!el) return false;
  el.removeAttribute('style');
  for (const p of %s) el.style.setProperty(p.name, p.value);
  return true;
})()`, jsString(placement.ElementID), jsProperties(style))
}

func annotateScript(attrs []placement.Property) string {
	return fmt.Sprintf(`(() => {
  const el = document.getElementById(%s);
  if (!el) return false;
  for (const p of %s) el.setAttribute(p.name, p.value);
  return true;
})()`, jsString(placement.ElementID), jsProperties(attrs))
}

func resizeScript() string {
	return fmt.Sprintf(`(() => {
  if (window.__pixelgridResizeInstalled) return;
  window.__pixelgridResizeInstalled = true;
  window.addEventListener('resize', () => {
    const report = window[%s];
    if (typeof report !== 'function') return;
    report(JSON.stringify({
      width: document.documentElement.clientWidth || window.innerWidth,
      height: document.documentElement.clientHeight || window.innerHeight
    }));
  });
})()`, jsString(resizeBinding))
}

// decodeViewport parses a resize binding payload.
func decodeViewport(payload string) (placement.Viewport, error) {
	var vp placement.Viewport
	if err := json.Unmarshal([]byte(payload), &vp); err != nil {
		return placement.Viewport{}, fmt.Errorf("decode resize payload: %w", err)
	}
	if vp.Width < 0 || vp.Height < 0 {
		return placement.Viewport{}, fmt.Errorf("negative viewport %dx%d", vp.Width, vp.Height)
	}
	return vp, nil
}
