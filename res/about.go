package res

// AboutContent contains the Markdown content for the About dialog.
// This is maintained separately for easy updates.
const AboutContent = `A real-time audio spectrum visualizer built with Go and Fyne.

**Display:**
- Frequency bars with a bass-driven glow
- Three concentric rings pulsing with the kick
- Live analysis of the playing stream, simulated motion when unavailable

**Shortcuts:**
- Ctrl/Cmd+Space toggles playback
`
