package studio

import (
	"regexp"
	"strings"

	"github.com/voiceforge/voiceforge-go/pkg/voiceforge"
)

var speakerLine = regexp.MustCompile(`^([^:]+):\s*(.*)`)

// ParseScript splits screenplay text into speaker turns the way the server
// does, for display and pre-flight checks. A line of the form
// "Role: utterance" starts a turn; following lines without a role prefix
// continue the current turn. Blank lines and text before the first speaker
// line are annotation, not speech, and are dropped. The raw script string
// is what actually goes on the wire; the server's split is authoritative.
func ParseScript(script string) []voiceforge.PodcastSegment {
	var segments []voiceforge.PodcastSegment

	var speaker string
	var parts []string

	flush := func() {
		if speaker != "" && len(parts) > 0 {
			segments = append(segments, voiceforge.PodcastSegment{
				Speaker: speaker,
				Text:    strings.Join(parts, " "),
			})
		}
		parts = nil
	}

	for _, line := range strings.Split(strings.TrimSpace(script), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := speakerLine.FindStringSubmatch(line); m != nil {
			flush()
			speaker = strings.TrimSpace(m[1])
			if text := strings.TrimSpace(m[2]); text != "" {
				parts = append(parts, text)
			}
			continue
		}

		if speaker != "" {
			parts = append(parts, line)
		}
	}
	flush()

	return segments
}

// ScriptSpeakers returns the distinct speaker names of a script in first
// appearance order.
func ScriptSpeakers(script string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, seg := range ParseScript(script) {
		if !seen[seg.Speaker] {
			seen[seg.Speaker] = true
			names = append(names, seg.Speaker)
		}
	}
	return names
}
