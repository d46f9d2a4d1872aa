package recommendation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

const recommendationRules = `Recommendation Rules:
- Consider their current emotional state AND intensity, including arousal and valence
- Factor in time of day (e.g., coherent better for morning routine, 4-7-8 for bedtime)
- Use past effectiveness data - if a technique consistently works for them, prioritize it
- Detect patterns (e.g., "stressed every Monday afternoon" -> proactive recommendation)
- Balance variety and what works (don't always recommend the same technique)
- For first-time users, start with the technique that matches the mood best
- Respect contraindications: never pair a very-low arousal state with a technique that relies on a long active exhale`

const responseContract = `Return ONLY valid JSON (no markdown, no explanation):
{
  "technique": "4-7-8" | "box" | "coherent",
  "reasoning": "One clear sentence why this is best right now",
  "personalNote": "One sentence connecting to their history or patterns (or encouraging note for first session)",
  "confidence": integer between 0 and 100
}`

// BuildPrompt renders rc as the natural-language request sent to the model.
func BuildPrompt(rc Context) string {
	var b strings.Builder

	b.WriteString("You are a breathing exercise advisor for a mindfulness app.\n\n")

	b.WriteString("Current Context:\n")
	fmt.Fprintf(&b, "- Mood: %s (intensity: %d/10)\n", rc.Mood.Emotion, rc.Mood.Intensity)
	fmt.Fprintf(&b, "- Arousal: %s, valence: %s\n", rc.Profile.Arousal, rc.Profile.Valence)
	if rc.Profile.Guidance != "" {
		fmt.Fprintf(&b, "- Emotion notes: %s\n", rc.Profile.Guidance)
	}
	fmt.Fprintf(&b, "- Time: %s (%s)\n", rc.TimeOfDay, calendar.DayName(rc.DayOfWeek))
	fmt.Fprintf(&b, "- Sessions completed: %d\n", rc.TotalSessions)
	fmt.Fprintf(&b, "- Current streak: %d days\n", rc.CurrentStreak)
	fmt.Fprintf(&b, "- Recent patterns: %s\n", indentJSON(patternsForPrompt(rc)))
	fmt.Fprintf(&b, "- What's worked before: %s\n", indentJSON(effectivenessForPrompt(rc)))
	fmt.Fprintf(&b, "- Last %d days: %s\n\n", RecentWindowDays, indentJSON(rc.RecentSessions))

	b.WriteString("Available Techniques:\n")
	for i, tech := range domain.Techniques() {
		p, _ := tech.Profile()
		fmt.Fprintf(&b, "%d. %s (%d min, %d cycles) [key: %q]\n", i+1, p.Name, p.DurationSeconds/60, p.Cycles, tech)
		fmt.Fprintf(&b, "   - Best for: %s\n", strings.Join(p.BestFor, ", "))
		fmt.Fprintf(&b, "   - Mechanism: %s\n", p.Mechanism)
		fmt.Fprintf(&b, "   - Evidence: %s\n", p.Evidence)
		if p.Contraindications != "" {
			fmt.Fprintf(&b, "   - Contraindications: %s\n", p.Contraindications)
		}
		b.WriteString("\n")
	}

	b.WriteString(recommendationRules)
	b.WriteString("\n\n")
	b.WriteString(responseContract)

	return b.String()
}

// patternsForPrompt swaps weekday indexes for names.
func patternsForPrompt(rc Context) map[string]any {
	out := map[string]any{}
	if len(rc.Patterns.EmotionsByDay) > 0 {
		days := make([]int, 0, len(rc.Patterns.EmotionsByDay))
		for d := range rc.Patterns.EmotionsByDay {
			days = append(days, d)
		}
		sort.Ints(days)
		byDay := make(map[string]domain.Emotion, len(days))
		for _, d := range days {
			byDay[calendar.DayName(d)] = rc.Patterns.EmotionsByDay[d]
		}
		out["emotionsByDay"] = byDay
	}
	if rc.Patterns.PreferredTimeOfDay != "" {
		out["preferredTimeOfDay"] = rc.Patterns.PreferredTimeOfDay
	}
	if rc.Patterns.MostUsedTechnique != "" {
		out["mostUsedTechnique"] = rc.Patterns.MostUsedTechnique
	}
	return out
}

func effectivenessForPrompt(rc Context) map[string]any {
	out := make(map[string]any, len(rc.Effectiveness))
	for tech, st := range rc.Effectiveness {
		if st == nil {
			out[string(tech)] = nil
			continue
		}
		out[string(tech)] = st
	}
	return out
}

func indentJSON(v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(raw)
}
