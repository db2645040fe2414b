package advisor

import "strings"

// Prompt templates. Placeholders use {{name}} and are filled by render.
const (
	assistantTemplate = `You are a personal productivity assistant. Based on the schedule context below, answer the question concisely and practically.

{{context}}

Question: {{question}}`

	validationTemplate = `You are a scheduling reviewer. Check the plan below for unrealistic estimates, missing breaks and ordering problems. List concrete issues and suggested fixes, nothing else.

{{context}}`

	optimizationTemplate = `You are a scheduling assistant. The user reports: {{situation}}. Using the context below, propose a revised order for the remaining tasks, which ones to shorten or skip, and a realistic finish time.

{{context}}`

	planningTemplate = `You are a daily planning assistant. Using the context below, suggest a plan for the rest of the day: what to tackle next, where to place breaks, and what to defer to tomorrow. Goals stated by the user: {{goals}}

{{context}}`
)

func render(template string, vars map[string]string) string {
	out := template
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}
