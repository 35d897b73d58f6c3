package wizard

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/model"
)

// Summary renders the plain-text preview shown by the Preview action.
func Summary(step Step, doc model.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Step %d of %d: %s\n", int(step)+1, StepCount, step.Title())
	fmt.Fprintf(&b, "Name:  %s\n", orPlaceholder(doc.Name, "Your Name"))
	fmt.Fprintf(&b, "Title: %s\n", orPlaceholder(doc.Title, "Your Title"))
	fmt.Fprintf(&b, "Bio:   %s\n", orPlaceholder(firstLine(doc.Bio), "Your bio will appear here..."))
	if doc.ProfileImage != "" {
		b.WriteString("Photo: set\n")
	}

	fmt.Fprintf(&b, "Projects (%d):\n", len(doc.Projects))
	for i, project := range doc.Projects {
		fmt.Fprintf(&b, "  %d. %s", i+1, orPlaceholder(project.Title, fmt.Sprintf("Project %d", i+1)))
		var badges []string
		if project.LiveLink != "" {
			badges = append(badges, "Live Demo")
		}
		if project.GitHubLink != "" {
			badges = append(badges, "GitHub")
		}
		if len(badges) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(badges, ", "))
		}
		b.WriteString("\n")
	}

	var channels []string
	for _, spec := range model.ContactChannels() {
		if value, _ := doc.Contacts.Get(spec.Channel); value != "" {
			channels = append(channels, spec.Label)
		}
	}
	if len(channels) == 0 {
		b.WriteString("Contacts: none")
	} else {
		b.WriteString("Contacts: " + strings.Join(channels, ", "))
	}
	return b.String()
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func firstLine(value string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(value), "\n")
	return line
}
