package profiles

import (
	"fmt"
	"strings"
)

// RenderText flattens a profile into the plain-text form fed to the match
// engine. Sections with no entries are omitted.
func RenderText(p Profile) string {
	var b strings.Builder

	b.WriteString(p.FullName)
	if p.Headline != "" {
		b.WriteString(" - ")
		b.WriteString(p.Headline)
	}
	b.WriteString("\n")
	if p.Summary != "" {
		b.WriteString("\nSummary:\n")
		b.WriteString(p.Summary)
		b.WriteString("\n")
	}

	if len(p.WorkExperiences) > 0 {
		b.WriteString("\nWork experience:\n")
		for _, w := range p.WorkExperiences {
			b.WriteString("- ")
			b.WriteString(w.Title)
			b.WriteString(" at ")
			b.WriteString(w.Company)
			if w.StartDate != "" {
				end := "present"
				if w.EndDate != nil && *w.EndDate != "" {
					end = *w.EndDate
				}
				fmt.Fprintf(&b, " (%s to %s)", w.StartDate, end)
			}
			b.WriteString("\n")
			if w.Description != "" {
				b.WriteString("  ")
				b.WriteString(w.Description)
				b.WriteString("\n")
			}
		}
	}

	if len(p.Education) > 0 {
		b.WriteString("\nEducation:\n")
		for _, e := range p.Education {
			b.WriteString("- ")
			b.WriteString(e.School)
			if e.Degree != "" {
				b.WriteString(", ")
				b.WriteString(e.Degree)
			}
			if e.Field != "" {
				b.WriteString(" in ")
				b.WriteString(e.Field)
			}
			if e.StartYear != nil && e.EndYear != nil {
				fmt.Fprintf(&b, " (%d-%d)", *e.StartYear, *e.EndYear)
			}
			b.WriteString("\n")
		}
	}

	if len(p.Skills) > 0 {
		b.WriteString("\nSkills: ")
		names := make([]string, 0, len(p.Skills))
		for _, s := range p.Skills {
			names = append(names, s.Name)
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	if len(p.Languages) > 0 {
		b.WriteString("\nLanguages: ")
		parts := make([]string, 0, len(p.Languages))
		for _, l := range p.Languages {
			if l.Proficiency != nil && *l.Proficiency != "" {
				parts = append(parts, fmt.Sprintf("%s (%s)", l.Name, *l.Proficiency))
			} else {
				parts = append(parts, l.Name)
			}
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	return b.String()
}
