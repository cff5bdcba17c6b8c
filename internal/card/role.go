package card

import "strings"

// DefaultRole is returned when no keyword matches.
const DefaultRole = "Community Member"

// RoleCategory is a role label with the keywords that select it.
type RoleCategory struct {
	Role     string
	Keywords []string
}

// RoleTable is an ordered list of categories. Order matters: the first
// category with a matching keyword wins.
type RoleTable []RoleCategory

// BioRoles classifies profile bios from the account lookup.
var BioRoles = RoleTable{
	{Role: "Developer", Keywords: []string{"develop", "engineer", "programmer"}},
	{Role: "Designer", Keywords: []string{"design", "ui", "ux"}},
	{Role: "Content Creator", Keywords: []string{"content", "creator", "writer"}},
	{Role: "Educator", Keywords: []string{"teach", "educator", "coach"}},
	{Role: "Community Builder", Keywords: []string{"community", "manager", "advocate"}},
	{Role: "Marketer", Keywords: []string{"marketing", "growth", "brand"}},
}

// ContributionRoles classifies the free-text contribution of the manual form.
var ContributionRoles = RoleTable{
	{Role: "Developer", Keywords: []string{"develop", "code", "coding", "programming", "engineer"}},
	{Role: "Designer", Keywords: []string{"design", "ui", "ux"}},
	{Role: "Content Creator", Keywords: []string{"content", "write", "blog"}},
	{Role: "Educator", Keywords: []string{"teach", "educate", "tutorial"}},
	{Role: "Community Builder", Keywords: []string{"community", "moderate", "manage"}},
}

// Classify returns the role for text, matching keywords as
// case-insensitive substrings.
func (t RoleTable) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, c := range t {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Role
			}
		}
	}
	return DefaultRole
}

// ClassifyRole is Classify as a plain function.
func ClassifyRole(table RoleTable, text string) string {
	return table.Classify(text)
}
