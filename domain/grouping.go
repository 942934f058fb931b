package domain

// PersonalGroupingName identifies the implicit default grouping every user
// gets. It is flagged once when the grouping list is loaded; use sites check
// IsPersonal instead of comparing names.
const PersonalGroupingName = "Personal"

// Grouping is a named, colored collection that tasks and users belong to.
type Grouping struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DefaultColor string `json:"default_color"`
	CreatedBy    string `json:"created_by"`
	IsPersonal   bool   `json:"is_personal"`
}

// Membership relates a user to a grouping with a role label. Name is the
// member's profile display name, filled in when a roster is assembled.
type Membership struct {
	UserID     string `json:"user_id"`
	GroupingID string `json:"grouping_id"`
	Name       string `json:"name,omitempty"`
	Role       string `json:"role"`
}

// Admissible membership roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
