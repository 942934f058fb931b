package transport

// AuthLoginRequest starts a session for an authenticated user id.
type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds,omitempty"`
}

// RefreshRequest extends an existing session.
type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds,omitempty"`
}

// LogoutRequest revokes a session.
type LogoutRequest struct {
	SessionID string `json:"session_id"`
}

// TaskRequest carries a task draft or patch. Instants are RFC3339 strings.
type TaskRequest struct {
	Title        string `json:"title"`
	Start        string `json:"start_date_time"`
	End          string `json:"end_date_time"`
	Location     string `json:"location,omitempty"`
	GroupingID   string `json:"grouping_id"`
	Notes        string `json:"notes,omitempty"`
	Priority     string `json:"priority,omitempty"`
	Notification string `json:"notification,omitempty"`
	IsComplete   bool   `json:"is_complete"`
	CompletedBy  string `json:"completed_by,omitempty"`
}

// GroupCreateRequest starts the group-creation flow.
type GroupCreateRequest struct {
	Name         string   `json:"name"`
	DefaultColor string   `json:"default_color"`
	MemberIDs    []string `json:"member_ids,omitempty"`
}

// GroupRenameRequest changes a grouping's display name.
type GroupRenameRequest struct {
	Name string `json:"name"`
}

// GroupMembersRequest enrolls users into an existing grouping.
type GroupMembersRequest struct {
	MemberIDs []string `json:"member_ids"`
}

// FilterRequest replaces the user's filter selection.
type FilterRequest struct {
	GroupingIDs []string `json:"grouping_ids"`
}

// PeriodRequest sets the display period.
type PeriodRequest struct {
	Period string `json:"period"`
}

// ProfileUpdateRequest upserts the caller's profile.
type ProfileUpdateRequest struct {
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
