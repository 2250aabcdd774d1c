package models

// Team roles that carry management permission.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Team is the team detail returned by the remote API.
type Team struct {
	ID     string `json:"_id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar"`
	Type   string `json:"type,omitempty" yaml:"type"` // "company" or "study_group"
	Role   string `json:"role,omitempty" yaml:"role"` // caller's role in the team
}

// CanManage reports whether the caller may add, remove or customize roadmaps.
func (t *Team) CanManage() bool {
	if t == nil {
		return false
	}
	return t.Role == RoleAdmin || t.Role == RoleManager
}
