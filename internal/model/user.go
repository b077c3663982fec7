package model

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
	IsAdmin    bool   `json:"is_admin"`
}

// UserPatch частичное обновление пользователя
type UserPatch struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
	IsAdmin    *bool   `json:"is_admin,omitempty"`
}

func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
	return u
}
