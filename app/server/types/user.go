package types

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=256"` // 上限只用于限制哈希输入的长度
	Nickname string `json:"nickname" validate:"required,max=50"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// 资料更新为部分更新，没有出现的字段保持不变
type ProfileUpdateRequest struct {
	Nickname *string   `json:"nickname" validate:"omitempty,min=1,max=50"`
	Avatar   *string   `json:"avatar" validate:"omitempty,max=2048"`
	Bio      *string   `json:"bio" validate:"omitempty,max=1000"`
	Links    *[]string `json:"links" validate:"omitempty,max=10,dive,url"`
}

type UserProfile struct {
	ID       uint     `json:"id"`
	Email    string   `json:"email"`
	Nickname string   `json:"nickname"`
	Avatar   string   `json:"avatar"`
	Bio      string   `json:"bio"`
	Links    []string `json:"links"`
}

type AuthToken struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
