package upstream

import (
	"encoding/json"
	"time"
)

// One canonical schema per entity. The API is loose with field naming
// (e.g. fullName vs full_name), so normalization happens here, on ingress,
// and nowhere else.

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type AuthData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type Profile struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	FullName     string `json:"full_name"`
	Profession   string `json:"profession"`
	Age          int    `json:"age,omitempty"`
	Email        string `json:"email"`
	RoleName     string `json:"role_name,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// UnmarshalJSON accepts both snake_case and camelCase variants of the
// loosely named profile fields and folds them into the canonical ones.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type profileAlias Profile
	aux := struct {
		*profileAlias
		FullNameCamel     string `json:"fullName"`
		ProfileImageCamel string `json:"profileImage"`
		RoleNameCamel     string `json:"roleName"`
	}{profileAlias: (*profileAlias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if p.FullName == "" {
		p.FullName = aux.FullNameCamel
	}
	if p.ProfileImage == "" {
		p.ProfileImage = aux.ProfileImageCamel
	}
	if p.RoleName == "" {
		p.RoleName = aux.RoleNameCamel
	}

	return nil
}

type Project struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description"`
	ImageURL     string       `json:"image_url,omitempty"`
	Featured     bool         `json:"featured,omitempty"`
	Technologies []Technology `json:"technologies,omitempty"`
	CreatedAt    time.Time    `json:"created_at,omitempty"`
}

type Technology struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ContactMessage struct {
	ID        int       `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
