package user

import (
	"fmt"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCreator Role = "creator"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(raw string) (Theme, error) {
	switch t := Theme(raw); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme: %q", raw)
	}
}

type Language string

const (
	LanguageES Language = "es"
	LanguageEN Language = "en"
)

type Preferences struct {
	Theme         Theme    `json:"theme" yaml:"theme"`
	Notifications bool     `json:"notifications" yaml:"notifications"`
	Language      Language `json:"language" yaml:"language"`
}

type User struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Email       string      `json:"email" yaml:"email"`
	Avatar      *string     `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Role        Role        `json:"role" yaml:"role"`
	Preferences Preferences `json:"preferences" yaml:"preferences"`
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	c := *u
	if u.Avatar != nil {
		avatar := *u.Avatar
		c.Avatar = &avatar
	}

	return &c
}

func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}

	switch u.Role {
	case RoleAdmin, RoleManager, RoleCreator:
	default:
		return fmt.Errorf("unknown user role: %q", u.Role)
	}

	return nil
}
