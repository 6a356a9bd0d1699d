package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID         string `json:"userId"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email"`
	Password   string `json:"-"`
	Role       string `json:"role,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
