package users

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Mobile  string `json:"mobile,omitempty"`
	Address string `json:"address,omitempty"`

	password string
}
