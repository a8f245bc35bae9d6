package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	Base
	Username  string   `db:"username"`
	Email     string   `db:"email"`
	FirstName *string  `db:"first_name"`
	LastName  *string  `db:"last_name"`
	Bio       *string  `db:"bio"`
	Role      UserRole `db:"role"`
	// bcrypt hash of the pending confirmation code; nil once spent
	ConfirmationHash *string `db:"confirmation_hash"`
	Confirmed        bool    `db:"confirmed"`
}
