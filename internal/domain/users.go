package domain

import "github.com/google/uuid"

type Users struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserName     string    `db:"user_name" json:"username"`
	DisplayName  string    `db:"display_name" json:"name"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Email        *string   `db:"email" json:"email,omitempty"`
	AuthProvider string    `db:"auth_provider" json:"-"`
	GoogleID     *string   `db:"google_id" json:"-"`
	// Virtual marks the synthetic user that fronts a group hand-in.
	Virtual bool `db:"virtual" json:"virtual"`
}

type UsersTable struct {
	ID           string
	UserName     string
	DisplayName  string
	PasswordHash string
	Email        string
	AuthProvider string
	GoogleID     string
	Virtual      string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:           "id",
		UserName:     "user_name",
		DisplayName:  "display_name",
		PasswordHash: "password_hash",
		Email:        "email",
		AuthProvider: "auth_provider",
		GoogleID:     "google_id",
		Virtual:      "virtual",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}
