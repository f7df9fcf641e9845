package model

// Field names reported in changedFields on partial updates. They match
// the JSON keys of Friend.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldDOB       = "dob"
)

// Friend is a record in the friend store, keyed by email. DOB is an
// opaque DD-MM-YYYY string and is not date-validated.
type Friend struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DOB       string `json:"dob"`
}

// FriendUpdate carries a partial update. Nil fields are left untouched.
type FriendUpdate struct {
	FirstName *string
	LastName  *string
	DOB       *string
}
