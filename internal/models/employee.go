package models

// Employee represents an employee entity.
// ID is assigned by the store and is zero until the record has been persisted.
type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Equal reports whether two employees carry the same first name, last name and email.
// The identifier is not part of the comparison.
func (e Employee) Equal(other Employee) bool {
	return e.FirstName == other.FirstName &&
		e.LastName == other.LastName &&
		e.Email == other.Email
}
