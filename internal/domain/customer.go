package domain

import "time"

// Customer carries the identity and verification data the compliance checker
// needs. Account management itself lives outside this core.
type Customer struct {
	ID               string     `json:"id"`
	TenantID         string     `json:"-"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	LastIDVerifiedAt *time.Time `json:"lastIdVerifiedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// AgeAt computes the customer's age in whole years at the given instant,
// birthday-aware: the year is not counted until the birth month/day has
// passed. Returns false when no date of birth is recorded.
func (c *Customer) AgeAt(now time.Time) (int, bool) {
	if c.DateOfBirth == nil {
		return 0, false
	}
	dob := *c.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}
