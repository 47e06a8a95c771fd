package api

import "time"

// Person is an entry in the caller's address book.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreatePersonRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Note  string `json:"note,omitempty"`
}

type CreatePersonResponse struct {
	Person *Person `json:"person"`
}

type GetPersonRequest struct {
	PersonID string `json:"personId"`
}

type GetPersonResponse struct {
	Person *Person `json:"person"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []*Person `json:"people"`
}

type UpdatePersonRequest struct {
	PersonID string `json:"personId"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Note     string `json:"note,omitempty"`
}

type UpdatePersonResponse struct {
	Person *Person `json:"person"`
}

type DeletePersonRequest struct {
	PersonID string `json:"personId"`
}

type DeletePersonResponse struct{}
