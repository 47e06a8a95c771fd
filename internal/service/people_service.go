package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/asaskevich/govalidator"

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
	"github.com/mmynk/billsplitter/pkg/api"
	"github.com/mmynk/billsplitter/pkg/api/apiconnect"
)

var (
	errInvalidName  = errors.New("name must be 1-50 characters")
	errInvalidPhone = errors.New("phone must be exactly 11 digits")
	errInvalidEmail = errors.New("invalid email address")
	errNoteTooLong  = errors.New("note must be at most 500 characters")
	errPersonID     = errors.New("person_id required")
)

// PeopleService implements the Connect PeopleService: each user's address book.
type PeopleService struct {
	apiconnect.UnimplementedPeopleServiceHandler
	store storage.PersonStore
}

// NewPeopleService creates a new PeopleService with the given storage backend.
func NewPeopleService(store storage.PersonStore) *PeopleService {
	return &PeopleService{store: store}
}

// personFields is the editable part of a person, normalised.
type personFields struct {
	name, phone, email, note string
}

func newPersonFields(name, phone, email, note string) personFields {
	return personFields{
		name:  strings.TrimSpace(name),
		phone: strings.TrimSpace(phone),
		email: strings.TrimSpace(email),
		note:  strings.TrimSpace(note),
	}
}

func (f personFields) validate() error {
	if !govalidator.StringLength(f.name, "1", "50") {
		return errInvalidName
	}
	if f.phone != "" && (len(f.phone) != 11 || !govalidator.IsNumeric(f.phone)) {
		return errInvalidPhone
	}
	if f.email != "" && !govalidator.IsEmail(f.email) {
		return errInvalidEmail
	}
	if !govalidator.StringLength(f.note, "0", "500") {
		return errNoteTooLong
	}
	return nil
}

// CreatePerson adds a person to the caller's address book.
func (s *PeopleService) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreatePerson request received", "user_id", userID)

	fields := newPersonFields(req.Msg.Name, req.Msg.Phone, req.Msg.Email, req.Msg.Note)
	if err := fields.validate(); err != nil {
		return nil, invalidArgument(err)
	}

	person := &models.Person{
		UserID: userID,
		Name:   fields.name,
		Phone:  fields.phone,
		Email:  fields.email,
		Note:   fields.note,
	}
	if err := s.store.CreatePerson(ctx, person); err != nil {
		return nil, storeError("CreatePerson", err)
	}

	slog.Info("Person created", "person_id", person.ID)
	return connect.NewResponse(&api.CreatePersonResponse{Person: toAPIPerson(person)}), nil
}

// GetPerson retrieves one of the caller's people.
func (s *PeopleService) GetPerson(ctx context.Context, req *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.PersonID == "" {
		return nil, invalidArgument(errPersonID)
	}

	person, err := s.store.GetPerson(ctx, userID, req.Msg.PersonID)
	if err != nil {
		return nil, storeError("GetPerson", err)
	}
	return connect.NewResponse(&api.GetPersonResponse{Person: toAPIPerson(person)}), nil
}

// ListPeople returns the caller's address book, newest first.
func (s *PeopleService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	people, err := s.store.ListPeople(ctx, userID)
	if err != nil {
		return nil, storeError("ListPeople", err)
	}

	out := make([]*api.Person, len(people))
	for i, p := range people {
		out[i] = toAPIPerson(p)
	}
	return connect.NewResponse(&api.ListPeopleResponse{People: out}), nil
}

// UpdatePerson replaces the editable fields of a person.
func (s *PeopleService) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdatePerson request received", "user_id", userID, "person_id", req.Msg.PersonID)

	if req.Msg.PersonID == "" {
		return nil, invalidArgument(errPersonID)
	}
	fields := newPersonFields(req.Msg.Name, req.Msg.Phone, req.Msg.Email, req.Msg.Note)
	if err := fields.validate(); err != nil {
		return nil, invalidArgument(err)
	}

	person, err := s.store.GetPerson(ctx, userID, req.Msg.PersonID)
	if err != nil {
		return nil, storeError("UpdatePerson", err)
	}
	person.Name = fields.name
	person.Phone = fields.phone
	person.Email = fields.email
	person.Note = fields.note

	if err := s.store.UpdatePerson(ctx, person); err != nil {
		return nil, storeError("UpdatePerson", err)
	}
	return connect.NewResponse(&api.UpdatePersonResponse{Person: toAPIPerson(person)}), nil
}

// DeletePerson removes a person who is not on any bill.
func (s *PeopleService) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeletePerson request received", "user_id", userID, "person_id", req.Msg.PersonID)

	if req.Msg.PersonID == "" {
		return nil, invalidArgument(errPersonID)
	}
	if err := s.store.DeletePerson(ctx, userID, req.Msg.PersonID); err != nil {
		return nil, storeError("DeletePerson", err)
	}
	return connect.NewResponse(&api.DeletePersonResponse{}), nil
}
