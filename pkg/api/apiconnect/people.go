package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplitter/pkg/api"
)

// PeopleServiceName is the fully-qualified name of the PeopleService service.
const PeopleServiceName = "billsplitter.v1.PeopleService"

// Procedure paths of the PeopleService RPCs.
const (
	PeopleServiceCreatePersonProcedure = "/billsplitter.v1.PeopleService/CreatePerson"
	PeopleServiceGetPersonProcedure    = "/billsplitter.v1.PeopleService/GetPerson"
	PeopleServiceListPeopleProcedure   = "/billsplitter.v1.PeopleService/ListPeople"
	PeopleServiceUpdatePersonProcedure = "/billsplitter.v1.PeopleService/UpdatePerson"
	PeopleServiceDeletePersonProcedure = "/billsplitter.v1.PeopleService/DeletePerson"
)

// PeopleServiceClient is a client for the billsplitter.v1.PeopleService service.
type PeopleServiceClient interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	GetPerson(context.Context, *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	UpdatePerson(context.Context, *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error)
}

// NewPeopleServiceClient constructs a client for the billsplitter.v1.PeopleService service.
func NewPeopleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PeopleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &peopleServiceClient{
		createPerson: connect.NewClient[api.CreatePersonRequest, api.CreatePersonResponse](httpClient, baseURL+PeopleServiceCreatePersonProcedure, opts...),
		getPerson:    connect.NewClient[api.GetPersonRequest, api.GetPersonResponse](httpClient, baseURL+PeopleServiceGetPersonProcedure, opts...),
		listPeople:   connect.NewClient[api.ListPeopleRequest, api.ListPeopleResponse](httpClient, baseURL+PeopleServiceListPeopleProcedure, opts...),
		updatePerson: connect.NewClient[api.UpdatePersonRequest, api.UpdatePersonResponse](httpClient, baseURL+PeopleServiceUpdatePersonProcedure, opts...),
		deletePerson: connect.NewClient[api.DeletePersonRequest, api.DeletePersonResponse](httpClient, baseURL+PeopleServiceDeletePersonProcedure, opts...),
	}
}

type peopleServiceClient struct {
	createPerson *connect.Client[api.CreatePersonRequest, api.CreatePersonResponse]
	getPerson    *connect.Client[api.GetPersonRequest, api.GetPersonResponse]
	listPeople   *connect.Client[api.ListPeopleRequest, api.ListPeopleResponse]
	updatePerson *connect.Client[api.UpdatePersonRequest, api.UpdatePersonResponse]
	deletePerson *connect.Client[api.DeletePersonRequest, api.DeletePersonResponse]
}

func (c *peopleServiceClient) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	return c.createPerson.CallUnary(ctx, req)
}

func (c *peopleServiceClient) GetPerson(ctx context.Context, req *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error) {
	return c.getPerson.CallUnary(ctx, req)
}

func (c *peopleServiceClient) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *peopleServiceClient) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error) {
	return c.updatePerson.CallUnary(ctx, req)
}

func (c *peopleServiceClient) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	return c.deletePerson.CallUnary(ctx, req)
}

// PeopleServiceHandler is implemented by the server side of billsplitter.v1.PeopleService.
type PeopleServiceHandler interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	GetPerson(context.Context, *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	UpdatePerson(context.Context, *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error)
}

// NewPeopleServiceHandler builds an HTTP handler from the service implementation.
func NewPeopleServiceHandler(svc PeopleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withHandlerCodec(opts)
	return "/" + PeopleServiceName + "/", routes{
		PeopleServiceCreatePersonProcedure: connect.NewUnaryHandler(PeopleServiceCreatePersonProcedure, svc.CreatePerson, opts...),
		PeopleServiceGetPersonProcedure:    connect.NewUnaryHandler(PeopleServiceGetPersonProcedure, svc.GetPerson, opts...),
		PeopleServiceListPeopleProcedure:   connect.NewUnaryHandler(PeopleServiceListPeopleProcedure, svc.ListPeople, opts...),
		PeopleServiceUpdatePersonProcedure: connect.NewUnaryHandler(PeopleServiceUpdatePersonProcedure, svc.UpdatePerson, opts...),
		PeopleServiceDeletePersonProcedure: connect.NewUnaryHandler(PeopleServiceDeletePersonProcedure, svc.DeletePerson, opts...),
	}
}

// UnimplementedPeopleServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedPeopleServiceHandler struct{}

func (UnimplementedPeopleServiceHandler) CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	return nil, unimplemented(PeopleServiceCreatePersonProcedure)
}

func (UnimplementedPeopleServiceHandler) GetPerson(context.Context, *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error) {
	return nil, unimplemented(PeopleServiceGetPersonProcedure)
}

func (UnimplementedPeopleServiceHandler) ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	return nil, unimplemented(PeopleServiceListPeopleProcedure)
}

func (UnimplementedPeopleServiceHandler) UpdatePerson(context.Context, *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error) {
	return nil, unimplemented(PeopleServiceUpdatePersonProcedure)
}

func (UnimplementedPeopleServiceHandler) DeletePerson(context.Context, *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	return nil, unimplemented(PeopleServiceDeletePersonProcedure)
}
