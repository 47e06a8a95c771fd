package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplitter/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "billsplitter.v1.BillService"

// Procedure paths of the BillService RPCs.
const (
	BillServicePreviewSplitProcedure             = "/billsplitter.v1.BillService/PreviewSplit"
	BillServiceCreateBillProcedure               = "/billsplitter.v1.BillService/CreateBill"
	BillServiceGetBillProcedure                  = "/billsplitter.v1.BillService/GetBill"
	BillServiceListBillsProcedure                = "/billsplitter.v1.BillService/ListBills"
	BillServiceUpdateBillProcedure               = "/billsplitter.v1.BillService/UpdateBill"
	BillServiceDeleteBillProcedure               = "/billsplitter.v1.BillService/DeleteBill"
	BillServiceUpdateBillStatusProcedure         = "/billsplitter.v1.BillService/UpdateBillStatus"
	BillServiceUpdateParticipantPaymentProcedure = "/billsplitter.v1.BillService/UpdateParticipantPayment"
	BillServiceGetStatisticsProcedure            = "/billsplitter.v1.BillService/GetStatistics"
	BillServiceGetBalancesProcedure              = "/billsplitter.v1.BillService/GetBalances"
)

// BillServiceClient is a client for the billsplitter.v1.BillService service.
type BillServiceClient interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	UpdateBillStatus(context.Context, *connect.Request[api.UpdateBillStatusRequest]) (*connect.Response[api.UpdateBillStatusResponse], error)
	UpdateParticipantPayment(context.Context, *connect.Request[api.UpdateParticipantPaymentRequest]) (*connect.Response[api.UpdateParticipantPaymentResponse], error)
	GetStatistics(context.Context, *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
}

// NewBillServiceClient constructs a client for the billsplitter.v1.BillService service.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &billServiceClient{
		previewSplit:             connect.NewClient[api.PreviewSplitRequest, api.PreviewSplitResponse](httpClient, baseURL+BillServicePreviewSplitProcedure, opts...),
		createBill:               connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		getBill:                  connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		listBills:                connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+BillServiceListBillsProcedure, opts...),
		updateBill:               connect.NewClient[api.UpdateBillRequest, api.UpdateBillResponse](httpClient, baseURL+BillServiceUpdateBillProcedure, opts...),
		deleteBill:               connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](httpClient, baseURL+BillServiceDeleteBillProcedure, opts...),
		updateBillStatus:         connect.NewClient[api.UpdateBillStatusRequest, api.UpdateBillStatusResponse](httpClient, baseURL+BillServiceUpdateBillStatusProcedure, opts...),
		updateParticipantPayment: connect.NewClient[api.UpdateParticipantPaymentRequest, api.UpdateParticipantPaymentResponse](httpClient, baseURL+BillServiceUpdateParticipantPaymentProcedure, opts...),
		getStatistics:            connect.NewClient[api.GetStatisticsRequest, api.GetStatisticsResponse](httpClient, baseURL+BillServiceGetStatisticsProcedure, opts...),
		getBalances:              connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+BillServiceGetBalancesProcedure, opts...),
	}
}

type billServiceClient struct {
	previewSplit             *connect.Client[api.PreviewSplitRequest, api.PreviewSplitResponse]
	createBill               *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	getBill                  *connect.Client[api.GetBillRequest, api.GetBillResponse]
	listBills                *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	updateBill               *connect.Client[api.UpdateBillRequest, api.UpdateBillResponse]
	deleteBill               *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
	updateBillStatus         *connect.Client[api.UpdateBillStatusRequest, api.UpdateBillStatusResponse]
	updateParticipantPayment *connect.Client[api.UpdateParticipantPaymentRequest, api.UpdateParticipantPaymentResponse]
	getStatistics            *connect.Client[api.GetStatisticsRequest, api.GetStatisticsResponse]
	getBalances              *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
}

func (c *billServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateBillStatus(ctx context.Context, req *connect.Request[api.UpdateBillStatusRequest]) (*connect.Response[api.UpdateBillStatusResponse], error) {
	return c.updateBillStatus.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateParticipantPayment(ctx context.Context, req *connect.Request[api.UpdateParticipantPaymentRequest]) (*connect.Response[api.UpdateParticipantPaymentResponse], error) {
	return c.updateParticipantPayment.CallUnary(ctx, req)
}

func (c *billServiceClient) GetStatistics(ctx context.Context, req *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error) {
	return c.getStatistics.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

// BillServiceHandler is implemented by the server side of billsplitter.v1.BillService.
type BillServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	UpdateBillStatus(context.Context, *connect.Request[api.UpdateBillStatusRequest]) (*connect.Response[api.UpdateBillStatusResponse], error)
	UpdateParticipantPayment(context.Context, *connect.Request[api.UpdateParticipantPaymentRequest]) (*connect.Response[api.UpdateParticipantPaymentResponse], error)
	GetStatistics(context.Context, *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service implementation.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withHandlerCodec(opts)
	return "/" + BillServiceName + "/", routes{
		BillServicePreviewSplitProcedure:             connect.NewUnaryHandler(BillServicePreviewSplitProcedure, svc.PreviewSplit, opts...),
		BillServiceCreateBillProcedure:               connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...),
		BillServiceGetBillProcedure:                  connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...),
		BillServiceListBillsProcedure:                connect.NewUnaryHandler(BillServiceListBillsProcedure, svc.ListBills, opts...),
		BillServiceUpdateBillProcedure:               connect.NewUnaryHandler(BillServiceUpdateBillProcedure, svc.UpdateBill, opts...),
		BillServiceDeleteBillProcedure:               connect.NewUnaryHandler(BillServiceDeleteBillProcedure, svc.DeleteBill, opts...),
		BillServiceUpdateBillStatusProcedure:         connect.NewUnaryHandler(BillServiceUpdateBillStatusProcedure, svc.UpdateBillStatus, opts...),
		BillServiceUpdateParticipantPaymentProcedure: connect.NewUnaryHandler(BillServiceUpdateParticipantPaymentProcedure, svc.UpdateParticipantPayment, opts...),
		BillServiceGetStatisticsProcedure:            connect.NewUnaryHandler(BillServiceGetStatisticsProcedure, svc.GetStatistics, opts...),
		BillServiceGetBalancesProcedure:              connect.NewUnaryHandler(BillServiceGetBalancesProcedure, svc.GetBalances, opts...),
	}
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func (UnimplementedBillServiceHandler) PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return nil, unimplemented(BillServicePreviewSplitProcedure)
}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return nil, unimplemented(BillServiceCreateBillProcedure)
}

func (UnimplementedBillServiceHandler) GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return nil, unimplemented(BillServiceGetBillProcedure)
}

func (UnimplementedBillServiceHandler) ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return nil, unimplemented(BillServiceListBillsProcedure)
}

func (UnimplementedBillServiceHandler) UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return nil, unimplemented(BillServiceUpdateBillProcedure)
}

func (UnimplementedBillServiceHandler) DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return nil, unimplemented(BillServiceDeleteBillProcedure)
}

func (UnimplementedBillServiceHandler) UpdateBillStatus(context.Context, *connect.Request[api.UpdateBillStatusRequest]) (*connect.Response[api.UpdateBillStatusResponse], error) {
	return nil, unimplemented(BillServiceUpdateBillStatusProcedure)
}

func (UnimplementedBillServiceHandler) UpdateParticipantPayment(context.Context, *connect.Request[api.UpdateParticipantPaymentRequest]) (*connect.Response[api.UpdateParticipantPaymentResponse], error) {
	return nil, unimplemented(BillServiceUpdateParticipantPaymentProcedure)
}

func (UnimplementedBillServiceHandler) GetStatistics(context.Context, *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error) {
	return nil, unimplemented(BillServiceGetStatisticsProcedure)
}

func (UnimplementedBillServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, unimplemented(BillServiceGetBalancesProcedure)
}
