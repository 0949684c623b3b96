package reviewrpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// ReviewServiceName is the fully-qualified name of the ReviewService service.
	ReviewServiceName = "shokyuu.review.v1.ReviewService"

	ReviewServiceGetLedgerProcedure  = "/shokyuu.review.v1.ReviewService/GetLedger"
	ReviewServiceSaveLedgerProcedure = "/shokyuu.review.v1.ReviewService/SaveLedger"
)

// ReviewServiceClient is a client for the shokyuu.review.v1.ReviewService service.
type ReviewServiceClient interface {
	GetLedger(context.Context, *connect.Request[GetLedgerRequest]) (*connect.Response[GetLedgerResponse], error)
	SaveLedger(context.Context, *connect.Request[SaveLedgerRequest]) (*connect.Response[SaveLedgerResponse], error)
}

// NewReviewServiceClient constructs a client for the shokyuu.review.v1.ReviewService service.
// The baseURL is the server root including any path prefix, e.g. http://localhost:3000/shokyuucards.
func NewReviewServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReviewServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &reviewServiceClient{
		getLedger: connect.NewClient[GetLedgerRequest, GetLedgerResponse](
			httpClient,
			baseURL+ReviewServiceGetLedgerProcedure,
			opts...,
		),
		saveLedger: connect.NewClient[SaveLedgerRequest, SaveLedgerResponse](
			httpClient,
			baseURL+ReviewServiceSaveLedgerProcedure,
			opts...,
		),
	}
}

type reviewServiceClient struct {
	getLedger  *connect.Client[GetLedgerRequest, GetLedgerResponse]
	saveLedger *connect.Client[SaveLedgerRequest, SaveLedgerResponse]
}

func (c *reviewServiceClient) GetLedger(ctx context.Context, req *connect.Request[GetLedgerRequest]) (*connect.Response[GetLedgerResponse], error) {
	return c.getLedger.CallUnary(ctx, req)
}

func (c *reviewServiceClient) SaveLedger(ctx context.Context, req *connect.Request[SaveLedgerRequest]) (*connect.Response[SaveLedgerResponse], error) {
	return c.saveLedger.CallUnary(ctx, req)
}

// ReviewServiceHandler is an implementation of the shokyuu.review.v1.ReviewService service.
type ReviewServiceHandler interface {
	GetLedger(context.Context, *connect.Request[GetLedgerRequest]) (*connect.Response[GetLedgerResponse], error)
	SaveLedger(context.Context, *connect.Request[SaveLedgerRequest]) (*connect.Response[SaveLedgerResponse], error)
}

// NewReviewServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewReviewServiceHandler(svc ReviewServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	getLedgerHandler := connect.NewUnaryHandler(
		ReviewServiceGetLedgerProcedure,
		svc.GetLedger,
		connect.WithHandlerOptions(opts...),
	)
	saveLedgerHandler := connect.NewUnaryHandler(
		ReviewServiceSaveLedgerProcedure,
		svc.SaveLedger,
		connect.WithHandlerOptions(opts...),
	)
	return "/" + ReviewServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReviewServiceGetLedgerProcedure:
			getLedgerHandler.ServeHTTP(w, r)
		case ReviewServiceSaveLedgerProcedure:
			saveLedgerHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
