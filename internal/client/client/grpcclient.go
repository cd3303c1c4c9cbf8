package client

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gigbook/internal/api"
	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

type GRPCClient struct {
	endpointURL string
	dialOpts    []grpc.DialOption
	conn        *grpc.ClientConn

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

// accessTokenInterceptor attaches the access token and, when the server
// answers "token expired", rotates the pair once and retries the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if api.PublicMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	access, refresh := s.tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	var resp api.TokenResponse
	if err := cc.Invoke(ctx, api.FullMethod(api.MethodRefreshToken), &api.RefreshTokenRequest{RefreshToken: refresh}, &resp, opts...); err != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	// tokens refreshed, retry with the new access token
	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

func NewGigbookClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, dialOpts: opts}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	}, s.dialOpts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) call(ctx context.Context, method string, in, out any) error {
	if err := s.conn.Invoke(ctx, api.FullMethod(method), in, out); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	var resp api.PingResponse
	if err := s.call(ctx, api.MethodPing, &api.Empty{}, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, username, email, password string) error {
	req := &api.RegisterRequest{Username: username, Email: email, Password: password}
	return s.call(ctx, api.MethodRegister, req, &api.RegisterResponse{})
}

func (s *GRPCClient) Login(ctx context.Context, username, password string) error {
	var resp api.TokenResponse
	if err := s.call(ctx, api.MethodLogin, &api.LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Logout forgets the tokens held in memory.
func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) LoggedIn() bool {
	access, _ := s.tokens()
	return access != ""
}

func (s *GRPCClient) ListClients(ctx context.Context) ([]models.Client, error) {
	var resp api.ClientsResponse
	if err := s.call(ctx, api.MethodListClients, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

func (s *GRPCClient) CreateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	var resp api.ClientMessage
	if err := s.call(ctx, api.MethodCreateClient, &api.ClientMessage{Client: c}, &resp); err != nil {
		return nil, err
	}
	return &resp.Client, nil
}

func (s *GRPCClient) ListJobs(ctx context.Context) ([]api.JobView, error) {
	var resp api.JobsResponse
	if err := s.call(ctx, api.MethodListJobs, &api.ListJobsRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (s *GRPCClient) CreateJob(ctx context.Context, j models.Job) (*api.JobView, error) {
	var resp api.JobView
	if err := s.call(ctx, api.MethodCreateJob, &api.JobMessage{Job: j}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) AddPayment(ctx context.Context, jobID string, p models.Payment) (*api.AddPaymentResponse, error) {
	var resp api.AddPaymentResponse
	if err := s.call(ctx, api.MethodAddPayment, &api.AddPaymentRequest{JobID: jobID, Payment: p}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) JobSummary(ctx context.Context, jobID string) (*api.SummaryResponse, error) {
	var resp api.SummaryResponse
	if err := s.call(ctx, api.MethodJobSummary, &api.IDRequest{ID: jobID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) Report(ctx context.Context) (*api.ReportResponse, error) {
	var resp api.ReportResponse
	if err := s.call(ctx, api.MethodReport, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) Receivables(ctx context.Context) (*api.ReceivablesResponse, error) {
	var resp api.ReceivablesResponse
	if err := s.call(ctx, api.MethodReceivables, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) Ask(ctx context.Context, query string) (string, error) {
	var resp api.AskResponse
	if err := s.call(ctx, api.MethodAsk, &api.AskRequest{Query: query}, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

func (s *GRPCClient) GetSettings(ctx context.Context) (*models.Settings, error) {
	var resp api.SettingsMessage
	if err := s.call(ctx, api.MethodGetSettings, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp.Settings, nil
}

func (s *GRPCClient) PresignLogoUpload(ctx context.Context, contentType string, size int64) (*api.PresignUploadResponse, error) {
	var resp api.PresignUploadResponse
	req := &api.PresignUploadRequest{ContentType: contentType, Size: size}
	if err := s.call(ctx, api.MethodPresignLogoUpload, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) SetLogo(ctx context.Context, key string) (*models.Settings, error) {
	var resp api.SettingsMessage
	if err := s.call(ctx, api.MethodSetLogo, &api.KeyRequest{Key: key}, &resp); err != nil {
		return nil, err
	}
	return &resp.Settings, nil
}

func (s *GRPCClient) ExportReport(ctx context.Context) (*api.ExportResponse, error) {
	var resp api.ExportResponse
	if err := s.call(ctx, api.MethodExportReport, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) ExportBackup(ctx context.Context) (*models.Backup, error) {
	var resp api.BackupMessage
	if err := s.call(ctx, api.MethodExportBackup, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp.Backup, nil
}

// mapError turns gRPC statuses back into sentinel errors the CLI can match
// with errors.Is.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrValidation, st.Message())
	case codes.NotFound:
		return common.ErrNotFound
	case codes.AlreadyExists:
		return common.ErrAlreadyExists
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
