package grpc

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/gigbook/internal/api"
	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
	"github.com/dmitrijs2005/gigbook/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type ClientService interface {
	Create(ctx context.Context, userID string, c *models.Client) (*models.Client, error)
	Update(ctx context.Context, userID string, c *models.Client) error
	Delete(ctx context.Context, userID, id string) error
	Get(ctx context.Context, userID, id string) (*models.Client, error)
	List(ctx context.Context, userID string) ([]models.Client, error)
}

type JobService interface {
	Create(ctx context.Context, userID string, j *models.Job) (*models.Job, error)
	Update(ctx context.Context, userID string, j *models.Job) error
	SoftDelete(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
	Get(ctx context.Context, userID, id string) (*models.Job, error)
	List(ctx context.Context, userID string, withDeleted bool) ([]models.Job, error)
	AddPayment(ctx context.Context, userID, jobID string, p models.Payment) (*models.Payment, error)
	Summary(ctx context.Context, userID, jobID string) (finance.Summary, error)
}

type ReportService interface {
	Report(ctx context.Context, userID string) (*finance.Report, error)
	Records(ctx context.Context, userID string) ([]finance.FinancialRecord, error)
}

type SettingsService interface {
	Get(ctx context.Context, userID string) (*models.Settings, error)
	Save(ctx context.Context, userID string, in *models.Settings) (*models.Settings, error)
	ConnectCalendar(ctx context.Context, userID string) (*models.Settings, error)
	DisconnectCalendar(ctx context.Context, userID string) (*models.Settings, error)
	SetLogo(ctx context.Context, userID, key string) (*models.Settings, error)
}

type CalendarService interface {
	List(ctx context.Context, userID string) ([]models.CalendarEvent, error)
	Upcoming(ctx context.Context, userID string, limit int) ([]models.CalendarEvent, error)
	Create(ctx context.Context, userID string, e *models.CalendarEvent) (*models.CalendarEvent, error)
	Delete(ctx context.Context, userID, id string) error
}

type DraftService interface {
	Save(ctx context.Context, userID string, d *models.DraftNote) (*models.DraftNote, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]models.DraftNote, error)
}

type FileService interface {
	PresignLogoUpload(ctx context.Context, userID, contentType string, size int64) (*services.PresignedUpload, error)
	PresignAttachmentUpload(ctx context.Context, userID, contentType string, size int64) (*services.PresignedUpload, error)
	PresignDownload(ctx context.Context, userID, key string) (string, error)
}

type AssistantService interface {
	Ask(ctx context.Context, userID, query string) (string, error)
}

type ExportService interface {
	ExportReport(ctx context.Context, userID string) (*services.ExportedFile, error)
	ExportBackup(ctx context.Context, userID string) (*models.Backup, error)
	ImportBackup(ctx context.Context, userID string, b *models.Backup) (*models.ImportResult, error)
}

// Services groups the application services the server dispatches to.
type Services struct {
	Users     UserService
	Clients   ClientService
	Jobs      JobService
	Reports   ReportService
	Settings  SettingsService
	Calendar  CalendarService
	Drafts    DraftService
	Files     FileService
	Assistant AssistantService
	Export    ExportService
}

type GRPCServer struct {
	Services
	address   string
	logger    logging.Logger
	jwtSecret []byte
}

var _ GigbookServer = (*GRPCServer)(nil)

// ErrEmptySecret is returned when no JWT signing key is configured.
var ErrEmptySecret = errors.New("jwt secret key is empty")

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) (*GRPCServer, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	return &GRPCServer{
		Services:  svc,
		address:   a,
		logger:    l.With("module", "grpc_server"),
		jwtSecret: []byte(secretKey),
	}, nil
}

// newServer builds a grpc.Server with the gigbook and health services
// registered.
func (s *GRPCServer) newServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)

	srv.RegisterService(&ServiceDesc, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

// Serve runs the server on an existing listener until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}
