package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/gigbook/internal/api"
)

// GigbookServer is the set of RPCs exposed under api.ServiceName.
type GigbookServer interface {
	Ping(context.Context, *api.Empty) (*api.PingResponse, error)
	Register(context.Context, *api.RegisterRequest) (*api.RegisterResponse, error)
	Login(context.Context, *api.LoginRequest) (*api.TokenResponse, error)
	RefreshToken(context.Context, *api.RefreshTokenRequest) (*api.TokenResponse, error)

	ListClients(context.Context, *api.Empty) (*api.ClientsResponse, error)
	CreateClient(context.Context, *api.ClientMessage) (*api.ClientMessage, error)
	UpdateClient(context.Context, *api.ClientMessage) (*api.ClientMessage, error)
	DeleteClient(context.Context, *api.IDRequest) (*api.Empty, error)

	ListJobs(context.Context, *api.ListJobsRequest) (*api.JobsResponse, error)
	GetJob(context.Context, *api.IDRequest) (*api.JobView, error)
	CreateJob(context.Context, *api.JobMessage) (*api.JobView, error)
	UpdateJob(context.Context, *api.JobMessage) (*api.JobView, error)
	DeleteJob(context.Context, *api.DeleteJobRequest) (*api.Empty, error)
	AddPayment(context.Context, *api.AddPaymentRequest) (*api.AddPaymentResponse, error)
	JobSummary(context.Context, *api.IDRequest) (*api.SummaryResponse, error)

	Report(context.Context, *api.Empty) (*api.ReportResponse, error)
	Receivables(context.Context, *api.Empty) (*api.ReceivablesResponse, error)

	GetSettings(context.Context, *api.Empty) (*api.SettingsMessage, error)
	SaveSettings(context.Context, *api.SettingsMessage) (*api.SettingsMessage, error)
	ConnectCalendar(context.Context, *api.Empty) (*api.SettingsMessage, error)
	DisconnectCalendar(context.Context, *api.Empty) (*api.SettingsMessage, error)
	PresignLogoUpload(context.Context, *api.PresignUploadRequest) (*api.PresignUploadResponse, error)
	SetLogo(context.Context, *api.KeyRequest) (*api.SettingsMessage, error)

	ListEvents(context.Context, *api.ListEventsRequest) (*api.EventsResponse, error)
	CreateEvent(context.Context, *api.EventMessage) (*api.EventMessage, error)
	DeleteEvent(context.Context, *api.IDRequest) (*api.Empty, error)

	ListDrafts(context.Context, *api.Empty) (*api.DraftsResponse, error)
	SaveDraft(context.Context, *api.DraftMessage) (*api.DraftMessage, error)
	DeleteDraft(context.Context, *api.IDRequest) (*api.Empty, error)
	PresignAttachmentUpload(context.Context, *api.PresignUploadRequest) (*api.PresignUploadResponse, error)
	PresignDownload(context.Context, *api.KeyRequest) (*api.URLResponse, error)

	Ask(context.Context, *api.AskRequest) (*api.AskResponse, error)

	ExportReport(context.Context, *api.Empty) (*api.ExportResponse, error)
	ExportBackup(context.Context, *api.Empty) (*api.BackupMessage, error)
	ImportBackup(context.Context, *api.BackupMessage) (*api.ImportResponse, error)
}

// unary adapts a typed method to grpc.MethodDesc. Requests are decoded by
// the codec negotiated for the call, normally api.Codec.
func unary[Req, Resp any](name string, call func(GigbookServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GigbookServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: api.FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(GigbookServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the gigbook service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*GigbookServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(api.MethodPing, GigbookServer.Ping),
		unary(api.MethodRegister, GigbookServer.Register),
		unary(api.MethodLogin, GigbookServer.Login),
		unary(api.MethodRefreshToken, GigbookServer.RefreshToken),
		unary(api.MethodListClients, GigbookServer.ListClients),
		unary(api.MethodCreateClient, GigbookServer.CreateClient),
		unary(api.MethodUpdateClient, GigbookServer.UpdateClient),
		unary(api.MethodDeleteClient, GigbookServer.DeleteClient),
		unary(api.MethodListJobs, GigbookServer.ListJobs),
		unary(api.MethodGetJob, GigbookServer.GetJob),
		unary(api.MethodCreateJob, GigbookServer.CreateJob),
		unary(api.MethodUpdateJob, GigbookServer.UpdateJob),
		unary(api.MethodDeleteJob, GigbookServer.DeleteJob),
		unary(api.MethodAddPayment, GigbookServer.AddPayment),
		unary(api.MethodJobSummary, GigbookServer.JobSummary),
		unary(api.MethodReport, GigbookServer.Report),
		unary(api.MethodReceivables, GigbookServer.Receivables),
		unary(api.MethodGetSettings, GigbookServer.GetSettings),
		unary(api.MethodSaveSettings, GigbookServer.SaveSettings),
		unary(api.MethodConnectCalendar, GigbookServer.ConnectCalendar),
		unary(api.MethodDisconnectCalendar, GigbookServer.DisconnectCalendar),
		unary(api.MethodPresignLogoUpload, GigbookServer.PresignLogoUpload),
		unary(api.MethodSetLogo, GigbookServer.SetLogo),
		unary(api.MethodListEvents, GigbookServer.ListEvents),
		unary(api.MethodCreateEvent, GigbookServer.CreateEvent),
		unary(api.MethodDeleteEvent, GigbookServer.DeleteEvent),
		unary(api.MethodListDrafts, GigbookServer.ListDrafts),
		unary(api.MethodSaveDraft, GigbookServer.SaveDraft),
		unary(api.MethodDeleteDraft, GigbookServer.DeleteDraft),
		unary(api.MethodPresignAttachmentUpload, GigbookServer.PresignAttachmentUpload),
		unary(api.MethodPresignDownload, GigbookServer.PresignDownload),
		unary(api.MethodAsk, GigbookServer.Ask),
		unary(api.MethodExportReport, GigbookServer.ExportReport),
		unary(api.MethodExportBackup, GigbookServer.ExportBackup),
		unary(api.MethodImportBackup, GigbookServer.ImportBackup),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gigbook/v1/gigbook",
}
