package grpc

import (
	"context"

	"github.com/dmitrijs2005/gigbook/internal/api"
	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *api.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request")

	u, err := s.Users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRegister, err)
	}

	s.logger.Info(ctx, "Registered", "username", u.UserName)
	return &api.RegisterResponse{UserID: u.ID, Username: u.UserName}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {
	tokens, err := s.Users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodLogin, err)
	}
	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenResponse, error) {
	tokens, err := s.Users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRefreshToken, err)
	}
	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

// clients

func (s *GRPCServer) ListClients(ctx context.Context, _ *api.Empty) (*api.ClientsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.Clients.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListClients, err)
	}
	return &api.ClientsResponse{Clients: list}, nil
}

func (s *GRPCServer) CreateClient(ctx context.Context, req *api.ClientMessage) (*api.ClientMessage, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.Clients.Create(ctx, userID, &req.Client)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodCreateClient, err)
	}
	return &api.ClientMessage{Client: *c}, nil
}

func (s *GRPCServer) UpdateClient(ctx context.Context, req *api.ClientMessage) (*api.ClientMessage, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Clients.Update(ctx, userID, &req.Client); err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdateClient, err)
	}
	c, err := s.Clients.Get(ctx, userID, req.Client.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdateClient, err)
	}
	return &api.ClientMessage{Client: *c}, nil
}

func (s *GRPCServer) DeleteClient(ctx context.Context, req *api.IDRequest) (*api.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Clients.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, api.MethodDeleteClient, err)
	}
	return &api.Empty{}, nil
}

// jobs

func jobView(j *models.Job) api.JobView {
	return api.JobView{Job: *j, Summary: finance.Summarize(j)}
}

func (s *GRPCServer) ListJobs(ctx context.Context, req *api.ListJobsRequest) (*api.JobsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.Jobs.List(ctx, userID, req.IncludeDeleted)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListJobs, err)
	}
	out := make([]api.JobView, 0, len(jobs))
	for i := range jobs {
		out = append(out, jobView(&jobs[i]))
	}
	return &api.JobsResponse{Jobs: out}, nil
}

func (s *GRPCServer) GetJob(ctx context.Context, req *api.IDRequest) (*api.JobView, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	j, err := s.Jobs.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetJob, err)
	}
	v := jobView(j)
	return &v, nil
}

func (s *GRPCServer) CreateJob(ctx context.Context, req *api.JobMessage) (*api.JobView, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	j, err := s.Jobs.Create(ctx, userID, &req.Job)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodCreateJob, err)
	}
	v := jobView(j)
	return &v, nil
}

func (s *GRPCServer) UpdateJob(ctx context.Context, req *api.JobMessage) (*api.JobView, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Jobs.Update(ctx, userID, &req.Job); err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdateJob, err)
	}
	j, err := s.Jobs.Get(ctx, userID, req.Job.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdateJob, err)
	}
	v := jobView(j)
	return &v, nil
}

func (s *GRPCServer) DeleteJob(ctx context.Context, req *api.DeleteJobRequest) (*api.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.Hard {
		err = s.Jobs.Delete(ctx, userID, req.ID)
	} else {
		err = s.Jobs.SoftDelete(ctx, userID, req.ID)
	}
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodDeleteJob, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) AddPayment(ctx context.Context, req *api.AddPaymentRequest) (*api.AddPaymentResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.Jobs.AddPayment(ctx, userID, req.JobID, req.Payment)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodAddPayment, err)
	}
	sum, err := s.Jobs.Summary(ctx, userID, req.JobID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodAddPayment, err)
	}
	return &api.AddPaymentResponse{Payment: *p, Summary: sum}, nil
}

func (s *GRPCServer) JobSummary(ctx context.Context, req *api.IDRequest) (*api.SummaryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	sum, err := s.Jobs.Summary(ctx, userID, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodJobSummary, err)
	}
	return &api.SummaryResponse{Summary: sum}, nil
}

// reports

func (s *GRPCServer) Report(ctx context.Context, _ *api.Empty) (*api.ReportResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.Reports.Report(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodReport, err)
	}
	return &api.ReportResponse{Report: *r}, nil
}

func (s *GRPCServer) Receivables(ctx context.Context, _ *api.Empty) (*api.ReceivablesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.Reports.Records(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodReceivables, err)
	}
	return &api.ReceivablesResponse{Records: records}, nil
}

// settings

func (s *GRPCServer) settingsCall(ctx context.Context, method string, fn func(userID string) (*models.Settings, error)) (*api.SettingsMessage, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	st, err := fn(userID)
	if err != nil {
		return nil, s.toStatus(ctx, method, err)
	}
	return &api.SettingsMessage{Settings: *st}, nil
}

func (s *GRPCServer) GetSettings(ctx context.Context, _ *api.Empty) (*api.SettingsMessage, error) {
	return s.settingsCall(ctx, api.MethodGetSettings, func(userID string) (*models.Settings, error) {
		return s.Settings.Get(ctx, userID)
	})
}

func (s *GRPCServer) SaveSettings(ctx context.Context, req *api.SettingsMessage) (*api.SettingsMessage, error) {
	return s.settingsCall(ctx, api.MethodSaveSettings, func(userID string) (*models.Settings, error) {
		return s.Settings.Save(ctx, userID, &req.Settings)
	})
}

func (s *GRPCServer) ConnectCalendar(ctx context.Context, _ *api.Empty) (*api.SettingsMessage, error) {
	return s.settingsCall(ctx, api.MethodConnectCalendar, func(userID string) (*models.Settings, error) {
		return s.Settings.ConnectCalendar(ctx, userID)
	})
}

func (s *GRPCServer) DisconnectCalendar(ctx context.Context, _ *api.Empty) (*api.SettingsMessage, error) {
	return s.settingsCall(ctx, api.MethodDisconnectCalendar, func(userID string) (*models.Settings, error) {
		return s.Settings.DisconnectCalendar(ctx, userID)
	})
}

func (s *GRPCServer) SetLogo(ctx context.Context, req *api.KeyRequest) (*api.SettingsMessage, error) {
	return s.settingsCall(ctx, api.MethodSetLogo, func(userID string) (*models.Settings, error) {
		return s.Settings.SetLogo(ctx, userID, req.Key)
	})
}

// files

func (s *GRPCServer) PresignLogoUpload(ctx context.Context, req *api.PresignUploadRequest) (*api.PresignUploadResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	up, err := s.Files.PresignLogoUpload(ctx, userID, req.ContentType, req.Size)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodPresignLogoUpload, err)
	}
	return &api.PresignUploadResponse{URL: up.URL, Key: up.Key}, nil
}

func (s *GRPCServer) PresignAttachmentUpload(ctx context.Context, req *api.PresignUploadRequest) (*api.PresignUploadResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	up, err := s.Files.PresignAttachmentUpload(ctx, userID, req.ContentType, req.Size)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodPresignAttachmentUpload, err)
	}
	return &api.PresignUploadResponse{URL: up.URL, Key: up.Key}, nil
}

func (s *GRPCServer) PresignDownload(ctx context.Context, req *api.KeyRequest) (*api.URLResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	url, err := s.Files.PresignDownload(ctx, userID, req.Key)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodPresignDownload, err)
	}
	return &api.URLResponse{URL: url}, nil
}

// calendar

func (s *GRPCServer) ListEvents(ctx context.Context, req *api.ListEventsRequest) (*api.EventsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	var events []models.CalendarEvent
	if req.UpcomingOnly {
		events, err = s.Calendar.Upcoming(ctx, userID, req.Limit)
	} else {
		events, err = s.Calendar.List(ctx, userID)
	}
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListEvents, err)
	}
	return &api.EventsResponse{Events: events}, nil
}

func (s *GRPCServer) CreateEvent(ctx context.Context, req *api.EventMessage) (*api.EventMessage, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.Calendar.Create(ctx, userID, &req.Event)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodCreateEvent, err)
	}
	return &api.EventMessage{Event: *e}, nil
}

func (s *GRPCServer) DeleteEvent(ctx context.Context, req *api.IDRequest) (*api.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Calendar.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, api.MethodDeleteEvent, err)
	}
	return &api.Empty{}, nil
}

// drafts

func (s *GRPCServer) ListDrafts(ctx context.Context, _ *api.Empty) (*api.DraftsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.Drafts.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListDrafts, err)
	}
	return &api.DraftsResponse{Drafts: list}, nil
}

func (s *GRPCServer) SaveDraft(ctx context.Context, req *api.DraftMessage) (*api.DraftMessage, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.Drafts.Save(ctx, userID, &req.Draft)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodSaveDraft, err)
	}
	return &api.DraftMessage{Draft: *d}, nil
}

func (s *GRPCServer) DeleteDraft(ctx context.Context, req *api.IDRequest) (*api.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Drafts.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, api.MethodDeleteDraft, err)
	}
	return &api.Empty{}, nil
}

// assistant

func (s *GRPCServer) Ask(ctx context.Context, req *api.AskRequest) (*api.AskResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	answer, err := s.Assistant.Ask(ctx, userID, req.Query)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodAsk, err)
	}
	return &api.AskResponse{Answer: answer}, nil
}

// export

func (s *GRPCServer) ExportReport(ctx context.Context, _ *api.Empty) (*api.ExportResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	f, err := s.Export.ExportReport(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodExportReport, err)
	}
	return &api.ExportResponse{Key: f.Key, URL: f.URL}, nil
}

func (s *GRPCServer) ExportBackup(ctx context.Context, _ *api.Empty) (*api.BackupMessage, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.Export.ExportBackup(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodExportBackup, err)
	}
	return &api.BackupMessage{Backup: *b}, nil
}

func (s *GRPCServer) ImportBackup(ctx context.Context, req *api.BackupMessage) (*api.ImportResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.Export.ImportBackup(ctx, userID, &req.Backup)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodImportBackup, err)
	}
	return &api.ImportResponse{Result: *res}, nil
}
