// Package api is the wire contract between the gigbook server and its
// clients: the service and method names and the JSON message types carried
// over gRPC.
package api

import healthpb "google.golang.org/grpc/health/grpc_health_v1"

const ServiceName = "gigbook.v1.Gigbook"

const (
	MethodPing                    = "Ping"
	MethodRegister                = "Register"
	MethodLogin                   = "Login"
	MethodRefreshToken            = "RefreshToken"
	MethodListClients             = "ListClients"
	MethodCreateClient            = "CreateClient"
	MethodUpdateClient            = "UpdateClient"
	MethodDeleteClient            = "DeleteClient"
	MethodListJobs                = "ListJobs"
	MethodGetJob                  = "GetJob"
	MethodCreateJob               = "CreateJob"
	MethodUpdateJob               = "UpdateJob"
	MethodDeleteJob               = "DeleteJob"
	MethodAddPayment              = "AddPayment"
	MethodJobSummary              = "JobSummary"
	MethodReport                  = "Report"
	MethodReceivables             = "Receivables"
	MethodGetSettings             = "GetSettings"
	MethodSaveSettings            = "SaveSettings"
	MethodConnectCalendar         = "ConnectCalendar"
	MethodDisconnectCalendar      = "DisconnectCalendar"
	MethodPresignLogoUpload       = "PresignLogoUpload"
	MethodSetLogo                 = "SetLogo"
	MethodListEvents              = "ListEvents"
	MethodCreateEvent             = "CreateEvent"
	MethodDeleteEvent             = "DeleteEvent"
	MethodListDrafts              = "ListDrafts"
	MethodSaveDraft               = "SaveDraft"
	MethodDeleteDraft             = "DeleteDraft"
	MethodPresignAttachmentUpload = "PresignAttachmentUpload"
	MethodPresignDownload         = "PresignDownload"
	MethodAsk                     = "Ask"
	MethodExportReport            = "ExportReport"
	MethodExportBackup            = "ExportBackup"
	MethodImportBackup            = "ImportBackup"
)

// FullMethod returns the gRPC path of a method, e.g. /gigbook.v1.Gigbook/Ping.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// PublicMethods can be called without an access token.
var PublicMethods = map[string]bool{
	FullMethod(MethodPing):               true,
	FullMethod(MethodRegister):           true,
	FullMethod(MethodLogin):              true,
	FullMethod(MethodRefreshToken):       true,
	healthpb.Health_Check_FullMethodName: true,
	healthpb.Health_Watch_FullMethodName: true,
}
