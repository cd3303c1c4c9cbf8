package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

var (
	ErrUnknownServiceType = errors.New("unknown service type")
	ErrUnknownJobStatus   = errors.New("unknown job status")
)

// ServiceType is the kind of work a job represents.
type ServiceType string

const (
	ServiceVideo              ServiceType = "video"
	ServicePhoto              ServiceType = "photo"
	ServiceDesign             ServiceType = "design"
	ServiceSites              ServiceType = "sites"
	ServiceTechnicalAssistant ServiceType = "technical_assistant"
	ServiceFreelance          ServiceType = "freelance"
	ServiceProgramming        ServiceType = "programming"
	ServiceCopywriting        ServiceType = "copywriting"
	ServiceOther              ServiceType = "other"
)

var allServiceTypes = []ServiceType{
	ServiceVideo, ServicePhoto, ServiceDesign, ServiceSites,
	ServiceTechnicalAssistant, ServiceFreelance, ServiceProgramming,
	ServiceCopywriting, ServiceOther,
}

// AllServiceTypes returns every service type in display order.
func AllServiceTypes() []ServiceType {
	out := make([]ServiceType, len(allServiceTypes))
	copy(out, allServiceTypes)
	return out
}

func ParseServiceType(s string) (ServiceType, error) {
	for _, t := range allServiceTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, s)
}

func (t ServiceType) String() string { return string(t) }

var serviceLabels = map[ServiceType]string{
	ServiceVideo:              "Vídeo",
	ServicePhoto:              "Fotografia",
	ServiceDesign:             "Design",
	ServiceSites:              "Sites",
	ServiceTechnicalAssistant: "Auxiliar T.",
	ServiceFreelance:          "Frella",
	ServiceProgramming:        "Programação",
	ServiceCopywriting:        "Redação",
	ServiceOther:              "Outro",
}

// Label is the display name shown in reports.
func (t ServiceType) Label() string {
	if l, ok := serviceLabels[t]; ok {
		return l
	}
	return string(t)
}

// MarshalText leaves an unset value empty; services fill in the default.
func (t ServiceType) MarshalText() ([]byte, error) {
	if t == "" {
		return nil, nil
	}
	if _, err := ParseServiceType(string(t)); err != nil {
		return nil, err
	}
	return []byte(t), nil
}

func (t *ServiceType) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = ""
		return nil
	}
	v, err := ParseServiceType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t ServiceType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ServiceType) Scan(src any) error {
	s, err := scanText(src)
	if err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}

// JobStatus is the production stage of a job.
type JobStatus string

const (
	StatusBriefing   JobStatus = "briefing"
	StatusProduction JobStatus = "production"
	StatusReview     JobStatus = "review"
	StatusFinalized  JobStatus = "finalized"
	StatusPaid       JobStatus = "paid"
	StatusOther      JobStatus = "other"
)

var allJobStatuses = []JobStatus{
	StatusBriefing, StatusProduction, StatusReview,
	StatusFinalized, StatusPaid, StatusOther,
}

func AllJobStatuses() []JobStatus {
	out := make([]JobStatus, len(allJobStatuses))
	copy(out, allJobStatuses)
	return out
}

func ParseJobStatus(s string) (JobStatus, error) {
	for _, st := range allJobStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownJobStatus, s)
}

func (s JobStatus) String() string { return string(s) }

// MarshalText leaves an unset value empty; services fill in the default.
func (s JobStatus) MarshalText() ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if _, err := ParseJobStatus(string(s)); err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (s *JobStatus) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = ""
		return nil
	}
	v, err := ParseJobStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s JobStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *JobStatus) Scan(src any) error {
	v, err := scanText(src)
	if err != nil {
		return err
	}
	return s.UnmarshalText([]byte(v))
}

// FinancialStatus is derived from a job's payments and deadline; it is
// never stored.
type FinancialStatus string

const (
	FinancialPendingDeposit     FinancialStatus = "pending_deposit"
	FinancialPartiallyPaid      FinancialStatus = "partially_paid"
	FinancialPendingFullPayment FinancialStatus = "pending_full_payment"
	FinancialPaid               FinancialStatus = "paid"
	FinancialOverdue            FinancialStatus = "overdue"
)

func scanText(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into enum", src)
	}
}
