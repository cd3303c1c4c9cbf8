package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/repomanager"
)

const taxIDDigits = 11

type ClientService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewClientService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ClientService {
	return &ClientService{db: db, repomanager: m, log: log.With("module", "clients")}
}

// normalizeClient trims the text fields and keeps only the digits of TaxID.
func normalizeClient(c *models.Client) {
	c.Name = strings.TrimSpace(c.Name)
	c.Company = strings.TrimSpace(c.Company)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.TaxID = common.OnlyDigits(c.TaxID)
}

func validateClient(c *models.Client) error {
	var v checks
	v.required("name", c.Name)
	v.required("email", c.Email)
	v.email("email", c.Email)
	if c.TaxID != "" && len(c.TaxID) != taxIDDigits {
		v.fail("tax_id", fmt.Sprintf("must have %d digits", taxIDDigits))
	}
	return v.err
}

func (s *ClientService) Create(ctx context.Context, userID string, c *models.Client) (*models.Client, error) {
	normalizeClient(c)
	if err := validateClient(c); err != nil {
		return nil, err
	}
	c.UserID = userID
	c.CreatedAt = time.Time{}

	out, err := s.repomanager.Clients(s.db).Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("error creating client: %w", err)
	}
	return out, nil
}

func (s *ClientService) Update(ctx context.Context, userID string, c *models.Client) error {
	if c.ID == "" {
		return common.Invalid("id", "required")
	}
	normalizeClient(c)
	if err := validateClient(c); err != nil {
		return err
	}
	c.UserID = userID

	if err := s.repomanager.Clients(s.db).Update(ctx, c); err != nil {
		return fmt.Errorf("error updating client: %w", err)
	}
	return nil
}

func (s *ClientService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repomanager.Clients(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting client: %w", err)
	}
	s.log.Info(ctx, "client deleted", "user_id", userID, "client_id", id)
	return nil
}

func (s *ClientService) Get(ctx context.Context, userID, id string) (*models.Client, error) {
	c, err := s.repomanager.Clients(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error loading client: %w", err)
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, userID string) ([]models.Client, error) {
	list, err := s.repomanager.Clients(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	return list, nil
}
