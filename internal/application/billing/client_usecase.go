package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/domain"
	domainbilling "github.com/dreistrom/dreistrom-api/internal/domain/billing"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
	"github.com/dreistrom/dreistrom-api/pkg/ustid"
)

// ClientUseCase manages invoice recipients.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// CreateClient registers a recipient. Country defaults to DE, type to B2B;
// an EU B2B client without USt-IdNr is accepted here but will be rejected at
// invoice time for INTRA_EU treatment.
func (uc *ClientUseCase) CreateClient(ctx context.Context, userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	country := strings.ToUpper(strings.TrimSpace(in.Country))
	if country == "" {
		country = "DE"
	}
	if len(country) != 2 {
		return nil, domain.ErrInvalidInput
	}
	clientType := in.ClientType
	if clientType == "" {
		clientType = entity.ClientB2B
	}
	if clientType != entity.ClientB2B && clientType != entity.ClientB2C {
		return nil, domain.ErrInvalidInput
	}
	if !domainbilling.ValidStream(in.StreamType) {
		return nil, domain.ErrInvalidInput
	}
	vatID := ustid.Normalize(in.UstIdNr)
	if vatID != "" {
		if err := ustid.Validate(vatID); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}

	now := time.Now().UTC()
	client := &entity.Client{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       name,
		Country:    country,
		ClientType: clientType,
		UstIdNr:    vatID,
		StreamType: in.StreamType,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

func (uc *ClientUseCase) GetClient(ctx context.Context, userID, id string) (*dto.ClientResponse, error) {
	client, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

func (uc *ClientUseCase) ListClients(ctx context.Context, userID string) ([]*dto.ClientResponse, error) {
	clients, err := uc.clientRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// UpdateClient edits name and USt-IdNr. Country, type and stream stay fixed
// so that already issued invoices keep a consistent treatment history.
func (uc *ClientUseCase) UpdateClient(ctx context.Context, userID, id string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		client.Name = name
	}
	if in.UstIdNr != "" {
		vatID := ustid.Normalize(in.UstIdNr)
		if err := ustid.Validate(vatID); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		client.UstIdNr = vatID
	}
	client.UpdatedAt = time.Now().UTC()
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// DeactivateClient soft-deletes: invoices referencing the client survive.
func (uc *ClientUseCase) DeactivateClient(ctx context.Context, userID, id string) error {
	client, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	client.Active = false
	client.UpdatedAt = time.Now().UTC()
	return uc.clientRepo.Update(ctx, client)
}

func (uc *ClientUseCase) getOwned(ctx context.Context, userID, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, &domain.NotFoundError{Entity: "client", ID: id}
	}
	if client.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Country:    c.Country,
		ClientType: c.ClientType,
		UstIdNr:    c.UstIdNr,
		StreamType: c.StreamType,
		Active:     c.Active,
		CreatedAt:  c.CreatedAt,
	}
}
