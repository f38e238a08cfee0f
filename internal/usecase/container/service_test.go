package container

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainContainer "vehicle-shipping-backend/internal/domain/container"
	domainShipment "vehicle-shipping-backend/internal/domain/shipment"
	"vehicle-shipping-backend/internal/logger"
)

func init() {
	_ = logger.Init("development", "")
}

// fakeContainerRepo is an in-memory container.Repository for service tests.
type fakeContainerRepo struct {
	containers map[uuid.UUID]*domainContainer.Container
	items      map[uuid.UUID]*domainContainer.Item

	createItemCalls int
}

func newFakeContainerRepo() *fakeContainerRepo {
	return &fakeContainerRepo{
		containers: make(map[uuid.UUID]*domainContainer.Container),
		items:      make(map[uuid.UUID]*domainContainer.Item),
	}
}

func (f *fakeContainerRepo) Create(_ context.Context, c *domainContainer.Container) error {
	for _, existing := range f.containers {
		if existing.ContainerNumber == c.ContainerNumber {
			return domainContainer.ErrDuplicateNumber
		}
	}
	c.ID = uuid.New()
	f.containers[c.ID] = c
	return nil
}

func (f *fakeContainerRepo) GetByID(_ context.Context, id uuid.UUID) (*domainContainer.Container, error) {
	c, ok := f.containers[id]
	if !ok {
		return nil, domainContainer.ErrContainerNotFound
	}
	return c, nil
}

func (f *fakeContainerRepo) GetByNumber(_ context.Context, number string) (*domainContainer.Container, error) {
	for _, c := range f.containers {
		if c.ContainerNumber == number {
			return c, nil
		}
	}
	return nil, domainContainer.ErrContainerNotFound
}

func (f *fakeContainerRepo) List(_ context.Context, _ *domainContainer.Filter) ([]*domainContainer.Container, int64, error) {
	out := make([]*domainContainer.Container, 0, len(f.containers))
	for _, c := range f.containers {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeContainerRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domainContainer.Status) error {
	c, ok := f.containers[id]
	if !ok {
		return domainContainer.ErrContainerNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeContainerRepo) LinkShipment(_ context.Context, containerID, shipmentID uuid.UUID) error {
	c, ok := f.containers[containerID]
	if !ok {
		return domainContainer.ErrContainerNotFound
	}
	if c.ShipmentID != nil {
		return domainContainer.ErrShipmentLinkExists
	}
	c.ShipmentID = &shipmentID
	return nil
}

func (f *fakeContainerRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.containers[id]
	return ok, nil
}

func (f *fakeContainerRepo) CreateItem(_ context.Context, item *domainContainer.Item) error {
	f.createItemCalls++
	item.ID = uuid.New()
	f.items[item.ID] = item
	return nil
}

func (f *fakeContainerRepo) GetItem(_ context.Context, id uuid.UUID) (*domainContainer.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domainContainer.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeContainerRepo) ListItems(_ context.Context, containerID uuid.UUID) ([]*domainContainer.Item, error) {
	var out []*domainContainer.Item
	for _, item := range f.items {
		if item.ContainerID == containerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeContainerRepo) UpdateItem(_ context.Context, item *domainContainer.Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return domainContainer.ErrItemNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeContainerRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return domainContainer.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeShipmentRepo satisfies the shipment lookup the container service needs.
type fakeShipmentRepo struct {
	shipments map[uuid.UUID]*domainShipment.Shipment
}

func (f *fakeShipmentRepo) Create(_ context.Context, _ *domainShipment.Shipment) error { return nil }
func (f *fakeShipmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domainShipment.Shipment, error) {
	sh, ok := f.shipments[id]
	if !ok {
		return nil, domainShipment.ErrShipmentNotFound
	}
	return sh, nil
}
func (f *fakeShipmentRepo) GetByTrackingNumber(_ context.Context, _ string) (*domainShipment.Shipment, error) {
	return nil, domainShipment.ErrShipmentNotFound
}
func (f *fakeShipmentRepo) Update(_ context.Context, _ *domainShipment.Shipment) error { return nil }
func (f *fakeShipmentRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ domainShipment.Status, _ int) error {
	return nil
}
func (f *fakeShipmentRepo) SetActualDelivery(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}
func (f *fakeShipmentRepo) List(_ context.Context, _ *domainShipment.Filter) ([]*domainShipment.Shipment, int64, error) {
	return nil, 0, nil
}
func (f *fakeShipmentRepo) ListActive(_ context.Context) ([]*domainShipment.Shipment, error) {
	return nil, nil
}
func (f *fakeShipmentRepo) GetStatistics(_ context.Context) (*domainShipment.Statistics, error) {
	return &domainShipment.Statistics{}, nil
}

func validItemRequest() *CreateItemRequest {
	return &CreateItemRequest{
		VIN:         "1HGBH41JXMN109186",
		LotNumber:   "LOT-4821",
		AuctionCity: "Dallas",
		FreightCost: 1200,
		TowingCost:  150,
	}
}

func TestCreateItemMissingContainer(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewService(repo, &fakeShipmentRepo{})

	_, err := svc.CreateItem(context.Background(), uuid.New(), validItemRequest())

	require.ErrorIs(t, err, domainContainer.ErrContainerNotFound)
	// The not-found check happens before any write.
	assert.Zero(t, repo.createItemCalls)
}

func TestCreateItemComputesTotal(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewService(repo, &fakeShipmentRepo{})

	created, err := svc.Create(context.Background(), &CreateContainerRequest{ContainerNumber: "MSKU1234567"})
	require.NoError(t, err)

	item, err := svc.CreateItem(context.Background(), created.ID, validItemRequest())
	require.NoError(t, err)

	assert.InDelta(t, 1350, item.TotalCost, 0.001)
	assert.Equal(t, created.ID, item.ContainerID)
}

func TestCreateItemInvalidVIN(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewService(repo, &fakeShipmentRepo{})

	created, err := svc.Create(context.Background(), &CreateContainerRequest{ContainerNumber: "MSKU1234567"})
	require.NoError(t, err)

	req := validItemRequest()
	req.VIN = "SHORT"

	_, err = svc.CreateItem(context.Background(), created.ID, req)
	require.Error(t, err)
	assert.Zero(t, repo.createItemCalls)
}

func TestCreateContainerDuplicateNumber(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewService(repo, &fakeShipmentRepo{})

	_, err := svc.Create(context.Background(), &CreateContainerRequest{ContainerNumber: "MSKU1234567"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &CreateContainerRequest{ContainerNumber: "MSKU1234567"})
	assert.ErrorIs(t, err, domainContainer.ErrDuplicateNumber)
}

func TestCreateContainerUnknownShipment(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewService(repo, &fakeShipmentRepo{})

	missing := uuid.New()
	_, err := svc.Create(context.Background(), &CreateContainerRequest{
		ContainerNumber: "MSKU1234567",
		ShipmentID:      &missing,
	})

	assert.ErrorIs(t, err, domainShipment.ErrShipmentNotFound)
}

func TestLinkShipmentOnlyOnce(t *testing.T) {
	shipmentID := uuid.New()
	shipRepo := &fakeShipmentRepo{shipments: map[uuid.UUID]*domainShipment.Shipment{
		shipmentID: {ID: shipmentID},
	}}
	repo := newFakeContainerRepo()
	svc := NewService(repo, shipRepo)

	created, err := svc.Create(context.Background(), &CreateContainerRequest{ContainerNumber: "MSKU1234567"})
	require.NoError(t, err)

	linked, err := svc.LinkShipment(context.Background(), created.ID, &LinkShipmentRequest{ShipmentID: shipmentID})
	require.NoError(t, err)
	require.NotNil(t, linked.ShipmentID)
	assert.Equal(t, shipmentID, *linked.ShipmentID)

	_, err = svc.LinkShipment(context.Background(), created.ID, &LinkShipmentRequest{ShipmentID: shipmentID})
	assert.ErrorIs(t, err, domainContainer.ErrShipmentLinkExists)
}

func TestUpdateItemPartial(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewService(repo, &fakeShipmentRepo{})

	created, err := svc.Create(context.Background(), &CreateContainerRequest{ContainerNumber: "MSKU1234567"})
	require.NoError(t, err)

	item, err := svc.CreateItem(context.Background(), created.ID, validItemRequest())
	require.NoError(t, err)

	newFreight := 2000.0
	updated, err := svc.UpdateItem(context.Background(), item.ID, &UpdateItemRequest{FreightCost: &newFreight})
	require.NoError(t, err)

	assert.InDelta(t, 2000, updated.FreightCost, 0.001)
	// Untouched fields survive the partial update.
	assert.Equal(t, "LOT-4821", updated.LotNumber)
	assert.InDelta(t, 2150, updated.TotalCost, 0.001)
}
