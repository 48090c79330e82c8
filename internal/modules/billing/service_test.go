package billing

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casastock/casastock-backend/internal/apperr"
)

type memRepo struct {
	subs []*Subscription
}

func (r *memRepo) CreateSubscription(_ context.Context, s *Subscription) error {
	r.subs = append(r.subs, s)
	return nil
}

func (r *memRepo) LatestByOwner(_ context.Context, owner uuid.UUID) (*Subscription, error) {
	for i := len(r.subs) - 1; i >= 0; i-- {
		if r.subs[i].OwnerID == owner {
			return r.subs[i], nil
		}
	}
	return nil, nil
}

func (r *memRepo) SetStatusByGatewayID(_ context.Context, gatewayID, status string) (*Subscription, error) {
	for _, s := range r.subs {
		if s.GatewaySubscriptionID == gatewayID {
			s.Status = status
			return s, nil
		}
	}
	return nil, apperr.NotFoundf("subscription not found")
}

type fakeGateway struct {
	created int
	valid   bool
}

func (g *fakeGateway) CreateSubscription(context.Context, string) (*GatewaySubscription, error) {
	g.created++
	return &GatewaySubscription{
		ID:       fmt.Sprintf("sub_%d", g.created),
		ShortURL: "https://rzp.io/i/test",
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifyCheckoutSignature(string, string, string) bool { return g.valid }
func (g *fakeGateway) VerifyWebhookSignature([]byte, string) bool          { return g.valid }

func newTestService() (Service, *memRepo, *fakeGateway) {
	repo := &memRepo{}
	gw := &fakeGateway{valid: true}
	return NewService(repo, gw, "key_test", "plan_test"), repo, gw
}

func TestSubscribeThenVerifyActivates(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	checkout, err := svc.Subscribe(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "key_test", checkout.KeyID)
	assert.Equal(t, "sub_1", checkout.SubscriptionID)
	require.Len(t, repo.subs, 1)
	assert.Equal(t, StatusPending, repo.subs[0].Status)

	sub, err := svc.Verify(ctx, owner, VerifyRequest{
		SubscriptionID: "sub_1",
		PaymentID:      "pay_1",
		Signature:      "sig",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, sub.Status)
}

func TestSubscribeRejectedWhenAlreadyActive(t *testing.T) {
	svc, repo, gw := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	repo.subs = append(repo.subs, &Subscription{
		ID:                    uuid.New(),
		OwnerID:               owner,
		GatewaySubscriptionID: "sub_old",
		Status:                StatusActive,
	})

	_, err := svc.Subscribe(ctx, owner)
	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 0, gw.created, "no gateway call on conflict")
}

func TestSubscribeAgainAfterCancellation(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	repo.subs = append(repo.subs, &Subscription{
		ID:                    uuid.New(),
		OwnerID:               owner,
		GatewaySubscriptionID: "sub_old",
		Status:                StatusCancelled,
	})

	checkout, err := svc.Subscribe(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "sub_1", checkout.SubscriptionID)
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	svc, _, gw := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, owner)
	require.NoError(t, err)

	gw.valid = false
	_, err = svc.Verify(ctx, owner, VerifyRequest{
		SubscriptionID: "sub_1",
		PaymentID:      "pay_1",
		Signature:      "forged",
	})
	var authErr *apperr.AuthError
	require.ErrorAs(t, err, &authErr)

	sub, err := svc.Current(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, sub.Status)
}

func TestVerifyRejectsForeignSubscription(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, uuid.New())
	require.NoError(t, err)

	// A different owner tries to claim the first owner's checkout.
	_, err = svc.Verify(ctx, uuid.New(), VerifyRequest{
		SubscriptionID: "sub_1",
		PaymentID:      "pay_1",
		Signature:      "sig",
	})
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestWebhookTransitions(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, owner)
	require.NoError(t, err)

	charged := []byte(`{"event":"subscription.charged","payload":{"subscription":{"entity":{"id":"sub_1"}}}}`)
	require.NoError(t, svc.HandleWebhook(ctx, charged, "sig"))
	assert.Equal(t, StatusActive, repo.subs[0].Status)

	cancelled := []byte(`{"event":"subscription.cancelled","payload":{"subscription":{"entity":{"id":"sub_1"}}}}`)
	require.NoError(t, svc.HandleWebhook(ctx, cancelled, "sig"))
	assert.Equal(t, StatusCancelled, repo.subs[0].Status)
}

func TestWebhookPaymentCapturedActivates(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, owner)
	require.NoError(t, err)

	payload := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"subscription_id":"sub_1"}}}}`)
	require.NoError(t, svc.HandleWebhook(ctx, payload, "sig"))
	assert.Equal(t, StatusActive, repo.subs[0].Status)
}

func TestWebhookIgnoresUnknownEvents(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, owner)
	require.NoError(t, err)

	payload := []byte(`{"event":"payment.failed","payload":{"subscription":{"entity":{"id":"sub_1"}}}}`)
	require.NoError(t, svc.HandleWebhook(ctx, payload, "sig"))
	assert.Equal(t, StatusPending, repo.subs[0].Status)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	svc, _, gw := newTestService()
	gw.valid = false

	err := svc.HandleWebhook(context.Background(),
		[]byte(`{"event":"subscription.charged"}`), "forged")
	var authErr *apperr.AuthError
	require.ErrorAs(t, err, &authErr)
}
