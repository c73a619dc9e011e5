package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskbay/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newSubscriptionService(subs *fakeSubscriptionRepo, users *fakeUserRepo, workers *fakeWorkerRepo, gateway *fakeGateway) *SubscriptionService {
	return NewSubscriptionService(subs, users, workers, gateway, testLogger())
}

func capturedWebhookBody(orderID string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123","order_id":"%s"}}}}`,
		orderID,
	))
}

func TestCreatePlanSubscriptionInvalidPlan(t *testing.T) {
	gateway := &fakeGateway{orderID: "order_1"}
	ss := newSubscriptionService(newFakeSubscriptionRepo(), newFakeUserRepo(), newFakeWorkerRepo(), gateway)

	for _, plan := range []string{"", "none", "platinum"} {
		_, err := ss.CreatePlanSubscription(context.Background(), primitive.NewObjectID(), plan)
		require.Error(t, err, "plan %q", plan)
		assert.Equal(t, http.StatusBadRequest, models.AsApiError(err).Status)
	}
	assert.Empty(t, gateway.orders)
}

func TestCreatePlanSubscriptionOpensOrder(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	gateway := &fakeGateway{orderID: "order_silver_1"}
	ss := newSubscriptionService(subs, newFakeUserRepo(), newFakeWorkerRepo(), gateway)
	userID := primitive.NewObjectID()

	result, err := ss.CreatePlanSubscription(context.Background(), userID, "silver")
	require.NoError(t, err)

	assert.Equal(t, []float64{499}, gateway.orders)
	assert.Equal(t, "order_silver_1", result.Order.ID)

	subID, err := primitive.ObjectIDFromHex(result.SubscriptionID)
	require.NoError(t, err)
	sub := subs.subs[subID]
	require.NotNil(t, sub)
	assert.Equal(t, models.SubscriptionPending, sub.Status)
	assert.Equal(t, "silver", sub.PlanName)
	assert.Equal(t, "order_silver_1", sub.PaymentID)
	assert.Equal(t, userID, sub.UserID)
}

func TestCreatePlanSubscriptionGoldPrice(t *testing.T) {
	gateway := &fakeGateway{orderID: "order_gold_1"}
	ss := newSubscriptionService(newFakeSubscriptionRepo(), newFakeUserRepo(), newFakeWorkerRepo(), gateway)

	_, err := ss.CreatePlanSubscription(context.Background(), primitive.NewObjectID(), "gold")
	require.NoError(t, err)
	assert.Equal(t, []float64{799}, gateway.orders)
}

func TestCreatePlanSubscriptionGatewayDown(t *testing.T) {
	ss := newSubscriptionService(newFakeSubscriptionRepo(), newFakeUserRepo(), newFakeWorkerRepo(), &fakeGateway{failOrders: true})

	_, err := ss.CreatePlanSubscription(context.Background(), primitive.NewObjectID(), "silver")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, models.AsApiError(err).Status)
}

func TestHandleWebhookActivatesAndRefreshesMirrors(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	users := newFakeUserRepo()
	workers := newFakeWorkerRepo()
	gateway := &fakeGateway{orderID: "order_gold_1"}
	ss := newSubscriptionService(subs, users, workers, gateway)
	userID := primitive.NewObjectID()

	result, err := ss.CreatePlanSubscription(context.Background(), userID, "gold")
	require.NoError(t, err)

	err = ss.HandleWebhookEvent(context.Background(), capturedWebhookBody("order_gold_1"))
	require.NoError(t, err)

	subID, _ := primitive.ObjectIDFromHex(result.SubscriptionID)
	assert.Equal(t, models.SubscriptionActive, subs.subs[subID].Status)
	assert.Equal(t, "gold", users.mirrorPlans[userID])
	assert.Equal(t, models.PlanGold, workers.subs[userID])
}

func TestHandleWebhookUnknownOrderIsIdempotent(t *testing.T) {
	users := newFakeUserRepo()
	workers := newFakeWorkerRepo()
	ss := newSubscriptionService(newFakeSubscriptionRepo(), users, workers, &fakeGateway{})

	err := ss.HandleWebhookEvent(context.Background(), capturedWebhookBody("order_never_seen"))
	require.NoError(t, err)
	assert.Empty(t, users.mirrorPlans)
	assert.Empty(t, workers.subs)
}

func TestHandleWebhookRedelivery(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	users := newFakeUserRepo()
	ss := newSubscriptionService(subs, users, newFakeWorkerRepo(), &fakeGateway{orderID: "order_1"})
	userID := primitive.NewObjectID()

	_, err := ss.CreatePlanSubscription(context.Background(), userID, "silver")
	require.NoError(t, err)

	body := capturedWebhookBody("order_1")
	require.NoError(t, ss.HandleWebhookEvent(context.Background(), body))
	// The second delivery finds no pending subscription and does nothing.
	require.NoError(t, ss.HandleWebhookEvent(context.Background(), body))
}

func TestHandleWebhookIgnoresOtherEvents(t *testing.T) {
	users := newFakeUserRepo()
	ss := newSubscriptionService(newFakeSubscriptionRepo(), users, newFakeWorkerRepo(), &fakeGateway{})

	body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	require.NoError(t, ss.HandleWebhookEvent(context.Background(), body))
	assert.Empty(t, users.mirrorPlans)
}

func TestHandleWebhookMalformedBody(t *testing.T) {
	ss := newSubscriptionService(newFakeSubscriptionRepo(), newFakeUserRepo(), newFakeWorkerRepo(), &fakeGateway{})

	err := ss.HandleWebhookEvent(context.Background(), []byte("{not json"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, models.AsApiError(err).Status)
}

func TestHandleWebhookMissingOrderID(t *testing.T) {
	ss := newSubscriptionService(newFakeSubscriptionRepo(), newFakeUserRepo(), newFakeWorkerRepo(), &fakeGateway{})

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`)
	err := ss.HandleWebhookEvent(context.Background(), body)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, models.AsApiError(err).Status)
}
