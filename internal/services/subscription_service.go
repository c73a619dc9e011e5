package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/taskbay/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const subscriptionTerm = 365 * 24 * time.Hour

// SubscriptionService owns the plan purchase lifecycle: a subscription is
// created pending, a payment order is opened with the gateway, and the
// webhook activates the record once the payment is captured. The flat
// subscription fields on User and WorkerProfile are refreshed on every status
// transition; they are read caches, never the source of truth.
type SubscriptionService struct {
	subs    models.SubscriptionRepo
	users   models.UserRepo
	workers models.WorkerRepo
	gateway PaymentGateway
	logger  *slog.Logger
}

func NewSubscriptionService(subs models.SubscriptionRepo, users models.UserRepo, workers models.WorkerRepo, gateway PaymentGateway, logger *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		subs:    subs,
		users:   users,
		workers: workers,
		gateway: gateway,
		logger:  logger,
	}
}

type CreateSubscriptionResult struct {
	SubscriptionID string        `json:"subscription_id"`
	Order          *PaymentOrder `json:"order"`
}

func (ss *SubscriptionService) CreatePlanSubscription(ctx context.Context, userID primitive.ObjectID, planName string) (*CreateSubscriptionResult, error) {
	plan, err := models.ParsePlan(planName)
	if err != nil {
		return nil, models.BadRequest("Invalid plan. Use 'silver' or 'gold'")
	}
	price, ok := models.PlanPrice(plan)
	if !ok {
		return nil, models.BadRequest("Invalid plan. Use 'silver' or 'gold'")
	}

	now := time.Now()
	sub, err := ss.subs.CreateSubscription(ctx, &models.Subscription{
		UserID:           userID,
		SubscriptionType: models.SubscriptionWorker,
		PlanName:         string(plan),
		Price:            price,
		Status:           models.SubscriptionPending,
		StartsAt:         now,
		ExpiresAt:        now.Add(subscriptionTerm),
		AutoRenew:        false,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, models.InternalError("Failed to create subscription")
	}

	order, err := ss.gateway.CreateOrder(ctx, price)
	if err != nil {
		return nil, models.ServiceUnavailable("Order creation failed")
	}

	// The order id is the correlation key the webhook activates by.
	if err := ss.subs.SetPaymentID(ctx, sub.ID, order.ID); err != nil {
		return nil, models.InternalError("Failed to record payment order")
	}

	return &CreateSubscriptionResult{
		SubscriptionID: sub.ID.Hex(),
		Order:          order,
	}, nil
}

// VerifyWebhookSignature authenticates a webhook body before it is parsed.
func (ss *SubscriptionService) VerifyWebhookSignature(body []byte, signature string) bool {
	return ss.gateway.VerifyWebhookSignature(body, signature)
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhookEvent activates the pending subscription matching a captured
// payment's order, then refreshes the plan mirrors. Unknown events and
// already-active subscriptions are ignored, so redelivery is harmless.
func (ss *SubscriptionService) HandleWebhookEvent(ctx context.Context, body []byte) error {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.BadRequest("Malformed webhook payload")
	}

	if payload.Event != "payment.captured" {
		return nil
	}

	orderID := payload.Payload.Payment.Entity.OrderID
	if orderID == "" {
		return models.BadRequest("Webhook payload missing order id")
	}

	sub, err := ss.subs.ActivateByPaymentID(ctx, orderID)
	if err != nil {
		return models.InternalError("Failed to activate subscription")
	}
	if sub == nil {
		return nil
	}

	ss.refreshMirrors(ctx, sub)
	return nil
}

// refreshMirrors pushes the activated plan onto the user record and worker
// profile. Mirror writes are best effort; a failed mirror is logged and the
// activation stands.
func (ss *SubscriptionService) refreshMirrors(ctx context.Context, sub *models.Subscription) {
	if err := ss.users.SetSubscriptionMirror(ctx, sub.UserID, sub.ID, sub.PlanName, sub.ExpiresAt); err != nil {
		ss.logger.Warn("failed to refresh user subscription mirror",
			"user_id", sub.UserID.Hex(), "subscription_id", sub.ID.Hex(), "error", err)
	}

	plan, err := models.ParsePlan(sub.PlanName)
	if err != nil {
		ss.logger.Warn("subscription carries unknown plan name",
			"subscription_id", sub.ID.Hex(), "plan", sub.PlanName)
		return
	}
	if _, err := ss.workers.SetWorkerSubscription(ctx, sub.UserID, plan, sub.ExpiresAt); err != nil {
		ss.logger.Warn("failed to refresh worker subscription mirror",
			"user_id", sub.UserID.Hex(), "subscription_id", sub.ID.Hex(), "error", err)
	}
}
