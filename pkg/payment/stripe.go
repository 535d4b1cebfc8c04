package payment

import (
	"encoding/json"
	"fmt"
	"strconv"

	"storydesk/internal/apperr"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

const checkoutCompletedEvent = "checkout.session.completed"

type Config struct {
	SecretKey     string
	WebhookSecret string
	// PriceIDs maps a plan tier to its Stripe price id.
	PriceIDs   map[string]string
	SuccessURL string
	CancelURL  string
}

type CheckoutCompleted struct {
	SubmissionID int64
	Plan         string
}

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	priceIDs      map[string]string
	successURL    string
	cancelURL     string
}

func NewStripeGateway(cfg Config) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &StripeGateway{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		priceIDs:      cfg.PriceIDs,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
	}
}

func (g *StripeGateway) CreateCheckoutSession(submissionID int64, plan string) (string, error) {
	priceID, ok := g.priceIDs[plan]
	if !ok {
		return "", fmt.Errorf("%w: no price configured for plan %q", apperr.ErrInvalidInput, plan)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}
	params.AddMetadata("submission_id", strconv.FormatInt(submissionID, 10))
	params.AddMetadata("plan", plan)

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: stripe checkout session: %v", apperr.ErrUpstream, err)
	}

	return session.ID, nil
}

// VerifyCheckoutEvent checks the webhook signature and extracts the submission
// id and plan from a completed checkout. Any other event type is rejected.
func (g *StripeGateway) VerifyCheckoutEvent(payload []byte, sigHeader string) (*CheckoutCompleted, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: webhook signature verification failed: %v", apperr.ErrInvalidInput, err)
	}

	if string(event.Type) != checkoutCompletedEvent {
		return nil, fmt.Errorf("%w: unexpected event type %q", apperr.ErrInvalidInput, event.Type)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: malformed checkout session payload: %v", apperr.ErrInvalidInput, err)
	}

	submissionID, err := strconv.ParseInt(session.Metadata["submission_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: missing or non-numeric submission_id metadata", apperr.ErrInvalidInput)
	}

	plan := session.Metadata["plan"]
	if plan == "" {
		return nil, fmt.Errorf("%w: missing plan metadata", apperr.ErrInvalidInput)
	}

	return &CheckoutCompleted{SubmissionID: submissionID, Plan: plan}, nil
}
