package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"paperscan/internal/mail"
	"paperscan/internal/model"
	"paperscan/internal/repository"
)

var (
	// ErrInvalidSignature means the webhook signature did not verify.
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	// ErrInvalidPayload means the event body could not be decoded.
	ErrInvalidPayload = errors.New("webhook payload is invalid")
)

const mailSendTimeout = 15 * time.Second

// BillingService applies payment-provider webhook events to entitlements.
type BillingService interface {
	// ProcessWebhook verifies and applies one webhook delivery. Replayed
	// deliveries of an already-processed event succeed without side effects.
	ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error
}

type billingService struct {
	secret       string
	entitlements repository.EntitlementRepository
	events       repository.BillingEventRepository
	mailer       mail.Mailer
}

// NewBillingService constructs a new BillingService.
func NewBillingService(
	webhookSecret string,
	entitlements repository.EntitlementRepository,
	events repository.BillingEventRepository,
	mailer mail.Mailer,
) BillingService {
	return &billingService{
		secret:       webhookSecret,
		entitlements: entitlements,
		events:       events,
		mailer:       mailer,
	}
}

func (s *billingService) ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		sigHeader,
		s.secret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	default:
		// Intentionally ignore unhandled events.
		return nil
	}
}

func (s *billingService) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	email := ""
	if sess.CustomerDetails != nil {
		email = normalizeEmail(sess.CustomerDetails.Email)
	}
	if email == "" {
		// Sessions without a buyer email cannot grant anything; Stripe
		// retries are pointless, so acknowledge the delivery.
		log.Printf("billing: checkout session %s has no customer email, skipping", sess.ID)
		return nil
	}

	first, err := s.events.MarkProcessed(ctx, event.ID, email)
	if err != nil {
		return fmt.Errorf("record billing event: %w", err)
	}
	if !first {
		log.Printf("billing: event %s already processed, skipping", event.ID)
		return nil
	}

	subscriptionRef := ""
	if sess.Subscription != nil {
		subscriptionRef = sess.Subscription.ID
	}

	ent := &model.Entitlement{
		Email:           email,
		Tier:            model.TierPro,
		Status:          model.EntitlementActive,
		PaymentRef:      sess.ID,
		SubscriptionRef: subscriptionRef,
	}
	if _, err := s.entitlements.Upsert(ctx, ent); err != nil {
		return fmt.Errorf("upsert entitlement: %w", err)
	}

	s.sendAsync(mail.Message{
		To:      email,
		Subject: "Bienvenue sur Paper Scanner Pro",
		Body: "Bonjour,\n\n" +
			"Votre paiement a bien été reçu. Votre accès Pro est actif dès maintenant : " +
			"analyses illimitées, export PDF/DOCX et traitement par lots.\n\n" +
			"Merci de votre confiance,\nL'équipe Paper Scanner",
	})

	log.Printf("billing: pro access granted email=%s event=%s", email, event.ID)
	return nil
}

func (s *billingService) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if sub.ID == "" {
		log.Printf("billing: subscription deleted event %s has no subscription id, skipping", event.ID)
		return nil
	}

	first, err := s.events.MarkProcessed(ctx, event.ID, "")
	if err != nil {
		return fmt.Errorf("record billing event: %w", err)
	}
	if !first {
		log.Printf("billing: event %s already processed, skipping", event.ID)
		return nil
	}

	if err := s.entitlements.UpdateStatusBySubscription(ctx, sub.ID, model.EntitlementInactive); err != nil {
		return fmt.Errorf("deactivate entitlement: %w", err)
	}

	log.Printf("billing: entitlement deactivated subscription=%s event=%s", sub.ID, event.ID)
	return nil
}

// sendAsync delivers the mail off the request path with its own deadline.
// Delivery failures are logged only; the webhook already succeeded.
func (s *billingService) sendAsync(msg mail.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, msg); err != nil {
			log.Printf("billing: confirmation mail failed to=%s err=%v", msg.To, err)
		}
	}()
}
