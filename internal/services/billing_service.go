// internal/services/billing_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	portalsession "github.com/stripe/stripe-go/v74/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/customer"
	"github.com/stripe/stripe-go/v74/invoice"
	stripesub "github.com/stripe/stripe-go/v74/subscription"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/config"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

// secondInstallmentSuffix tags the second monthly referral commission; its
// presence on an existing row is the idempotency check for repeat invoice
// events.
const secondInstallmentSuffix = " (2ª parcela)"

type BillingService struct {
	db        *gorm.DB
	config    *config.Config
	referrals *ReferralService
}

func NewBillingService(db *gorm.DB, cfg *config.Config, referrals *ReferralService) *BillingService {
	stripe.Key = cfg.Stripe.SecretKey

	return &BillingService{
		db:        db,
		config:    cfg,
		referrals: referrals,
	}
}

type CreateCheckoutRequest struct {
	Plan         string              `json:"plan" validate:"required"`
	BillingCycle models.BillingCycle `json:"billingCycle" validate:"required,billing_cycle"`
	UserEmail    string              `json:"userEmail" validate:"required,email"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type CreatePortalRequest struct {
	UserEmail string `json:"userEmail" validate:"required,email"`
}

type UpdateStripeSubscriptionRequest struct {
	UserEmail    string              `json:"userEmail" validate:"required,email"`
	Plan         string              `json:"plan" validate:"required"`
	BillingCycle models.BillingCycle `json:"billingCycle" validate:"required,billing_cycle"`
}

// CreateCheckoutSession starts a subscription checkout for a known account.
// The Empresarial tier is sold off-platform and rejected here.
func (s *BillingService) CreateCheckoutSession(req *CreateCheckoutRequest) (*CheckoutSessionResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Plan == PlanEmpresarial {
		return nil, errors.New("enterprise plans are handled by sales")
	}
	priceID, err := s.priceIDFor(req.Plan, req.BillingCycle)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Where("email = ?", req.UserEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	customerID, err := s.findOrCreateCustomer(&user)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(int64(s.config.Stripe.TrialDays)),
		},
		SuccessURL: stripe.String(s.config.Frontend.BaseURL + "/assinatura?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.config.Frontend.BaseURL + "/assinatura"),
	}
	params.AddMetadata("userId", user.ID.String())
	params.AddMetadata("plan", req.Plan)
	params.AddMetadata("billingCycle", string(req.BillingCycle))

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSessionResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

// CreatePortalSession opens the processor's billing portal for the account.
func (s *BillingService) CreatePortalSession(req *CreatePortalRequest) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.UserEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("user not found")
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	var subscription models.Subscription
	if err := s.db.Where("user_id = ?", user.ID).First(&subscription).Error; err != nil {
		return "", errors.New("subscription not found")
	}
	if subscription.StripeCustomerID == nil {
		return "", errors.New("no billing profile for this account")
	}

	sess, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*subscription.StripeCustomerID),
		ReturnURL: stripe.String(s.config.Frontend.BaseURL + "/assinatura"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}
	return sess.URL, nil
}

// UpdateSubscriptionPlan swaps the remote subscription onto another price
// with proration, leaving local state to the webhook stream.
func (s *BillingService) UpdateSubscriptionPlan(req *UpdateStripeSubscriptionRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	priceID, err := s.priceIDFor(req.Plan, req.BillingCycle)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.db.Where("email = ?", req.UserEmail).First(&user).Error; err != nil {
		return errors.New("user not found")
	}

	var subscription models.Subscription
	if err := s.db.Where("user_id = ?", user.ID).First(&subscription).Error; err != nil ||
		subscription.StripeSubscriptionID == nil {
		return errors.New("no active processor subscription")
	}

	remote, err := stripesub.Get(*subscription.StripeSubscriptionID, nil)
	if err != nil {
		return fmt.Errorf("failed to load subscription: %w", err)
	}
	if len(remote.Items.Data) == 0 {
		return errors.New("processor subscription has no items")
	}

	_, err = stripesub.Update(remote.ID, &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(remote.Items.Data[0].ID),
				Price: stripe.String(priceID),
			},
		},
		ProrationBehavior: stripe.String("create_prorations"),
	})
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

// VerifySession fetches a checkout session so the client can confirm the
// purchase it was redirected back from.
func (s *BillingService) VerifySession(sessionID string) (map[string]interface{}, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}

	sess, err := checkoutsession.Get(sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	return map[string]interface{}{
		"id":            sess.ID,
		"status":        string(sess.Status),
		"paymentStatus": string(sess.PaymentStatus),
		"plan":          sess.Metadata["plan"],
		"billingCycle":  sess.Metadata["billingCycle"],
	}, nil
}

// HandleWebhook verifies the event signature and dispatches it.
func (s *BillingService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.config.Stripe.WebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	logrus.WithField("type", event.Type).Info("Processing billing event")

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}
		return s.handleCheckoutCompleted(&sess)

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to parse subscription: %w", err)
		}
		return s.handleSubscriptionChanged(&sub)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to parse subscription: %w", err)
		}
		return s.handleSubscriptionDeleted(&sub)

	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return fmt.Errorf("failed to parse invoice: %w", err)
		}
		return s.handleInvoicePaid(&inv)

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return fmt.Errorf("failed to parse invoice: %w", err)
		}
		return s.handleInvoiceFailed(&inv)

	default:
		logrus.WithField("type", event.Type).Debug("Ignoring billing event")
		return nil
	}
}

func (s *BillingService) handleCheckoutCompleted(sess *stripe.CheckoutSession) error {
	userID := sess.Metadata["userId"]
	plan := sess.Metadata["plan"]
	cycle := models.BillingCycle(sess.Metadata["billingCycle"])
	if userID == "" || plan == "" {
		return errors.New("checkout session is missing metadata")
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return fmt.Errorf("checkout user not found: %w", err)
	}

	trialEnd := time.Now().AddDate(0, 0, s.config.Stripe.TrialDays)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var subscription models.Subscription
		err := tx.Where("user_id = ?", user.ID).First(&subscription).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		fields := map[string]interface{}{
			"plan":          plan,
			"billing_cycle": cycle,
			"status":        models.SubscriptionStatusTrial,
			"trial_ends_at": trialEnd,
		}
		if sess.Customer != nil {
			fields["stripe_customer_id"] = sess.Customer.ID
		}
		if sess.Subscription != nil {
			fields["stripe_subscription_id"] = sess.Subscription.ID
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			subscription = models.Subscription{
				UserID:       user.ID,
				Plan:         plan,
				BillingCycle: cycle,
				Status:       models.SubscriptionStatusTrial,
				TrialEndsAt:  &trialEnd,
			}
			if sess.Customer != nil {
				subscription.StripeCustomerID = &sess.Customer.ID
			}
			if sess.Subscription != nil {
				subscription.StripeSubscriptionID = &sess.Subscription.ID
			}
			if err := tx.Create(&subscription).Error; err != nil {
				return fmt.Errorf("failed to create subscription: %w", err)
			}
		} else if err := tx.Model(&subscription).Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		return s.accrueFirstCommission(tx, &user, plan, cycle)
	})
}

// accrueFirstCommission credits the referrer when a referred user checks
// out: half the first month for monthly plans, 10% of the yearly price for
// yearly plans.
func (s *BillingService) accrueFirstCommission(tx *gorm.DB, user *models.User, plan string, cycle models.BillingCycle) error {
	if user.ReferredBy == nil || *user.ReferredBy == "" {
		return nil
	}

	var referral models.Referral
	if err := tx.Where("referral_code = ?", *user.ReferredBy).First(&referral).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithField("code", *user.ReferredBy).Warn("Referral code on user does not resolve")
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	label := fmt.Sprintf("%s (%s)", plan, cycle)
	exists, err := s.referrals.HasCommissionForPlan(referral.ID, user.ID, label)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	amount := firstCommissionCents(plan, cycle)
	if amount == 0 {
		return nil
	}

	return s.referrals.RecordCommission(tx, &referral, user, label, amount, true)
}

func firstCommissionCents(plan string, cycle models.BillingCycle) int64 {
	if cycle == models.BillingCycleYearly {
		yearly, ok := PlanYearlyPriceCents(plan)
		if !ok {
			return 0
		}
		return int64(math.Round(float64(yearly) * 0.10))
	}
	monthly, ok := PlanMonthlyPriceCents(plan)
	if !ok {
		return 0
	}
	return int64(math.Round(float64(monthly) * 0.50))
}

func (s *BillingService) handleSubscriptionChanged(sub *stripe.Subscription) error {
	subscription, err := s.findByStripeSubscription(sub)
	if err != nil || subscription == nil {
		return err
	}

	fields := map[string]interface{}{
		"status": mapStripeStatus(sub.Status),
	}
	if sub.CurrentPeriodEnd > 0 {
		fields["stripe_current_period_end"] = time.Unix(sub.CurrentPeriodEnd, 0)
	}
	if sub.CancelAt > 0 {
		fields["end_date"] = time.Unix(sub.CancelAt, 0)
	}

	if err := s.db.Model(subscription).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

func (s *BillingService) handleSubscriptionDeleted(sub *stripe.Subscription) error {
	subscription, err := s.findByStripeSubscription(sub)
	if err != nil || subscription == nil {
		return err
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":       models.SubscriptionStatusCancelled,
		"cancelled_at": now,
		"end_date":     now,
	}
	if sub.CurrentPeriodEnd > 0 {
		fields["end_date"] = time.Unix(sub.CurrentPeriodEnd, 0)
	}

	if err := s.db.Model(subscription).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return nil
}

func (s *BillingService) handleInvoiceFailed(inv *stripe.Invoice) error {
	subscription, err := s.findByStripeInvoice(inv)
	if err != nil || subscription == nil {
		return err
	}

	if err := s.db.Model(subscription).
		UpdateColumn("status", models.SubscriptionStatusExpired).Error; err != nil {
		return fmt.Errorf("failed to expire subscription: %w", err)
	}
	return nil
}

func (s *BillingService) handleInvoicePaid(inv *stripe.Invoice) error {
	subscription, err := s.findByStripeInvoice(inv)
	if err != nil || subscription == nil {
		return err
	}

	fields := map[string]interface{}{
		"status": models.SubscriptionStatusActive,
	}
	if inv.PeriodEnd > 0 {
		fields["stripe_current_period_end"] = time.Unix(inv.PeriodEnd, 0)
	}
	if err := s.db.Model(subscription).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	if subscription.BillingCycle == models.BillingCycleMonthly {
		if err := s.accrueSecondCommission(subscription, inv); err != nil {
			logrus.WithError(err).Error("Second commission accrual failed")
		}
	}
	return nil
}

// accrueSecondCommission pays the referrer's second half when a monthly
// referred subscription settles its second invoice. The plan label carries
// the installment tag so replayed events never double-accrue.
func (s *BillingService) accrueSecondCommission(subscription *models.Subscription, inv *stripe.Invoice) error {
	var user models.User
	if err := s.db.Where("id = ?", subscription.UserID).First(&user).Error; err != nil {
		return fmt.Errorf("subscription user not found: %w", err)
	}
	if user.ReferredBy == nil || *user.ReferredBy == "" {
		return nil
	}

	var referral models.Referral
	if err := s.db.Where("referral_code = ?", *user.ReferredBy).First(&referral).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	paid, err := s.countPaidInvoices(inv)
	if err != nil {
		return err
	}
	if paid < 2 {
		return nil
	}

	label := subscription.Plan + secondInstallmentSuffix
	exists, err := s.referrals.HasCommissionForPlan(referral.ID, user.ID, label)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	monthly, ok := PlanMonthlyPriceCents(subscription.Plan)
	if !ok {
		return nil
	}
	amount := int64(math.Round(float64(monthly) * 0.50))

	return s.referrals.RecordCommission(nil, &referral, &user, label, amount, false)
}

func (s *BillingService) countPaidInvoices(inv *stripe.Invoice) (int64, error) {
	if inv.Subscription == nil {
		return 0, nil
	}

	params := &stripe.InvoiceListParams{
		Subscription: stripe.String(inv.Subscription.ID),
		Status:       stripe.String(string(stripe.InvoiceStatusPaid)),
	}
	params.Limit = stripe.Int64(10)

	var count int64
	iter := invoice.List(params)
	for iter.Next() {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	return count, nil
}

func (s *BillingService) findByStripeSubscription(sub *stripe.Subscription) (*models.Subscription, error) {
	var subscription models.Subscription
	err := s.db.Where("stripe_subscription_id = ?", sub.ID).First(&subscription).Error
	if err == nil {
		return &subscription, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if sub.Customer != nil {
		err = s.db.Where("stripe_customer_id = ?", sub.Customer.ID).First(&subscription).Error
		if err == nil {
			// Late-binding from the customer; remember the subscription id
			s.db.Model(&subscription).UpdateColumn("stripe_subscription_id", sub.ID)
			subscription.StripeSubscriptionID = &sub.ID
			return &subscription, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	logrus.WithField("stripe_subscription", sub.ID).Warn("Billing event for unknown subscription")
	return nil, nil
}

func (s *BillingService) findByStripeInvoice(inv *stripe.Invoice) (*models.Subscription, error) {
	var subscription models.Subscription

	if inv.Subscription != nil {
		err := s.db.Where("stripe_subscription_id = ?", inv.Subscription.ID).First(&subscription).Error
		if err == nil {
			return &subscription, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
	}
	if inv.Customer != nil {
		err := s.db.Where("stripe_customer_id = ?", inv.Customer.ID).First(&subscription).Error
		if err == nil {
			return &subscription, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	logrus.WithField("stripe_invoice", inv.ID).Warn("Billing event for unknown invoice")
	return nil, nil
}

func (s *BillingService) findOrCreateCustomer(user *models.User) (string, error) {
	var subscription models.Subscription
	if err := s.db.Where("user_id = ?", user.ID).First(&subscription).Error; err == nil &&
		subscription.StripeCustomerID != nil {
		return *subscription.StripeCustomerID, nil
	}

	listParams := &stripe.CustomerListParams{Email: stripe.String(user.Email)}
	listParams.Limit = stripe.Int64(1)
	iter := customer.List(listParams)
	for iter.Next() {
		existing := iter.Customer()
		s.persistCustomerID(user, existing.ID)
		return existing.ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("failed to look up customer: %w", err)
	}

	created, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.Name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	s.persistCustomerID(user, created.ID)
	return created.ID, nil
}

func (s *BillingService) persistCustomerID(user *models.User, customerID string) {
	err := s.db.Model(&models.Subscription{}).
		Where("user_id = ?", user.ID).
		UpdateColumn("stripe_customer_id", customerID).Error
	if err != nil {
		logrus.WithError(err).Warn("Failed to persist processor customer id")
	}
}

func (s *BillingService) priceIDFor(plan string, cycle models.BillingCycle) (string, error) {
	switch {
	case plan == PlanBasico && cycle == models.BillingCycleMonthly:
		return s.config.Stripe.PriceBasicoMonthly, nil
	case plan == PlanBasico && cycle == models.BillingCycleYearly:
		return s.config.Stripe.PriceBasicoYearly, nil
	case plan == PlanProfissional && cycle == models.BillingCycleMonthly:
		return s.config.Stripe.PriceProfissionalMonthly, nil
	case plan == PlanProfissional && cycle == models.BillingCycleYearly:
		return s.config.Stripe.PriceProfissionalYearly, nil
	default:
		return "", errors.New("unknown plan")
	}
}

func mapStripeStatus(status stripe.SubscriptionStatus) models.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusActive:
		return models.SubscriptionStatusActive
	case stripe.SubscriptionStatusTrialing:
		return models.SubscriptionStatusTrial
	case stripe.SubscriptionStatusCanceled:
		return models.SubscriptionStatusCancelled
	default:
		return models.SubscriptionStatusExpired
	}
}
