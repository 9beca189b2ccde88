package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/cart"
	"hridhayam-client/internal/logger"
	"hridhayam-client/internal/metrics"
	"hridhayam-client/internal/notify"
	"hridhayam-client/internal/order"
	"hridhayam-client/internal/payment"
	"hridhayam-client/internal/session"
	"hridhayam-client/internal/user"
	"hridhayam-client/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartReader interface {
	Show(ctx context.Context, sess *session.Session) ([]cart.LineItem, error)
}

type ProfileReader interface {
	Profile(ctx context.Context, sess *session.Session) (*user.User, error)
}

type OrderCreator interface {
	Create(ctx context.Context, sess *session.Session, draft order.Draft) (string, error)
}

// Deps are the collaborators of one checkout flow.
type Deps struct {
	Cart     CartReader
	Profile  ProfileReader
	Gateway  payment.Gateway
	Widget   payment.Widget
	Orders   OrderCreator
	Notifier notify.Notifier
	Metrics  *metrics.Checkout
}

type Config struct {
	RazorpayKeyID  string
	MerchantName   string
	PaymentTimeout time.Duration
}

type Contact struct {
	Name  string
	Email string
	Phone string
}

// Checkout is what the checkout page shows: the cart snapshot, its totals and the contact
// details used to prefill the form.
type Checkout struct {
	Items   []cart.LineItem
	Totals  cart.Totals
	Contact Contact
}

// Outcome describes how a submission ended and where to go next.
type Outcome struct {
	State   State
	Route   Route
	OrderID string
	Draft   OrderDraft
}

// Orchestrator drives a single checkout: load, edit the form, submit. Only one submission can be
// in flight at a time.
type Orchestrator struct {
	deps Deps
	cfg  Config

	mu       sync.Mutex
	state    State
	inFlight bool
	form     Form
	loaded   *Checkout
}

func NewOrchestrator(deps Deps, cfg Config) *Orchestrator {
	if deps.Notifier == nil {
		deps.Notifier = &notify.Recorder{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCheckout(nil)
	}
	if cfg.PaymentTimeout <= 0 {
		cfg.PaymentTimeout = payment.DefaultTimeout
	}
	return &Orchestrator{deps: deps, cfg: cfg, state: Idle}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Form() Form {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.form
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Load reads the cart and the profile. An empty cart yields ErrEmptyCart: the caller should
// leave checkout, nothing failed.
func (o *Orchestrator) Load(ctx context.Context, sess *session.Session) (*Checkout, error) {
	if err := sess.Require(time.Now()); err != nil {
		return nil, err
	}
	log := logger.FromCtx(ctx).With(zap.String("user_id", sess.UserID))

	items, err := o.deps.Cart.Show(ctx, sess)
	if err != nil {
		o.deps.Notifier.Notify(notify.LevelError, api.Message(err, "Failed to fetch cart details"))
		return nil, err
	}
	if len(items) == 0 {
		o.mu.Lock()
		o.state, o.loaded = Idle, nil
		o.mu.Unlock()
		log.Info("checkout opened with empty cart")
		return nil, ErrEmptyCart
	}

	co := &Checkout{Items: items, Totals: cart.CalculateTotals(items)}

	profile, err := o.deps.Profile.Profile(ctx, sess)
	if err != nil {
		log.Warn("failed to fetch profile for checkout", zap.Error(err))
		o.deps.Notifier.Notify(notify.LevelError, "Failed to fetch user details")
	} else {
		co.Contact = Contact{Name: profile.Name, Email: profile.Email, Phone: NormalizePhone(profile.Phone)}
	}

	o.mu.Lock()
	o.loaded = co
	o.form = Form{Phone: co.Contact.Phone}
	o.state = formState(o.form)
	o.mu.Unlock()

	log.Info("checkout loaded",
		zap.Int("items", len(items)),
		zap.Int64("grand_total", co.Totals.Grand),
		zap.Int64("balance_total", co.Totals.BalancePayment),
	)
	return co, nil
}

// UpdateForm replaces the form, normalising the phone, and re-evaluates validity. Edits made
// while a submission is in flight are kept for the next attempt but do not change the state.
func (o *Orchestrator) UpdateForm(f Form) State {
	f.Phone = NormalizePhone(f.Phone)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.form = f
	if !o.inFlight && o.loaded != nil {
		o.state = formState(f)
	}
	return o.state
}

func formState(f Form) State {
	if f.Valid() {
		return FormValid
	}
	return FormIncomplete
}

// Submit places the order with the current form. A concurrent call while one is running
// returns ErrSubmissionInProgress without touching the backend.
func (o *Orchestrator) Submit(ctx context.Context, sess *session.Session, method PaymentMethod) (*Outcome, error) {
	if err := sess.Require(time.Now()); err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	if o.loaded == nil {
		o.mu.Unlock()
		return nil, ErrNotLoaded
	}
	form, co := o.form, o.loaded
	if err := form.Validate(); err != nil {
		o.state = FormIncomplete
		o.mu.Unlock()
		o.deps.Notifier.Notify(notify.LevelError, "Please fill in all required fields")
		return nil, err
	}
	draft, err := BuildDraft(sess.UserID, form, method, co.Totals)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	o.inFlight = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	ctx = logger.WithAttemptID(ctx, uuid.NewString())
	log := logger.FromCtx(ctx).With(
		zap.String("user_id", sess.UserID),
		zap.String("payment_method", string(method)),
	)
	log.Info("checkout attempt started",
		zap.Int64("total_amount", draft.TotalAmount),
		zap.Int64("paid_amount", draft.PaidAmount),
		zap.Int64("balance_due", draft.BalanceDue),
	)

	timer := metrics.StartTimer()
	o.deps.Metrics.Attempts.WithLabelValues(string(method)).Inc()

	var out *Outcome
	if method == MethodOnline {
		out, err = o.payOnline(ctx, sess, co, draft)
	} else {
		out, err = o.submitOrder(ctx, sess, draft)
	}

	o.deps.Metrics.Outcomes.WithLabelValues(out.State.String()).Inc()
	o.deps.Metrics.Duration.Observe(timer.Duration().Seconds())
	log.Info("checkout attempt finished",
		zap.Stringer("state", out.State),
		zap.String("route", string(out.Route)),
		zap.Duration("duration", timer.Duration()),
	)
	return out, err
}

func (o *Orchestrator) payOnline(ctx context.Context, sess *session.Session, co *Checkout, draft OrderDraft) (*Outcome, error) {
	log := logger.FromCtx(ctx)

	o.setState(AwaitingPaymentSession)
	ps, err := o.deps.Gateway.CreateSession(ctx, draft.PaidAmount)
	if err != nil {
		o.deps.Notifier.Notify(notify.LevelError, api.Message(err, "Failed to initiate payment"))
		o.setState(FormValid)
		return &Outcome{State: Failed, Route: RouteCheckout, Draft: draft}, err
	}

	o.setState(AwaitingGatewayCallback)
	prefill := payment.Prefill{Name: co.Contact.Name, Email: co.Contact.Email, Contact: draft.ContactPhone}
	opts := payment.NewWidgetOptions(o.cfg.RazorpayKeyID, o.cfg.MerchantName, *ps, prefill, o.cfg.PaymentTimeout)

	res, err := o.deps.Widget.Open(ctx, opts)
	if err != nil {
		state := Failed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			state = Cancelled
		}
		log.Warn("payment widget ended without a result", zap.Error(err), zap.String("razorpay_order_id", ps.ID))
		o.deps.Notifier.Notify(notify.LevelError, "Error processing your order")
		return o.leave(state, draft), err
	}
	o.deps.Metrics.Dispositions.WithLabelValues(res.Disposition.String()).Inc()

	switch res.Disposition {
	case payment.Dismissed:
		log.Info("payment cancelled by user", zap.String("razorpay_order_id", ps.ID))
		o.deps.Notifier.Notify(notify.LevelWarning, "Payment cancelled")
		return o.leave(Cancelled, draft), res.Err()
	case payment.TimedOut:
		log.Info("payment timed out", zap.String("razorpay_order_id", ps.ID))
		o.deps.Notifier.Notify(notify.LevelWarning, "Payment timed out")
		return o.leave(Cancelled, draft), res.Err()
	case payment.Failed:
		log.Warn("payment failed",
			zap.String("razorpay_order_id", ps.ID),
			zap.String("reason", res.FailureReason),
		)
		o.deps.Notifier.Notify(notify.LevelError, "Payment verification failed")
		return o.leave(Failed, draft), res.Err()
	}

	conf := res.Confirmation
	o.setState(VerifyingPayment)
	ok, err := o.deps.Gateway.Verify(ctx, conf)
	if err != nil || !ok {
		// money may have moved; these ids are what support needs to reconcile
		log.Error("payment not verified, order not created",
			zap.String("razorpay_order_id", conf.OrderID),
			zap.String("razorpay_payment_id", conf.PaymentID),
			zap.String("razorpay_signature", conf.Signature),
			zap.Error(err),
		)
		o.deps.Notifier.Notify(notify.LevelError, "Payment verification failed")
		if err != nil {
			return o.leave(Failed, draft), fmt.Errorf("%w: %w", ErrVerificationFailed, err)
		}
		return o.leave(Failed, draft), ErrVerificationFailed
	}

	draft.TransactionID = utils.StrPtr(conf.PaymentID)
	return o.submitOrder(ctx, sess, draft)
}

func (o *Orchestrator) submitOrder(ctx context.Context, sess *session.Session, draft OrderDraft) (*Outcome, error) {
	o.setState(Submitting)

	id, err := o.deps.Orders.Create(ctx, sess, draft)
	if err != nil {
		o.deps.Notifier.Notify(notify.LevelError, api.Message(err, "Failed to create order"))
		o.setState(FormValid)
		return &Outcome{State: Failed, Route: RouteCheckout, Draft: draft}, err
	}

	o.mu.Lock()
	o.state = Success
	o.loaded = nil
	o.mu.Unlock()

	o.deps.Notifier.Notify(notify.LevelSuccess, "Order created successfully!")
	return &Outcome{State: Success, Route: RouteHome, OrderID: id, Draft: draft}, nil
}

// leave ends an attempt that sends the user back to the cart. The checkout must be loaded again
// before the next submission.
func (o *Orchestrator) leave(state State, draft OrderDraft) *Outcome {
	o.mu.Lock()
	o.state = state
	o.loaded = nil
	o.mu.Unlock()
	return &Outcome{State: state, Route: RouteCart, Draft: draft}
}
