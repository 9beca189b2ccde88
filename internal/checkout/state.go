package checkout

type State int

const (
	Idle State = iota
	FormIncomplete
	FormValid
	AwaitingPaymentSession
	AwaitingGatewayCallback
	VerifyingPayment
	Submitting
	Success
	Failed
	Cancelled
)

var stateNames = [...]string{
	Idle:                    "idle",
	FormIncomplete:          "form_incomplete",
	FormValid:               "form_valid",
	AwaitingPaymentSession:  "awaiting_payment_session",
	AwaitingGatewayCallback: "awaiting_gateway_callback",
	VerifyingPayment:        "verifying_payment",
	Submitting:              "submitting",
	Success:                 "success",
	Failed:                  "failed",
	Cancelled:               "cancelled",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Route is where the caller should take the user after an attempt.
type Route string

const (
	RouteHome     Route = "/"
	RouteCart     Route = "/cart"
	RouteCheckout Route = "/checkout"
)
