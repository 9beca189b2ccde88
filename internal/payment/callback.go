package payment

import (
	"crypto/subtle"
	"encoding/json"
	"html/template"
	"io"
	"net/http"

	"hridhayam-client/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxCallbackBody = 64 << 10

// callbackHandler receives what the checkout script reports back. The first report wins; the
// token in the path keeps other local pages from posting results.
type callbackHandler struct {
	token   string
	opts    WidgetOptions
	results chan Result
}

func newCallbackHandler(token string, opts WidgetOptions) *callbackHandler {
	return &callbackHandler{token: token, opts: opts, results: make(chan Result, 1)}
}

func (h *callbackHandler) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)

	r.Route("/pay/{token}", func(r chi.Router) {
		r.Use(h.verifyToken)
		r.Get("/", h.page)
		r.Post("/success", h.success)
		r.Post("/dismiss", h.dismiss)
		r.Post("/failed", h.failed)
	})
	return r
}

func (h *callbackHandler) verifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := chi.URLParam(r, "token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *callbackHandler) page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	data := struct {
		Base    string
		Options WidgetOptions
	}{
		Base:    "/pay/" + h.token,
		Options: h.opts,
	}
	if err := checkoutPage.Execute(w, data); err != nil {
		logger.FromCtx(r.Context()).Error("failed to render payment page", zap.Error(err))
	}
}

func (h *callbackHandler) success(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var conf Confirmation
	if err := json.Unmarshal(body, &conf); err != nil || !conf.Complete() {
		http.Error(w, ErrInvalidCallback.Error(), http.StatusBadRequest)
		return
	}
	h.deliver(w, r, Result{Disposition: Success, Confirmation: conf})
}

// dismiss mirrors the modal's ondismiss(reason): no reason is a cancel, "timeout" is the
// provider's own timeout and anything else is a failure.
func (h *callbackHandler) dismiss(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	reason := gjson.GetBytes(body, "reason")
	switch {
	case !reason.Exists() || reason.Type == gjson.Null:
		h.deliver(w, r, Result{Disposition: Dismissed})
	case reason.Type == gjson.String && reason.Str == "timeout":
		h.deliver(w, r, Result{Disposition: TimedOut})
	default:
		h.deliver(w, r, Result{Disposition: Failed, FailureReason: failureReason(reason)})
	}
}

func (h *callbackHandler) failed(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	h.deliver(w, r, Result{Disposition: Failed, FailureReason: failureReason(gjson.ParseBytes(body))})
}

func (h *callbackHandler) deliver(w http.ResponseWriter, r *http.Request, res Result) {
	select {
	case h.results <- res:
		logger.FromCtx(r.Context()).Info("payment callback received",
			zap.Stringer("disposition", res.Disposition),
			zap.String("reason", res.FailureReason),
		)
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	default:
		http.Error(w, "payment already reported", http.StatusConflict)
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCallbackBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func failureReason(v gjson.Result) string {
	for _, path := range []string{"error.description", "error.reason", "description", "reason"} {
		if s := v.Get(path).String(); s != "" {
			return s
		}
	}
	if v.Type == gjson.String {
		return v.Str
	}
	return ""
}

var checkoutPage = template.Must(template.New("checkout").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Options.Name}} payment</title>
<script src="https://checkout.razorpay.com/v1/checkout.js"></script>
</head>
<body>
<p id="status">Opening the payment window for order {{.Options.OrderID}}...</p>
<script>
const base = {{.Base}};
const options = {{.Options}};
let reported = false;

function report(path, body) {
  if (reported) return;
  reported = true;
  fetch(base + path, {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(body || {})
  }).finally(() => {
    document.getElementById("status").textContent = "You can close this window and return to the terminal.";
  });
}

options.handler = (resp) => report("/success", resp);
options.modal = {
  confirm_close: true,
  ondismiss: (reason) => report("/dismiss", {reason: reason === undefined ? null : reason})
};

const rzp = new Razorpay(options);
rzp.on("payment.failed", (resp) => report("/failed", {error: resp.error}));
rzp.open();
</script>
</body>
</html>
`))
