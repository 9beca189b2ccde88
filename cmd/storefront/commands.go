package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"hridhayam-client/internal/cart"
	"hridhayam-client/internal/checkout"
	"hridhayam-client/internal/contact"
	"hridhayam-client/internal/notify"
	"hridhayam-client/internal/order"
	"hridhayam-client/internal/payment"
	"hridhayam-client/internal/product"
	"hridhayam-client/internal/user"
	"hridhayam-client/internal/utils"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":    {"-email <email> -password <password>", cmdLogin},
	"register": {"-name <name> -email <email> -password <password>", cmdRegister},
	"logout":   {"", cmdLogout},
	"profile":  {"", cmdProfile},
	"passwd":   {"-current <password> -new <password>", cmdPasswd},

	"categories": {"", cmdCategories},
	"products":   {"[-category a,b] [-search q] [-min n] [-max n] [-status instock,preorder] [-page n]", cmdProducts},
	"discounts":  {"", cmdDiscounts},
	"product":    {"<product-id>", cmdProduct},

	"cart":     {"", cmdCart},
	"add":      {"<product-id> [-qty n]", cmdAdd},
	"preorder": {"<product-id> [-qty n]", cmdPreorder},
	"qty":      {"<cart-item-id> <+n|-n>", cmdQty},
	"remove":   {"<cart-item-id>", cmdRemove},
	"checkout": {"-method cod|online [-phone p] -street s -city c -state s -zip z", cmdCheckout},

	"orders":  {"", cmdOrders},
	"order":   {"<order-id>", cmdOrder},
	"design":  {"-first f -last l -email e [-phone p] -desc d [-file path]", cmdDesign},
	"enquire": {"-phone <10 digits>", cmdEnquire},

	"admin-orders":         {"[-search q] [-payment status] [-status status] [-page n]", cmdAdminOrders},
	"admin-order-update":   {"<order-id> -status <status> [-tracking number]", cmdAdminOrderUpdate},
	"admin-products":       {"[-search q] [-page n]", cmdAdminProducts},
	"admin-product-save":   {"[-id id] -name n -price p -category c [flags]", cmdAdminProductSave},
	"admin-product-remove": {"<product-id>", cmdAdminProductRemove},
}

func flags(name string, a *app) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// oneArg parses fs and returns its single positional argument.
func oneArg(fs *flag.FlagSet, args []string) (string, error) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		args = append(append([]string{}, args[1:]...), args[0])
	}
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 || strings.TrimSpace(fs.Arg(0)) == "" {
		return "", errUsage
	}
	return fs.Arg(0), nil
}

func rupees(v int64) string {
	return "₹" + strconv.FormatInt(v, 10)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// -- Accounts --

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := flags("login", a)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.users.Login(ctx, user.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelSuccess, "Welcome back, "+sess.Name)
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := flags("register", a)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.users.Register(ctx, user.Registration{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelSuccess, "Account created for "+sess.Email)
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.users.Logout(ctx, a.sess); err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelInfo, "Logged out")
	return nil
}

func cmdProfile(ctx context.Context, a *app, _ []string) error {
	u, err := a.users.Profile(ctx, a.sess)
	if err != nil {
		return err
	}
	tw := table(a.out)
	fmt.Fprintf(tw, "Name:\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", u.Phone)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	return tw.Flush()
}

func cmdPasswd(ctx context.Context, a *app, args []string) error {
	fs := flags("passwd", a)
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.users.UpdateProfile(ctx, a.sess, user.PasswordChange{CurrentPassword: *current, NewPassword: *next}); err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelSuccess, "Password updated")
	return nil
}

// -- Catalog --

func cmdCategories(ctx context.Context, a *app, _ []string) error {
	cats, err := a.products.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		fmt.Fprintln(a.out, c.Name)
	}
	return nil
}

func cmdProducts(ctx context.Context, a *app, args []string) error {
	fs := flags("products", a)
	category := fs.String("category", "", "comma-separated categories, default all")
	search := fs.String("search", "", "match name, description or price")
	minPrice := fs.Float64("min", 0, "minimum price")
	maxPrice := fs.Float64("max", 0, "maximum price, 0 for none")
	status := fs.String("status", "", "instock, preorder or both")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	names := splitList(*category)
	if len(names) == 0 {
		cats, err := a.products.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			names = append(names, c.Name)
		}
	}

	all, err := a.products.ByCategory(ctx, names...)
	if err != nil {
		return err
	}

	f := product.Filter{PriceMin: *minPrice, PriceMax: *maxPrice, Search: *search}
	for _, s := range splitList(*status) {
		f.Status = append(f.Status, product.StockStatus(strings.ToLower(s)))
	}

	items, pages := product.Paginate(f.Apply(all), *page, product.PageSize)
	printProducts(a.out, items)
	fmt.Fprintf(a.out, "page %d of %d\n", *page, pages)
	return nil
}

func cmdDiscounts(ctx context.Context, a *app, _ []string) error {
	items, err := a.products.Discounts(ctx)
	if err != nil {
		return err
	}
	printProducts(a.out, items)
	return nil
}

func cmdProduct(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(flags("product", a), args)
	if err != nil {
		return err
	}

	p, err := a.products.Details(ctx, id)
	if err != nil {
		return err
	}

	tw := table(a.out)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Category:\t%s\n", p.Category)
	if p.DiscountPercentage > 0 {
		fmt.Fprintf(tw, "Price:\t%s (was %s, %g%% off)\n",
			rupees(product.DiscountedPrice(*p)), rupees(product.OriginalPrice(*p)), p.DiscountPercentage)
	} else {
		fmt.Fprintf(tw, "Price:\t%s\n", rupees(product.DiscountedPrice(*p)))
	}
	fmt.Fprintf(tw, "Availability:\t%s\n", availability(*p))
	if p.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	}
	if a.sess != nil {
		if n, err := a.carts.Quantity(ctx, a.sess, p.ID); err == nil && n > 0 {
			fmt.Fprintf(tw, "In your cart:\t%d\n", n)
		}
	}
	return tw.Flush()
}

func availability(p product.Product) string {
	if p.InStock {
		return "in stock"
	}
	return "pre-order (" + rupees(product.PreOrderPartial(p.Price, 1)) + " now per piece)"
}

func printProducts(w io.Writer, items []product.Product) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, rupees(product.DiscountedPrice(p)), availability(p))
	}
	_ = tw.Flush()
}

// -- Cart --

func cmdCart(ctx context.Context, a *app, _ []string) error {
	items, err := a.carts.Show(ctx, a.sess)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty")
		return nil
	}
	printCart(a.out, items, cart.CalculateTotals(items))
	return nil
}

func printCart(w io.Writer, items []cart.LineItem, totals cart.Totals) {
	tw := table(w)
	fmt.Fprintln(tw, "ITEM\tPRODUCT\tQTY\tLINE TOTAL\tNOTE")
	for _, it := range items {
		note := ""
		if it.IsPreOrder {
			note = "pre-order, " + rupees(int64(it.PartialPayment)) + " now"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.Product.Name, it.Quantity, rupees(int64(it.Total())), note)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Regular items:\t%s\n", rupees(totals.Regular))
	if totals.PartialPayment > 0 || totals.BalancePayment > 0 {
		fmt.Fprintf(tw, "Pre-order now:\t%s\n", rupees(totals.PartialPayment))
		fmt.Fprintf(tw, "Pre-order balance:\t%s\n", rupees(totals.BalancePayment))
	}
	fmt.Fprintf(tw, "Due now:\t%s\n", rupees(totals.Grand))
	_ = tw.Flush()
}

func cmdAdd(ctx context.Context, a *app, args []string) error {
	return addToCart(ctx, a, "add", args, false)
}

func cmdPreorder(ctx context.Context, a *app, args []string) error {
	return addToCart(ctx, a, "preorder", args, true)
}

func addToCart(ctx context.Context, a *app, name string, args []string, preOrder bool) error {
	fs := flags(name, a)
	qty := fs.Int("qty", 1, "quantity")
	id, err := oneArg(fs, args)
	if err != nil {
		return err
	}

	p, err := a.products.Details(ctx, id)
	if err != nil {
		return err
	}
	if !preOrder && !p.InStock {
		return fmt.Errorf("%s is not in stock, use: storefront preorder %s", p.Name, p.ID)
	}

	if err := a.carts.Add(ctx, a.sess, cart.AddParams{ProductID: p.ID, Quantity: *qty, PreOrder: preOrder, Price: p.Price}); err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelSuccess, p.Name+" added to cart")
	return nil
}

func cmdQty(ctx context.Context, a *app, args []string) error {
	fs := flags("qty", a)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errUsage
	}
	delta, err := strconv.Atoi(fs.Arg(1))
	if err != nil || delta == 0 {
		return errUsage
	}

	items, err := a.carts.Show(ctx, a.sess)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == fs.Arg(0) {
			if err := a.carts.ChangeQuantity(ctx, a.sess, it, delta); err != nil {
				return err
			}
			a.notifier.Notify(notify.LevelSuccess, "Quantity updated")
			return nil
		}
	}
	return cart.ErrMissingCartItem
}

func cmdRemove(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(flags("remove", a), args)
	if err != nil {
		return err
	}
	if err := a.carts.Remove(ctx, a.sess, id); err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelSuccess, "Item removed from cart")
	return nil
}

// -- Checkout --

func cmdCheckout(ctx context.Context, a *app, args []string) error {
	fs := flags("checkout", a)
	method := fs.String("method", "", "cod or online")
	phone := fs.String("phone", "", "contact phone, defaults to your profile phone")
	street := fs.String("street", "", "street address")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state")
	zip := fs.String("zip", "", "zip code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pm, err := checkout.ParsePaymentMethod(strings.ToLower(*method))
	if err != nil {
		return err
	}

	o := checkout.NewOrchestrator(checkout.Deps{
		Cart:     a.carts,
		Profile:  a.users,
		Gateway:  a.gateway,
		Widget:   a.widget,
		Orders:   a.orders,
		Notifier: a.notifier,
		Metrics:  a.checkout,
	}, checkout.Config{
		RazorpayKeyID:  a.cfg.RazorpayKeyID,
		MerchantName:   a.cfg.MerchantName,
		PaymentTimeout: a.cfg.PaymentTimeout,
	})

	co, err := o.Load(ctx, a.sess)
	if errors.Is(err, checkout.ErrEmptyCart) {
		fmt.Fprintln(a.out, "Your cart is empty")
		return nil
	}
	if err != nil {
		return err
	}
	printCart(a.out, co.Items, co.Totals)

	form := o.Form()
	if *phone != "" {
		form.Phone = *phone
	}
	form.Address = checkout.Address{Street: *street, City: *city, State: *state, Zip: *zip}
	o.UpdateForm(form)

	out, err := o.Submit(ctx, a.sess, pm)
	if err != nil {
		if out != nil && out.Route == checkout.RouteCart {
			fmt.Fprintln(a.errOut, "Your cart has not been changed.")
		}
		return err
	}

	fmt.Fprintf(a.out, "\nOrder %s placed\n", utils.ShortID(out.OrderID))
	vars := payment.InstructionVars{
		"address":        out.Draft.ShippingAddress,
		"balance":        rupees(out.Draft.BalanceDue),
		"paid":           rupees(out.Draft.PaidAmount),
		"order_id":       out.OrderID,
		"transaction_id": utils.PtrString(out.Draft.TransactionID),
	}
	for _, step := range payment.InjectVariables(payment.GetInstructions(pm), vars) {
		fmt.Fprintln(a.out, "- "+step)
	}
	return nil
}

// -- Orders & enquiries --

func cmdOrders(ctx context.Context, a *app, _ []string) error {
	orders, err := a.orders.Mine(ctx, a.sess)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "You have no orders yet")
		return nil
	}
	printOrders(a.out, orders)
	return nil
}

func printOrders(w io.Writer, orders []order.Order) {
	tw := table(w)
	fmt.Fprintln(tw, "ORDER\tDATE\tSTATUS\tPAYMENT\tTOTAL\tBALANCE")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			order.ShortID(o.ID), o.CreatedAt.Format("02 Jan 2006"), o.Status, o.PaymentStatus,
			rupees(int64(o.TotalAmount)), rupees(int64(o.BalanceDue)))
	}
	_ = tw.Flush()
}

func cmdOrder(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(flags("order", a), args)
	if err != nil {
		return err
	}
	o, err := a.orders.Details(ctx, a.sess, id)
	if err != nil {
		return err
	}

	tw := table(a.out)
	fmt.Fprintf(tw, "Order:\t%s\n", o.ID)
	fmt.Fprintf(tw, "Placed:\t%s\n", o.CreatedAt.Format("02 Jan 2006 15:04"))
	fmt.Fprintf(tw, "Status:\t%s\n", o.Status)
	if o.TrackingNumber != "" {
		fmt.Fprintf(tw, "Tracking:\t%s\n", o.TrackingNumber)
	}
	fmt.Fprintf(tw, "Payment:\t%s (%s)\n", o.PaymentStatus, o.PaymentMethod)
	fmt.Fprintf(tw, "Ship to:\t%s\n", o.ShippingAddress)
	fmt.Fprintf(tw, "Phone:\t%s\n", o.ContactPhone)
	fmt.Fprintln(tw)
	for _, it := range o.Items {
		fmt.Fprintf(tw, "%s\tx%d\t%s\n", it.Product.Name, it.Quantity, rupees(int64(it.Total())))
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Total:\t%s\n", rupees(int64(o.TotalAmount)))
	fmt.Fprintf(tw, "Paid:\t%s\n", rupees(int64(o.PaidAmount)))
	fmt.Fprintf(tw, "Balance due:\t%s\n", rupees(int64(o.BalanceDue)))
	return tw.Flush()
}

func cmdDesign(ctx context.Context, a *app, args []string) error {
	fs := flags("design", a)
	req := contact.DesignRequest{}
	fs.StringVar(&req.FirstName, "first", "", "first name")
	fs.StringVar(&req.LastName, "last", "", "last name")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Phone, "phone", "", "phone, optional")
	fs.StringVar(&req.Description, "desc", "", "describe the piece you want")
	fs.StringVar(&req.Attachment, "file", "", "reference image, optional")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.contact.SubmitDesign(ctx, req); err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelSuccess, "Design request sent. We will get back to you soon.")
	return nil
}

func cmdEnquire(ctx context.Context, a *app, args []string) error {
	fs := flags("enquire", a)
	phone := fs.String("phone", "", "10-digit phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.contact.RequestCallback(ctx, a.sess, checkout.NormalizePhone(*phone)); err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelSuccess, "Thanks! We will call you shortly.")
	return nil
}

// -- Admin --

func cmdAdminOrders(ctx context.Context, a *app, args []string) error {
	fs := flags("admin-orders", a)
	f := order.Filter{}
	fs.StringVar(&f.Search, "search", "", "match id, email, status or tracking number")
	fs.StringVar(&f.PaymentStatus, "payment", "all", "payment status")
	fs.StringVar(&f.DeliveryStatus, "status", "all", "delivery status")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orders, err := a.orders.AdminList(ctx, a.sess)
	if err != nil {
		return err
	}
	items, pages := order.Paginate(f.Apply(orders), *page, order.PageSize)
	printOrders(a.out, items)
	fmt.Fprintf(a.out, "page %d of %d\n", *page, pages)
	return nil
}

func cmdAdminOrderUpdate(ctx context.Context, a *app, args []string) error {
	fs := flags("admin-order-update", a)
	status := fs.String("status", "", "pending, processing, shipped, delivered or cancelled")
	tracking := fs.String("tracking", "", "tracking number")
	id, err := oneArg(fs, args)
	if err != nil {
		return err
	}

	if err := a.orders.AdminUpdate(ctx, a.sess, id, order.OrderStatus(strings.ToLower(*status)), *tracking); err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelSuccess, "Order status updated")
	return nil
}

func cmdAdminProducts(ctx context.Context, a *app, args []string) error {
	fs := flags("admin-products", a)
	search := fs.String("search", "", "match name, description or price")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	all, err := a.catalog.List(ctx, a.sess)
	if err != nil {
		return err
	}
	items, pages := product.Paginate(product.Filter{Search: *search}.Apply(all), *page, product.PageSize)
	printProducts(a.out, items)
	fmt.Fprintf(a.out, "page %d of %d\n", *page, pages)
	return nil
}

func cmdAdminProductSave(ctx context.Context, a *app, args []string) error {
	fs := flags("admin-product-save", a)
	in := product.ProductInput{}
	fs.StringVar(&in.ID, "id", "", "product id, empty to add a new product")
	fs.StringVar(&in.Name, "name", "", "name")
	fs.Float64Var(&in.Price, "price", 0, "price")
	fs.StringVar(&in.Category, "category", "", "category")
	fs.StringVar(&in.Description, "desc", "", "description")
	fs.Float64Var(&in.DiscountPercentage, "discount", 0, "discount percentage")
	fs.IntVar(&in.Quantity, "qty", 0, "stock quantity")
	fs.BoolVar(&in.InStock, "instock", true, "in stock, false for pre-order only")
	fs.StringVar(&in.ImagePath, "image", "", "image file to upload")
	fs.StringVar(&in.ExistingImage, "existing-image", "", "keep this image url when no file is given")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in.HasDiscount = in.DiscountPercentage > 0

	p, err := a.catalog.Save(ctx, a.sess, in)
	if err != nil {
		return err
	}
	if in.ID == "" {
		a.notifier.Notify(notify.LevelSuccess, "Product added")
	} else {
		a.notifier.Notify(notify.LevelSuccess, "Product updated")
	}
	if p != nil {
		fmt.Fprintln(a.out, p.ID)
	}
	return nil
}

func cmdAdminProductRemove(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(flags("admin-product-remove", a), args)
	if err != nil {
		return err
	}
	if err := a.catalog.Remove(ctx, a.sess, id); err != nil {
		return err
	}
	a.notifier.Notify(notify.LevelSuccess, "Product deleted")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
