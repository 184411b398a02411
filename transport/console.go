package transport

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"store/pkg/domain/model"
	"store/pkg/domain/service"
)

// Deps wires the console to the domain. Pause and Clear default to a real
// sleep and an ANSI screen wipe; tests replace them with no-ops.
type Deps struct {
	Stock    service.StockService
	Cart     service.CartService
	Accounts service.AccountService
	Products model.ProductRepository
	Alerts   *AlertFeed
	Pause    func(time.Duration)
	Clear    func(io.Writer)
}

// Console runs the interactive session: one signed-in user at most, the
// session cart, and the synchronous menu loop that also drives the stock
// lifecycle ticks.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	deps    Deps
	current *model.User
}

func NewConsole(in io.Reader, out io.Writer, deps Deps) *Console {
	if deps.Pause == nil {
		deps.Pause = time.Sleep
	}
	if deps.Clear == nil {
		deps.Clear = func(w io.Writer) { fmt.Fprint(w, "\033[2J\033[H") }
	}
	return &Console{in: bufio.NewScanner(in), out: out, deps: deps}
}

// Run loops until the user quits or input is exhausted. Each iteration
// evaluates depletion, then restock, then renders and dispatches one choice.
func (c *Console) Run() error {
	for {
		if err := c.deps.Stock.DepleteRandomly(); err != nil {
			log.WithError(err).Error("depletion tick failed")
		}
		if err := c.deps.Stock.Restock(); err != nil {
			log.WithError(err).Error("restock tick failed")
		}

		c.deps.Clear(c.out)
		c.renderAlerts()
		c.renderStatus()
		c.renderMenu()

		choice, ok := c.prompt("\nSelect an option: ")
		if !ok {
			return nil
		}
		switch strings.ToUpper(choice) {
		case "1":
			c.browseCatalog()
		case "2":
			c.viewCart()
		case "3":
			if c.current != nil {
				c.viewProfile()
			} else {
				c.signIn()
			}
		case "4":
			if c.current != nil {
				c.logout()
			} else {
				c.signUp()
			}
		case "Q":
			fmt.Fprintln(c.out, "\nThank you for visiting! Goodbye.")
			return nil
		default:
			fmt.Fprintln(c.out, "\nInvalid choice.")
			c.deps.Pause(500 * time.Millisecond)
		}
	}
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) renderAlerts() {
	fmt.Fprintln(c.out, "--- ALERTS ---")
	restocked := c.deps.Alerts.Drain()
	for _, msg := range restocked {
		fmt.Fprintln(c.out, msg)
	}

	products, err := c.deps.Products.List()
	if err != nil {
		log.WithError(err).Error("cannot list products for alerts")
		return
	}
	pending := 0
	for _, p := range products {
		remaining, ok := c.deps.Stock.RestockCountdown(p)
		if !ok {
			continue
		}
		pending++
		if remaining > 0 {
			fmt.Fprintf(c.out, "%s will be restocked in %ds\n", p.Name, int(remaining.Seconds()))
		}
	}
	if pending == 0 && len(restocked) == 0 {
		fmt.Fprintln(c.out, "No products are currently restocking.")
	}
	fmt.Fprintln(c.out, strings.Repeat("-", 20))
}

func (c *Console) renderStatus() {
	fmt.Fprintln(c.out, "=== TERMINAL STORE ===")
	if c.current != nil {
		fmt.Fprintf(c.out, "User: %s\n", c.current.Username)
		fmt.Fprintf(c.out, "Cart: %d items\n", c.deps.Cart.ItemCount())
	} else {
		fmt.Fprintln(c.out, "Status: Guest")
	}
}

func (c *Console) renderMenu() {
	fmt.Fprintln(c.out, "\n--- MAIN MENU ---")
	fmt.Fprintln(c.out, "1. Browse Products")
	fmt.Fprintln(c.out, "2. View Cart")
	if c.current != nil {
		fmt.Fprintln(c.out, "3. My Profile & Orders")
		fmt.Fprintln(c.out, "4. Logout")
	} else {
		fmt.Fprintln(c.out, "3. Sign In")
		fmt.Fprintln(c.out, "4. Sign Up")
	}
	fmt.Fprintln(c.out, "Q. Quit")
}

func (c *Console) browseCatalog() {
	for {
		c.deps.Clear(c.out)
		fmt.Fprintln(c.out, "--- PRODUCT CATALOG ---")
		fmt.Fprintf(c.out, "%-5s %-25s %-10s %s\n", "ID", "Name", "Price", "Stock")
		fmt.Fprintln(c.out, strings.Repeat("-", 50))

		products, err := c.deps.Products.List()
		if err != nil {
			log.WithError(err).Error("cannot list products")
			return
		}
		for _, p := range products {
			fmt.Fprintf(c.out, "#%-4d %-25s %-10s %s\n", p.ID, p.Name, dollars(p.PriceCents), c.stockDisplay(p))
		}
		fmt.Fprintln(c.out, strings.Repeat("-", 50))

		choice, ok := c.prompt("\n[A] Add to Cart | [B] Back to Menu\nSelect option: ")
		if !ok {
			return
		}
		switch strings.ToUpper(choice) {
		case "A":
			c.addToCart()
		case "B":
			return
		}
	}
}

func (c *Console) stockDisplay(p model.Product) string {
	remaining, pending := c.deps.Stock.RestockCountdown(p)
	if !pending {
		return strconv.Itoa(p.Stock)
	}
	if remaining > 0 {
		return fmt.Sprintf("Restocks in %ds", int(remaining.Seconds()))
	}
	return "Restocking..."
}

func (c *Console) addToCart() {
	id, err := c.promptInt("Enter Product ID to add: ")
	if err != nil {
		c.reportBadNumber(err)
		return
	}
	qty, err := c.promptInt("Enter Quantity: ")
	if err != nil {
		c.reportBadNumber(err)
		return
	}

	switch err := c.deps.Cart.Add(id, qty); err {
	case nil:
		product, findErr := c.deps.Products.Find(id)
		if findErr != nil {
			log.WithError(findErr).WithField("productID", id).Error("carted product vanished")
			return
		}
		fmt.Fprintf(c.out, "\nAdded %d x %s to cart.\n", qty, product.Name)
	case model.ErrProductNotFound:
		fmt.Fprintln(c.out, "\nProduct not found.")
	case model.ErrInvalidQuantity:
		fmt.Fprintln(c.out, "\nPlease enter a valid quantity.")
	case model.ErrInsufficientStock:
		product, _ := c.deps.Products.Find(id)
		fmt.Fprintf(c.out, "\nSorry, only %d left in stock.\n", product.Stock)
	case model.ErrCartExceedsStock:
		product, _ := c.deps.Products.Find(id)
		held := c.deps.Cart.Quantity(id)
		fmt.Fprintf(c.out, "\nYou already have %d in cart. Cannot add %d more (Stock: %d).\n", held, qty, product.Stock)
	default:
		log.WithError(err).Error("add to cart failed")
		fmt.Fprintln(c.out, "\nCould not add to cart.")
	}
	c.deps.Pause(1500 * time.Millisecond)
}

func (c *Console) promptInt(label string) (int, error) {
	raw, ok := c.prompt(label)
	if !ok {
		return 0, errors.New("input closed")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %q", raw)
	}
	return n, nil
}

func (c *Console) reportBadNumber(err error) {
	log.WithError(err).Debug("rejected numeric input")
	fmt.Fprintln(c.out, "Invalid input. Please enter numbers only.")
	c.deps.Pause(time.Second)
}

func (c *Console) viewCart() {
	for {
		c.deps.Clear(c.out)
		fmt.Fprintln(c.out, "--- YOUR CART ---")
		if c.deps.Cart.IsEmpty() {
			fmt.Fprintln(c.out, "\nYour cart is empty.")
			c.prompt("\nPress Enter to return...")
			return
		}

		lines, err := c.deps.Cart.Lines()
		if err != nil {
			log.WithError(err).Error("cannot render cart")
			return
		}
		fmt.Fprintf(c.out, "%-25s %-5s %s\n", "Name", "Qty", "Subtotal")
		fmt.Fprintln(c.out, strings.Repeat("-", 45))
		var total int64
		for _, line := range lines {
			total += line.SubtotalCents
			fmt.Fprintf(c.out, "%-25s x%-4d %s\n", line.Product.Name, line.Quantity, dollars(line.SubtotalCents))
		}
		fmt.Fprintln(c.out, strings.Repeat("-", 45))
		fmt.Fprintf(c.out, "%31s %s\n", "TOTAL:", dollars(total))

		choice, ok := c.prompt("\n[C] Checkout | [R] Clear Cart | [B] Back\nSelect option: ")
		if !ok {
			return
		}
		switch strings.ToUpper(choice) {
		case "C":
			c.checkout(total)
			return
		case "R":
			c.deps.Cart.Clear()
			fmt.Fprintln(c.out, "Cart cleared.")
			c.deps.Pause(time.Second)
			return
		case "B":
			return
		}
	}
}

func (c *Console) checkout(totalCents int64) {
	if c.current == nil {
		fmt.Fprintln(c.out, "\nPlease sign in to checkout.")
		c.deps.Pause(1500 * time.Millisecond)
		return
	}

	fmt.Fprintln(c.out, "\n--- CHECKOUT ---")
	confirm, ok := c.prompt(fmt.Sprintf("Confirm purchase of %s? (Y/N): ", dollars(totalCents)))
	if !ok || strings.ToUpper(confirm) != "Y" {
		fmt.Fprintln(c.out, "\nCheckout cancelled.")
		c.deps.Pause(time.Second)
		return
	}

	fmt.Fprintln(c.out, "\nProcessing payment...")
	c.deps.Pause(2 * time.Second)

	if _, err := c.deps.Cart.Checkout(c.current); err != nil {
		log.WithError(err).Error("checkout failed")
		fmt.Fprintln(c.out, "\nCheckout failed.")
		c.deps.Pause(1500 * time.Millisecond)
		return
	}
	fmt.Fprintln(c.out, "\nSUCCESS! Thank you for your purchase.")
	c.prompt("Press Enter to continue...")
}

func (c *Console) viewProfile() {
	c.deps.Clear(c.out)
	if c.current == nil {
		fmt.Fprintln(c.out, "Not logged in.")
		return
	}

	fmt.Fprintf(c.out, "--- PROFILE: %s ---\n", c.current.Username)
	fmt.Fprintf(c.out, "Total Orders: %d\n", len(c.current.Orders))
	fmt.Fprintln(c.out, "\nRecent Order History:")

	orders := c.current.Orders
	if len(orders) > 5 {
		orders = orders[len(orders)-5:]
	}
	for i := len(orders) - 1; i >= 0; i-- {
		order := orders[i]
		fmt.Fprintf(c.out, "%d. %s | Total: %s\n", len(orders)-i, order.PlacedAt.Format("2006-01-02 15:04:05"), dollars(order.TotalCents))
		ids := make([]int, 0, len(order.Items))
		for id := range order.Items {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			// Names resolve against the live catalog, so a renamed product
			// shows its current name.
			name := fmt.Sprintf("#%d", id)
			if product, err := c.deps.Products.Find(id); err == nil {
				name = product.Name
			}
			fmt.Fprintf(c.out, "    - %s (x%d)\n", name, order.Items[id])
		}
	}

	c.prompt("\nPress Enter to return...")
}

func (c *Console) signIn() {
	c.deps.Clear(c.out)
	fmt.Fprintln(c.out, "--- SIGN IN ---")
	username, ok := c.prompt("Username: ")
	if !ok {
		return
	}
	password, ok := c.prompt("Password: ")
	if !ok {
		return
	}

	user, err := c.deps.Accounts.SignIn(username, password)
	if err != nil {
		fmt.Fprintln(c.out, "\nInvalid credentials.")
	} else {
		c.current = user
		fmt.Fprintf(c.out, "\nWelcome back, %s!\n", user.Username)
	}
	c.deps.Pause(1500 * time.Millisecond)
}

func (c *Console) signUp() {
	c.deps.Clear(c.out)
	fmt.Fprintln(c.out, "--- SIGN UP ---")
	username, ok := c.prompt("Choose a username: ")
	if !ok {
		return
	}
	password, ok := c.prompt("Choose a password: ")
	if !ok {
		return
	}

	if _, err := c.deps.Accounts.SignUp(username, password); err != nil {
		if err == model.ErrUsernameTaken {
			fmt.Fprintln(c.out, "\nUsername already exists.")
		} else {
			log.WithError(err).Error("sign up failed")
			fmt.Fprintln(c.out, "\nSign up failed.")
		}
	} else {
		fmt.Fprintln(c.out, "\nAccount created successfully! Please sign in.")
	}
	c.deps.Pause(1500 * time.Millisecond)
}

func (c *Console) logout() {
	c.current = nil
	c.deps.Cart.Clear()
	fmt.Fprintln(c.out, "\nLogged out successfully.")
	c.deps.Pause(time.Second)
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100.0)
}
