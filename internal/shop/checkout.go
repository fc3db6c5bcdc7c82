package shop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyCart = errors.New("cart is empty")

// taxRate is the storefront's flat 18% GST approximation applied at checkout.
const taxRate = 0.18

const (
	StatusProcessing = "PROCESSING"
	StatusPlaced     = "PLACED"
	StatusFailed     = "FAILED"
)

type Order struct {
	ID        string    `json:"id"`
	Items     int       `json:"items"`
	Subtotal  float64   `json:"subtotal"`
	Tax       float64   `json:"tax"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Processor settles payment for an order. A real gateway belongs here and may
// return declines; Begin already handles that path.
type Processor interface {
	Process(ctx context.Context, o Order) error
}

// SimulatedProcessor waits a fixed delay and succeeds unconditionally. It is
// a stand-in, not a contract: nothing else in checkout assumes payment cannot
// fail.
type SimulatedProcessor struct {
	Delay time.Duration
}

func (p SimulatedProcessor) Process(ctx context.Context, _ Order) error {
	select {
	case <-time.After(p.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Checkout runs the mocked payment flow: snapshot the cart, create a
// PROCESSING order, settle asynchronously. The cart is cleared only once the
// processor succeeds.
type Checkout struct {
	store     *Store
	processor Processor
	notif     Notifier
	log       *zap.Logger

	mu     sync.Mutex
	orders map[string]Order
}

func NewCheckout(store *Store, p Processor, notif Notifier, log *zap.Logger) *Checkout {
	if notif == nil {
		notif = NopNotifier{}
	}
	return &Checkout{
		store:     store,
		processor: p,
		notif:     notif,
		log:       log,
		orders:    make(map[string]Order),
	}
}

func (c *Checkout) Begin(ctx context.Context) (Order, error) {
	cart := c.store.Cart()
	if len(cart) == 0 {
		return Order{}, ErrEmptyCart
	}

	var subtotal float64
	for _, l := range cart {
		subtotal += l.Price.Amount() * float64(l.Quantity)
	}
	tax := subtotal * taxRate

	o := Order{
		ID:        "o_" + uuid.NewString(),
		Items:     len(cart),
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal + tax,
		Status:    StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	c.setOrder(o)

	go c.settle(o)
	return o, nil
}

// Order looks up a previously started order. A miss is a recoverable
// not-found, never an error.
func (c *Checkout) Order(id string) (Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	o, ok := c.orders[id]
	return o, ok
}

func (c *Checkout) settle(o Order) {
	if err := c.processor.Process(context.Background(), o); err != nil {
		o.Status = StatusFailed
		c.setOrder(o)
		if c.log != nil {
			c.log.Error("payment failed", zap.Error(err), zap.String("order_id", o.ID))
		}
		c.notif.Notify(info("Payment failed, your cart is unchanged"))
		return
	}

	c.store.ClearCart()
	o.Status = StatusPlaced
	c.setOrder(o)
	if c.log != nil {
		c.log.Info("order placed", zap.String("order_id", o.ID), zap.Float64("total", o.Total))
	}
	c.notif.Notify(success("Order placed successfully!"))
}

func (c *Checkout) setOrder(o Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders[o.ID] = o
}
