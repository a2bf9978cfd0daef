package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/internal/infrastructure/metrics"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

// RegisterState is the derived state of the register.
type RegisterState string

const (
	RegisterEmpty          RegisterState = "empty"
	RegisterBuilding       RegisterState = "building"
	RegisterPendingPayment RegisterState = "pending_payment"
)

// CashierOptions configures a CashierService.
type CashierOptions struct {
	MaxCartLines int
	// DefaultCashier names sales rung up without a session. Empty means the
	// first active Admin user, so those sales still show in the cashier report.
	DefaultCashier string
	WalkInCustomer string
	Clock          Clock
	Metrics        *metrics.Metrics
}

// CashierService is the single register of this terminal: the cart being
// rung up, the selected member, payment and settlement.
type CashierService struct {
	docs    *Documents
	catalog *CatalogService
	sinks   []ReceiptSink
	opts    CashierOptions

	mu       sync.Mutex
	cart     *entity.Cart
	member   *entity.Member
	pending  bool
	settings entity.Settings
}

// NewCashierService creates a new cashier service
func NewCashierService(docs *Documents, catalog *CatalogService, sinks []ReceiptSink, opts CashierOptions) *CashierService {
	if opts.MaxCartLines <= 0 {
		opts.MaxCartLines = entity.DefaultMaxCartLines
	}
	if opts.WalkInCustomer == "" {
		opts.WalkInCustomer = "Umum"
	}
	return &CashierService{
		docs:     docs,
		catalog:  catalog,
		sinks:    sinks,
		opts:     opts,
		cart:     entity.NewCart(opts.MaxCartLines),
		settings: *entity.DefaultSettings(),
	}
}

// ApplySettings receives the store settings used for points and receipts.
func (s *CashierService) ApplySettings(settings entity.Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// CartLineView is a cart line with its computed total.
type CartLineView struct {
	entity.CartItem
	LineTotal decimal.Decimal `json:"line_total"`
}

// RegisterSnapshot is a read-only view of the register.
type RegisterSnapshot struct {
	State          RegisterState   `json:"state"`
	Lines          []CartLineView  `json:"lines"`
	Member         *entity.Member  `json:"member,omitempty"`
	LineCount      int             `json:"line_count"`
	MaxLines       int             `json:"max_lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	LineDiscounts  decimal.Decimal `json:"line_discounts"`
	PointsDiscount decimal.Decimal `json:"points_discount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// Snapshot returns the current register contents.
func (s *CashierService) Snapshot() *RegisterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *CashierService) snapshot() *RegisterSnapshot {
	lines := make([]CartLineView, 0, len(s.cart.Lines))
	for _, line := range s.cart.Clone().Lines {
		lines = append(lines, CartLineView{CartItem: line, LineTotal: line.LineTotal()})
	}
	var member *entity.Member
	if s.member != nil {
		m := *s.member
		member = &m
	}
	return &RegisterSnapshot{
		State:          s.state(),
		Lines:          lines,
		Member:         member,
		LineCount:      len(lines),
		MaxLines:       s.opts.MaxCartLines,
		Subtotal:       s.cart.Subtotal(),
		LineDiscounts:  s.cart.LineDiscounts(),
		PointsDiscount: s.cart.PointsDiscount(),
		GrandTotal:     s.cart.GrandTotal(),
	}
}

func (s *CashierService) state() RegisterState {
	switch {
	case s.cart.IsEmpty():
		return RegisterEmpty
	case s.pending:
		return RegisterPendingPayment
	default:
		return RegisterBuilding
	}
}

// mutated returns a pending payment to building.
func (s *CashierService) mutated() {
	s.pending = false
}

// Scan resolves a scanner or keyboard token and adds the result to the cart.
// A token with a quantity prefix but no identifier leaves the cart unchanged.
func (s *CashierService) Scan(ctx context.Context, token string) (*RegisterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cart.PointsLine(); ok && !s.cart.GrandTotal().IsPositive() {
		return nil, domainError(entity.ErrPaidByPoints)
	}

	result, err := s.catalog.Resolve(ctx, token)
	if errors.Is(err, ErrEmptyIdentifier) {
		return s.snapshot(), nil
	}
	if err != nil {
		return nil, err
	}

	unit := result.Unit
	if err := s.cart.AddLine(result.Product, result.Quantity, &unit); err != nil {
		return nil, domainError(err)
	}
	s.mutated()
	return s.snapshot(), nil
}

// AddLineInput adds a product picked from the catalog.
type AddLineInput struct {
	ProductID string
	UnitName  string
	Quantity  decimal.Decimal
}

// AddLine adds a product by PLU. An empty unit name selects the base unit.
func (s *CashierService) AddLine(ctx context.Context, input *AddLineInput) (*RegisterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		product entity.Product
		unit    *entity.Unit
	)
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		p, ok := doc.FindProduct(input.ProductID)
		if !ok {
			return apperror.NewNotFoundError("Product " + input.ProductID)
		}
		product = *p
		if input.UnitName != "" {
			u, ok := p.UnitByName(input.UnitName)
			if !ok {
				return domainError(entity.ErrUnitNotFound)
			}
			unit = &u
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cart.AddLine(product, input.Quantity, unit); err != nil {
		return nil, domainError(err)
	}
	s.mutated()
	return s.snapshot(), nil
}

// UpdateLine sets the quantity or discount of a line.
func (s *CashierService) UpdateLine(productID, unitName string, field entity.CartField, value decimal.Decimal) (*RegisterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.UpdateLine(productID, unitName, field, value); err != nil {
		return nil, domainError(err)
	}
	s.mutated()
	return s.snapshot(), nil
}

// ChangeUnit switches a line to another unit of the same product.
func (s *CashierService) ChangeUnit(productID, fromUnit, toUnit string) (*RegisterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.ChangeUnit(productID, fromUnit, toUnit); err != nil {
		return nil, domainError(err)
	}
	s.mutated()
	return s.snapshot(), nil
}

// RemoveLine deletes a line from the cart.
func (s *CashierService) RemoveLine(productID, unitName string) (*RegisterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.RemoveLine(productID, unitName); err != nil {
		return nil, domainError(err)
	}
	s.mutated()
	return s.snapshot(), nil
}

// SelectMember attaches an active member to the transaction. Changing the
// member drops any points redemption made for the previous one.
func (s *CashierService) SelectMember(ctx context.Context, memberID string) (*RegisterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var member entity.Member
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		m, ok := doc.FindMember(memberID)
		if !ok {
			return apperror.NewNotFoundError("Member " + memberID)
		}
		if !m.IsActive {
			return apperror.NewUnprocessableError("Member " + memberID + " is not active")
		}
		member = *m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.member != nil && s.member.ID != member.ID && s.cart.ClearRedemption() {
		s.mutated()
	}
	s.member = &member
	return s.snapshot(), nil
}

// ClearMember detaches the member and drops any points redemption.
func (s *CashierService) ClearMember() *RegisterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.ClearRedemption() {
		s.mutated()
	}
	s.member = nil
	return s.snapshot()
}

// RedeemPoints converts member points into a discount line, replacing any
// earlier redemption.
func (s *CashierService) RedeemPoints(ctx context.Context, points int64) (*RegisterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settings.Points.Enabled {
		return nil, apperror.NewStateError("Points redemption is disabled")
	}
	if s.member == nil {
		return nil, apperror.NewStateError("Select a member before redeeming points")
	}
	itemsTotal := s.cart.ItemsTotal()
	if !itemsTotal.IsPositive() {
		return nil, apperror.NewStateError("Add items before redeeming points")
	}
	if points <= 0 {
		return nil, apperror.NewFieldError("points", "must be greater than 0")
	}

	var available int64
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		m, ok := doc.FindMember(s.member.ID)
		if !ok {
			return apperror.NewNotFoundError("Member " + s.member.ID)
		}
		available = m.Points
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.member.Points = available

	if points > available {
		return nil, apperror.NewFieldError("points", "exceeds the member's available points")
	}
	discount := decimal.NewFromInt(points).Mul(s.settings.Points.PointValue)
	if discount.GreaterThan(itemsTotal) {
		return nil, apperror.NewFieldError("points", "discount exceeds the transaction total")
	}

	if _, err := s.cart.RedeemPoints(points, s.settings.Points.PointValue); err != nil {
		return nil, domainError(err)
	}
	s.mutated()
	return s.snapshot(), nil
}

// CancelRedemption removes the points line.
func (s *CashierService) CancelRedemption() *RegisterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.ClearRedemption() {
		s.mutated()
	}
	return s.snapshot()
}

// Reset clears the cart and the member.
func (s *CashierService) Reset() *RegisterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	return s.snapshot()
}

func (s *CashierService) reset() {
	s.cart = entity.NewCart(s.opts.MaxCartLines)
	s.member = nil
	s.pending = false
}

// Suspend parks the current cart and member and clears the register.
func (s *CashierService) Suspend(ctx context.Context) (*entity.SuspendedTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state() {
	case RegisterEmpty:
		return nil, apperror.NewStateError("Cart is empty; nothing to suspend")
	case RegisterPendingPayment:
		return nil, apperror.NewStateError("Cancel the pending payment before suspending")
	}

	held := entity.SuspendedTransaction{
		ID:          uuid.New().String(),
		Cart:        s.cart.Clone().Lines,
		SuspendedAt: s.opts.Clock.now(),
	}
	if s.member != nil {
		m := *s.member
		held.Member = &m
	}

	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		doc.SuspendedTransactions = append(doc.SuspendedTransactions, held)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.opts.Metrics.TransactionSuspended()
	log.Info().Str("id", held.ID).Int("lines", len(held.Cart)).Msg("Transaction suspended")
	s.reset()
	return &held, nil
}

// ListSuspended returns the parked transactions in the order they were suspended.
func (s *CashierService) ListSuspended(ctx context.Context) ([]entity.SuspendedTransaction, error) {
	var out []entity.SuspendedTransaction
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		out = append([]entity.SuspendedTransaction{}, doc.SuspendedTransactions...)
		return nil
	})
	return out, err
}

// Recall restores a parked transaction into the empty register and removes
// it from the suspended list.
func (s *CashierService) Recall(ctx context.Context, id string) (*RegisterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.IsEmpty() {
		return nil, apperror.NewStateError("Finish or suspend the current transaction before recalling another")
	}

	var held entity.SuspendedTransaction
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		for i := range doc.SuspendedTransactions {
			if doc.SuspendedTransactions[i].ID == id {
				held = doc.SuspendedTransactions[i]
				doc.SuspendedTransactions = append(doc.SuspendedTransactions[:i], doc.SuspendedTransactions[i+1:]...)
				return nil
			}
		}
		return apperror.NewNotFoundError("Suspended transaction")
	})
	if err != nil {
		return nil, err
	}

	cart := entity.NewCart(s.opts.MaxCartLines)
	cart.Lines = append(cart.Lines, held.Cart...)
	s.cart = cart
	s.member = held.Member
	s.pending = false

	log.Info().Str("id", id).Int("lines", len(cart.Lines)).Msg("Transaction recalled")
	return s.snapshot(), nil
}

// PaymentResult is returned by RequestPayment and ConfirmPayment.
type PaymentResult struct {
	Settled   bool            `json:"settled"`
	AmountDue decimal.Decimal `json:"amount_due"`
	Sale      *entity.Sale    `json:"sale,omitempty"`
	Receipt   *entity.Receipt `json:"receipt,omitempty"`
}

// RequestPayment moves the register to payment. A zero total, fully covered
// by points, settles immediately.
func (s *CashierService) RequestPayment(ctx context.Context, cashier string) (*PaymentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return nil, apperror.NewStateError("Cart is empty")
	}
	total := s.cart.GrandTotal()
	if total.IsNegative() {
		return nil, apperror.NewStateError("Transaction total cannot be negative")
	}
	if total.IsZero() {
		return s.settle(ctx, &ConfirmPaymentInput{
			Tendered: decimal.Zero,
			Method:   enum.PaymentMethodCash,
			Cashier:  cashier,
		}, total)
	}

	s.pending = true
	return &PaymentResult{AmountDue: total}, nil
}

// ConfirmPaymentInput is the tender entered by the cashier.
type ConfirmPaymentInput struct {
	Tendered decimal.Decimal
	Method   enum.PaymentMethod
	Detail   string
	Cashier  string
}

// ConfirmPayment settles the pending transaction.
func (s *CashierService) ConfirmPayment(ctx context.Context, input *ConfirmPaymentInput) (*PaymentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending {
		return nil, apperror.NewStateError("No payment is pending")
	}
	if input.Method == "" {
		input.Method = enum.PaymentMethodCash
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewFieldError("method", "must be one of: cash, ewallet, bank, qris")
	}

	total := s.cart.GrandTotal()
	switch {
	case input.Method == enum.PaymentMethodCash:
		if input.Tendered.LessThan(total) {
			return nil, apperror.NewFieldError("tendered", "is less than the amount due")
		}
	case input.Tendered.IsPositive() && input.Tendered.LessThan(total):
		return nil, apperror.NewFieldError("tendered", "is less than the amount due")
	default:
		// wallets, cards and QRIS charge the exact amount
		input.Tendered = total
	}
	return s.settle(ctx, input, total)
}

// CancelPayment returns the register from payment to building.
func (s *CashierService) CancelPayment() (*RegisterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending {
		return nil, apperror.NewStateError("No payment is pending")
	}
	s.pending = false
	return s.snapshot(), nil
}

// settle records the sale: the points to deduct are taken from the cart, the
// receipt is rendered, then in one document write the member points are
// deducted, stock is decremented by quantity × unit multiplier (never below
// zero) and the sale is added. The register is cleared only after a
// successful save.
func (s *CashierService) settle(ctx context.Context, input *ConfirmPaymentInput, total decimal.Decimal) (*PaymentResult, error) {
	now := s.opts.Clock.now()
	cashier := strings.TrimSpace(input.Cashier)
	if cashier == "" {
		cashier = s.opts.DefaultCashier
	}
	if cashier == "" {
		cashier = s.registerOwner(ctx)
	}

	sale := &entity.Sale{
		InvoiceID:     utils.DatedReference("INV", now),
		Date:          now,
		Customer:      s.opts.WalkInCustomer,
		Cashier:       cashier,
		Total:         total,
		Status:        enum.SaleStatusCompleted,
		PaymentMethod: input.Method,
		PaymentDetail: input.Detail,
		AmountPaid:    input.Tendered,
		Change:        decimal.Max(input.Tendered.Sub(total), decimal.Zero),
	}
	if s.member != nil {
		sale.Customer = s.member.Name
		sale.MemberID = s.member.ID
	}
	for _, line := range s.cart.Lines {
		sale.Items = append(sale.Items, entity.NewSaleItem(line))
	}
	settings := s.settings
	receipt := entity.NewReceipt(sale, &settings)

	var redeemFrom string
	redeemed := sale.PointsRedeemed()
	if redeemed > 0 && s.member != nil {
		redeemFrom = s.member.ID
	}

	// Printers can take seconds to answer; render before taking the
	// document lock so other requests are not held up.
	s.renderReceipt(ctx, receipt)

	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		if redeemFrom != "" {
			if m, ok := doc.FindMember(redeemFrom); ok {
				m.Points -= redeemed
				if m.Points < 0 {
					m.Points = 0
				}
			}
		}

		for _, line := range s.cart.Lines {
			if line.IsPointsDiscount() {
				continue
			}
			p, ok := doc.FindProduct(line.ID)
			if !ok {
				continue
			}
			p.Stock = decimal.Max(p.Stock.Sub(line.BaseQuantity()), decimal.Zero)
		}

		doc.Sales = append(doc.Sales, *sale)
		doc.SortSales()
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("invoice", sale.InvoiceID).Msg("Failed to save sale")
		return nil, err
	}

	s.opts.Metrics.SaleSettled(string(sale.PaymentMethod), sale.Total, sale.PointsRedeemed())
	log.Info().
		Str("invoice", sale.InvoiceID).
		Str("total", sale.Total.String()).
		Str("method", string(sale.PaymentMethod)).
		Str("customer", sale.Customer).
		Msg("Sale settled")

	s.reset()
	return &PaymentResult{Settled: true, AmountDue: total, Sale: sale, Receipt: receipt}, nil
}

// renderReceipt sends the receipt to every sink. Failures are logged and do
// not affect settlement.
// registerOwner is the full name of the first active Admin user, or
// "Admin" when there is none.
func (s *CashierService) registerOwner(ctx context.Context) string {
	owner := string(enum.UserRoleAdmin)
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		for _, u := range doc.Users {
			if u.Role == enum.UserRoleAdmin && u.IsActive() && u.FullName != "" {
				owner = u.FullName
				return nil
			}
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to look up the register owner")
	}
	return owner
}

func (s *CashierService) renderReceipt(ctx context.Context, receipt *entity.Receipt) {
	for _, sink := range s.sinks {
		if err := sink.Render(ctx, receipt); err != nil {
			s.opts.Metrics.ReceiptFailed(sink.Name())
			log.Warn().Err(err).Str("sink", sink.Name()).Str("invoice", receipt.InvoiceID).Msg("Receipt rendering failed")
		}
	}
}
