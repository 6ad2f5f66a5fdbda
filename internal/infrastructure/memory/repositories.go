package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

// Stored rows never carry relations; the loaders below attach them on read.

func (s *state) person(id uuid.UUID) entity.Person {
	p, _ := s.persons.get(id)
	return p
}

func (s *state) category(id *uuid.UUID) *entity.ProductCategory {
	if id == nil {
		return nil
	}
	c, ok := s.categories.get(*id)
	if !ok {
		return nil
	}
	return &c
}

func (s *state) receiptLines(receiptID uuid.UUID, withProduct bool) []entity.ReceiptLine {
	var out []entity.ReceiptLine
	for _, l := range s.lines.all() {
		if l.ReceiptID != receiptID {
			continue
		}
		if withProduct {
			if p, ok := s.products.get(l.ProductID); ok {
				p.Category = s.category(p.CategoryID)
				l.Product = &p
			}
		}
		out = append(out, l)
	}
	return out
}

func (s *state) loadReceipt(r entity.Receipt, details bool) entity.Receipt {
	r.Lines = s.receiptLines(r.ID, details)
	if c, ok := s.customers.get(r.CustomerID); ok {
		if details {
			c.Person = s.person(c.PersonID)
		}
		r.Customer = &c
	}
	return r
}

func (s *state) loadCustomer(c entity.Customer, details bool) entity.Customer {
	c.Person = s.person(c.PersonID)
	if details {
		for _, r := range s.receipts.all() {
			if r.CustomerID == c.ID {
				r.Lines = s.receiptLines(r.ID, false)
				c.Receipts = append(c.Receipts, r)
			}
		}
	}
	return c
}

func (s *state) loadProduct(p entity.Product) entity.Product {
	p.Category = s.category(p.CategoryID)
	for _, l := range s.lines.all() {
		if l.ProductID == p.ID {
			p.ReceiptLines = append(p.ReceiptLines, l)
		}
	}
	return p
}

func byName[T any](name func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(name(a), name(b)) }
}

type customerRepository struct {
	st  *state
	now func() time.Time
}

func (r *customerRepository) Create(_ context.Context, customer *entity.Customer) error {
	now := r.now()
	if customer.Person.ID == uuid.Nil {
		customer.Person.ID = uuid.New()
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	customer.PersonID = customer.Person.ID
	customer.Person.CreatedAt, customer.Person.UpdatedAt = now, now
	customer.CreatedAt, customer.UpdatedAt = now, now

	row := *customer
	row.Person = entity.Person{}
	row.Receipts = nil
	r.st.persons.put(customer.Person.ID, r.st.next(), customer.Person)
	r.st.customers.put(customer.ID, r.st.next(), row)
	return nil
}

func (r *customerRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.st.customers.get(id)
	if !ok {
		return nil, nil
	}
	c = r.st.loadCustomer(c, false)
	return &c, nil
}

func (r *customerRepository) GetByIDWithDetails(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.st.customers.get(id)
	if !ok {
		return nil, nil
	}
	c = r.st.loadCustomer(c, true)
	return &c, nil
}

func (r *customerRepository) GetAllWithDetails(_ context.Context) ([]entity.Customer, error) {
	rows := r.st.customers.all()
	out := make([]entity.Customer, 0, len(rows))
	for _, c := range rows {
		out = append(out, r.st.loadCustomer(c, true))
	}
	return out, nil
}

func (r *customerRepository) Update(_ context.Context, customer *entity.Customer) error {
	now := r.now()
	customer.Person.UpdatedAt = now
	customer.UpdatedAt = now
	customer.PersonID = customer.Person.ID

	row := *customer
	row.Person = entity.Person{}
	row.Receipts = nil
	r.st.persons.put(customer.Person.ID, r.st.next(), customer.Person)
	r.st.customers.put(customer.ID, r.st.next(), row)
	return nil
}

func (r *customerRepository) Delete(_ context.Context, id uuid.UUID) error {
	c, ok := r.st.customers.get(id)
	if !ok {
		return nil
	}
	delete(r.st.customers.rows, id)
	delete(r.st.persons.rows, c.PersonID)
	return nil
}

type productRepository struct {
	st  *state
	now func() time.Time
}

func (r *productRepository) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = r.now()
	product.UpdatedAt = product.CreatedAt
	r.st.products.put(product.ID, r.st.next(), stripProduct(*product))
	return nil
}

func stripProduct(p entity.Product) entity.Product {
	p.Category = nil
	p.ReceiptLines = nil
	return p
}

func (r *productRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.st.products.get(id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepository) GetByIDWithDetails(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.st.products.get(id)
	if !ok {
		return nil, nil
	}
	p = r.st.loadProduct(p)
	return &p, nil
}

func (r *productRepository) GetAllWithDetails(_ context.Context) ([]entity.Product, error) {
	rows := r.st.products.all()
	out := make([]entity.Product, 0, len(rows))
	for _, p := range rows {
		out = append(out, r.st.loadProduct(p))
	}
	slices.SortStableFunc(out, byName(func(p entity.Product) string { return p.Name }))
	return out, nil
}

func (r *productRepository) Update(_ context.Context, product *entity.Product) error {
	product.UpdatedAt = r.now()
	r.st.products.put(product.ID, r.st.next(), stripProduct(*product))
	return nil
}

func (r *productRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.products.rows, id)
	return nil
}

func (r *productRepository) ClearCategory(_ context.Context, categoryID uuid.UUID) error {
	for id, rec := range r.st.products.rows {
		if rec.val.InCategory(categoryID) {
			rec.val.CategoryID = nil
			r.st.products.rows[id] = rec
		}
	}
	return nil
}

type categoryRepository struct {
	st  *state
	now func() time.Time
}

func (r *categoryRepository) Create(_ context.Context, category *entity.ProductCategory) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = r.now()
	category.UpdatedAt = category.CreatedAt
	row := *category
	row.Products = nil
	r.st.categories.put(category.ID, r.st.next(), row)
	return nil
}

func (r *categoryRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.ProductCategory, error) {
	c, ok := r.st.categories.get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepository) GetAllWithDetails(_ context.Context) ([]entity.ProductCategory, error) {
	rows := r.st.categories.all()
	products := r.st.products.all()
	for i := range rows {
		for _, p := range products {
			if p.InCategory(rows[i].ID) {
				rows[i].Products = append(rows[i].Products, p)
			}
		}
	}
	slices.SortStableFunc(rows, byName(func(c entity.ProductCategory) string { return c.Name }))
	return rows, nil
}

func (r *categoryRepository) Update(_ context.Context, category *entity.ProductCategory) error {
	category.UpdatedAt = r.now()
	row := *category
	row.Products = nil
	r.st.categories.put(category.ID, r.st.next(), row)
	return nil
}

func (r *categoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.categories.rows, id)
	return nil
}

type receiptRepository struct {
	st  *state
	now func() time.Time
}

func stripReceipt(r entity.Receipt) entity.Receipt {
	r.Customer = nil
	r.Lines = nil
	return r
}

func (r *receiptRepository) Create(_ context.Context, receipt *entity.Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	receipt.CreatedAt = r.now()
	receipt.UpdatedAt = receipt.CreatedAt
	r.st.receipts.put(receipt.ID, r.st.next(), stripReceipt(*receipt))
	return nil
}

func (r *receiptRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	rec, ok := r.st.receipts.get(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// GetByIDForUpdate needs no row lock; Execute already holds the store lock
func (r *receiptRepository) GetByIDForUpdate(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	rec, ok := r.st.receipts.get(id)
	if !ok {
		return nil, nil
	}
	rec = r.st.loadReceipt(rec, false)
	return &rec, nil
}

func (r *receiptRepository) GetByIDWithDetails(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	rec, ok := r.st.receipts.get(id)
	if !ok {
		return nil, nil
	}
	rec = r.st.loadReceipt(rec, true)
	return &rec, nil
}

func (r *receiptRepository) GetAllWithDetails(_ context.Context) ([]entity.Receipt, error) {
	return r.filter(func(entity.Receipt) bool { return true }), nil
}

func (r *receiptRepository) GetByPeriodWithDetails(_ context.Context, start, end time.Time) ([]entity.Receipt, error) {
	return r.filter(func(rec entity.Receipt) bool {
		return !rec.OperationDate.Before(start) && !rec.OperationDate.After(end)
	}), nil
}

func (r *receiptRepository) filter(keep func(entity.Receipt) bool) []entity.Receipt {
	var out []entity.Receipt
	for _, rec := range r.st.receipts.all() {
		if keep(rec) {
			out = append(out, r.st.loadReceipt(rec, true))
		}
	}
	slices.SortStableFunc(out, func(a, b entity.Receipt) int { return a.OperationDate.Compare(b.OperationDate) })
	return out
}

func (r *receiptRepository) Update(_ context.Context, receipt *entity.Receipt) error {
	stored, ok := r.st.receipts.get(receipt.ID)
	if !ok {
		return nil
	}
	stored.CustomerID = receipt.CustomerID
	stored.OperationDate = receipt.OperationDate
	stored.IsCheckedOut = receipt.IsCheckedOut
	stored.UpdatedAt = r.now()
	receipt.UpdatedAt = stored.UpdatedAt
	r.st.receipts.put(receipt.ID, 0, stored)
	return nil
}

func (r *receiptRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.receipts.rows, id)
	return nil
}

type receiptLineRepository struct {
	st  *state
	now func() time.Time
}

func (r *receiptLineRepository) Create(_ context.Context, line *entity.ReceiptLine) error {
	for _, l := range r.st.lines.all() {
		if l.ReceiptID == line.ReceiptID && l.ProductID == line.ProductID {
			return fmt.Errorf("memory: duplicate line for product %s on receipt %s", line.ProductID, line.ReceiptID)
		}
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	line.CreatedAt = r.now()
	line.UpdatedAt = line.CreatedAt
	row := *line
	row.Product = nil
	r.st.lines.put(line.ID, r.st.next(), row)
	return nil
}

func (r *receiptLineRepository) GetByReceiptID(_ context.Context, receiptID uuid.UUID) ([]entity.ReceiptLine, error) {
	return r.st.receiptLines(receiptID, true), nil
}

func (r *receiptLineRepository) Update(_ context.Context, line *entity.ReceiptLine) error {
	line.UpdatedAt = r.now()
	row := *line
	row.Product = nil
	r.st.lines.put(line.ID, r.st.next(), row)
	return nil
}

func (r *receiptLineRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.lines.rows, id)
	return nil
}

func (r *receiptLineRepository) DeleteByReceiptID(_ context.Context, receiptID uuid.UUID) error {
	return r.deleteWhere(func(l entity.ReceiptLine) bool { return l.ReceiptID == receiptID })
}

func (r *receiptLineRepository) DeleteByProductID(_ context.Context, productID uuid.UUID) error {
	return r.deleteWhere(func(l entity.ReceiptLine) bool { return l.ProductID == productID })
}

func (r *receiptLineRepository) deleteWhere(match func(entity.ReceiptLine) bool) error {
	for id, rec := range r.st.lines.rows {
		if match(rec.val) {
			delete(r.st.lines.rows, id)
		}
	}
	return nil
}
