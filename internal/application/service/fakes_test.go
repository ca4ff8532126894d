package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/sangkips/comanda-pos/internal/domain/entity"
)

var errDiskFull = errors.New("disk full")

type fakeProductRepo struct {
	mu       sync.Mutex
	saved    []entity.Product
	saves    int
	failSave bool
}

func (r *fakeProductRepo) Load(ctx context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.saved), nil
}

func (r *fakeProductRepo) Save(ctx context.Context, products []entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errDiskFull
	}
	r.saves++
	r.saved = slices.Clone(products)
	return nil
}

type fakeSaleRepo struct {
	mu       sync.Mutex
	saved    []entity.Sale
	saves    int
	failSave bool
}

func (r *fakeSaleRepo) Load(ctx context.Context) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.saved), nil
}

func (r *fakeSaleRepo) Save(ctx context.Context, sales []entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errDiskFull
	}
	r.saves++
	r.saved = slices.Clone(sales)
	return nil
}

type fakeCounterRepo struct {
	mu       sync.Mutex
	last     int64
	stored   bool
	failSave bool
}

func (r *fakeCounterRepo) Load(ctx context.Context) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.stored, nil
}

func (r *fakeCounterRepo) Save(ctx context.Context, last int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errDiskFull
	}
	r.last = last
	r.stored = true
	return nil
}

type recordingListener struct {
	mu    sync.Mutex
	sales []entity.Sale
}

func (l *recordingListener) SaleFinalized(ctx context.Context, sale entity.Sale) {
	l.mu.Lock()
	l.sales = append(l.sales, sale)
	l.mu.Unlock()
}

type recordingPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, slices.Clone(data))
	return nil
}

func (p *recordingPrinter) Close() error { return nil }

func (p *recordingPrinter) IsConnected() bool { return p.err == nil }

// terminal wires the services the way main does, over fakes.
type terminal struct {
	catalog  *CatalogService
	cart     *CartService
	sequence *OrderSequencer
	ledger   *SaleService
	reports  *ReportService

	products *fakeProductRepo
	sales    *fakeSaleRepo
	counter  *fakeCounterRepo
}

const testOffset = 1000

var fixedNow = time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)

func newTerminal() *terminal {
	t := &terminal{
		products: &fakeProductRepo{},
		sales:    &fakeSaleRepo{},
		counter:  &fakeCounterRepo{},
	}
	t.catalog = NewCatalogService(t.products)
	t.cart = NewCartService(t.catalog)
	t.sequence = NewOrderSequencer(t.counter, testOffset)
	t.ledger = NewSaleService(t.cart, t.sequence, t.sales, time.UTC)
	t.ledger.now = func() time.Time { return fixedNow }
	t.reports = NewReportService(t.ledger)
	return t
}

func (t *terminal) mustCreate(name, price string) *entity.Product {
	p, err := t.catalog.CreateProduct(context.Background(), &CreateProductInput{Name: name, Price: price})
	if err != nil {
		panic(err)
	}
	return p
}
