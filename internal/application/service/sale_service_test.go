package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/comanda-pos/internal/domain/repository"
	"github.com/sangkips/comanda-pos/pkg/apperror"
	"github.com/sangkips/comanda-pos/pkg/money"
	"github.com/sangkips/comanda-pos/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleService_FinalizeCoxinhaScenario(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	require.NoError(t, term.sequence.Load(ctx))
	coxinha, err := term.catalog.CreateProduct(ctx, &CreateProductInput{Code: "001", Name: "Coxinha", Price: "5.00"})
	require.NoError(t, err)

	_, err = term.cart.AddLine(ctx, coxinha.ID, 1)
	require.NoError(t, err)
	_, err = term.cart.AddLine(ctx, coxinha.ID, 1)
	require.NoError(t, err)
	require.Len(t, term.cart.Lines(), 1)
	assert.Equal(t, 2, term.cart.Lines()[0].Quantity)

	sale, err := term.ledger.Finalize(ctx)
	require.NoError(t, err)

	assert.Equal(t, money.MustParse("10.00"), sale.Total)
	assert.Equal(t, int64(testOffset+1), sale.OrderNumber)
	assert.Equal(t, fixedNow, sale.Timestamp)
	assert.Empty(t, term.cart.Lines())

	all := term.ledger.AllSales(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, sale.ID, all[0].ID)
	assert.Len(t, term.sales.saved, 1)
}

func TestSaleService_TotalMatchesCartTotal(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	a := term.mustCreate("Coxinha", "5.00")
	b := term.mustCreate("Suco", "3.33")
	_, _ = term.cart.AddLine(ctx, a.ID, 3)
	_, _ = term.cart.AddLine(ctx, b.ID, 3)

	cartTotal := term.cart.Total()
	sale, err := term.ledger.Finalize(ctx)
	require.NoError(t, err)

	var sum money.Amount
	for _, l := range sale.Lines {
		sum += l.Price.Mul(l.Quantity)
	}
	assert.Equal(t, cartTotal, sale.Total)
	assert.Equal(t, sum, sale.Total)
	assert.Equal(t, money.Amount(2499), sale.Total)
}

func TestSaleService_EmptyCartChangesNothing(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	listener := &recordingListener{}
	term.ledger.Subscribe(listener)

	sale, err := term.ledger.Finalize(ctx)
	assert.Nil(t, sale)
	require.ErrorIs(t, err, apperror.ErrEmptyCart)

	assert.Equal(t, int64(testOffset), term.sequence.Current())
	assert.False(t, term.counter.stored)
	assert.Empty(t, term.ledger.AllSales(ctx))
	assert.Zero(t, term.sales.saves)
	assert.Empty(t, listener.sales)
}

func TestSaleService_OrderNumbersStrictlyIncrease(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	p := term.mustCreate("Coxinha", "5.00")

	var numbers []int64
	for i := 0; i < 4; i++ {
		_, err := term.cart.AddLine(ctx, p.ID, 1)
		require.NoError(t, err)
		sale, err := term.ledger.Finalize(ctx)
		require.NoError(t, err)
		numbers = append(numbers, sale.OrderNumber)
	}
	assert.Equal(t, []int64{1001, 1002, 1003, 1004}, numbers)

	// newest first
	all := term.ledger.AllSales(ctx)
	assert.Equal(t, int64(1004), all[0].OrderNumber)
	assert.Equal(t, int64(1001), all[3].OrderNumber)
}

func TestSaleService_ConcurrentFinalizeNeverRepeatsNumbers(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	p := term.mustCreate("Coxinha", "5.00")

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = term.cart.AddLine(ctx, p.ID, 1)
			_, _ = term.ledger.Finalize(ctx)
		}()
	}
	wg.Wait()

	seen := map[int64]bool{}
	var units int
	for _, s := range term.ledger.AllSales(ctx) {
		assert.False(t, seen[s.OrderNumber], "duplicate %d", s.OrderNumber)
		seen[s.OrderNumber] = true
		units += s.Lines[0].Quantity
	}
	assert.Equal(t, workers, units+len(term.cart.Lines()))
}

func TestSaleService_LedgerSaveFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	listener := &recordingListener{}
	term.ledger.Subscribe(listener)
	p := term.mustCreate("Coxinha", "5.00")
	_, _ = term.cart.AddLine(ctx, p.ID, 2)

	term.sales.failSave = true
	_, err := term.ledger.Finalize(ctx)
	require.ErrorIs(t, err, errDiskFull)

	assert.Len(t, term.cart.Lines(), 1)
	assert.Empty(t, term.ledger.AllSales(ctx))
	assert.Empty(t, listener.sales)
	// the number drawn for the failed attempt stays used
	assert.Equal(t, int64(1001), term.sequence.Current())

	term.sales.failSave = false
	sale, err := term.ledger.Finalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1002), sale.OrderNumber)
}

func TestSaleService_CounterFailureLeavesEverything(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	p := term.mustCreate("Coxinha", "5.00")
	_, _ = term.cart.AddLine(ctx, p.ID, 1)

	term.counter.failSave = true
	_, err := term.ledger.Finalize(ctx)
	require.Error(t, err)

	assert.Len(t, term.cart.Lines(), 1)
	assert.Empty(t, term.ledger.AllSales(ctx))
	assert.Zero(t, term.sales.saves)
}

func TestSaleService_SaleKeepsPriceAfterCatalogEdit(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	p := term.mustCreate("Coxinha", "5.00")
	_, _ = term.cart.AddLine(ctx, p.ID, 1)
	sale, err := term.ledger.Finalize(ctx)
	require.NoError(t, err)

	_, err = term.catalog.UpdateProduct(ctx, &UpdateProductInput{ID: p.ID, Price: strPtr("6.00")})
	require.NoError(t, err)
	require.NoError(t, term.catalog.DeleteProduct(ctx, p.ID))

	stored, err := term.ledger.GetByOrderNumber(ctx, sale.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("5.00"), stored.Lines[0].Price)
	assert.Equal(t, "Coxinha", stored.Lines[0].Name)
}

func TestSaleService_ReturnedSalesAreCopies(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	p := term.mustCreate("Coxinha", "5.00")
	_, _ = term.cart.AddLine(ctx, p.ID, 1)
	_, err := term.ledger.Finalize(ctx)
	require.NoError(t, err)

	all := term.ledger.AllSales(ctx)
	all[0].Lines[0].Price = 1

	assert.Equal(t, money.Amount(500), term.ledger.AllSales(ctx)[0].Lines[0].Price)
}

func TestSaleService_ListenersNotifiedAfterCommit(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	listener := &recordingListener{}
	term.ledger.Subscribe(listener)
	p := term.mustCreate("Coxinha", "5.00")
	_, _ = term.cart.AddLine(ctx, p.ID, 1)

	sale, err := term.ledger.Finalize(ctx)
	require.NoError(t, err)
	require.Len(t, listener.sales, 1)
	assert.Equal(t, sale.OrderNumber, listener.sales[0].OrderNumber)
}

func TestSaleService_SalesOnAndList(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	p := term.mustCreate("Coxinha", "5.00")

	days := []time.Time{
		time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC),
	}
	for _, at := range days {
		term.ledger.now = func() time.Time { return at }
		_, _ = term.cart.AddLine(ctx, p.ID, 1)
		_, err := term.ledger.Finalize(ctx)
		require.NoError(t, err)
	}

	onDay := term.ledger.SalesOn(ctx, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	require.Len(t, onDay, 2)
	assert.Equal(t, int64(1003), onDay[0].OrderNumber)
	assert.NotNil(t, term.ledger.SalesOn(ctx, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))

	date := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	page := term.ledger.ListSales(ctx, &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 1},
		Date:       &date,
	})
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.True(t, page.Pagination.HasNext)

	assert.Len(t, term.ledger.ListSales(ctx, nil).Items, 3)
	assert.Equal(t, int64(1003), term.ledger.HighestOrderNumber())
}

func TestSaleService_SalesOnUsesStoreTimezone(t *testing.T) {
	ctx := context.Background()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	term := newTerminal()
	term.ledger.loc = loc
	// 01:30 UTC on the 19th is still the 18th in São Paulo
	term.ledger.now = func() time.Time { return time.Date(2026, 10, 19, 1, 30, 0, 0, time.UTC) }
	p := term.mustCreate("Coxinha", "5.00")
	_, _ = term.cart.AddLine(ctx, p.ID, 1)
	_, err = term.ledger.Finalize(ctx)
	require.NoError(t, err)

	assert.Len(t, term.ledger.SalesOn(ctx, time.Date(2026, 10, 18, 12, 0, 0, 0, loc)), 1)
	assert.Empty(t, term.ledger.SalesOn(ctx, time.Date(2026, 10, 19, 12, 0, 0, 0, loc)))
}

func TestSaleService_GetByOrderNumberNotFound(t *testing.T) {
	_, err := newTerminal().ledger.GetByOrderNumber(context.Background(), 42)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)
}

func TestSaleService_LoadRestoresNewestFirst(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	p := term.mustCreate("Coxinha", "5.00")
	for i := 0; i < 3; i++ {
		_, _ = term.cart.AddLine(ctx, p.ID, 1)
		_, err := term.ledger.Finalize(ctx)
		require.NoError(t, err)
	}

	// reverse the stored order to check Load sorts it back
	saved := term.sales.saved
	for i, j := 0, len(saved)-1; i < j; i, j = i+1, j-1 {
		saved[i], saved[j] = saved[j], saved[i]
	}

	restored := NewSaleService(NewCartService(term.catalog), term.sequence, term.sales, time.UTC)
	require.NoError(t, restored.Load(ctx))
	all := restored.AllSales(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1003), all[0].OrderNumber)
}
