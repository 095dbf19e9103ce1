package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-manager/domain"
)

// runLoanStoreContract exercises the behaviour every LoanStore must share.
// The store is expected to be empty.
func runLoanStoreContract(t *testing.T, store LoanStore) {
	ctx := context.Background()

	insert := func(amount, rate float64, term int, loanType string) domain.Loan {
		id, err := store.NextID(ctx)
		require.NoError(t, err)
		loan := domain.Loan{ID: id, Amount: amount, InterestRate: rate, Term: term, LoanType: loanType, MonthlyPayment: amount / float64(term)}
		require.NoError(t, store.Insert(ctx, loan))
		return loan
	}

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, all)
	assert.Empty(t, all)

	mortgage := insert(200000, 4.5, 360, "mortgage")
	auto := insert(15000, 7.9, 60, "auto")
	personal := insert(5000, 0, 10, "personal")

	assert.Less(t, mortgage.ID, auto.ID)
	assert.Less(t, auto.ID, personal.ID)

	t.Run("FindByID", func(t *testing.T) {
		got, err := store.FindByID(ctx, auto.ID)
		require.NoError(t, err)
		assert.Equal(t, auto, got)

		_, err = store.FindByID(ctx, personal.ID+1000)
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	})

	t.Run("FindAll", func(t *testing.T) {
		got, err := store.FindAll(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []domain.Loan{mortgage, auto, personal}, got)
	})

	t.Run("Find", func(t *testing.T) {
		loanType := "mortgage"
		got, err := store.Find(ctx, domain.LoanFilter{LoanType: &loanType})
		require.NoError(t, err)
		assert.Equal(t, []domain.Loan{mortgage}, got)

		maxRate := 5.0
		got, err = store.Find(ctx, domain.LoanFilter{MaxInterestRate: &maxRate})
		require.NoError(t, err)
		assert.ElementsMatch(t, []domain.Loan{mortgage, personal}, got)

		loanType = "auto"
		got, err = store.Find(ctx, domain.LoanFilter{LoanType: &loanType, MaxInterestRate: &maxRate})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		n, err := store.DeleteByID(ctx, auto.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = store.DeleteByID(ctx, auto.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		_, err = store.FindByID(ctx, auto.ID)
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	})

	t.Run("NextID is not reused after delete", func(t *testing.T) {
		id, err := store.NextID(ctx)
		require.NoError(t, err)
		assert.Greater(t, id, personal.ID)
	})

	t.Run("NextID is unique under concurrency", func(t *testing.T) {
		const workers = 50
		ids := make(chan int64, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, err := store.NextID(ctx)
				assert.NoError(t, err)
				ids <- id
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers)
	})

	require.NoError(t, store.Ping(ctx))
}
