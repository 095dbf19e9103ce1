package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-manager/domain"
)

func TestDecodeLoans(t *testing.T) {
	vals := []interface{}{
		`{"id":1,"amount":1000,"interest_rate":3,"term":12,"loan_type":"auto","monthly_payment":84.69}`,
		nil,
		`{"id":3,"amount":500,"interest_rate":9,"term":6,"loan_type":"personal","monthly_payment":85.52}`,
	}

	got, err := decodeLoans(vals, domain.LoanFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "personal", got[1].LoanType)

	maxRate := 5.0
	got, err = decodeLoans(vals, domain.LoanFilter{MaxInterestRate: &maxRate})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestDecodeLoans_InvalidJSON(t *testing.T) {
	_, err := decodeLoans([]interface{}{"{not json"}, domain.LoanFilter{})
	assert.Error(t, err)
}

func TestLoanKey(t *testing.T) {
	assert.Equal(t, "loan:42", loanKey(42))
}

func TestRedisLoanStore_Contract(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	// database 15 is reserved for tests and flushed before use
	store := NewRedisLoanStore(addr, os.Getenv("TEST_REDIS_PASSWORD"), 15)
	require.NoError(t, store.client.FlushDB(ctx).Err())
	t.Cleanup(func() {
		_ = store.client.FlushDB(ctx).Err()
		_ = store.Close(ctx)
	})

	runLoanStoreContract(t, store)
}
