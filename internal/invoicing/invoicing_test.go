package invoicing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutstanding(t *testing.T) {
	invoice := Invoice{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.NewFromInt(400),
	}
	assert.True(t, invoice.Outstanding().Equal(decimal.NewFromInt(600)))
}

func TestAllowedStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusApproved, true},
		{StatusDraft, StatusPaid, false},
		{StatusApproved, StatusPartial, true},
		{StatusPartial, StatusPaid, true},
		{StatusOverdue, StatusPartial, true},
	}
	for _, tc := range cases {
		got := allowedStatusTransitions[tc.from][tc.to]
		assert.Equalf(t, tc.allowed, got, "transition %s -> %s", tc.from, tc.to)
	}
}

func TestAgingBucketAdd(t *testing.T) {
	var bucket AgingBucket
	bucket.add(10, decimal.NewFromInt(100))
	bucket.add(45, decimal.NewFromInt(200))
	bucket.add(75, decimal.NewFromInt(300))
	bucket.add(120, decimal.NewFromInt(400))

	require.True(t, bucket.Current.Equal(decimal.NewFromInt(100)))
	require.True(t, bucket.Days31To60.Equal(decimal.NewFromInt(200)))
	require.True(t, bucket.Days61To90.Equal(decimal.NewFromInt(300)))
	require.True(t, bucket.Over90Days.Equal(decimal.NewFromInt(400)))
	require.True(t, bucket.Total.Equal(decimal.NewFromInt(1000)))
}

func TestGenerateAgingReportBucketsBoundaries(t *testing.T) {
	asOf := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	dueDate := asOf.AddDate(0, 0, -30)
	inv := Invoice{PartyID: uuid.New(), DueDate: dueDate, TotalAmount: decimal.NewFromInt(500), PaidAmount: decimal.Zero}
	days := int(asOf.Sub(inv.DueDate).Hours() / 24)
	assert.Equal(t, 30, days)

	var bucket AgingBucket
	bucket.add(days, inv.Outstanding())
	assert.True(t, bucket.Current.Equal(decimal.NewFromInt(500)), "30 days overdue falls in the current bucket")
	assert.True(t, bucket.Days31To60.IsZero())
}
