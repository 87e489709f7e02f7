package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTemple(t *testing.T, db *gorm.DB) *model.Temple {
	t.Helper()
	temple := &model.Temple{Name: "Sri Lakshmi Temple", City: "Chennai", IsActive: true}
	require.NoError(t, db.Create(temple).Error)
	return temple
}

func TestDonationCreateAndSummary(t *testing.T) {
	db := newTestDB(t)
	svc := NewDonationService(db, nil)
	ctx := context.Background()
	temple := seedTemple(t, db)

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	amounts := []string{"101.50", "500", "21"}
	for i, a := range amounts {
		at := base.Add(time.Duration(i) * time.Hour)
		_, err := svc.Create(ctx, CreateDonationRequest{
			TempleID:    temple.ID.String(),
			DonorName:   "Donor",
			Amount:      decimal.RequireFromString(a),
			PaymentMode: "cash",
			ReceiptNo:   "R-" + a,
			DonatedAt:   &at,
		})
		require.NoError(t, err)
	}

	// One donation outside the summary window.
	outside := base.AddDate(0, 0, 10)
	_, err := svc.Create(ctx, CreateDonationRequest{
		TempleID:    temple.ID.String(),
		DonorName:   "Late Donor",
		Amount:      decimal.NewFromInt(999),
		PaymentMode: "upi",
		ReceiptNo:   "R-999",
		DonatedAt:   &outside,
	})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, temple.ID.String(), base.Add(-time.Hour), base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Count)
	assert.True(t, summary.TotalAmount.Equal(decimal.RequireFromString("622.50")),
		"got total %s", summary.TotalAmount)
}

func TestDonationCreateRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	svc := NewDonationService(db, nil)
	temple := seedTemple(t, db)

	_, err := svc.Create(context.Background(), CreateDonationRequest{
		TempleID:    temple.ID.String(),
		DonorName:   "Donor",
		Amount:      decimal.Zero,
		PaymentMode: "cash",
		ReceiptNo:   "R-0",
	})
	assert.Error(t, err)
}

func TestDonationListByTemple(t *testing.T) {
	db := newTestDB(t)
	svc := NewDonationService(db, nil)
	ctx := context.Background()
	temple := seedTemple(t, db)
	other := seedOtherTemple(t, db)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, CreateDonationRequest{
			TempleID:    temple.ID.String(),
			DonorName:   "Donor",
			Amount:      decimal.NewFromInt(100),
			PaymentMode: "cash",
			ReceiptNo:   "A-" + strconv.Itoa(i),
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, CreateDonationRequest{
		TempleID:    other.ID.String(),
		DonorName:   "Donor",
		Amount:      decimal.NewFromInt(100),
		PaymentMode: "cash",
		ReceiptNo:   "B",
	})
	require.NoError(t, err)

	donations, total, err := svc.ListByTemple(ctx, temple.ID.String(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, donations, 3)
}

func seedOtherTemple(t *testing.T, db *gorm.DB) *model.Temple {
	t.Helper()
	temple := &model.Temple{Name: "Murugan Temple", City: "Madurai", IsActive: true}
	require.NoError(t, db.Create(temple).Error)
	return temple
}
