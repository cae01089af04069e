// internal/models/promotion_test.go
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPromotionStatusAt(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 20, 23, 59, 59, 0, time.UTC)
	promo := &Promotion{StartDate: start, EndDate: end}

	t.Run("before window", func(t *testing.T) {
		assert.Equal(t, PromotionStatusAgendada, promo.StatusAt(start.Add(-time.Second)))
	})

	t.Run("window is inclusive on both ends", func(t *testing.T) {
		assert.Equal(t, PromotionStatusAtiva, promo.StatusAt(start))
		assert.Equal(t, PromotionStatusAtiva, promo.StatusAt(end))
	})

	t.Run("inside window", func(t *testing.T) {
		assert.Equal(t, PromotionStatusAtiva, promo.StatusAt(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("after window", func(t *testing.T) {
		assert.Equal(t, PromotionStatusExpirada, promo.StatusAt(end.Add(time.Second)))
	})

	t.Run("states advance monotonically over the window", func(t *testing.T) {
		order := map[PromotionStatus]int{
			PromotionStatusAgendada: 0,
			PromotionStatusAtiva:    1,
			PromotionStatusExpirada: 2,
		}
		prev := -1
		for at := start.Add(-48 * time.Hour); at.Before(end.Add(48 * time.Hour)); at = at.Add(6 * time.Hour) {
			cur := order[promo.StatusAt(at)]
			assert.GreaterOrEqual(t, cur, prev)
			prev = cur
		}
	})
}

func TestPromotionDiscountedCents(t *testing.T) {
	promo := &Promotion{Discount: 10}
	assert.Equal(t, int64(900), promo.DiscountedCents(1000))
	assert.Equal(t, int64(89), promo.DiscountedCents(99))

	full := &Promotion{Discount: 100}
	assert.Equal(t, int64(0), full.DiscountedCents(1000))

	none := &Promotion{Discount: 0}
	assert.Equal(t, int64(1000), none.DiscountedCents(1000))
}

func TestPromotionItemID(t *testing.T) {
	productID := uuid.New()
	serviceID := uuid.New()

	assert.Equal(t, productID, (&Promotion{ProductID: &productID}).ItemID())
	assert.Equal(t, serviceID, (&Promotion{ServiceID: &serviceID}).ItemID())
	assert.Equal(t, uuid.Nil, (&Promotion{}).ItemID())
}
