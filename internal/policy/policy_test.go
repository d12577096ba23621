package policy

import (
	"testing"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDiscountCeiling(t *testing.T) {
	eval := NewEvaluator(Defaults{DiscountPercent: 15, BasketCents: 6000})

	t.Run("uses default percent when policy is nil", func(t *testing.T) {
		ceiling, pct := eval.DiscountCeiling(nil, 6000)
		assert.Equal(t, int64(900), ceiling)
		assert.Equal(t, 15.0, pct)
	})

	t.Run("uses default percent when rule is absent", func(t *testing.T) {
		pol := &domain.Policy{ID: 1, Name: "standard", Rules: map[string]float64{"max_refund_cents": 2000}}
		ceiling, pct := eval.DiscountCeiling(pol, 6000)
		assert.Equal(t, int64(900), ceiling)
		assert.Equal(t, 15.0, pct)
	})

	t.Run("policy rule overrides default", func(t *testing.T) {
		pol := &domain.Policy{ID: 2, Name: "generous", Rules: map[string]float64{domain.RuleMaxDiscountPercent: 25}}
		ceiling, pct := eval.DiscountCeiling(pol, 6000)
		assert.Equal(t, int64(1500), ceiling)
		assert.Equal(t, 25.0, pct)
	})

	t.Run("ceiling rounds down", func(t *testing.T) {
		// 15% of 1001 = 150.15, floored to 150
		ceiling, _ := eval.DiscountCeiling(nil, 1001)
		assert.Equal(t, int64(150), ceiling)
	})

	t.Run("zero percent means zero ceiling", func(t *testing.T) {
		pol := &domain.Policy{ID: 3, Name: "strict", Rules: map[string]float64{domain.RuleMaxDiscountPercent: 0}}
		ceiling, pct := eval.DiscountCeiling(pol, 6000)
		assert.Equal(t, int64(0), ceiling)
		assert.Equal(t, 0.0, pct)
	})
}

func TestBasketCents(t *testing.T) {
	eval := NewEvaluator(Defaults{DiscountPercent: 15, BasketCents: 6000})
	assert.Equal(t, int64(6000), eval.BasketCents())
}

func TestMaxDiscountPercent(t *testing.T) {
	t.Run("nil policy", func(t *testing.T) {
		var pol *domain.Policy
		_, ok := pol.MaxDiscountPercent()
		assert.False(t, ok)
	})

	t.Run("nil rules", func(t *testing.T) {
		pol := &domain.Policy{ID: 1, Name: "empty"}
		_, ok := pol.MaxDiscountPercent()
		assert.False(t, ok)
	})

	t.Run("rule present", func(t *testing.T) {
		pol := &domain.Policy{ID: 1, Name: "standard", Rules: map[string]float64{domain.RuleMaxDiscountPercent: 10}}
		v, ok := pol.MaxDiscountPercent()
		assert.True(t, ok)
		assert.Equal(t, 10.0, v)
	})
}
