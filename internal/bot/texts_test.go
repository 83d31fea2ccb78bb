package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baikal-tours/signup-bot/internal/config"
)

func TestSummaryShowsDeposit(t *testing.T) {
	tour := config.TourConfig{Deposit: "20 000 ₽"}
	texts := buildTexts(tour)

	summary := fmt.Sprintf(texts.Summary, "Ivan Petrov", "+79123456789")
	assert.Contains(t, summary, "Ivan Petrov")
	assert.Contains(t, summary, "+79123456789")
	assert.Contains(t, summary, "20 000 ₽")
}

func TestSummaryDepositPercentSafe(t *testing.T) {
	tour := config.TourConfig{Deposit: "20% от стоимости"}
	texts := buildTexts(tour)

	summary := fmt.Sprintf(texts.Summary, "Ivan Petrov", "+79123456789")
	assert.Contains(t, summary, "20% от стоимости")
	assert.NotContains(t, summary, "%!")
}
