package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"national 8 prefix", "89123456789", "+79123456789"},
		{"country 7 prefix", "79123456789", "+79123456789"},
		{"mobile without country code", "9123456789", "+79123456789"},
		{"formatted with plus", "+7 (912) 345-67-89", "+79123456789"},
		{"formatted with eight", "8 (912) 345-67-89", "+79123456789"},
		{"hyphenated", "8-912-345-67-89", "+79123456789"},
		{"foreign number passthrough", "4915123456789", "+4915123456789"},
		{"plus foreign", "+4915123456789", "+4915123456789"},
		{"nine prefix eleven digits passthrough", "91234567890", "+91234567890"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizePhoneRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"too short", "123"},
		{"nine digits", "912345678"},
		{"sixteen digits", "7123456789012345"},
		{"too long", "71234567890123456"},
		{"letters", "8912345678a"},
		{"symbols only", "!!!"},
		{"empty", ""},
		{"plus in the middle", "8912+3456789"},
		{"seven prefix ten digits", "7123456789"},
		{"seven prefix twelve digits", "791234567890"},
		{"eight prefix ten digits", "8123456789"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizePhone(tc.in)
			assert.ErrorIs(t, err, ErrInvalidPhone)
		})
	}
}

func TestNormalizePhoneDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		got, err := NormalizePhone("8 (912) 345-67-89")
		require.NoError(t, err)
		assert.Equal(t, "+79123456789", got)
	}
}
