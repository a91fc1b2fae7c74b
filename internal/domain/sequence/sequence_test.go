package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheme_At(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	schemes := NewSchemes(manila)

	// 2024-01-10 20:00 UTC is already 2024-01-11 in Manila.
	now := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "C-20240111-", schemes.Customer.At(now).Prefix)
	assert.Equal(t, "B-20240110-", schemes.Biller.At(now).Prefix)
	assert.Equal(t, "RL-20240111-", schemes.Ledger.At(now).Prefix)
	assert.Equal(t, Key{Scope: "vouchers", Width: 10}, schemes.Voucher.At(now))
}

func TestKey_Format(t *testing.T) {
	key := Key{Scope: "suppliers", Prefix: "S-20240110-", Width: 4}

	id, err := key.Format(1)
	require.NoError(t, err)
	assert.Equal(t, "S-20240110-0001", id)
	assert.Regexp(t, `^S-\d{8}-\d{4}$`, id)

	id, err = key.Format(9999)
	require.NoError(t, err)
	assert.Equal(t, "S-20240110-9999", id)

	_, err = key.Format(10000)
	assert.ErrorIs(t, err, ErrExhausted)

	serial := Key{Scope: "vouchers", Width: 10}
	id, err = serial.Format(42)
	require.NoError(t, err)
	assert.Equal(t, "0000000042", id)
}

func TestKey_Suffix(t *testing.T) {
	key := Key{Prefix: "AB", Width: 4}

	n, ok := key.Suffix("AB0042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	for _, id := range []string{"AC0042", "AB042", "AB00421", "ABx042", "AB-042"} {
		_, ok := key.Suffix(id)
		assert.False(t, ok, id)
	}
}

func TestScheme_Group(t *testing.T) {
	scheme := NewSchemes(time.UTC).Item

	key, err := scheme.Group("AB")
	require.NoError(t, err)
	id, err := key.Format(7)
	require.NoError(t, err)
	assert.Equal(t, "AB0007", id)

	for _, code := range []string{"", "A", "ABC", " A"} {
		_, err := scheme.Group(code)
		assert.ErrorIs(t, err, ErrInvalidGroupCode, code)
	}
}

func TestScheme_KeyOf(t *testing.T) {
	schemes := NewSchemes(time.UTC)

	tests := []struct {
		name   string
		scheme Scheme
		id     string
		prefix string
		ok     bool
	}{
		{name: "dated from another day", scheme: schemes.Customer, id: "C-20230102-0017", prefix: "C-20230102-", ok: true},
		{name: "dated two letter prefix", scheme: schemes.Ledger, id: "RL-20240110-0001", prefix: "RL-20240110-", ok: true},
		{name: "dated wrong prefix", scheme: schemes.Customer, id: "S-20240110-0001"},
		{name: "dated impossible date", scheme: schemes.Customer, id: "C-20241332-0001"},
		{name: "dated short suffix", scheme: schemes.Supplier, id: "S-20240110-001"},
		{name: "dated zero suffix", scheme: schemes.Biller, id: "B-20240110-0000"},
		{name: "dated signed suffix", scheme: schemes.Biller, id: "B-20240110-+001"},
		{name: "grouped", scheme: schemes.Item, id: "BV0012", prefix: "BV", ok: true},
		{name: "grouped without suffix", scheme: schemes.Item, id: "BV"},
		{name: "grouped wide suffix", scheme: schemes.Item, id: "BV00012"},
		{name: "serial", scheme: schemes.Voucher, id: "0000000042", ok: true},
		{name: "blank", scheme: schemes.Customer, id: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := tt.scheme.KeyOf(tt.id)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.prefix, key.Prefix)
				assert.Equal(t, tt.scheme.Scope, key.Scope)
			}
		})
	}
}
