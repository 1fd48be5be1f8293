package upi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "full link",
			params: Params{PayeeVPA: "asha@okbank", PayeeName: "Asha", Amount: 250, Note: "Goa trip"},
			want:   "upi://pay?pa=asha@okbank&pn=Asha&cu=INR&am=250.00&tn=Goa%20trip",
		},
		{
			name:   "no amount",
			params: Params{PayeeVPA: "ravi@upi", PayeeName: "Ravi Kumar"},
			want:   "upi://pay?pa=ravi@upi&pn=Ravi%20Kumar&cu=INR",
		},
		{
			name:   "amount rounds to paise",
			params: Params{PayeeVPA: "ravi@upi", PayeeName: "Ravi", Amount: 33.333333},
			want:   "upi://pay?pa=ravi@upi&pn=Ravi&cu=INR&am=33.33",
		},
		{
			name:   "reserved characters escaped",
			params: Params{PayeeVPA: " ravi@upi ", PayeeName: "R&D", Note: "a=b+c"},
			want:   "upi://pay?pa=ravi@upi&pn=R%26D&cu=INR&tn=a%3Db%2Bc",
		},
		{
			name:   "custom currency",
			params: Params{PayeeVPA: "x@y", PayeeName: "X", Currency: "USD", Amount: 1.5},
			want:   "upi://pay?pa=x@y&pn=X&cu=USD&am=1.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Link(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLink_MissingPayee(t *testing.T) {
	_, err := Link(Params{PayeeName: "Asha", Amount: 10})
	assert.ErrorIs(t, err, ErrMissingPayee)

	_, err = Link(Params{PayeeVPA: "   "})
	assert.ErrorIs(t, err, ErrMissingPayee)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.10", FormatAmount(0.1))
	assert.Equal(t, "1234.50", FormatAmount(1234.5))
	assert.Equal(t, "100.00", FormatAmount(99.999))
}

func TestQRCode(t *testing.T) {
	link, err := Link(Params{PayeeVPA: "asha@okbank", PayeeName: "Asha", Amount: 120})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "asha.jpg")
	require.NoError(t, QRCode(link, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
