package web

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/ecoexchange/internal/catalog"
	"github.com/vbonduro/ecoexchange/internal/domain"
)

func TestAllowedImageMIME(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		wantMIME     string
		wantDetected bool
	}{
		{
			name:         "JPEG",
			data:         []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			wantMIME:     "image/jpeg",
			wantDetected: true,
		},
		{
			name:         "PNG",
			data:         []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00},
			wantMIME:     "image/png",
			wantDetected: true,
		},
		{
			name:         "GIF",
			data:         []byte("GIF89a"),
			wantMIME:     "image/gif",
			wantDetected: true,
		},
		{
			name:         "WebP",
			data:         append([]byte("RIFF\x00\x00\x00\x00WEBP"), make([]byte, 10)...),
			wantMIME:     "image/webp",
			wantDetected: true,
		},
		{
			name:         "RIFF but not WebP",
			data:         append([]byte("RIFF\x00\x00\x00\x00WAVE"), make([]byte, 10)...),
			wantMIME:     "",
			wantDetected: false,
		},
		{
			name:         "PDF disguised as image",
			data:         []byte("%PDF-1.4 malicious content"),
			wantMIME:     "",
			wantDetected: false,
		},
		{
			name:         "empty",
			data:         []byte{},
			wantMIME:     "",
			wantDetected: false,
		},
		{
			name:         "too short for WebP check",
			data:         []byte("RIFF"),
			wantMIME:     "",
			wantDetected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMIME, gotDetected := allowedImageMIME(tt.data)
			if gotDetected != tt.wantDetected {
				t.Errorf("allowedImageMIME() detected = %v, want %v", gotDetected, tt.wantDetected)
			}
			if gotMIME != tt.wantMIME {
				t.Errorf("allowedImageMIME() mimeType = %q, want %q", gotMIME, tt.wantMIME)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "", want: 1},
		{in: "10", want: 10},
		{in: " 2.5 ", want: 2.5},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "ten", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseQuantity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCriteria(t *testing.T) {
	c, err := parseCriteria(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultCriteria(), c)

	c, err = parseCriteria(url.Values{
		"category": {"Paper & Cardboard"},
		"min":      {"5"},
		"max":      {"12.5"},
		"sort":     {"Price: High to Low"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryPaper, c.Category)
	assert.Equal(t, 5.0, c.PriceMin)
	assert.Equal(t, 12.5, c.PriceMax)
	assert.Equal(t, catalog.SortPriceHighLow, c.Sort)

	_, err = parseCriteria(url.Values{"category": {"Metals"}})
	assert.ErrorIs(t, err, catalog.ErrInvalidCategory)

	_, err = parseCriteria(url.Values{"sort": {"Oldest"}})
	assert.ErrorIs(t, err, catalog.ErrInvalidSort)

	_, err = parseCriteria(url.Values{"min": {"cheap"}})
	assert.Error(t, err)
}

func TestFormatKg(t *testing.T) {
	assert.Equal(t, "120", formatKg(120))
	assert.Equal(t, "2.50", formatKg(2.5))
}
