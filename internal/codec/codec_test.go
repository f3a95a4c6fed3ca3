package codec

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObfuscator_RoundTrip(t *testing.T) {
	post := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
	}{
		{
			name: "search response",
			in: &domain.SearchResponse{
				Page: 1, PerPage: 10, Total: 1, TotalPages: 1,
				Data: []domain.ContentRecord{{
					ID: "3", Name: "Kyōto 夜 🌙", Slug: "kyoto", PostDate: &post,
					CreatedAt: post, UpdatedAt: post, ContentType: "vip-asian",
				}},
				Sources: []domain.SourceCount{{Source: domain.VipAsian, Count: 1}},
			},
		},
		{
			name: "empty arrays",
			in:   &domain.SearchResponse{Data: []domain.ContentRecord{}, Error: domain.ErrCodeStoreUnavailable},
		},
		{
			name: "nested map",
			in:   map[string]any{"a": map[string]any{"b": []any{1.0, "two", nil}}},
		},
		{
			name: "short payload",
			in:   1.0,
		},
	}

	obf := NewObfuscator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := obf.Encode(tt.in)
			require.NoError(t, err)

			plain, err := Plain{}.Encode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, len(base64.StdEncoding.EncodeToString([]byte(plain)))+1, len(encoded))

			switch want := tt.in.(type) {
			case *domain.SearchResponse:
				var got domain.SearchResponse
				require.NoError(t, obf.Decode(encoded, &got))
				assert.Equal(t, want, &got)
			default:
				var got any
				require.NoError(t, obf.Decode(encoded, &got))
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestObfuscator_FillerPosition(t *testing.T) {
	obf := &Obfuscator{Position: 2, Filler: '!'}

	encoded, err := obf.Encode("hi")
	require.NoError(t, err)
	// "hi" -> "ImhpIg==" with '!' inserted at 2
	assert.Equal(t, "Im!hpIg==", encoded)

	// a position past the end appends
	far := &Obfuscator{Position: 1000, Filler: '!'}
	encoded, err = far.Encode("hi")
	require.NoError(t, err)
	assert.Equal(t, "ImhpIg==!", encoded)

	var s string
	require.NoError(t, far.Decode(encoded, &s))
	assert.Equal(t, "hi", s)
}

func TestObfuscator_DecodeRejectsGarbage(t *testing.T) {
	obf := NewObfuscator()

	for _, in := range []string{"", "not base64 at all", "eyJhIjox"} {
		var v any
		err := obf.Decode(in, &v)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrMalformed))
	}
}

func TestPlain_RoundTrip(t *testing.T) {
	var got map[string]int
	s, err := Plain{}.Encode(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, s)
	require.NoError(t, Plain{}.Decode(s, &got))
	assert.Equal(t, 1, got["a"])
}
