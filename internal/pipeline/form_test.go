package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFormKey(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"a", []string{"a"}},
		{"a[b]", []string{"a", "b"}},
		{"a[b][c]", []string{"a", "b", "c"}},
		{"a[]", []string{"a", ""}},
		{"a[][b]", []string{"a", "", "b"}},
		{"[b]", []string{"[b]"}},
		{"a[b", []string{"a[b"}},
		{"a[b]c", []string{"a[b]c"}},
		{"a[b]x[c]", []string{"a[b]x[c]"}},
		{"a[[b]]", []string{"a[[b]]"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFormKey(tt.key))
		})
	}
}

func TestSetFormValue(t *testing.T) {
	type kv struct{ key, value string }

	tests := []struct {
		name   string
		values []kv
		want   map[string]any
	}{
		{
			name:   "flat",
			values: []kv{{"a", "1"}, {"b", "2"}},
			want:   map[string]any{"a": "1", "b": "2"},
		},
		{
			name:   "repeated key becomes array",
			values: []kv{{"a", "1"}, {"a", "2"}, {"a", "3"}},
			want:   map[string]any{"a": []any{"1", "2", "3"}},
		},
		{
			name:   "push syntax",
			values: []kv{{"a[]", "1"}, {"a[]", "2"}},
			want:   map[string]any{"a": []any{"1", "2"}},
		},
		{
			name:   "push onto scalar",
			values: []kv{{"a", "1"}, {"a[]", "2"}},
			want:   map[string]any{"a": []any{"1", "2"}},
		},
		{
			name:   "nested objects",
			values: []kv{{"p[size][w]", "10"}, {"p[size][h]", "20"}, {"p[name]", "x"}},
			want: map[string]any{"p": map[string]any{
				"size": map[string]any{"w": "10", "h": "20"},
				"name": "x",
			}},
		},
		{
			name:   "array of objects",
			values: []kv{{"items[][sku]", "A"}, {"items[][sku]", "B"}},
			want: map[string]any{"items": []any{
				map[string]any{"sku": "A"},
				map[string]any{"sku": "B"},
			}},
		},
		{
			name:   "later shape wins",
			values: []kv{{"a[b]", "1"}, {"a", "2"}},
			want:   map[string]any{"a": "2"},
		},
		{
			name:   "empty value kept",
			values: []kv{{"a", ""}},
			want:   map[string]any{"a": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[string]any{}
			for _, v := range tt.values {
				setFormValue(got, v.key, v.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeForm(t *testing.T) {
	got, err := decodeForm([]byte("b=2&a%5Bx%5D=1&a%5By%5D=%20sp"))
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"x": "1", "y": " sp"}, "b": "2"}, got)

	got, err = decodeForm(nil)
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{}, got)

	_, err = decodeForm([]byte("a=%zz"))
	assert.Error(t, err)
}
