package modes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUniverse(t *testing.T) {
	tests := []struct {
		name    string
		names   []Name
		wantErr bool
	}{
		{"reference", []Name{Intentionality, Integrity, Inquiry, Intuition}, false},
		{"single", []Name{"Solo"}, false},
		{"five modes", []Name{"A", "B", "C", "D", "E"}, false},
		{"empty", nil, true},
		{"blank name", []Name{"A", ""}, true},
		{"duplicate", []Name{"A", "B", "A"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUniverse(tt.names...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, u, len(tt.names))
		})
	}
}

func TestUniverse_Validate(t *testing.T) {
	u := Default()
	require.NoError(t, u.Validate(Inquiry))

	err := u.Validate("Imagination")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMode))
	assert.Contains(t, err.Error(), "Imagination")

	assert.ErrorIs(t, u.ValidateSet(NewSet(Inquiry, "Bogus")), ErrUnknownMode)
	assert.NoError(t, u.ValidateSet(Set{}))
}

func TestSet_AddRemoveDoNotAlias(t *testing.T) {
	a := NewSet(Integrity)
	b := a.Add(Inquiry)
	c := b.Remove(Integrity)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Has(Inquiry))
	assert.False(t, c.Has(Integrity))
}

func TestSet_ZeroValue(t *testing.T) {
	var s Set
	assert.True(t, s.Empty())
	assert.False(t, s.Has(Intuition))
	assert.True(t, s.Equal(NewSet()))
	assert.Empty(t, s.Names())
	assert.Equal(t, s, s.Remove(Intuition))
}

func TestSet_EqualIgnoresOrder(t *testing.T) {
	a := NewSet(Intentionality, Integrity, Inquiry)
	b := NewSet(Inquiry, Intentionality, Integrity)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(b.Remove(Inquiry)))
	assert.False(t, a.Equal(b.Remove(Inquiry).Add(Intuition)))
}

func TestSet_Intersect(t *testing.T) {
	a := NewSet(Intentionality, Integrity, Inquiry)
	b := NewSet(Integrity, Intuition)
	got := a.Intersect(b)
	assert.Equal(t, []Name{Integrity}, got.Names())
	assert.True(t, a.Intersect(Set{}).Empty())
}

func TestSet_Ordered(t *testing.T) {
	s := NewSet(Intuition, Intentionality, "Zeal")
	assert.Equal(t, []Name{Intentionality, Intuition, "Zeal"}, s.Ordered(Default()))
	assert.Equal(t, []string{"Intentionality", "Intuition", "Zeal"}, s.Strings(Default()))
}
