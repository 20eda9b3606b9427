package order

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/pdf-tab-order/internal/pdf/extraction"
)

func field(name string, x1, y1, x2, y2 float64) extraction.FieldRecord {
	return extraction.NewFieldRecord(name, extraction.Rect{x1, y1, x2, y2})
}

func names(fields []extraction.FieldRecord) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

func TestSort(t *testing.T) {
	tests := []struct {
		name   string
		fields []extraction.FieldRecord
		want   []string
	}{
		{
			name: "top to bottom",
			fields: []extraction.FieldRecord{
				field("Email", 100, 650, 200, 670),
				field("Name", 100, 700, 200, 720),
			},
			want: []string{"Name", "Email"},
		},
		{
			name: "same row left to right",
			fields: []extraction.FieldRecord{
				field("Right", 140, 490, 160, 510),
				field("Left", 40, 490, 60, 510),
			},
			want: []string{"Left", "Right"},
		},
		{
			name: "identical centers keep input order",
			fields: []extraction.FieldRecord{
				field("Box1", 10, 10, 20, 20),
				field("Box2", 10, 10, 20, 20),
				field("Box3", 12, 12, 18, 18),
			},
			want: []string{"Box1", "Box2", "Box3"},
		},
		{
			name: "no tolerance for nearly equal rows",
			fields: []extraction.FieldRecord{
				field("Left", 0, 500, 10, 510),
				field("Right", 100, 500.0001, 110, 510),
			},
			want: []string{"Right", "Left"},
		},
		{
			name:   "empty",
			fields: nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Sort(tt.fields))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := []extraction.FieldRecord{
		field("B", 0, 0, 10, 10),
		field("A", 0, 100, 10, 110),
	}
	_ = Sort(in)
	assert.Equal(t, []string{"B", "A"}, names(in))
}

func randomFields(r *rand.Rand, n int) []extraction.FieldRecord {
	fields := make([]extraction.FieldRecord, n)
	for i := range fields {
		// few distinct values so equal keys are common
		x := float64(r.Intn(4) * 50)
		y := float64(r.Intn(4) * 50)
		fields[i] = field(string(rune('a'+i%26)), x, y, x+20, y+10)
		fields[i].Page = i
	}
	return fields
}

func TestSort_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		in := randomFields(r, r.Intn(30))
		out := Sort(in)

		require.Len(t, out, len(in))

		// same multiset: Page holds the unique input index
		seen := make(map[int]bool, len(out))
		for _, f := range out {
			assert.False(t, seen[f.Page], "record duplicated")
			seen[f.Page] = true
		}
		assert.Len(t, seen, len(in))

		for i := 1; i < len(out); i++ {
			a, b := out[i-1], out[i]
			ok := a.CenterY > b.CenterY || (a.CenterY == b.CenterY && a.CenterX <= b.CenterX)
			require.True(t, ok, "pair %d out of order: %+v then %+v", i, a, b)

			if a.CenterX == b.CenterX && a.CenterY == b.CenterY {
				assert.Less(t, a.Page, b.Page, "equal keys must keep input order")
			}
		}

		assert.True(t, IsSorted(out))
		assert.Equal(t, out, Sort(out), "sorting sorted input must be a no-op")
	}
}

func TestIsSorted(t *testing.T) {
	assert.True(t, IsSorted(nil))
	assert.True(t, IsSorted([]extraction.FieldRecord{field("A", 0, 100, 10, 110), field("B", 0, 0, 10, 10)}))
	assert.False(t, IsSorted([]extraction.FieldRecord{field("B", 0, 0, 10, 10), field("A", 0, 100, 10, 110)}))
}
