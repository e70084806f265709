package layout

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/structbind/errors"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name    string
		member  Member
		size    uint32
		want    Placement
		wantErr error
	}{
		{"first member", Member{Name: "f1", Size: 4}, 8, Placement{0, 4}, nil},
		{"second member", Member{Name: "f2", BitOffset: 32, Size: 4}, 8, Placement{4, 4}, nil},
		{"ends at size", Member{Name: "tail", BitOffset: 56, Size: 1}, 8, Placement{7, 1}, nil},
		{"zero sized at end", Member{Name: "flex", BitOffset: 64}, 8, Placement{8, 0}, nil},
		{"bit offset", Member{Name: "flag", BitOffset: 3, Size: 1}, 8, Placement{}, errors.ErrUnsupportedBitfield},
		{"bit size", Member{Name: "nibble", BitSize: 4, Size: 4}, 8, Placement{}, errors.ErrUnsupportedBitfield},
		{"overrun", Member{Name: "big", BitOffset: 32, Size: 8}, 8, Placement{}, errors.ErrMalformedTypeGraph},
		{"overflow", Member{Name: "huge", BitOffset: 64, Size: math.MaxUint32}, 8, Placement{}, errors.ErrMalformedTypeGraph},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Place("S", tc.size, tc.member)
			if tc.wantErr != nil {
				if !stderrors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestArray(t *testing.T) {
	size, err := Array("a", 4, 3)
	if err != nil || size != 12 {
		t.Errorf("Array(4, 3) = %d, %v", size, err)
	}
	if _, err := Array("a", math.MaxUint32, 2); !stderrors.Is(err, errors.ErrMalformedTypeGraph) {
		t.Errorf("overflow err = %v", err)
	}
}
