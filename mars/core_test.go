package mars

import "testing"

func TestFoldIdentities(t *testing.T) {
	cases := []struct {
		ptr, limit, coreSize, want int
	}{
		{44, 8000, 8000, 44},
		{8060, 8000, 8000, 60},
		{8000, 8000, 8000, 0},
		{7999, 8000, 8000, 7999},
	}
	for _, tc := range cases {
		got := fold(tc.ptr, tc.limit, tc.coreSize)
		if got != tc.want {
			t.Errorf("fold(%d, %d, %d) = %d, want %d", tc.ptr, tc.limit, tc.coreSize, got, tc.want)
		}
	}
}

func TestFoldDegeneratesToModuloWhenLimitEqualsCoreSize(t *testing.T) {
	for x := 0; x < 20000; x += 137 {
		got := fold(x, 8000, 8000)
		want := wrapMod(x, 8000)
		if got != want {
			t.Errorf("fold(%d, 8000, 8000) = %d, want %d (mod identity)", x, got, want)
		}
	}
}

func TestDecrementAddressWrapsAtZero(t *testing.T) {
	if got := decrementAddress(0, 10); got != 9 {
		t.Errorf("decrementAddress(0, 10) = %d, want 9", got)
	}
	if got := decrementAddress(5, 10); got != 4 {
		t.Errorf("decrementAddress(5, 10) = %d, want 4", got)
	}
}
