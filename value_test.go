package gamba_test

import (
	"testing"

	"github.com/Colton1skees/GAMBA"
)

func TestNewValue(t *testing.T) {
	t.Run("InRange", func(t *testing.T) {
		if v := gamba.NewValue(100, 8); v.V != 100 || v.Width != 8 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("Reduced", func(t *testing.T) {
		if v := gamba.NewValue(300, 8); v.V != 44 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("Width64", func(t *testing.T) {
		if v := gamba.NewValue(0xFFFFFFFFFFFFFFFF, 64); v.V != 0xFFFFFFFFFFFFFFFF {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("Bool", func(t *testing.T) {
		if v := gamba.NewValue(3, 1); v.V != 1 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
}

func TestValue_Add(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		if v := gamba.NewValue(1, 8).Add(gamba.NewValue(2, 8)); v.V != 3 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("Wrap", func(t *testing.T) {
		if v := gamba.NewValue(200, 8).Add(gamba.NewValue(100, 8)); v.V != 44 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("WidthMismatch", func(t *testing.T) {
		var r interface{}
		func() {
			defer func() { r = recover() }()
			gamba.NewValue(1, 8).Add(gamba.NewValue(1, 16))
		}()
		if err, ok := r.(*gamba.WidthError); !ok {
			t.Fatalf("expected width error, got %v", r)
		} else if err.A != 8 || err.B != 16 {
			t.Fatalf("unexpected widths: %d, %d", err.A, err.B)
		}
	})
}

func TestValue_Sub(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		if v := gamba.NewValue(5, 8).Sub(gamba.NewValue(2, 8)); v.V != 3 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("Wrap", func(t *testing.T) {
		if v := gamba.NewValue(0, 8).Sub(gamba.NewValue(1, 8)); v.V != 255 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
}

func TestValue_Mul(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		if v := gamba.NewValue(7, 8).Mul(gamba.NewValue(3, 8)); v.V != 21 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("Wrap", func(t *testing.T) {
		if v := gamba.NewValue(16, 8).Mul(gamba.NewValue(16, 8)); v.V != 0 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
}

func TestValue_Neg(t *testing.T) {
	if v := gamba.NewValue(1, 8).Neg(); v.V != 255 {
		t.Fatalf("unexpected value: %s", v)
	}
	if v := gamba.NewValue(0, 8).Neg(); v.V != 0 {
		t.Fatalf("unexpected value: %s", v)
	}
}

func TestValue_Bitwise(t *testing.T) {
	t.Run("And", func(t *testing.T) {
		if v := gamba.NewValue(0b1100, 8).And(gamba.NewValue(0b1010, 8)); v.V != 0b1000 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("Or", func(t *testing.T) {
		if v := gamba.NewValue(0b1100, 8).Or(gamba.NewValue(0b1010, 8)); v.V != 0b1110 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("Xor", func(t *testing.T) {
		if v := gamba.NewValue(0b1100, 8).Xor(gamba.NewValue(0b1010, 8)); v.V != 0b0110 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("Not", func(t *testing.T) {
		if v := gamba.NewValue(0b1100, 8).Not(); v.V != 0b11110011 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
}

func TestValue_Shl(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		if v := gamba.NewValue(1, 8).Shl(gamba.NewValue(3, 8)); v.V != 8 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("DropHighBits", func(t *testing.T) {
		if v := gamba.NewValue(0x81, 8).Shl(gamba.NewValue(1, 8)); v.V != 2 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("ShiftByWidth", func(t *testing.T) {
		if v := gamba.NewValue(1, 8).Shl(gamba.NewValue(8, 8)); v.V != 0 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("ShiftPastWidth", func(t *testing.T) {
		if v := gamba.NewValue(1, 8).Shl(gamba.NewValue(200, 8)); v.V != 0 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
}

func TestValue_LShr(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		if v := gamba.NewValue(128, 8).LShr(gamba.NewValue(7, 8)); v.V != 1 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
	t.Run("ShiftByWidth", func(t *testing.T) {
		if v := gamba.NewValue(128, 8).LShr(gamba.NewValue(8, 8)); v.V != 0 {
			t.Fatalf("unexpected value: %s", v)
		}
	})
}

func TestValue_Signed(t *testing.T) {
	t.Run("Positive", func(t *testing.T) {
		if s := gamba.NewValue(127, 8).Signed(); s != 127 {
			t.Fatalf("unexpected signed value: %d", s)
		}
	})
	t.Run("Negative", func(t *testing.T) {
		if s := gamba.NewValue(255, 8).Signed(); s != -1 {
			t.Fatalf("unexpected signed value: %d", s)
		}
	})
	t.Run("Width64", func(t *testing.T) {
		if s := gamba.NewValue(0xFFFFFFFFFFFFFFFF, 64).Signed(); s != -1 {
			t.Fatalf("unexpected signed value: %d", s)
		}
	})
}
