package format

import (
	"errors"
	"testing"

	"github.com/woozymasta/geodesy/internal/geo"
)

var sydney = geo.MustCoordinate(-33.865143, 151.2099)

func TestDecimalDegrees(t *testing.T) {
	if got := sydney.Format(NewDecimalDegrees()); got != "-33.86514 151.2099" {
		t.Errorf("default: %q", got)
	}

	f := DecimalDegrees{Separator: ", ", Digits: 2}
	if got := f.Format(sydney); got != "-33.87, 151.21" {
		t.Errorf("two digits: %q", got)
	}
}

func TestDecimalMinutes(t *testing.T) {
	if got := NewDecimalMinutes().Format(sydney); got != "-33° 51.909′ 151° 12.594′" {
		t.Errorf("default: %q", got)
	}

	f := NewDecimalMinutes()
	f.CardinalLetters = true
	f.Units = UnitsASCII
	f.DecimalPoint = ","
	if got := f.Format(sydney); got != "33° 51,909' S 151° 12,594' E" {
		t.Errorf("cardinal: %q", got)
	}
}

func TestDecimalMinutesCarry(t *testing.T) {
	c := geo.MustCoordinate(10.99999999, -5.99999999)
	if got := NewDecimalMinutes().Format(c); got != "11° 0.000′ -006° 0.000′" {
		t.Errorf("carry: %q", got)
	}
}

func TestDMS(t *testing.T) {
	if got := NewDMS().Format(sydney); got != "-33° 51′ 55″ 151° 12′ 36″" {
		t.Errorf("default: %q", got)
	}

	f := NewDMS()
	f.CardinalLetters = true
	if got := f.Format(sydney); got != "33° 51′ 55″ S 151° 12′ 36″ E" {
		t.Errorf("cardinal: %q", got)
	}

	f = DMS{Separator: ", ", Units: UnitsASCII}
	c := geo.MustCoordinate(52.5, 13.4)
	if got := f.Format(c); got != `52° 30' 00", 013° 24' 00"` {
		t.Errorf("ascii: %q", got)
	}
}

func TestDMSCarry(t *testing.T) {
	// 59.8 seconds round up into the next minute and degree
	c := geo.MustCoordinate(12.0+59.0/60+59.8/3600, 0)
	if got := NewDMS().Format(c); got != "13° 00′ 00″ 000° 00′ 00″" {
		t.Errorf("carry: %q", got)
	}
}

func TestParseUnits(t *testing.T) {
	for name, want := range map[string]Units{"": UnitsUTF8, "utf-8": UnitsUTF8, "ascii": UnitsASCII} {
		got, err := ParseUnits(name)
		if err != nil || got != want {
			t.Errorf("ParseUnits(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseUnits("latin1"); err == nil {
		t.Error("expected error for unknown units")
	}
}

func TestParseCoordinate(t *testing.T) {
	for _, text := range []string{"52.5,13.4", "52.5, 13.4", "52.5 13.4", "52.5\t13.4"} {
		c, err := ParseCoordinate(text, geo.WGS84)
		if err != nil {
			t.Fatalf("%q: %v", text, err)
		}
		if c.Lat() != 52.5 || c.Lng() != 13.4 {
			t.Errorf("%q: got %v", text, c)
		}
	}

	for _, text := range []string{"", "52.5", "a,b", "1,2,3"} {
		if _, err := ParseCoordinate(text, geo.WGS84); err == nil {
			t.Errorf("%q: expected error", text)
		}
	}

	if _, err := ParseCoordinate("91,0", geo.WGS84); !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Errorf("out of range: %v", err)
	}
}

func TestParseCoordinates(t *testing.T) {
	text := "# track\n52.5,13.4\n\n  48.1, 11.6  \n"
	pts, err := ParseCoordinates(text, geo.GRS80)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 2 {
		t.Fatalf("got %d points", len(pts))
	}
	if !pts[1].Ellipsoid().Same(geo.GRS80) {
		t.Error("ellipsoid not applied")
	}

	if _, err := ParseCoordinates("1,1\nbad\n", geo.WGS84); err == nil {
		t.Error("expected error")
	}
}
