package types

import "testing"

func TestYearFromDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2020-05-01", "2020"},
		{"May 2019", "2019"},
		{"circa 1995, reprinted 2001", "1995"},
		{"n.d.", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := YearFromDate(tt.date); got != tt.want {
			t.Errorf("YearFromDate(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestNormalizeDOI(t *testing.T) {
	if got := NormalizeDOI("  10.1000/XYZ.123 "); got != "10.1000/xyz.123" {
		t.Errorf("NormalizeDOI = %q", got)
	}
}

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		isbn string
		want string
	}{
		{"978-3-16-148410-0", "9783161484100"},
		{"0-8044-2957-x", "080442957X"},
		{"ISBN 12345", "12345"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeISBN(tt.isbn); got != tt.want {
			t.Errorf("NormalizeISBN(%q) = %q, want %q", tt.isbn, got, tt.want)
		}
	}
}

func TestNewLibraryRecord(t *testing.T) {
	rec := NewLibraryRecord(
		"ABCD1234",
		"A Theory of Everything",
		"2020-01-15",
		"10.1000/XYZ",
		"978-3-16-148410-0",
		[]Creator{{Family: "Smith", Given: "Jane"}, {Family: "Jones", Given: "Bob"}},
	)

	if rec.Year != "2020" {
		t.Errorf("Year = %q, want 2020", rec.Year)
	}
	if rec.DOI != "10.1000/xyz" {
		t.Errorf("DOI = %q, want normalized lower-case", rec.DOI)
	}
	if rec.ISBN != "9783161484100" {
		t.Errorf("ISBN = %q, want digits only", rec.ISBN)
	}
	want := "A Theory of Everything Smith Jones 2020"
	if rec.SearchString != want {
		t.Errorf("SearchString = %q, want %q", rec.SearchString, want)
	}
}

func TestLibraryRecordSearchStringSkipsEmpty(t *testing.T) {
	rec := NewLibraryRecord("K1", "", "unknown", "", "", nil)
	if rec.SearchString != "" {
		t.Errorf("SearchString = %q, want empty", rec.SearchString)
	}
}
