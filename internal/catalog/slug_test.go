package catalog

import (
	"math"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Zapatos Clásicos de Cuero", "zapatos-clasicos-de-cuero"},
		{"Botas   de  Montaña", "botas-de-montana"},
		{"Niños", "ninos"},
		{"ZAPATILLAS", "zapatillas"},
		{"tenis-running", "tenis-running"},
		{"modelo_2024", "modelo_2024"},
		{"¡Oferta! 50%", "oferta-50"},
		{"  espacios  ", "espacios"},
		{"---", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEncode(t *testing.T) {
	cases := []struct {
		title string
		price float64
		want  string
	}{
		{"Zapatos Clásicos de Cuero", 89.99, "zapatos-clasicos-de-cuero-8999"},
		{"Botas", 120, "botas-12000"},
		{"Sandalias", 45.5, "sandalias-4550"},
		{"", 99.99, "-9999"},
	}
	for _, c := range cases {
		if got := Encode(c.title, c.price); got != c.want {
			t.Errorf("Encode(%q, %v) = %q, want %q", c.title, c.price, got, c.want)
		}
	}
}

func TestPublicID(t *testing.T) {
	if got := PublicID("hombres", "Zapatos Clásicos de Cuero", 89.99); got != "Home/hombres/zapatos-clasicos-de-cuero-8999" {
		t.Fatalf("PublicID = %q", got)
	}
	// unknown category falls back instead of failing
	if got := PublicID("gatos", "Botas", 50); got != "Home/miscelanea/botas-5000" {
		t.Fatalf("PublicID fallback = %q", got)
	}
}

func TestDecode(t *testing.T) {
	cases := []struct {
		id   string
		want Decoded
	}{
		{
			id:   "Home/hombres/zapatos-clasicos-de-cuero-8999",
			want: Decoded{Title: "Zapatos Clasicos De Cuero", Price: 89.99, Category: "hombres"},
		},
		{
			// price-only slug: empty title is legal
			id:   "Home/miscelanea/9999",
			want: Decoded{Title: "", Price: 99.99, Category: "miscelanea"},
		},
		{
			// legacy two-segment form
			id:   "mujeres/sandalias-2500",
			want: Decoded{Title: "Sandalias", Price: 25, Category: "mujeres"},
		},
		{
			// bare slug, no folder at all
			id:   "botas-12000",
			want: Decoded{Title: "Botas", Price: 120, Category: "miscelanea"},
		},
		{
			// unknown category segment falls back
			id:   "Home/gatos/collar-999",
			want: Decoded{Title: "Collar", Price: 9.99, Category: "miscelanea"},
		},
		{
			// empty pieces between hyphens are skipped
			id:   "Home/ninos/tenis--azul-4500",
			want: Decoded{Title: "Tenis Azul", Price: 45, Category: "ninos"},
		},
		{
			// deeper nesting keeps the last segment as the slug
			id:   "Home/deportivos/nuevos/runner-pro-7999",
			want: Decoded{Title: "Runner Pro", Price: 79.99, Category: "deportivos"},
		},
	}
	for _, c := range cases {
		got, ok := Decode(c.id)
		if !ok {
			t.Errorf("Decode(%q) rejected, want accept", c.id)
			continue
		}
		if got.Title != c.want.Title || got.Category != c.want.Category {
			t.Errorf("Decode(%q) = %+v, want %+v", c.id, got, c.want)
		}
		if math.Abs(got.Price-c.want.Price) > 1e-9 {
			t.Errorf("Decode(%q).Price = %v, want %v", c.id, got.Price, c.want.Price)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	ids := []string{
		"Home/hombres/foo-bar",     // no trailing price
		"Home/banners/summer-sale", // non-product asset
		"Home/hombres/",
		"",
		"Home/hombres/zapatos-",                    // empty price segment
		"Home/hombres/zapatos-99999999999999999999", // all-digit but overflows
	}
	for _, id := range ids {
		if _, ok := Decode(id); ok {
			t.Errorf("Decode(%q) accepted, want reject", id)
		}
		if IsProductID(id) {
			t.Errorf("IsProductID(%q) = true, want false", id)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	id := PublicID("mujeres", "Tacones Altos Noche", 149.5)
	dec, ok := Decode(id)
	if !ok {
		t.Fatalf("Decode(%q) rejected", id)
	}
	if dec.Category != "mujeres" {
		t.Errorf("Category = %q", dec.Category)
	}
	if dec.Title != "Tacones Altos Noche" {
		t.Errorf("Title = %q", dec.Title)
	}
	if dec.Price != 149.5 {
		t.Errorf("Price = %v", dec.Price)
	}
}

func TestCategoryFolder(t *testing.T) {
	if folder, ok := CategoryFolder("hombres"); !ok || folder != "Home/hombres" {
		t.Fatalf("CategoryFolder(hombres) = %q, %v", folder, ok)
	}
	if _, ok := CategoryFolder("perros"); ok {
		t.Fatal("CategoryFolder accepted unknown category")
	}
	if _, ok := CategoryFolder(""); ok {
		t.Fatal("CategoryFolder accepted empty category")
	}
}
