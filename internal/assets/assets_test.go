package assets

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func newTestResolver() *Resolver {
	return NewResolver(zerolog.Nop())
}

func TestChampionLookup(t *testing.T) {
	r := newTestResolver()

	champ, err := r.Champion(266)
	if err != nil {
		t.Fatalf("Champion(266) returned error: %v", err)
	}
	if champ.Name != "Aatrox" {
		t.Errorf("Champion(266).Name = %q, want Aatrox", champ.Name)
	}
	if champ.Title != "the Darkin Blade" {
		t.Errorf("Champion(266).Title = %q", champ.Title)
	}

	if _, err := r.Champion(999999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Champion(999999) error = %v, want ErrNotFound", err)
	}
}

func TestItemLookup(t *testing.T) {
	r := newTestResolver()

	item, err := r.Item(3031)
	if err != nil {
		t.Fatalf("Item(3031) returned error: %v", err)
	}
	if item.Name != "Infinity Edge" {
		t.Errorf("Item(3031).Name = %q, want Infinity Edge", item.Name)
	}

	if _, err := r.Item(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Item(1) error = %v, want ErrNotFound", err)
	}
}

func TestRuneLookupAndTree(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		id   int
		name string
		tree string
	}{
		{8005, "Press the Attack", "Precision"},
		{8112, "Electrocute", "Domination"},
		{8214, "Summon Aery", "Sorcery"},
		{8437, "Grasp of the Undying", "Resolve"},
		{8351, "Glacial Augment", "Inspiration"},
	}
	for _, tt := range tests {
		rn, err := r.Rune(tt.id)
		if err != nil {
			t.Fatalf("Rune(%d) returned error: %v", tt.id, err)
		}
		if rn.Name != tt.name {
			t.Errorf("Rune(%d).Name = %q, want %q", tt.id, rn.Name, tt.name)
		}
		if rn.Tree != tt.tree {
			t.Errorf("Rune(%d).Tree = %q, want %q", tt.id, rn.Tree, tt.tree)
		}
	}

	if _, err := r.Rune(12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("Rune(12345) error = %v, want ErrNotFound", err)
	}
}

func TestAugmentLookup(t *testing.T) {
	r := newTestResolver()

	aug, err := r.Augment(28)
	if err != nil {
		t.Fatalf("Augment(28) returned error: %v", err)
	}
	if aug.Name != "Goliath" {
		t.Errorf("Augment(28).Name = %q, want Goliath", aug.Name)
	}
	if aug.Rarity != "Prismatic" {
		t.Errorf("Augment(28).Rarity = %q, want Prismatic", aug.Rarity)
	}

	if _, err := r.Augment(0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Augment(0) error = %v, want ErrNotFound", err)
	}
}

func TestChampionSplashURLCached(t *testing.T) {
	r := newTestResolver()

	first, err := r.ChampionSplashURL(103)
	if err != nil {
		t.Fatalf("ChampionSplashURL(103) returned error: %v", err)
	}
	want := "https://ddragon.leagueoflegends.com/cdn/img/champion/splash/Ahri_0.jpg"
	if first != want {
		t.Errorf("ChampionSplashURL(103) = %q, want %q", first, want)
	}

	second, err := r.ChampionSplashURL(103)
	if err != nil || second != first {
		t.Errorf("cached ChampionSplashURL(103) = %q, %v", second, err)
	}

	if _, err := r.ChampionSplashURL(424242); !errors.Is(err, ErrNotFound) {
		t.Errorf("ChampionSplashURL(424242) error = %v, want ErrNotFound", err)
	}
}
