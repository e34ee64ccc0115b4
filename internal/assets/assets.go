// Package assets resolves numeric game-object ids against the static
// lookup tables bundled with the binary. The tables are immutable;
// loading happens once, on first use.
package assets

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"league-tracker/internal/domain"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
)

//go:embed data/*.json
var dataFS embed.FS

// ErrNotFound signals an id with no entry in the lookup table. Item,
// rune and augment misses are cosmetic and droppable; a champion miss
// is structural and fatal for the enclosing match.
var ErrNotFound = errors.New("asset not found")

var runeTrees = []string{"Precision", "Domination", "Sorcery", "Resolve", "Inspiration"}

var augmentRarities = map[int]string{
	0: "Silver",
	1: "Gold",
	2: "Prismatic",
}

type Resolver struct {
	logger zerolog.Logger

	once    sync.Once
	loadErr error

	champions  map[int]domain.Champion
	ddragonIDs map[int]string
	items      map[int]domain.Item
	runes      map[int]domain.Rune
	augments   map[int]domain.Augment

	// splashURLs is an explicit never-evict cache; the table it derives
	// from is immutable for the life of the process.
	splashMu   sync.RWMutex
	splashURLs map[int]string
}

func NewResolver(logger zerolog.Logger) *Resolver {
	return &Resolver{
		logger:     logger,
		splashURLs: make(map[int]string),
	}
}

func (r *Resolver) Champion(id int) (domain.Champion, error) {
	if err := r.load(); err != nil {
		return domain.Champion{}, err
	}
	c, ok := r.champions[id]
	if !ok {
		return domain.Champion{}, fmt.Errorf("champion %d: %w", id, ErrNotFound)
	}
	return c, nil
}

func (r *Resolver) Item(id int) (domain.Item, error) {
	if err := r.load(); err != nil {
		return domain.Item{}, err
	}
	item, ok := r.items[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return item, nil
}

func (r *Resolver) Rune(id int) (domain.Rune, error) {
	if err := r.load(); err != nil {
		return domain.Rune{}, err
	}
	rn, ok := r.runes[id]
	if !ok {
		return domain.Rune{}, fmt.Errorf("rune %d: %w", id, ErrNotFound)
	}
	return rn, nil
}

func (r *Resolver) Augment(id int) (domain.Augment, error) {
	if err := r.load(); err != nil {
		return domain.Augment{}, err
	}
	a, ok := r.augments[id]
	if !ok {
		return domain.Augment{}, fmt.Errorf("augment %d: %w", id, ErrNotFound)
	}
	return a, nil
}

// ChampionSplashURL returns the Data Dragon splash art URL for a
// champion. Results are cached for the life of the process.
func (r *Resolver) ChampionSplashURL(id int) (string, error) {
	if err := r.load(); err != nil {
		return "", err
	}

	r.splashMu.RLock()
	cached, ok := r.splashURLs[id]
	r.splashMu.RUnlock()
	if ok {
		return cached, nil
	}

	ddragonID, ok := r.ddragonIDs[id]
	if !ok {
		return "", fmt.Errorf("champion %d: %w", id, ErrNotFound)
	}
	u := fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/img/champion/splash/%s_0.jpg", ddragonID)

	r.splashMu.Lock()
	r.splashURLs[id] = u
	r.splashMu.Unlock()
	return u, nil
}

func (r *Resolver) load() error {
	r.once.Do(func() {
		for _, step := range []struct {
			name string
			fn   func() error
		}{
			{"champions", r.loadChampions},
			{"items", r.loadItems},
			{"runes", r.loadRunes},
			{"augments", r.loadAugments},
		} {
			if err := step.fn(); err != nil {
				r.loadErr = fmt.Errorf("failed to load %s: %w", step.name, err)
				return
			}
		}
		r.logger.Info().
			Int("champions", len(r.champions)).
			Int("items", len(r.items)).
			Int("runes", len(r.runes)).
			Int("augments", len(r.augments)).
			Msg("asset tables loaded")
	})
	return r.loadErr
}

type championFile struct {
	Data map[string]struct {
		ID    string `json:"id"`
		Key   string `json:"key"`
		Name  string `json:"name"`
		Title string `json:"title"`
		Image struct {
			Full string `json:"full"`
		} `json:"image"`
	} `json:"data"`
}

func (r *Resolver) loadChampions() error {
	raw, err := dataFS.ReadFile("data/champions.json")
	if err != nil {
		return err
	}

	var file championFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return err
	}

	r.champions = make(map[int]domain.Champion, len(file.Data))
	r.ddragonIDs = make(map[int]string, len(file.Data))
	for _, entry := range file.Data {
		key, err := strconv.Atoi(entry.Key)
		if err != nil {
			return fmt.Errorf("champion %q has non-numeric key %q", entry.ID, entry.Key)
		}
		r.champions[key] = domain.Champion{
			ID:    key,
			Name:  entry.Name,
			Title: entry.Title,
			Image: entry.Image.Full,
		}
		r.ddragonIDs[key] = entry.ID
	}
	return nil
}

type itemFile struct {
	Data map[string]struct {
		Name  string `json:"name"`
		Image struct {
			Full string `json:"full"`
		} `json:"image"`
	} `json:"data"`
}

func (r *Resolver) loadItems() error {
	raw, err := dataFS.ReadFile("data/items.json")
	if err != nil {
		return err
	}

	var file itemFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return err
	}

	r.items = make(map[int]domain.Item, len(file.Data))
	for key, entry := range file.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("item key %q is not numeric", key)
		}
		r.items[id] = domain.Item{
			ID:    id,
			Name:  entry.Name,
			Image: entry.Image.Full,
		}
	}
	return nil
}

type runePath struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Slots []struct {
		Runes []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
			Icon string `json:"icon"`
		} `json:"runes"`
	} `json:"slots"`
}

func (r *Resolver) loadRunes() error {
	raw, err := dataFS.ReadFile("data/runes.json")
	if err != nil {
		return err
	}

	var paths []runePath
	if err := json.Unmarshal(raw, &paths); err != nil {
		return err
	}

	r.runes = make(map[int]domain.Rune)
	for _, path := range paths {
		for _, slot := range path.Slots {
			for _, rn := range slot.Runes {
				r.runes[rn.ID] = domain.Rune{
					ID:   rn.ID,
					Name: rn.Name,
					Icon: rn.Icon,
					Tree: runeTree(rn.Icon),
				}
			}
		}
	}
	return nil
}

// runeTree classifies a rune by matching its icon path against the
// known tree names.
func runeTree(icon string) string {
	for _, tree := range runeTrees {
		if strings.Contains(icon, "/"+tree+"/") || strings.Contains(icon, "_"+tree+".") {
			return tree
		}
	}
	return ""
}

type augmentFile struct {
	Augments []map[string]any `json:"augments"`
}

type augmentRecord struct {
	ID        int    `mapstructure:"id"`
	Name      string `mapstructure:"name"`
	Rarity    int    `mapstructure:"rarity"`
	IconSmall string `mapstructure:"iconSmall"`
}

// loadAugments decodes the augment table through mapstructure: the
// upstream dump carries per-entry fields that vary by augment, so the
// entries arrive as loose maps.
func (r *Resolver) loadAugments() error {
	raw, err := dataFS.ReadFile("data/augments.json")
	if err != nil {
		return err
	}

	var file augmentFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return err
	}

	r.augments = make(map[int]domain.Augment, len(file.Augments))
	for _, entry := range file.Augments {
		var rec augmentRecord
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &rec,
		})
		if err != nil {
			return err
		}
		if err := decoder.Decode(entry); err != nil {
			return fmt.Errorf("failed to decode augment entry: %w", err)
		}
		r.augments[rec.ID] = domain.Augment{
			ID:     rec.ID,
			Name:   rec.Name,
			Rarity: augmentRarities[rec.Rarity],
			Icon:   rec.IconSmall,
		}
	}
	return nil
}
