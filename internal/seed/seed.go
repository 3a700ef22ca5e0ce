// Package seed provides the initial contents of the store: either the
// built-in default home or a home described in a YAML file.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/homecore/internal/automation"
	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/location"
	"github.com/nerrad567/homecore/internal/store"
)

// Home is a complete set of entities to load into an empty store.
type Home struct {
	Rooms       []*location.Room
	Devices     []*device.Device
	Scenes      []*automation.Scene
	Automations []*automation.Automation
	Security    store.SecurityMode
}

// Apply loads h into s. Rooms go first so devices naming a room join it;
// members listed on a room are then assigned, overriding the device's own
// roomId.
func (h *Home) Apply(s *store.Store) {
	for _, r := range h.Rooms {
		s.CreateRoom(r)
	}
	for _, d := range h.Devices {
		s.CreateDevice(d)
	}
	for _, r := range h.Rooms {
		for _, id := range r.DeviceIDs.Sorted() {
			s.AssignDeviceToRoom(id, r.ID)
		}
	}
	for _, sc := range h.Scenes {
		s.PutScene(sc)
	}
	for _, a := range h.Automations {
		s.PutAutomation(a)
	}
	if h.Security != "" {
		s.SetSecurityMode(h.Security)
	}
}

// LoadFile reads and parses a YAML seed file.
func LoadFile(path string) (*Home, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Seed path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	h, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return h, nil
}

// file is the on-disk layout of a seed file.
type file struct {
	Security    string                   `yaml:"security"`
	Rooms       []*location.Room         `yaml:"rooms"`
	Devices     []device.Spec            `yaml:"devices"`
	Scenes      []*automation.Scene      `yaml:"scenes"`
	Automations []*automation.Automation `yaml:"automations"`
}

// Parse decodes and validates a YAML seed document.
func Parse(data []byte) (*Home, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	h := &Home{
		Rooms:       f.Rooms,
		Scenes:      f.Scenes,
		Automations: f.Automations,
		Security:    store.ModeDisarmed,
	}

	switch f.Security {
	case "", string(store.ModeDisarmed):
	case string(store.ModeArmed):
		h.Security = store.ModeArmed
	default:
		return nil, fmt.Errorf("%w: unknown security mode %q", ErrInvalidSeed, f.Security)
	}

	seen := make(map[string]string)
	claim := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%w: %s without id", ErrInvalidSeed, kind)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s id %q already used by a %s", ErrInvalidSeed, kind, id, prev)
		}
		seen[id] = kind
		return nil
	}

	for _, r := range f.Rooms {
		if err := claim("room", r.ID); err != nil {
			return nil, err
		}
		if err := location.ValidateName(r.Name); err != nil {
			return nil, fmt.Errorf("room %s: %w", r.ID, err)
		}
	}

	for _, spec := range f.Devices {
		if err := claim("device", spec.ID); err != nil {
			return nil, err
		}
		kind, err := spec.Kind()
		if err != nil {
			return nil, fmt.Errorf("device %s: %w", spec.ID, err)
		}
		if err := device.ValidateName(spec.Name); err != nil {
			return nil, fmt.Errorf("device %s: %w", spec.ID, err)
		}
		h.Devices = append(h.Devices, spec.Build(kind))
	}

	for _, sc := range f.Scenes {
		if err := claim("scene", sc.ID); err != nil {
			return nil, err
		}
		if err := automation.ValidateScene(sc); err != nil {
			return nil, fmt.Errorf("scene %s: %w", sc.ID, err)
		}
	}

	for _, a := range f.Automations {
		if err := claim("automation", a.ID); err != nil {
			return nil, err
		}
		if err := automation.ValidateAutomation(a); err != nil {
			return nil, fmt.Errorf("automation %s: %w", a.ID, err)
		}
	}

	return h, nil
}
