package x11

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jezek/xgb/xproto"
)

// modNames lists modifier names in the order they are rendered.
var modNames = []struct {
	name string
	mod  Keymod
}{
	{"ctrl", ModCtrl},
	{"shift", ModShift},
	{"alt", Mod1},
	{"mod2", Mod2},
	{"mod3", Mod3},
	{"mod4", Mod4},
	{"mod5", Mod5},
	{"modlock", ModLock},
}

func (m Keymod) String() string {
	parts := make([]string, 0, 2)
	for _, v := range modNames {
		if m&v.mod != 0 {
			parts = append(parts, v.name)
		}
	}
	return strings.Join(parts, "-")
}

func (k Key) String() string {
	name, ok := keyNames[k.Code]
	if !ok {
		name = "code" + strconv.Itoa(int(k.Code))
	}
	if k.Mod == ModNone {
		return name
	}
	return k.Mod.String() + "-" + name
}

func (k Key) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

func (k *Key) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	for _, s := range strings.Split(str, "-") {
		lower := strings.ToLower(s)
		if val, ok := keys[lower]; ok {
			k.Code = val
		} else if val, ok := mods[lower]; ok {
			k.Mod |= val
		} else if strings.HasPrefix(lower, "code") {
			num, err := strconv.Atoi(lower[4:])
			if err != nil || num < 0 || num > 255 {
				return fmt.Errorf("invalid key code: %s", s)
			}
			k.Code = xproto.Keycode(num)
		} else {
			return fmt.Errorf("invalid key component: %s", s)
		}
	}
	return nil
}

func (m Keymod) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *Keymod) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	for _, s := range strings.Split(str, "-") {
		if s == "" {
			continue
		}
		val, ok := mods[strings.ToLower(s)]
		if !ok {
			return fmt.Errorf("invalid modifier: %s", s)
		}
		*m |= val
	}
	return nil
}
