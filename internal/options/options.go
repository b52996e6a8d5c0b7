package options

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/restic/eta/internal/errors"
)

// Options holds extended options in the form namespace.key=value.
type Options map[string]string

var registered []Help

// Register makes the tagged fields of cfg known under namespace ns, so that
// they show up in List.
func Register(ns string, cfg interface{}) {
	registered = appendAllOptions(registered, ns, cfg)
}

// List returns all registered options, sorted by namespace and name.
func List() []Help {
	list := make([]Help, len(registered))
	copy(list, registered)
	return list
}

func appendAllOptions(list []Help, ns string, cfg interface{}) []Help {
	for _, opt := range listOptions(cfg) {
		opt.Namespace = ns
		list = append(list, opt)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Namespace == list[j].Namespace {
			return list[i].Name < list[j].Name
		}
		return list[i].Namespace < list[j].Namespace
	})
	return list
}

// listOptions returns the options of the struct cfg in field order.
func listOptions(cfg interface{}) (list []Help) {
	v := reflect.Indirect(reflect.ValueOf(cfg))

	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)

		h := Help{
			Name: f.Tag.Get("option"),
			Text: f.Tag.Get("help"),
		}
		if h.Name == "" {
			continue
		}

		list = append(list, h)
	}

	return list
}

// Help describes a single option.
type Help struct {
	Namespace string
	Name      string
	Text      string
}

// Key returns the fully qualified key, e.g. "window.size".
func (h Help) Key() string {
	if h.Namespace == "" {
		return h.Name
	}
	return h.Namespace + "." + h.Name
}

func splitKeyValue(s string) (key string, value string) {
	key, value, _ = strings.Cut(s, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	return key, value
}

// Parse takes a slice of key=value pairs and returns an Options type.
// Keys are converted to lower-case. Repeating a key is only allowed with
// the same value.
func Parse(in []string) (Options, error) {
	opts := make(Options, len(in))

	for _, opt := range in {
		key, value := splitKeyValue(opt)

		if key == "" {
			return Options{}, errors.Fatalf("empty key is not a valid option")
		}

		if v, ok := opts[key]; ok && v != value {
			return Options{}, errors.Fatalf("key %q present more than once", key)
		}

		opts[key] = value
	}

	return opts, nil
}

// Extract returns all options in namespace ns with the namespace stripped
// from the keys.
func (o Options) Extract(ns string) Options {
	if !strings.HasSuffix(ns, ".") {
		ns += "."
	}

	opts := make(Options)
	for k, v := range o {
		if rest, ok := strings.CutPrefix(k, ns); ok {
			opts[rest] = v
		}
	}

	return opts
}

// Apply sets the options on the struct pointed to by dst, using the struct
// tag `option`. ns is only used for error messages.
func (o Options) Apply(ns string, dst interface{}) error {
	v := reflect.ValueOf(dst).Elem()

	fields := make(map[string]int)
	for i := 0; i < v.NumField(); i++ {
		tag := v.Type().Field(i).Tag.Get("option")
		if tag == "" {
			continue
		}

		if _, ok := fields[tag]; ok {
			panic("option tag " + tag + " is not unique in " + v.Type().Name())
		}
		fields[tag] = i
	}

	for key, value := range o {
		i, ok := fields[key]
		if !ok {
			if ns != "" {
				key = ns + "." + key
			}
			return errors.Fatalf("option %v is not known", key)
		}

		if err := set(v.Field(i), value); err != nil {
			if ns != "" {
				key = ns + "." + key
			}
			return errors.Fatalf("invalid value for option %v: %v", key, err)
		}
	}

	return nil
}

func set(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		vi, err := strconv.ParseInt(value, 0, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(vi)

	case reflect.Uint, reflect.Uint64:
		vi, err := strconv.ParseUint(value, 0, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(vi)

	case reflect.Float64:
		vf, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(vf)

	case reflect.Bool:
		vb, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(vb)

	default:
		panic("type " + field.Type().String() + " not handled")
	}

	return nil
}
