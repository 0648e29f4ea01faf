package engine

import (
	"fmt"
	"sort"
)

// DecodeFunc fills v from the serialized component body. Scene loaders pass
// their format's decoder (a yaml.Node's Decode, for example).
type DecodeFunc func(v any) error

// ComponentFactory builds a Component from its serialized body.
type ComponentFactory func(decode DecodeFunc) (Component, error)

var componentRegistry = map[string]ComponentFactory{}

// RegisterComponent registers a named component type for scene loading.
func RegisterComponent(name string, factory ComponentFactory) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = factory
}

// CreateComponent looks up a registered component by name and decodes it.
// The boolean is false when no component with that name is registered.
func CreateComponent(name string, decode DecodeFunc) (Component, bool, error) {
	factory, ok := componentRegistry[name]
	if !ok {
		return nil, false, nil
	}
	c, err := factory(decode)
	if err != nil {
		return nil, true, fmt.Errorf("decode %s: %w", name, err)
	}
	return c, true, nil
}

// GetRegisteredComponents returns a sorted list of all registered component names.
func GetRegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
