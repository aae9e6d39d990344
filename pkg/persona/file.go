package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// personasFile is the YAML schema for a deployment personas file.
type personasFile struct {
	Personas []Persona `yaml:"personas"`
}

// LoadFile reads persona definitions from a YAML file. Entries are
// validated at registry construction, not here; this only parses.
//
// Example file:
//
//	personas:
//	  - id: pirate
//	    prompt: You are a pirate captain...
//	    greetings: ["Ahoy!"]
//	    models:
//	      llm: {provider: openai, params: {model: gpt-4o}}
//	      tts: {provider: elevenlabs, params: {voice: josh}}
//	      stt: {provider: deepgram}
func LoadFile(path string) ([]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persona: read %s: %w", path, err)
	}
	var file personasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("persona: parse %s: %w", path, err)
	}
	return file.Personas, nil
}

// LoadRegistry builds the registry from the built-in set, overlaid by
// the personas file at path when path is non-empty.
func LoadRegistry(path string) (*Registry, error) {
	personas := Builtin()
	if path != "" {
		overlay, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		personas = Merge(personas, overlay)
	}
	return NewRegistry(personas...)
}
