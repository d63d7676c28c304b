package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
)

// LoadSeedFile reads a JSON array of project inputs from path. Every element
// goes through the same validation as a create request; the first invalid
// file fails as a whole.
func LoadSeedFile(path string) ([]project.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var candidates []project.Record
	if err := dec.Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decoding seed file %s: %w", path, err)
	}

	inputs := make([]project.Input, 0, len(candidates))
	var errs []error
	for i, c := range candidates {
		in, err := project.ValidateCreateInput(c)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed entry %d: %w", i, err))
			continue
		}
		inputs = append(inputs, in)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return inputs, nil
}

// Seed inserts the inputs in order.
func (s *ProjectStore) Seed(ctx context.Context, inputs []project.Input) error {
	for _, in := range inputs {
		if _, err := s.InsertProject(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
